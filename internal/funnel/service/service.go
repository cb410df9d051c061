// Package service implements the funnel state machine: a five-step guided
// flow with a unified step counter, one analytics event per accepted
// transition and a submission path that survives backend failures.
package service

import (
	"context"
	"sync"
	"time"

	"funnel_backend/internal/analytics"
	"funnel_backend/internal/attribution"
	"funnel_backend/internal/events"
	"funnel_backend/internal/funnel/domain"
	"funnel_backend/internal/funnel/transport"
	"funnel_backend/internal/metrics"
	"funnel_backend/internal/submission"
	"funnel_backend/platform/apperr"
	"funnel_backend/platform/logger"
	"funnel_backend/platform/phone"

	"github.com/google/uuid"
)

// session is the in-memory funnel session. Transitions are serialized by the
// per-session mutex; the generation counter detects a Close racing a
// submission that is still in flight.
type session struct {
	mu sync.Mutex

	id        uuid.UUID
	visitorID uuid.UUID

	source string
	page   string

	step       int
	segment    string
	qualifiers domain.Qualifiers
	answers    domain.Answers

	status     domain.Status
	errorMsg   string
	score      *int
	leadID     uuid.UUID
	generation int

	createdAt time.Time
	updatedAt time.Time
}

// Service owns all funnel sessions and drives their transitions.
type Service struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	pipeline *analytics.Pipeline
	gateway  submission.Gateway
	scorer   ScoreFunc
	attrib   *attribution.Store
	bus      events.Bus
	log      *logger.Logger
}

// ScoreFunc maps an answer set to a score in [0,100].
type ScoreFunc func(in ScoreInput) int

// ScoreInput mirrors the scoring engine's input so the funnel does not
// depend on the engine's concrete type.
type ScoreInput struct {
	Segment         string
	BudgetBand      string
	AudienceBand    string
	EventType       string
	NoiseRestricted bool
	HasEventDate    bool
	WantsAddons     bool
}

// NewService creates the funnel service.
func NewService(pipeline *analytics.Pipeline, gateway submission.Gateway, scorer ScoreFunc, attrib *attribution.Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		sessions: make(map[uuid.UUID]*session),
		pipeline: pipeline,
		gateway:  gateway,
		scorer:   scorer,
		attrib:   attrib,
		bus:      bus,
		log:      log,
	}
}

// Open creates a fresh session at step 1 and fires the opening event.
func (s *Service) Open(ctx context.Context, visitorID uuid.UUID, req transport.OpenRequest) transport.StateResponse {
	now := time.Now()
	sess := &session{
		id:        uuid.New(),
		visitorID: visitorID,
		source:    req.Source,
		page:      req.Page,
		step:      domain.MinStep,
		status:    domain.StatusActive,
		createdAt: now,
		updatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.accepted(ctx, sess, "open", "funnel_open", domain.MinStep, domain.MinStep)
	return stateOf(sess)
}

// State returns the current session view without side effects.
func (s *Service) State(_ context.Context, visitorID, sessionID uuid.UUID) (transport.StateResponse, error) {
	sess, err := s.lookup(visitorID, sessionID)
	if err != nil {
		return transport.StateResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return stateOf(sess), nil
}

// SelectSegment records the step-1 segment choice and advances to step 2.
func (s *Service) SelectSegment(ctx context.Context, visitorID, sessionID uuid.UUID, req transport.SegmentRequest) (transport.StateResponse, error) {
	sess, err := s.lookup(visitorID, sessionID)
	if err != nil {
		return transport.StateResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := requireStep(sess, domain.StepSegment, "segment"); err != nil {
		return transport.StateResponse{}, err
	}

	from := sess.step
	sess.segment = req.Segment
	// Re-selecting after Back invalidates the previous variant's answers.
	sess.answers.Details = domain.Details{
		AudienceBand: sess.qualifiers.AudienceBand,
		BudgetBand:   sess.qualifiers.BudgetBand,
	}
	sess.step = domain.StepQualifiers

	s.accepted(ctx, sess, "segment", "funnel_segment_select", from, sess.step)
	return stateOf(sess), nil
}

// SelectQualifiers records the step-2 wizard answers and advances to step 3.
// The bands seed the step-4 form.
func (s *Service) SelectQualifiers(ctx context.Context, visitorID, sessionID uuid.UUID, req transport.QualifiersRequest) (transport.StateResponse, error) {
	sess, err := s.lookup(visitorID, sessionID)
	if err != nil {
		return transport.StateResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := requireStep(sess, domain.StepQualifiers, "qualifiers"); err != nil {
		return transport.StateResponse{}, err
	}

	from := sess.step
	sess.qualifiers = domain.Qualifiers{
		AudienceBand: req.AudienceBand,
		BudgetBand:   req.BudgetBand,
	}
	sess.answers.Details.AudienceBand = req.AudienceBand
	sess.answers.Details.BudgetBand = req.BudgetBand
	sess.step = domain.StepContact

	s.accepted(ctx, sess, "qualifiers", "funnel_qualifiers", from, sess.step)
	return stateOf(sess), nil
}

// SubmitContact records the step-3 contact block and advances to step 4.
func (s *Service) SubmitContact(ctx context.Context, visitorID, sessionID uuid.UUID, req transport.ContactRequest) (transport.StateResponse, error) {
	sess, err := s.lookup(visitorID, sessionID)
	if err != nil {
		return transport.StateResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := requireStep(sess, domain.StepContact, "contact"); err != nil {
		return transport.StateResponse{}, err
	}

	from := sess.step
	sess.answers.Contact = domain.Contact{
		Name:  req.Name,
		Email: req.Email,
		Phone: phone.NormalizeE164(req.Phone),
	}
	sess.step = domain.StepDetails

	s.accepted(ctx, sess, "contact", "funnel_step_advance", from, sess.step)
	return stateOf(sess), nil
}

// SubmitDetails records the step-4 event details and advances to step 5.
// Segment-dependent validation happens here; a failure changes nothing and
// fires no event.
func (s *Service) SubmitDetails(ctx context.Context, visitorID, sessionID uuid.UUID, req transport.DetailsRequest) (transport.StateResponse, error) {
	sess, err := s.lookup(visitorID, sessionID)
	if err != nil {
		return transport.StateResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := requireStep(sess, domain.StepDetails, "details"); err != nil {
		return transport.StateResponse{}, err
	}

	details := domain.Details{
		EventType:       req.EventType,
		CityUF:          req.CityUF,
		EventDate:       req.EventDate,
		AudienceBand:    req.AudienceBand,
		BudgetBand:      req.BudgetBand,
		FireworkPoints:  req.FireworkPoints,
		NoiseRestricted: req.NoiseRestricted,
		WantsAddons:     req.WantsAddons,
		Notes:           req.Notes,
	}

	if fieldErrs := domain.ValidateDetails(sess.segment, details); fieldErrs != nil {
		metrics.FunnelRejections.WithLabelValues("details").Inc()
		return transport.StateResponse{}, apperr.Validation("dados do evento inválidos").
			WithDetails(fieldErrs).WithOp("funnel.SubmitDetails")
	}

	from := sess.step
	sess.answers.Details = details
	sess.qualifiers = domain.Qualifiers{
		AudienceBand: details.AudienceBand,
		BudgetBand:   details.BudgetBand,
	}
	sess.step = domain.StepReview

	s.accepted(ctx, sess, "details", "funnel_step_advance", from, sess.step)
	return stateOf(sess), nil
}

// Back moves one step toward the start. Answers are kept so the visitor can
// edit instead of re-typing. Going back from an errored review clears the
// error state.
func (s *Service) Back(ctx context.Context, visitorID, sessionID uuid.UUID) (transport.StateResponse, error) {
	sess, err := s.lookup(visitorID, sessionID)
	if err != nil {
		return transport.StateResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status != domain.StatusActive && sess.status != domain.StatusErrored {
		metrics.FunnelRejections.WithLabelValues("back").Inc()
		return transport.StateResponse{}, rejected("back", sess.status)
	}
	if sess.step <= domain.MinStep {
		metrics.FunnelRejections.WithLabelValues("back").Inc()
		return transport.StateResponse{}, apperr.Conflict("já está no primeiro passo").WithOp("funnel.Back")
	}

	from := sess.step
	sess.step--
	sess.status = domain.StatusActive
	sess.errorMsg = ""

	s.accepted(ctx, sess, "back", "funnel_step_back", from, sess.step)
	return stateOf(sess), nil
}

// Submit finishes the funnel: scores the answers, builds the lead record and
// hands it to the submission gateway. On failure the session becomes errored
// with every answer preserved; Submit may then be retried.
func (s *Service) Submit(ctx context.Context, visitorID, sessionID uuid.UUID) (transport.SubmitResponse, error) {
	sess, err := s.lookup(visitorID, sessionID)
	if err != nil {
		return transport.SubmitResponse{}, err
	}

	sess.mu.Lock()

	if sess.status != domain.StatusActive && sess.status != domain.StatusErrored {
		metrics.FunnelRejections.WithLabelValues("submit").Inc()
		sess.mu.Unlock()
		return transport.SubmitResponse{}, rejected("submit", sess.status)
	}
	if sess.step != domain.StepReview {
		metrics.FunnelRejections.WithLabelValues("submit").Inc()
		sess.mu.Unlock()
		return transport.SubmitResponse{}, apperr.Conflict("o formulário ainda não foi concluído").WithOp("funnel.Submit")
	}

	rec := s.buildRecord(sess)
	gen := sess.generation
	sess.status = domain.StatusSubmitting
	sess.errorMsg = ""
	sess.updatedAt = time.Now()
	sess.mu.Unlock()

	submitErr := s.gateway.Submit(ctx, rec)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// The visitor closed (or reset) the funnel while the backend call was in
	// flight. The outcome no longer has a home; drop it without surfacing
	// anything.
	if sess.generation != gen {
		return transport.SubmitResponse{StateResponse: stateOf(sess)}, nil
	}

	if submitErr != nil {
		sess.status = domain.StatusErrored
		sess.errorMsg = userMessage(submitErr)
		sess.updatedAt = time.Now()
		return transport.SubmitResponse{}, submitErr
	}

	score := rec.Score
	sess.status = domain.StatusSubmitted
	sess.score = &score
	sess.leadID = rec.ID
	metrics.LeadScore.Observe(float64(score))

	s.accepted(ctx, sess, "submit", "lead_form_submit", domain.StepReview, domain.StepReview)
	s.bus.Publish(ctx, events.LeadSubmitted{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      rec.ID,
		Segment:     rec.Segment,
		Score:       rec.Score,
		ContactName: rec.ContactName,
		Email:       rec.Email,
		Phone:       rec.Phone,
		EventType:   rec.EventType,
		CityUF:      rec.CityUF,
		EventDate:   rec.EventDate,
		BudgetBand:  rec.BudgetBand,
		Source:      rec.Source,
	})

	return transport.SubmitResponse{
		StateResponse: stateOf(sess),
		LeadID:        rec.ID.String(),
	}, nil
}

// Close resets the session in place: back to step 1 with segment,
// qualifiers and answers cleared. Always permitted, fires no event. The
// generation bump tells an in-flight submission its result is unwanted.
func (s *Service) Close(_ context.Context, visitorID, sessionID uuid.UUID) (transport.StateResponse, error) {
	sess, err := s.lookup(visitorID, sessionID)
	if err != nil {
		return transport.StateResponse{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.generation++
	sess.step = domain.MinStep
	sess.segment = ""
	sess.qualifiers = domain.Qualifiers{}
	sess.answers = domain.Answers{}
	sess.status = domain.StatusActive
	sess.errorMsg = ""
	sess.score = nil
	sess.leadID = uuid.Nil
	sess.updatedAt = time.Now()

	return stateOf(sess), nil
}

// Sweep expires sessions idle longer than ttl and publishes an abandonment
// event for each one that never reached submission.
func (s *Service) Sweep(ctx context.Context, ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	var expired []*session
	for id, sess := range s.sessions {
		if sess.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
			expired = append(expired, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.mu.Lock()
		if sess.status != domain.StatusSubmitted {
			sess.status = domain.StatusAbandoned
			s.bus.Publish(ctx, events.FunnelAbandoned{
				BaseEvent: events.NewBaseEvent(),
				SessionID: sess.id,
				Segment:   sess.segment,
				LastStep:  sess.step,
				Source:    sess.source,
			})
		}
		sess.mu.Unlock()
	}

	return len(expired)
}

// Len reports how many sessions are live. Used by the sweeper's log line.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) lookup(visitorID, sessionID uuid.UUID) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	// A foreign visitor gets the same answer as a missing session.
	if !ok || sess.visitorID != visitorID {
		return nil, apperr.NotFound("sessão não encontrada").WithOp("funnel.lookup")
	}
	return sess, nil
}

// accepted is the single point that records an accepted transition: one
// analytics event, one metric increment, one log line. Caller holds sess.mu.
func (s *Service) accepted(ctx context.Context, sess *session, action, eventName string, from, to int) {
	sess.updatedAt = time.Now()

	s.pipeline.Track(ctx, sess.visitorID, analytics.NewFormEvent(
		eventName, to, sess.segment,
		sess.qualifiers.AudienceBand, sess.qualifiers.BudgetBand,
		sess.source,
	))
	metrics.FunnelTransitions.WithLabelValues(action).Inc()
	s.log.FunnelTransition(sess.id.String(), action, from, to)
}

func (s *Service) buildRecord(sess *session) submission.LeadRecord {
	d := sess.answers.Details
	c := sess.answers.Contact

	score := s.scorer(ScoreInput{
		Segment:         sess.segment,
		BudgetBand:      d.BudgetBand,
		AudienceBand:    d.AudienceBand,
		EventType:       d.EventType,
		NoiseRestricted: d.NoiseRestricted,
		HasEventDate:    d.EventDate != "",
		WantsAddons:     d.WantsAddons,
	})

	// The write-once snapshot travels with the lead. An unknown visitor
	// yields an empty snapshot, which flattens to empty fields.
	snap := s.attrib.Get(sess.visitorID)

	return submission.LeadRecord{
		ID:        uuid.New(),
		CreatedAt: time.Now(),

		Source: sess.source,
		Page:   sess.page,

		Segment:         sess.segment,
		AudienceProfile: domain.AudienceProfile(sess.segment, d.AudienceBand),
		Score:           score,

		ContactName: c.Name,
		Email:       c.Email,
		Phone:       c.Phone,

		EventType:       d.EventType,
		CityUF:          d.CityUF,
		EventDate:       d.EventDate,
		AudienceBand:    d.AudienceBand,
		BudgetBand:      d.BudgetBand,
		FireworkPoints:  d.FireworkPoints,
		NoiseRestricted: d.NoiseRestricted,
		WantsAddons:     d.WantsAddons,
		Notes:           d.Notes,

		UTMSource:     snap.UTM["utm_source"],
		UTMMedium:     snap.UTM["utm_medium"],
		UTMCampaign:   snap.UTM["utm_campaign"],
		UTMTerm:       snap.UTM["utm_term"],
		UTMContent:    snap.UTM["utm_content"],
		AdsClickID:    snap.ClickIDs.AdsClickID,
		SocialClickID: snap.ClickIDs.SocialClickID,
		Referrer:      snap.Referrer,
	}
}

func requireStep(sess *session, step int, action string) error {
	if sess.status != domain.StatusActive {
		metrics.FunnelRejections.WithLabelValues(action).Inc()
		return rejected(action, sess.status)
	}
	if sess.step != step {
		metrics.FunnelRejections.WithLabelValues(action).Inc()
		return apperr.Conflict("transição inválida para o passo atual").WithOp("funnel." + action)
	}
	return nil
}

func rejected(action string, status domain.Status) error {
	msg := "a sessão não aceita esta ação no momento"
	if status == domain.StatusSubmitting {
		msg = "envio em andamento, aguarde"
	}
	return apperr.Conflict(msg).WithOp("funnel." + action)
}

func userMessage(err error) string {
	if e, ok := err.(*apperr.Error); ok {
		return e.Message
	}
	return "não foi possível enviar sua solicitação, tente novamente"
}

func stateOf(sess *session) transport.StateResponse {
	phase, local := domain.Phase(sess.step)

	resp := transport.StateResponse{
		SessionID:    sess.id.String(),
		Step:         sess.step,
		Phase:        phase,
		PhaseStep:    local,
		Status:       string(sess.status),
		Segment:      sess.segment,
		AudienceBand: sess.qualifiers.AudienceBand,
		BudgetBand:   sess.qualifiers.BudgetBand,
		Error:        sess.errorMsg,
	}
	if sess.score != nil {
		score := *sess.score
		resp.Score = &score
	}
	return resp
}
