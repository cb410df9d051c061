package analytics

import (
	"context"
	"fmt"
	"time"

	"funnel_backend/internal/attribution"
	"funnel_backend/internal/metrics"
	"funnel_backend/platform/logger"

	"github.com/google/uuid"
)

// Pipeline enriches normalized records with the visitor's attribution
// snapshot and a unique event ID, then forwards them to every sink.
// Dispatch is fire-and-forget: a slow or failed sink never delays the caller.
type Pipeline struct {
	attrib *attribution.Store
	sinks  []Sink
	log    *logger.Logger
}

// NewPipeline creates the analytics pipeline with the given sinks.
func NewPipeline(attrib *attribution.Store, log *logger.Logger, sinks ...Sink) *Pipeline {
	return &Pipeline{attrib: attrib, sinks: sinks, log: log}
}

// Track enriches the record and dispatches it to all sinks. It never
// returns an error; sink failures are logged and counted only. The enriched
// event is returned for callers that want the generated event ID.
func (p *Pipeline) Track(ctx context.Context, visitorID uuid.UUID, rec Record) Event {
	event := p.enrich(visitorID, rec)

	for _, sink := range p.sinks {
		p.dispatch(ctx, sink, event)
	}

	return event
}

func (p *Pipeline) enrich(visitorID uuid.UUID, rec Record) Event {
	params := make(map[string]any, len(rec.Fields)+8)
	for k, v := range rec.Fields {
		params[k] = v
	}

	// Flatten the attribution snapshot into the payload. The snapshot is
	// read-only here; the same capture serves every event of the session.
	snap := p.attrib.Get(visitorID)
	for k, v := range snap.UTM {
		params[k] = v
	}
	if snap.ClickIDs.AdsClickID != "" {
		params["adsClickId"] = snap.ClickIDs.AdsClickID
	}
	if snap.ClickIDs.SocialClickID != "" {
		params["socialClickId"] = snap.ClickIDs.SocialClickID
	}
	if snap.Referrer != "" {
		params["referrer"] = snap.Referrer
	}
	if visitorID != uuid.Nil {
		params["visitor_id"] = visitorID.String()
	}

	return Event{
		EventID:   newEventID(rec.Name),
		Name:      rec.Name,
		Family:    rec.Family,
		Category:  rec.Category,
		Label:     rec.Label,
		Value:     rec.Value,
		Params:    params,
		Timestamp: time.Now(),
	}
}

func (p *Pipeline) dispatch(ctx context.Context, sink Sink, event Event) {
	defer func() {
		if r := recover(); r != nil {
			p.log.SinkError(sink.Name(), event.Name, fmt.Errorf("panic: %v", r))
			metrics.EventsSkipped.WithLabelValues(sink.Name(), "panic").Inc()
		}
	}()

	if !sink.Available() {
		p.log.SinkUnavailable(sink.Name(), event.Name)
		metrics.EventsSkipped.WithLabelValues(sink.Name(), "unavailable").Inc()
		return
	}

	if err := sink.Send(ctx, event); err != nil {
		p.log.SinkError(sink.Name(), event.Name, err)
		metrics.EventsSkipped.WithLabelValues(sink.Name(), "error").Inc()
		return
	}

	metrics.EventsDispatched.WithLabelValues(sink.Name()).Inc()
}
