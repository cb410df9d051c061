// Package transport defines request and response shapes for the funnel API.
package transport

// OpenRequest starts a new funnel session for the visitor.
type OpenRequest struct {
	Source string `json:"source" validate:"required,max=64"`
	Page   string `json:"page" validate:"omitempty,max=256"`
}

// SegmentRequest selects the audience segment in step 1.
type SegmentRequest struct {
	Segment string `json:"segment" validate:"required,oneof=personal corporate specialized"`
}

// QualifiersRequest answers the step-2 qualification wizard. The bands chosen
// here seed the step-4 form, where they remain editable.
type QualifiersRequest struct {
	AudienceBand string `json:"audienceBand" validate:"required,oneof=ate_200 200_1000 1000_5000 acima_5000"`
	BudgetBand   string `json:"budgetBand" validate:"required,oneof=ate_10k 10k_30k 30k_80k acima_80k"`
}

// ContactRequest carries the step-3 contact block. Phone uses the brphone
// rule: at least ten digits after stripping formatting.
type ContactRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=120"`
	Email string `json:"email" validate:"required,email,max=254"`
	Phone string `json:"phone" validate:"required,brphone"`
}

// DetailsRequest carries the step-4 event details. EventType membership in
// the segment's enum and the per-segment required fields are enforced by the
// domain layer, since they depend on the segment chosen in step 1.
type DetailsRequest struct {
	EventType       string `json:"eventType" validate:"required,max=64"`
	CityUF          string `json:"cityUf" validate:"required,min=2,max=128"`
	EventDate       string `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	AudienceBand    string `json:"audienceBand" validate:"required,oneof=ate_200 200_1000 1000_5000 acima_5000"`
	BudgetBand      string `json:"budgetBand" validate:"required,oneof=ate_10k 10k_30k 30k_80k acima_80k"`
	FireworkPoints  string `json:"fireworkPoints" validate:"required,max=500"`
	NoiseRestricted bool   `json:"noiseRestricted"`
	WantsAddons     bool   `json:"wantsAddons"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}

// StateResponse is the session view returned after every funnel operation.
// Step is the unified 1-5 counter; Phase and PhaseStep are derived from it.
type StateResponse struct {
	SessionID string `json:"sessionId"`
	Step      int    `json:"step"`
	Phase     int    `json:"phase"`
	PhaseStep int    `json:"phaseStep"`
	Status    string `json:"status"`

	Segment      string `json:"segment,omitempty"`
	AudienceBand string `json:"audienceBand,omitempty"`
	BudgetBand   string `json:"budgetBand,omitempty"`

	Score *int   `json:"score,omitempty"`
	Error string `json:"error,omitempty"`
}

// SubmitResponse is returned by a successful final submission.
type SubmitResponse struct {
	StateResponse
	LeadID string `json:"leadId"`
}
