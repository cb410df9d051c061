// Package domain provides core business rules for the funnel bounded context.
package domain

// Funnel steps. The qualification wizard occupies steps 1-2, the detailed
// form steps 3-5, exposed to the caller as one continuous 1-5 scale.
const (
	StepSegment    = 1
	StepQualifiers = 2
	StepContact    = 3
	StepDetails    = 4
	StepReview     = 5

	MinStep = StepSegment
	MaxStep = StepReview
)

// phaseOffset is the number of wizard steps preceding the form phase.
const phaseOffset = 2

// Phase maps the unified step counter onto (phase, local step). The unified
// counter is the single source of truth; this is a pure offset function for
// progress rendering.
func Phase(step int) (phase, local int) {
	if step <= phaseOffset {
		return 1, step
	}
	return 2, step - phaseOffset
}

// Status is the funnel session lifecycle status.
type Status string

const (
	StatusActive     Status = "active"
	StatusSubmitting Status = "submitting"
	StatusSubmitted  Status = "submitted"
	StatusErrored    Status = "errored"
	StatusAbandoned  Status = "abandoned"
)

// Audience segments chosen in step 1.
const (
	SegmentPersonal    = "personal"
	SegmentCorporate   = "corporate"
	SegmentSpecialized = "specialized"
)

// ValidSegment reports whether the segment is one of the three audiences.
func ValidSegment(segment string) bool {
	switch segment {
	case SegmentPersonal, SegmentCorporate, SegmentSpecialized:
		return true
	}
	return false
}

var audienceBands = map[string]bool{
	"ate_200":    true,
	"200_1000":   true,
	"1000_5000":  true,
	"acima_5000": true,
}

var budgetBands = map[string]bool{
	"ate_10k":   true,
	"10k_30k":   true,
	"30k_80k":   true,
	"acima_80k": true,
}

// ValidAudienceBand reports whether the audience-size band is known.
func ValidAudienceBand(band string) bool { return audienceBands[band] }

// ValidBudgetBand reports whether the budget band is known.
func ValidBudgetBand(band string) bool { return budgetBands[band] }

// eventTypes is the closed event-type enum per segment. The form shape is a
// tagged variant keyed by segment; Go has no sum types, so the variants are
// realized as per-segment rule tables over one record.
var eventTypes = map[string]map[string]bool{
	SegmentPersonal: {
		"casamento":   true,
		"aniversario": true,
		"formatura":   true,
		"pedido":      true,
	},
	SegmentCorporate: {
		"confraternizacao": true,
		"inauguracao":      true,
		"lancamento":       true,
		"premiacao":        true,
	},
	SegmentSpecialized: {
		"reveillon":        true,
		"festival":         true,
		"festa_junina":     true,
		"evento_esportivo": true,
	},
}

// ValidEventType reports whether the event type belongs to the segment's
// closed enum.
func ValidEventType(segment, eventType string) bool {
	return eventTypes[segment][eventType]
}

var audienceProfiles = map[string]string{
	"ate_200":    "intimate",
	"200_1000":   "medium",
	"1000_5000":  "large",
	"acima_5000": "massive",
}

// AudienceProfile infers the profile tag stored on the lead record from the
// segment and audience-size band.
func AudienceProfile(segment, audienceBand string) string {
	size, ok := audienceProfiles[audienceBand]
	if !ok {
		size = "unknown"
	}
	return segment + "_" + size
}
