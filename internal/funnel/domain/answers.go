package domain

// Qualifiers are the step-2 wizard answers.
type Qualifiers struct {
	AudienceBand string
	BudgetBand   string
}

// Contact is the step-3 contact block. Phone is stored normalized.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Details are the step-4 event details. The band fields start seeded from the
// step-2 qualifiers and stay editable here.
type Details struct {
	EventType       string
	CityUF          string
	EventDate       string
	AudienceBand    string
	BudgetBand      string
	FireworkPoints  string
	NoiseRestricted bool
	WantsAddons     bool
	Notes           string
}

// Answers accumulates everything the visitor has entered so far. Preserved
// across submission errors so a retry needs no re-typing.
type Answers struct {
	Contact Contact
	Details Details
}

// ValidateDetails enforces the segment-dependent rules that struct tags
// cannot express: event-type enum membership and per-segment required
// fields. Returns a field->message map, empty when valid.
func ValidateDetails(segment string, d Details) map[string]string {
	errs := make(map[string]string)

	if !ValidEventType(segment, d.EventType) {
		errs["eventType"] = "tipo de evento inválido para o segmento"
	}

	// A date is mandatory for corporate and specialized events; personal
	// celebrations may still be undecided.
	if d.EventDate == "" && segment != SegmentPersonal {
		errs["eventDate"] = "informe a data do evento"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
