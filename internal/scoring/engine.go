package scoring

// Input is the already-parsed answer set the caller supplies. Date proximity
// is resolved by the caller; the engine itself reads no clock.
type Input struct {
	Segment         string
	BudgetBand      string
	AudienceBand    string
	EventType       string
	NoiseRestricted bool
	HasEventDate    bool
	WantsAddons     bool
}

// Engine scores leads from a fixed weight table. Score is total and
// deterministic: identical input always yields identical output and no
// input can make it fail.
type Engine struct {
	weights Weights
}

// NewEngine creates a scoring engine with the given weight table.
func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights}
}

// Score maps the answer set to an integer in [0,100].
func (e *Engine) Score(in Input) int {
	switch in.Segment {
	case "personal":
		return clamp(e.scorePersonal(in))
	case "corporate":
		return clamp(e.scoreQualified(in, e.weights.Corporate))
	case "specialized":
		return clamp(e.scoreQualified(in, e.weights.Specialized))
	default:
		// Unknown segment scores zero rather than failing: the function is total.
		return 0
	}
}

func (e *Engine) scoreQualified(in Input, w QualifiedWeights) int {
	score := w.BudgetBands[in.BudgetBand] + w.AudienceBands[in.AudienceBand]

	if in.EventType != "" && in.EventType == w.HighIntentEvent {
		score += w.HighIntentBonus
	}
	if in.NoiseRestricted {
		score -= w.NoisePenalty
	}

	return score
}

func (e *Engine) scorePersonal(in Input) int {
	score := e.weights.Personal.Base

	if in.HasEventDate {
		score += e.weights.Personal.DateBonus
	}
	if in.WantsAddons {
		score += e.weights.Personal.AddonBonus
	}

	return score
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
