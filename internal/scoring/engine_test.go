package scoring

import "testing"

func TestScore_CorporateMaxBandsWithHighIntent(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	score := engine.Score(Input{
		Segment:      "corporate",
		BudgetBand:   "acima_80k",
		AudienceBand: "acima_5000",
		EventType:    "confraternizacao",
	})

	if score != 90 {
		t.Fatalf("expected score 90, got %d", score)
	}
}

func TestScore_NoiseRestrictionSubtracts(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	base := engine.Score(Input{
		Segment:      "specialized",
		BudgetBand:   "30k_80k",
		AudienceBand: "1000_5000",
		EventType:    "festival",
	})
	restricted := engine.Score(Input{
		Segment:         "specialized",
		BudgetBand:      "30k_80k",
		AudienceBand:    "1000_5000",
		EventType:       "festival",
		NoiseRestricted: true,
	})

	if base != 60 {
		t.Fatalf("expected base score 60, got %d", base)
	}
	if restricted != 55 {
		t.Fatalf("expected restricted score 55, got %d", restricted)
	}
}

func TestScore_SpecializedHighIntentEvent(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	score := engine.Score(Input{
		Segment:      "specialized",
		BudgetBand:   "ate_10k",
		AudienceBand: "ate_200",
		EventType:    "reveillon",
	})

	if score != 30 {
		t.Fatalf("expected score 30, got %d", score)
	}
}

func TestScore_PersonalBonuses(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	bare := engine.Score(Input{Segment: "personal"})
	full := engine.Score(Input{Segment: "personal", HasEventDate: true, WantsAddons: true})

	if bare != 30 {
		t.Fatalf("expected bare personal score 30, got %d", bare)
	}
	if full != 50 {
		t.Fatalf("expected full personal score 50, got %d", full)
	}
}

func TestScore_UnknownSegmentScoresZero(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	if score := engine.Score(Input{Segment: "wholesale"}); score != 0 {
		t.Fatalf("expected score 0 for unknown segment, got %d", score)
	}
	if score := engine.Score(Input{}); score != 0 {
		t.Fatalf("expected score 0 for empty input, got %d", score)
	}
}

func TestScore_ClampedToRange(t *testing.T) {
	weights := DefaultWeights()
	weights.Corporate.HighIntentBonus = 200
	weights.Corporate.NoisePenalty = 500
	engine := NewEngine(weights)

	high := engine.Score(Input{
		Segment:      "corporate",
		BudgetBand:   "acima_80k",
		AudienceBand: "acima_5000",
		EventType:    "confraternizacao",
	})
	low := engine.Score(Input{
		Segment:         "corporate",
		NoiseRestricted: true,
	})

	if high != 100 {
		t.Fatalf("expected clamped score 100, got %d", high)
	}
	if low != 0 {
		t.Fatalf("expected clamped score 0, got %d", low)
	}
}

func TestScore_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultWeights())
	in := Input{
		Segment:         "corporate",
		BudgetBand:      "10k_30k",
		AudienceBand:    "200_1000",
		EventType:       "inauguracao",
		NoiseRestricted: true,
	}

	first := engine.Score(in)
	for i := 0; i < 50; i++ {
		if got := engine.Score(in); got != first {
			t.Fatalf("score changed between calls: %d then %d", first, got)
		}
	}
}

func TestScore_UnknownBandsContributeNothing(t *testing.T) {
	engine := NewEngine(DefaultWeights())

	score := engine.Score(Input{
		Segment:      "corporate",
		BudgetBand:   "bag_of_coins",
		AudienceBand: "everyone",
	})

	if score != 0 {
		t.Fatalf("expected score 0 for unknown bands, got %d", score)
	}
}
