package domain

import "testing"

func TestPhase_OffsetMapping(t *testing.T) {
	cases := []struct {
		step  int
		phase int
		local int
	}{
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{5, 2, 3},
	}

	for _, tc := range cases {
		phase, local := Phase(tc.step)
		if phase != tc.phase || local != tc.local {
			t.Fatalf("step %d: expected phase %d/%d, got %d/%d", tc.step, tc.phase, tc.local, phase, local)
		}
	}
}

func TestValidEventType_PerSegmentEnums(t *testing.T) {
	if !ValidEventType(SegmentCorporate, "confraternizacao") {
		t.Fatalf("confraternizacao should be valid for corporate")
	}
	if !ValidEventType(SegmentSpecialized, "reveillon") {
		t.Fatalf("reveillon should be valid for specialized")
	}
	if ValidEventType(SegmentPersonal, "reveillon") {
		t.Fatalf("reveillon should not be valid for personal")
	}
	if ValidEventType("", "casamento") {
		t.Fatalf("empty segment should accept nothing")
	}
}

func TestValidateDetails_EventDateRequiredOutsidePersonal(t *testing.T) {
	details := Details{EventType: "confraternizacao", CityUF: "Brasília/DF"}

	errs := ValidateDetails(SegmentCorporate, details)
	if errs == nil || errs["eventDate"] == "" {
		t.Fatalf("expected eventDate error for corporate without date, got %v", errs)
	}

	personal := Details{EventType: "casamento", CityUF: "Goiânia/GO"}
	if errs := ValidateDetails(SegmentPersonal, personal); errs != nil {
		t.Fatalf("personal without date should be valid, got %v", errs)
	}
}

func TestValidateDetails_RejectsForeignEventType(t *testing.T) {
	details := Details{EventType: "casamento", CityUF: "Brasília/DF", EventDate: "2026-12-31"}

	errs := ValidateDetails(SegmentCorporate, details)
	if errs == nil || errs["eventType"] == "" {
		t.Fatalf("expected eventType error for personal event under corporate, got %v", errs)
	}
}

func TestAudienceProfile_Inference(t *testing.T) {
	if got := AudienceProfile(SegmentCorporate, "acima_5000"); got != "corporate_massive" {
		t.Fatalf("expected corporate_massive, got %q", got)
	}
	if got := AudienceProfile(SegmentPersonal, "ate_200"); got != "personal_intimate" {
		t.Fatalf("expected personal_intimate, got %q", got)
	}
	if got := AudienceProfile(SegmentSpecialized, ""); got != "specialized_unknown" {
		t.Fatalf("expected specialized_unknown, got %q", got)
	}
}
