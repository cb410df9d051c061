package attribution

import "testing"

func TestParse_ExtractsUTMAndClickIDs(t *testing.T) {
	snap := Parse(
		"https://example.com/shows?utm_source=google&utm_medium=cpc&utm_campaign=reveillon&gclid=g123&fbclid=f456&ignored=x",
		"https://google.com/search",
	)

	if snap.UTM["utm_source"] != "google" || snap.UTM["utm_medium"] != "cpc" || snap.UTM["utm_campaign"] != "reveillon" {
		t.Fatalf("unexpected utm map: %v", snap.UTM)
	}
	if _, ok := snap.UTM["ignored"]; ok {
		t.Fatalf("non-utm parameter leaked into utm map")
	}
	if snap.ClickIDs.AdsClickID != "g123" {
		t.Fatalf("expected gclid g123, got %q", snap.ClickIDs.AdsClickID)
	}
	if snap.ClickIDs.SocialClickID != "f456" {
		t.Fatalf("expected fbclid f456, got %q", snap.ClickIDs.SocialClickID)
	}
	if snap.Referrer != "https://google.com/search" {
		t.Fatalf("expected referrer kept, got %q", snap.Referrer)
	}
	if snap.LandingPage != "/shows" {
		t.Fatalf("expected landing page /shows, got %q", snap.LandingPage)
	}
}

func TestParse_DirectVisitIsEmpty(t *testing.T) {
	snap := Parse("https://example.com/", "")

	if len(snap.UTM) != 0 {
		t.Fatalf("expected no utm params, got %v", snap.UTM)
	}
	if snap.ClickIDs != (ClickIDs{}) {
		t.Fatalf("expected no click ids, got %+v", snap.ClickIDs)
	}
}

func TestParse_EmptyValuesAreOmitted(t *testing.T) {
	snap := Parse("https://example.com/?utm_source=&gclid=", "")

	if len(snap.UTM) != 0 {
		t.Fatalf("empty utm value synthesized: %v", snap.UTM)
	}
	if snap.ClickIDs.AdsClickID != "" {
		t.Fatalf("empty gclid synthesized: %q", snap.ClickIDs.AdsClickID)
	}
}
