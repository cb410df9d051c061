package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"funnel_backend/internal/attribution"
)

func TestBuildMessage_CorporateReveillonWithLocation(t *testing.T) {
	msg := BuildMessage("specialized", MessageContext{
		EventType: "reveillon",
		CityUF:    "Brasília/DF",
	})

	if !strings.Contains(msg, "produtor de eventos") {
		t.Fatalf("expected specialized template, got %q", msg)
	}
	if !strings.Contains(msg, "Réveillon") {
		t.Fatalf("expected event label in message, got %q", msg)
	}
	if !strings.Contains(msg, "Brasília/DF") {
		t.Fatalf("expected location in message, got %q", msg)
	}
}

func TestBuildMessage_EmptyContextHasNoPlaceholders(t *testing.T) {
	msg := BuildMessage("personal", MessageContext{})

	for _, fragment := range []string{"O evento é", "Local:", "Data:"} {
		if strings.Contains(msg, fragment) {
			t.Fatalf("empty context leaked fragment %q into %q", fragment, msg)
		}
	}
}

func TestBuildMessage_UnknownSegmentFallsBackToPersonal(t *testing.T) {
	unknown := BuildMessage("wholesale", MessageContext{})
	personal := BuildMessage("personal", MessageContext{})

	if unknown != personal {
		t.Fatalf("expected personal fallback, got %q", unknown)
	}
}

func TestBuildMessage_UnknownEventTypeUsesRawValue(t *testing.T) {
	msg := BuildMessage("corporate", MessageContext{EventType: "simpósio"})

	if !strings.Contains(msg, "simpósio") {
		t.Fatalf("expected raw event type in message, got %q", msg)
	}
}

func TestBuildDeepLink_EncodesMessageAndAttribution(t *testing.T) {
	snap := attribution.Parse(
		"https://example.com/?utm_source=google&utm_medium=cpc&utm_campaign=reveillon&gclid=g1", "",
	)
	msg := BuildMessage("corporate", MessageContext{EventType: "confraternizacao"})

	link := BuildDeepLink("+5561999990000", msg, snap, LinkMeta{SourcePage: "pricing"})

	if !strings.HasPrefix(link, "https://wa.me/5561999990000?") {
		t.Fatalf("expected wa.me link without plus prefix, got %q", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("deep link does not parse: %v", err)
	}
	q := parsed.Query()

	if q.Get("text") != msg {
		t.Fatalf("expected message in text param, got %q", q.Get("text"))
	}
	if q.Get("utm_source") != "google" || q.Get("utm_campaign") != "reveillon" {
		t.Fatalf("expected utm params on link, got %v", q)
	}
	if q.Get("gclid") != "g1" {
		t.Fatalf("expected gclid on link, got %q", q.Get("gclid"))
	}
	if q.Get("src") != "pricing" {
		t.Fatalf("expected source page on link, got %q", q.Get("src"))
	}
}

func TestBuildDeepLink_NoAttributionNoExtraParams(t *testing.T) {
	link := BuildDeepLink("5561999990000", "Olá!", attribution.Snapshot{}, LinkMeta{})

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("deep link does not parse: %v", err)
	}
	q := parsed.Query()
	if len(q) != 1 || q.Get("text") != "Olá!" {
		t.Fatalf("expected only the text param, got %v", q)
	}
}
