package analytics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"funnel_backend/internal/attribution"
	"funnel_backend/platform/logger"

	"github.com/google/uuid"
)

type captureSink struct {
	mu        sync.Mutex
	name      string
	available bool
	sendErr   error
	panics    bool
	events    []Event
}

func (s *captureSink) Name() string    { return s.name }
func (s *captureSink) Available() bool { return s.available }

func (s *captureSink) Send(_ context.Context, event Event) error {
	if s.panics {
		panic("sink exploded")
	}
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func newTestPipeline(sinks ...Sink) (*Pipeline, *attribution.Store) {
	store := attribution.NewStore()
	return NewPipeline(store, logger.New("development"), sinks...), store
}

func TestTrack_EnrichesWithAttributionSnapshot(t *testing.T) {
	sink := &captureSink{name: "capture", available: true}
	pipeline, store := newTestPipeline(sink)

	visitorID := uuid.New()
	store.Capture(visitorID, attribution.Parse(
		"https://example.com/shows?utm_source=meta&utm_medium=paid&fbclid=xyz", "https://facebook.com",
	))

	event := pipeline.Track(context.Background(), visitorID, NewPageView("/shows", "Shows"))

	if event.Params["utm_source"] != "meta" || event.Params["utm_medium"] != "paid" {
		t.Fatalf("expected utm params on event, got %v", event.Params)
	}
	if event.Params["socialClickId"] != "xyz" {
		t.Fatalf("expected social click id, got %v", event.Params["socialClickId"])
	}
	if event.Params["referrer"] != "https://facebook.com" {
		t.Fatalf("expected referrer, got %v", event.Params["referrer"])
	}
	if event.Params["visitor_id"] != visitorID.String() {
		t.Fatalf("expected visitor id, got %v", event.Params["visitor_id"])
	}
	if sink.count() != 1 {
		t.Fatalf("expected 1 dispatched event, got %d", sink.count())
	}
}

func TestTrack_SameSnapshotServesEveryEvent(t *testing.T) {
	sink := &captureSink{name: "capture", available: true}
	pipeline, store := newTestPipeline(sink)

	visitorID := uuid.New()
	store.Capture(visitorID, attribution.Parse("https://example.com/?utm_source=google", ""))

	// A later capture attempt must not overwrite the first.
	store.Capture(visitorID, attribution.Parse("https://example.com/?utm_source=bing", ""))

	first := pipeline.Track(context.Background(), visitorID, NewPageView("/", "Home"))
	second := pipeline.Track(context.Background(), visitorID, NewScrollDepth(50, "/", "Home"))

	if first.Params["utm_source"] != "google" || second.Params["utm_source"] != "google" {
		t.Fatalf("expected first-capture utm_source on both events, got %v and %v",
			first.Params["utm_source"], second.Params["utm_source"])
	}
}

func TestTrack_EventIDFormatAndUniqueness(t *testing.T) {
	sink := &captureSink{name: "capture", available: true}
	pipeline, _ := newTestPipeline(sink)
	visitorID := uuid.New()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		event := pipeline.Track(context.Background(), visitorID, NewPageView("/", "Home"))

		if !strings.HasPrefix(event.EventID, "page_view_") {
			t.Fatalf("event id %q missing name prefix", event.EventID)
		}
		if parts := strings.Split(event.EventID, "_"); len(parts) < 4 {
			t.Fatalf("event id %q missing timestamp or token", event.EventID)
		}
		if seen[event.EventID] {
			t.Fatalf("duplicate event id %q", event.EventID)
		}
		seen[event.EventID] = true
	}
}

func TestTrack_UnavailableSinkIsSkippedQuietly(t *testing.T) {
	down := &captureSink{name: "down", available: false}
	up := &captureSink{name: "up", available: true}
	pipeline, _ := newTestPipeline(down, up)

	pipeline.Track(context.Background(), uuid.New(), NewPageView("/", "Home"))

	if down.count() != 0 {
		t.Fatalf("unavailable sink received an event")
	}
	if up.count() != 1 {
		t.Fatalf("available sink missed the event: %d", up.count())
	}
}

func TestTrack_FailingSinkDoesNotAffectOthers(t *testing.T) {
	failing := &captureSink{name: "failing", available: true, sendErr: errors.New("boom")}
	healthy := &captureSink{name: "healthy", available: true}
	pipeline, _ := newTestPipeline(failing, healthy)

	event := pipeline.Track(context.Background(), uuid.New(), NewContactClick("whatsapp", "floating_button"))

	if healthy.count() != 1 {
		t.Fatalf("healthy sink missed the event")
	}
	if event.EventID == "" {
		t.Fatalf("caller should still receive the enriched event")
	}
}

func TestTrack_PanickingSinkIsContained(t *testing.T) {
	wild := &captureSink{name: "wild", available: true, panics: true}
	healthy := &captureSink{name: "healthy", available: true}
	pipeline, _ := newTestPipeline(wild, healthy)

	pipeline.Track(context.Background(), uuid.New(), NewPageView("/", "Home"))

	if healthy.count() != 1 {
		t.Fatalf("panic in one sink starved the other")
	}
}

func TestTrack_UnknownVisitorYieldsNoAttributionParams(t *testing.T) {
	sink := &captureSink{name: "capture", available: true}
	pipeline, _ := newTestPipeline(sink)

	event := pipeline.Track(context.Background(), uuid.Nil, NewPageView("/", "Home"))

	for _, key := range []string{"utm_source", "adsClickId", "socialClickId", "referrer", "visitor_id"} {
		if _, ok := event.Params[key]; ok {
			t.Fatalf("unexpected %s param for unknown visitor", key)
		}
	}
}
