package attribution

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCapture_FirstSnapshotWins(t *testing.T) {
	store := NewStore()
	visitorID := uuid.New()

	first := Parse("https://example.com/?utm_source=google&utm_campaign=launch", "https://google.com")
	second := Parse("https://example.com/?utm_source=bing", "")

	if !store.Capture(visitorID, first) {
		t.Fatalf("first capture should store the snapshot")
	}
	if store.Capture(visitorID, second) {
		t.Fatalf("second capture should be a no-op")
	}

	snap := store.Get(visitorID)
	if snap.UTM["utm_source"] != "google" {
		t.Fatalf("expected first snapshot kept, got %v", snap.UTM)
	}
	if snap.Referrer != "https://google.com" {
		t.Fatalf("expected first referrer kept, got %q", snap.Referrer)
	}
}

func TestGet_UnknownVisitorYieldsEmptySnapshot(t *testing.T) {
	store := NewStore()

	snap := store.Get(uuid.New())
	if !snap.IsEmpty() {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestSweep_RemovesIdleSessionsOnly(t *testing.T) {
	store := NewStore()
	stale := uuid.New()
	fresh := uuid.New()

	store.Capture(stale, Snapshot{Referrer: "old"})
	time.Sleep(20 * time.Millisecond)
	store.Capture(fresh, Snapshot{Referrer: "new"})

	removed := store.Sweep(10 * time.Millisecond)
	if removed != 1 {
		t.Fatalf("expected 1 swept session, got %d", removed)
	}
	if store.Known(stale) {
		t.Fatalf("stale session survived sweep")
	}
	if !store.Known(fresh) {
		t.Fatalf("fresh session swept")
	}
}

func TestTouch_KeepsActiveSessionAlive(t *testing.T) {
	store := NewStore()
	visitorID := uuid.New()
	store.Capture(visitorID, Snapshot{Referrer: "r"})

	time.Sleep(20 * time.Millisecond)
	store.Touch(visitorID)

	if removed := store.Sweep(15 * time.Millisecond); removed != 0 {
		t.Fatalf("touched session swept: %d removed", removed)
	}
}
