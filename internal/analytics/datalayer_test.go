package analytics

import (
	"context"
	"testing"
	"time"

	"funnel_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
)

type dataLayerConfig struct {
	redisURL string
	key      string
}

func (c dataLayerConfig) GetRedisURL() string     { return c.redisURL }
func (c dataLayerConfig) GetDataLayerKey() string { return c.key }

func TestDataLayer_AppendsWithoutRedis(t *testing.T) {
	dl := NewDataLayer(dataLayerConfig{key: "analytics:datalayer"}, logger.New("development"))
	defer dl.Close()

	if !dl.Available() {
		t.Fatalf("data layer must always be available")
	}

	for i := 0; i < 3; i++ {
		if err := dl.Send(context.Background(), Event{EventID: "e", Name: "page_view"}); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	if dl.Len() != 3 {
		t.Fatalf("expected 3 queued events, got %d", dl.Len())
	}

	events := dl.Events()
	events[0].Name = "mutated"
	if dl.Events()[0].Name != "page_view" {
		t.Fatalf("Events must return a copy of the log")
	}
}

func TestDataLayer_MirrorsToRedisList(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := dataLayerConfig{
		redisURL: "redis://" + srv.Addr(),
		key:      "analytics:datalayer",
	}
	dl := NewDataLayer(cfg, logger.New("development"))
	defer dl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dl.Run(ctx)

	if err := dl.Send(context.Background(), Event{EventID: "page_view_1_ab", Name: "page_view"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := dl.Send(context.Background(), Event{EventID: "scroll_depth_2_cd", Name: "scroll_depth"}); err != nil {
		t.Fatalf("send: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		items, err := srv.List(cfg.key)
		if err == nil && len(items) == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("mirror never reached redis: items=%v err=%v", items, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	// The in-process log holds the same events independent of the mirror.
	if dl.Len() != 2 {
		t.Fatalf("expected 2 events in process, got %d", dl.Len())
	}
}

func TestDataLayer_MalformedRedisURLDisablesMirrorOnly(t *testing.T) {
	dl := NewDataLayer(dataLayerConfig{redisURL: "::not-a-url::", key: "k"}, logger.New("development"))
	defer dl.Close()

	if err := dl.Send(context.Background(), Event{EventID: "e", Name: "page_view"}); err != nil {
		t.Fatalf("send with broken mirror config: %v", err)
	}
	if dl.Len() != 1 {
		t.Fatalf("expected event in process log, got %d", dl.Len())
	}
}
