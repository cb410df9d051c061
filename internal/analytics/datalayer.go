package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const (
	dataLayerSinkName = "data_layer"

	// maxQueue bounds the in-process log; beyond it the oldest events are
	// discarded so a long-lived process cannot grow without limit.
	maxQueue = 10000

	// pendingBuffer bounds the Redis mirror channel; a full buffer drops the
	// mirror write, never the in-process append.
	pendingBuffer = 256
)

// DataLayer is the primary sink: a process-wide append-only event log,
// created lazily on first use. When Redis is configured the log is mirrored
// to a Redis list by a channel-fed consumer so downstream collectors can
// read it, but the in-process append never waits on Redis.
type DataLayer struct {
	mu      sync.Mutex
	queue   []Event
	dropped int

	rdb     *redis.Client
	key     string
	pending chan Event
	log     *logger.Logger
}

// NewDataLayer creates the data layer sink. A missing or malformed Redis URL
// disables the mirror; the in-process log still works.
func NewDataLayer(cfg config.DataLayerConfig, log *logger.Logger) *DataLayer {
	d := &DataLayer{
		key:     cfg.GetDataLayerKey(),
		pending: make(chan Event, pendingBuffer),
		log:     log,
	}

	if url := cfg.GetRedisURL(); url != "" {
		opt, err := redis.ParseURL(url)
		if err != nil {
			log.Error("invalid redis url, data layer mirror disabled", "error", err)
		} else {
			d.rdb = redis.NewClient(opt)
		}
	}

	return d
}

// Name identifies the sink.
func (d *DataLayer) Name() string { return dataLayerSinkName }

// Available always reports true: the in-process log needs no external
// service.
func (d *DataLayer) Available() bool { return true }

// Send appends the event to the log and offers it to the Redis mirror.
// Append-only: events are never mutated after this point.
func (d *DataLayer) Send(_ context.Context, event Event) error {
	d.mu.Lock()
	if d.queue == nil {
		d.queue = make([]Event, 0, 64)
	}
	if len(d.queue) >= maxQueue {
		d.queue = d.queue[1:]
		d.dropped++
	}
	d.queue = append(d.queue, event)
	d.mu.Unlock()

	if d.rdb != nil {
		select {
		case d.pending <- event:
		default:
			d.log.SinkError(dataLayerSinkName, event.Name, errMirrorBackpressure)
		}
	}

	return nil
}

// Run drains the mirror channel into the Redis list until the context is
// cancelled. Run is a no-op when Redis is not configured.
func (d *DataLayer) Run(ctx context.Context) error {
	if d.rdb == nil {
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-d.pending:
			d.push(event)
		}
	}
}

func (d *DataLayer) push(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		d.log.SinkError(dataLayerSinkName, event.Name, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.rdb.RPush(ctx, d.key, payload).Err(); err != nil {
		d.log.SinkError(dataLayerSinkName, event.Name, err)
	}
}

// Events returns a copy of the in-process log, oldest first.
func (d *DataLayer) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Event, len(d.queue))
	copy(out, d.queue)
	return out
}

// Len returns the number of events currently held in the in-process log.
func (d *DataLayer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Close releases the Redis connection.
func (d *DataLayer) Close() error {
	if d.rdb == nil {
		return nil
	}
	return d.rdb.Close()
}

var errMirrorBackpressure = mirrorBackpressureError{}

type mirrorBackpressureError struct{}

func (mirrorBackpressureError) Error() string { return "mirror channel full, event not mirrored" }

var _ Sink = (*DataLayer)(nil)
