package analytics

import "context"

// Sink is an external analytics destination. Implementations must be
// defensive: an unavailable or failing sink is a per-sink no-op and must
// never block or fail the other sink.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string
	// Available reports whether the sink can currently accept events.
	Available() bool
	// Send dispatches one enriched event. Implementations doing network IO
	// must not block the caller beyond a local enqueue.
	Send(ctx context.Context, event Event) error
}
