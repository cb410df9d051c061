package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"
)

const pixelSinkName = "pixel"

// PixelSink forwards events to a pixel-style tracker over HTTP using the
// static per-family name mapping. The HTTP call runs detached from the
// caller: Send only enqueues.
type PixelSink struct {
	baseURL string
	pixelID string
	enabled bool
	http    *http.Client
	log     *logger.Logger
}

type pixelRequest struct {
	PixelID   string         `json:"id"`
	EventName string         `json:"ev"`
	EventID   string         `json:"eid"`
	Params    map[string]any `json:"cd,omitempty"`
}

// NewPixelSink creates the pixel sink. When the pixel is not configured the
// sink reports unavailable and every send is a no-op.
func NewPixelSink(cfg config.PixelConfig, log *logger.Logger) *PixelSink {
	return &PixelSink{
		baseURL: strings.TrimRight(cfg.GetPixelURL(), "/"),
		pixelID: cfg.GetPixelID(),
		enabled: cfg.IsPixelEnabled(),
		http:    &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
}

// Name identifies the sink.
func (p *PixelSink) Name() string { return pixelSinkName }

// Available reports whether the pixel is configured.
func (p *PixelSink) Available() bool { return p != nil && p.enabled }

// Send translates the event into the pixel vocabulary and posts it
// asynchronously. The eventId rides along for deduplication on the pixel
// side.
func (p *PixelSink) Send(_ context.Context, event Event) error {
	call, ok := MapToPixel(event)
	if !ok {
		return nil
	}

	payload := pixelRequest{
		PixelID:   p.pixelID,
		EventName: call.EventName,
		EventID:   event.EventID,
		Params:    call.Params,
	}

	go p.post(event.Name, payload)
	return nil
}

func (p *PixelSink) post(eventName string, payload pixelRequest) {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.SinkError(pixelSinkName, eventName, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/track", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		p.log.SinkError(pixelSinkName, eventName, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		p.log.SinkError(pixelSinkName, eventName, err)
		return
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		p.log.SinkError(pixelSinkName, eventName, fmt.Errorf("pixel returned %d", resp.StatusCode))
	}
}

var _ Sink = (*PixelSink)(nil)
