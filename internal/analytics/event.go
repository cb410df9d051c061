// Package analytics normalizes domain events, enriches them with attribution
// and an idempotency identifier, and dispatches them to the configured sinks.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Family groups events that share a parameter shape and a secondary-sink
// mapping rule.
type Family string

const (
	FamilyPageView Family = "page_view"
	FamilyVideo    Family = "video"
	FamilyContact  Family = "contact"
	FamilyForm     Family = "form"
	FamilyScroll   Family = "scroll"
	FamilyTiming   Family = "timing"
)

// Record is a normalized domain event before enrichment.
type Record struct {
	Name     string
	Family   Family
	Category string
	Label    string
	Value    *float64
	Fields   map[string]any
}

// Event is the enriched record dispatched to sinks. Constructed, enriched,
// dispatched, discarded; never persisted by this package.
type Event struct {
	EventID   string         `json:"eventId"`
	Name      string         `json:"event"`
	Family    Family         `json:"family"`
	Category  string         `json:"eventCategory,omitempty"`
	Label     string         `json:"eventLabel,omitempty"`
	Value     *float64       `json:"value,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// newEventID builds a globally unique identifier in the form
// {name}_{timestampMillis}_{randomToken}.
func newEventID(name string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("%s_%d_%s", name, time.Now().UnixMilli(), token)
}

func floatPtr(v float64) *float64 { return &v }

// NewPageView builds a page view record. Path and title are the caller's
// current location at call time.
func NewPageView(path, title string) Record {
	return Record{
		Name:     "page_view",
		Family:   FamilyPageView,
		Category: "navigation",
		Label:    path,
		Fields: map[string]any{
			"page_path":  path,
			"page_title": title,
		},
	}
}

// NewVideoEvent builds a video lifecycle record. Percent 0 is a start,
// 100 a completion, anything in between a progress milestone.
func NewVideoEvent(label string, percent int) Record {
	name := "video_progress"
	switch {
	case percent <= 0:
		name = "video_start"
		percent = 0
	case percent >= 100:
		name = "video_complete"
		percent = 100
	}

	return Record{
		Name:     name,
		Family:   FamilyVideo,
		Category: "video",
		Label:    label,
		Value:    floatPtr(float64(percent)),
		Fields: map[string]any{
			"video_label":   label,
			"video_percent": percent,
		},
	}
}

// NewContactClick builds an outbound-contact click record, e.g. a
// whatsapp_click from the floating button or the final CTA.
func NewContactClick(channel, location string) Record {
	return Record{
		Name:     channel + "_click",
		Family:   FamilyContact,
		Category: "engagement",
		Label:    location,
		Fields: map[string]any{
			"channel":        channel,
			"click_location": location,
		},
	}
}

// NewFormEvent builds a form lifecycle record for a funnel transition.
// Segment and qualifier bands may be empty early in the funnel.
func NewFormEvent(name string, step int, segment, audienceBand, budgetBand, source string) Record {
	fields := map[string]any{
		"form_step": step,
		"source":    source,
	}
	if segment != "" {
		fields["segment"] = segment
	}
	if audienceBand != "" {
		fields["audience_band"] = audienceBand
	}
	if budgetBand != "" {
		fields["budget_band"] = budgetBand
	}

	return Record{
		Name:     name,
		Family:   FamilyForm,
		Category: "lead_funnel",
		Label:    segment,
		Value:    floatPtr(float64(step)),
		Fields:   fields,
	}
}

// NewScrollDepth builds a scroll-depth milestone record. Path and title
// reflect the caller's location at call time, not enrichment time.
func NewScrollDepth(percent int, path, title string) Record {
	return Record{
		Name:     "scroll_depth",
		Family:   FamilyScroll,
		Category: "engagement",
		Label:    fmt.Sprintf("%d%%", percent),
		Value:    floatPtr(float64(percent)),
		Fields: map[string]any{
			"scroll_percent": percent,
			"page_path":      path,
			"page_title":     title,
		},
	}
}

// NewTiming builds a performance-timing sample record.
func NewTiming(metric string, valueMs float64, path string) Record {
	return Record{
		Name:     "performance_timing",
		Family:   FamilyTiming,
		Category: "performance",
		Label:    metric,
		Value:    floatPtr(valueMs),
		Fields: map[string]any{
			"metric":    metric,
			"value_ms":  valueMs,
			"page_path": path,
		},
	}
}
