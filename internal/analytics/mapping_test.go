package analytics

import "testing"

func TestMapToPixel_FamilyTranslation(t *testing.T) {
	cases := []struct {
		name      string
		event     Event
		pixelName string
		forwarded bool
	}{
		{
			name:      "page view",
			event:     Event{Name: "page_view", Family: FamilyPageView},
			pixelName: "PageView",
			forwarded: true,
		},
		{
			name:      "contact click",
			event:     Event{Name: "whatsapp_click", Family: FamilyContact, Label: "floating_button"},
			pixelName: "Contact",
			forwarded: true,
		},
		{
			name:      "lead submit",
			event:     Event{Name: "lead_form_submit", Family: FamilyForm},
			pixelName: "Lead",
			forwarded: true,
		},
		{
			name:      "funnel open",
			event:     Event{Name: "funnel_open", Family: FamilyForm},
			pixelName: "InitiateCheckout",
			forwarded: true,
		},
		{
			name:      "mid funnel step",
			event:     Event{Name: "funnel_step_advance", Family: FamilyForm, Params: map[string]any{"form_step": 4}},
			pixelName: "LeadFormStep",
			forwarded: true,
		},
		{
			name:      "scroll depth",
			event:     Event{Name: "scroll_depth", Family: FamilyScroll, Params: map[string]any{"scroll_percent": 75}},
			pixelName: "ScrollDepth",
			forwarded: true,
		},
		{
			name:      "timing stays home",
			event:     Event{Name: "performance_timing", Family: FamilyTiming},
			forwarded: false,
		},
	}

	for _, tc := range cases {
		call, ok := MapToPixel(tc.event)
		if ok != tc.forwarded {
			t.Fatalf("%s: expected forwarded=%v, got %v", tc.name, tc.forwarded, ok)
		}
		if ok && call.EventName != tc.pixelName {
			t.Fatalf("%s: expected pixel name %q, got %q", tc.name, tc.pixelName, call.EventName)
		}
	}
}

func TestMapToPixel_VideoMilestones(t *testing.T) {
	cases := []struct {
		percent   float64
		pixelName string
	}{
		{0, "VideoStart"},
		{25, "VideoProgress"},
		{50, "VideoHalfViewed"},
		{75, "VideoHalfViewed"},
		{100, "VideoComplete"},
	}

	for _, tc := range cases {
		percent := tc.percent
		event := Event{Name: "video_progress", Family: FamilyVideo, Label: "hero", Value: &percent}

		call, ok := MapToPixel(event)
		if !ok {
			t.Fatalf("video event at %.0f%% not forwarded", tc.percent)
		}
		if call.EventName != tc.pixelName {
			t.Fatalf("%.0f%%: expected %q, got %q", tc.percent, tc.pixelName, call.EventName)
		}
		if call.Params["content_name"] != "hero" {
			t.Fatalf("%.0f%%: expected content_name, got %v", tc.percent, call.Params)
		}
	}
}

func TestMapToPixel_SegmentBecomesContentCategory(t *testing.T) {
	event := Event{
		Name:   "lead_form_submit",
		Family: FamilyForm,
		Params: map[string]any{"segment": "corporate"},
	}

	call, ok := MapToPixel(event)
	if !ok {
		t.Fatalf("lead submit not forwarded")
	}
	if call.Params["content_category"] != "corporate" {
		t.Fatalf("expected content_category corporate, got %v", call.Params)
	}
}
