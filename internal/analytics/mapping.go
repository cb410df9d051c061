package analytics

// PixelCall is the secondary sink invocation: the sink's own event name plus
// a reduced parameter set.
type PixelCall struct {
	EventName string
	Params    map[string]any
}

// Names the pixel-style sink understands. The mapping is static per event
// family; families the pixel has no concept for are simply not forwarded.
const (
	pixelPageView       = "PageView"
	pixelContact        = "Contact"
	pixelLead           = "Lead"
	pixelLeadFormOpen   = "InitiateCheckout"
	pixelLeadFormStep   = "LeadFormStep"
	pixelVideoStart     = "VideoStart"
	pixelVideoHalf      = "VideoHalfViewed"
	pixelVideoComplete  = "VideoComplete"
	pixelVideoProgress  = "VideoProgress"
	pixelScrollDepth    = "ScrollDepth"
)

// MapToPixel translates an enriched event into the secondary sink's
// vocabulary. Returns false when the event family is not forwarded.
func MapToPixel(event Event) (PixelCall, bool) {
	switch event.Family {
	case FamilyPageView:
		return PixelCall{EventName: pixelPageView}, true

	case FamilyContact:
		return PixelCall{
			EventName: pixelContact,
			Params:    map[string]any{"content_name": event.Label},
		}, true

	case FamilyForm:
		return mapFormEvent(event), true

	case FamilyVideo:
		return mapVideoEvent(event), true

	case FamilyScroll:
		return PixelCall{
			EventName: pixelScrollDepth,
			Params:    map[string]any{"percent": event.Params["scroll_percent"]},
		}, true

	default:
		// Performance timings stay on the primary sink only.
		return PixelCall{}, false
	}
}

func mapFormEvent(event Event) PixelCall {
	params := map[string]any{}
	if segment, ok := event.Params["segment"]; ok {
		params["content_category"] = segment
	}

	switch event.Name {
	case "lead_form_submit":
		return PixelCall{EventName: pixelLead, Params: params}
	case "funnel_open":
		return PixelCall{EventName: pixelLeadFormOpen, Params: params}
	default:
		params["step"] = event.Params["form_step"]
		return PixelCall{EventName: pixelLeadFormStep, Params: params}
	}
}

func mapVideoEvent(event Event) PixelCall {
	percent := 0
	if event.Value != nil {
		percent = int(*event.Value)
	}

	params := map[string]any{"content_name": event.Label}

	switch {
	case percent <= 0:
		return PixelCall{EventName: pixelVideoStart, Params: params}
	case percent >= 100:
		return PixelCall{EventName: pixelVideoComplete, Params: params}
	case percent >= 50:
		return PixelCall{EventName: pixelVideoHalf, Params: params}
	default:
		params["percent"] = percent
		return PixelCall{EventName: pixelVideoProgress, Params: params}
	}
}
