package analytics

import (
	"net/http"

	"funnel_backend/platform/httpkit"
	"funnel_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// TrackRequest is the client-side tracking payload. Page path and title are
// read by the caller at call time so they always reflect its current
// location. Funnel lifecycle events are fired server-side and are not
// accepted here.
type TrackRequest struct {
	Name      string   `json:"name" validate:"required,oneof=page_view scroll_depth video_start video_progress video_complete whatsapp_click phone_click performance_timing"`
	PagePath  string   `json:"pagePath" validate:"max=512"`
	PageTitle string   `json:"pageTitle" validate:"max=256"`
	Label     string   `json:"label" validate:"max=256"`
	Location  string   `json:"location" validate:"max=128"`
	Percent   *int     `json:"percent" validate:"omitempty,min=0,max=100"`
	Metric    string   `json:"metric" validate:"max=64"`
	ValueMs   *float64 `json:"valueMs" validate:"omitempty,min=0"`
}

// Handler exposes the event ingestion endpoint.
type Handler struct {
	pipeline *Pipeline
	val      *validator.Validator
}

// NewHandler creates a new analytics handler.
func NewHandler(pipeline *Pipeline, val *validator.Validator) *Handler {
	return &Handler{pipeline: pipeline, val: val}
}

// HandleTrack ingests one client-side event, enriches it and dispatches it.
// POST /api/v1/track
func (h *Handler) HandleTrack(c *gin.Context) {
	visitorID, ok := httpkit.GetVisitorID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing visitor session", nil)
		return
	}

	var req TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", validator.FieldErrors(err))
		return
	}

	rec, ok := recordFromRequest(req)
	if !ok {
		httpkit.Error(c, http.StatusBadRequest, "unsupported event", nil)
		return
	}

	event := h.pipeline.Track(c.Request.Context(), visitorID, rec)

	c.JSON(http.StatusAccepted, gin.H{"eventId": event.EventID})
}

func recordFromRequest(req TrackRequest) (Record, bool) {
	percent := 0
	if req.Percent != nil {
		percent = *req.Percent
	}

	switch req.Name {
	case "page_view":
		return NewPageView(req.PagePath, req.PageTitle), true
	case "scroll_depth":
		return NewScrollDepth(percent, req.PagePath, req.PageTitle), true
	case "video_start":
		return NewVideoEvent(req.Label, 0), true
	case "video_progress":
		return NewVideoEvent(req.Label, percent), true
	case "video_complete":
		return NewVideoEvent(req.Label, 100), true
	case "whatsapp_click":
		return NewContactClick("whatsapp", req.Location), true
	case "phone_click":
		return NewContactClick("phone", req.Location), true
	case "performance_timing":
		valueMs := 0.0
		if req.ValueMs != nil {
			valueMs = *req.ValueMs
		}
		return NewTiming(req.Metric, valueMs, req.PagePath), true
	default:
		return Record{}, false
	}
}
