// Package handler exposes the funnel session endpoints.
package handler

import (
	"net/http"

	"funnel_backend/internal/funnel/service"
	"funnel_backend/internal/funnel/transport"
	"funnel_backend/platform/httpkit"
	"funnel_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler drives the funnel state machine over HTTP. Malformed or invalid
// bodies never reach the service, so a rejected request has no side effects.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// NewHandler creates a new funnel handler.
func NewHandler(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// HandleOpen starts a new funnel session.
// POST /api/v1/funnel
func (h *Handler) HandleOpen(c *gin.Context) {
	visitorID, ok := httpkit.GetVisitorID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing visitor session", nil)
		return
	}

	var req transport.OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", validator.FieldErrors(err))
		return
	}

	state := h.svc.Open(c.Request.Context(), visitorID, req)
	c.JSON(http.StatusCreated, state)
}

// HandleState returns the current session view.
// GET /api/v1/funnel/:id
func (h *Handler) HandleState(c *gin.Context) {
	visitorID, sessionID, ok := h.ids(c)
	if !ok {
		return
	}

	state, err := h.svc.State(c.Request.Context(), visitorID, sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// HandleSegment selects the audience segment.
// POST /api/v1/funnel/:id/segment
func (h *Handler) HandleSegment(c *gin.Context) {
	visitorID, sessionID, ok := h.ids(c)
	if !ok {
		return
	}

	var req transport.SegmentRequest
	if !h.bind(c, &req) {
		return
	}

	state, err := h.svc.SelectSegment(c.Request.Context(), visitorID, sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// HandleQualifiers answers the qualification wizard.
// POST /api/v1/funnel/:id/qualifiers
func (h *Handler) HandleQualifiers(c *gin.Context) {
	visitorID, sessionID, ok := h.ids(c)
	if !ok {
		return
	}

	var req transport.QualifiersRequest
	if !h.bind(c, &req) {
		return
	}

	state, err := h.svc.SelectQualifiers(c.Request.Context(), visitorID, sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// HandleContact submits the contact block.
// POST /api/v1/funnel/:id/contact
func (h *Handler) HandleContact(c *gin.Context) {
	visitorID, sessionID, ok := h.ids(c)
	if !ok {
		return
	}

	var req transport.ContactRequest
	if !h.bind(c, &req) {
		return
	}

	state, err := h.svc.SubmitContact(c.Request.Context(), visitorID, sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// HandleDetails submits the event details.
// POST /api/v1/funnel/:id/details
func (h *Handler) HandleDetails(c *gin.Context) {
	visitorID, sessionID, ok := h.ids(c)
	if !ok {
		return
	}

	var req transport.DetailsRequest
	if !h.bind(c, &req) {
		return
	}

	state, err := h.svc.SubmitDetails(c.Request.Context(), visitorID, sessionID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// HandleBack moves one step toward the start.
// POST /api/v1/funnel/:id/back
func (h *Handler) HandleBack(c *gin.Context) {
	visitorID, sessionID, ok := h.ids(c)
	if !ok {
		return
	}

	state, err := h.svc.Back(c.Request.Context(), visitorID, sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

// HandleSubmit performs the final submission.
// POST /api/v1/funnel/:id/submit
func (h *Handler) HandleSubmit(c *gin.Context) {
	visitorID, sessionID, ok := h.ids(c)
	if !ok {
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), visitorID, sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, resp)
}

// HandleClose resets the session back to step 1.
// POST /api/v1/funnel/:id/close
func (h *Handler) HandleClose(c *gin.Context) {
	visitorID, sessionID, ok := h.ids(c)
	if !ok {
		return
	}

	state, err := h.svc.Close(c.Request.Context(), visitorID, sessionID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, state)
}

func (h *Handler) ids(c *gin.Context) (visitorID, sessionID uuid.UUID, ok bool) {
	visitorID, found := httpkit.GetVisitorID(c)
	if !found {
		httpkit.Error(c, http.StatusUnauthorized, "missing visitor session", nil)
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid session id", nil)
		return uuid.Nil, uuid.Nil, false
	}

	return visitorID, sessionID, true
}

func (h *Handler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", validator.FieldErrors(err))
		return false
	}
	return true
}
