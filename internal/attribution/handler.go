package attribution

import (
	"net/http"
	"strings"

	"funnel_backend/platform/config"
	"funnel_backend/platform/httpkit"
	"funnel_backend/platform/logger"
	"funnel_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CaptureRequest is the payload sent by the site shell on first load.
type CaptureRequest struct {
	EntryURL string `json:"entryUrl" validate:"required,max=2048"`
	Referrer string `json:"referrer" validate:"max=2048"`
}

// CaptureResponse returns the visitor token and whether this call created
// the session (false means the capture was an idempotent no-op).
type CaptureResponse struct {
	VisitorToken string   `json:"visitorToken"`
	Captured     bool     `json:"captured"`
	Snapshot     Snapshot `json:"snapshot"`
}

// Handler exposes the session capture endpoint.
type Handler struct {
	store *Store
	cfg   config.TokenConfig
	val   *validator.Validator
	log   *logger.Logger
}

// NewHandler creates a new attribution handler.
func NewHandler(store *Store, cfg config.TokenConfig, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{store: store, cfg: cfg, val: val, log: log}
}

// HandleCapture creates (or refreshes) the visitor session and captures
// attribution exactly once.
// POST /api/v1/session
func (h *Handler) HandleCapture(c *gin.Context) {
	var req CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation error", validator.FieldErrors(err))
		return
	}

	// An already-identified visitor keeps its original snapshot: capture is
	// write-once for the lifetime of the session.
	visitorID := h.existingVisitor(c)
	created := false
	if visitorID == uuid.Nil {
		visitorID = uuid.New()
		created = true
	}

	captured := h.store.Capture(visitorID, Parse(req.EntryURL, req.Referrer))
	if !captured {
		h.store.Touch(visitorID)
	}

	token, err := httpkit.IssueVisitorToken(h.cfg, visitorID)
	if err != nil {
		h.log.Error("failed to issue visitor token", "error", err)
		httpkit.Error(c, http.StatusInternalServerError, "failed to create session", nil)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, CaptureResponse{
		VisitorToken: token,
		Captured:     captured,
		Snapshot:     h.store.Get(visitorID),
	})
}

// existingVisitor returns the visitor ID from an optional token header, but
// only when the session is still known to the store. Expired or swept
// sessions get a fresh identity.
func (h *Handler) existingVisitor(c *gin.Context) uuid.UUID {
	tokenString := strings.TrimSpace(c.GetHeader(httpkit.VisitorTokenHeader))
	if tokenString == "" {
		return uuid.Nil
	}

	visitorID, err := httpkit.ParseVisitorToken(h.cfg, tokenString)
	if err != nil || !h.store.Known(visitorID) {
		return uuid.Nil
	}
	return visitorID
}
