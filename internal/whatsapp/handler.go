package whatsapp

import (
	"net/http"
	"strings"

	"funnel_backend/internal/attribution"
	"funnel_backend/platform/config"
	"funnel_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// LinkResponse is the built deep link plus the rendered message.
type LinkResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Handler exposes deep-link building endpoints.
type Handler struct {
	cfg      config.WhatsAppConfig
	tokenCfg config.TokenConfig
	attrib   *attribution.Store
}

// NewHandler creates a new whatsapp handler.
func NewHandler(cfg config.WhatsAppConfig, tokenCfg config.TokenConfig, attrib *attribution.Store) *Handler {
	return &Handler{cfg: cfg, tokenCfg: tokenCfg, attrib: attrib}
}

// HandleLink builds the prefilled message and deep link for the caller's
// segment and optional event context.
// GET /api/v1/whatsapp/link
func (h *Handler) HandleLink(c *gin.Context) {
	message, link := h.build(c)
	httpkit.OK(c, LinkResponse{Message: message, URL: link})
}

// HandleQR renders the deep link as a QR code PNG, used on the desktop
// layout next to the contact button.
// GET /api/v1/whatsapp/qr
func (h *Handler) HandleQR(c *gin.Context) {
	_, link := h.build(c)

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to render QR code", nil)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) build(c *gin.Context) (string, string) {
	segment := c.DefaultQuery("segment", "personal")
	msgCtx := MessageContext{
		EventType: c.Query("eventType"),
		CityUF:    c.Query("cityUf"),
		EventDate: c.Query("eventDate"),
	}

	message := BuildMessage(segment, msgCtx)
	link := BuildDeepLink(h.cfg.GetWhatsAppNumber(), message, h.snapshot(c), LinkMeta{
		SourcePage: c.Query("page"),
	})

	return message, link
}

// snapshot resolves the caller's attribution when a visitor token is
// present. The link endpoints stay public, so a missing or invalid token
// just means an unattributed link.
func (h *Handler) snapshot(c *gin.Context) attribution.Snapshot {
	tokenString := strings.TrimSpace(c.GetHeader(httpkit.VisitorTokenHeader))
	if tokenString == "" {
		return attribution.Snapshot{}
	}

	visitorID, err := httpkit.ParseVisitorToken(h.tokenCfg, tokenString)
	if err != nil {
		return attribution.Snapshot{}
	}

	return h.attrib.Get(visitorID)
}
