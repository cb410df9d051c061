package whatsapp

import (
	"funnel_backend/internal/attribution"
	apphttp "funnel_backend/internal/http"
	"funnel_backend/platform/config"
)

// Module is the whatsapp deep-link bounded context implementing http.Module.
type Module struct {
	handler *Handler
}

// NewModule creates and initializes the whatsapp module.
func NewModule(cfg config.WhatsAppConfig, tokenCfg config.TokenConfig, attrib *attribution.Store) *Module {
	return &Module{
		handler: NewHandler(cfg, tokenCfg, attrib),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "whatsapp"
}

// RegisterRoutes mounts whatsapp routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public: the deep-link fallback must work even when session capture
	// failed or the lead backend is down.
	ctx.Public.GET("/whatsapp/link", m.handler.HandleLink)
	ctx.Public.GET("/whatsapp/qr", m.handler.HandleQR)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
