package attribution

import (
	apphttp "funnel_backend/internal/http"
	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"
	"funnel_backend/platform/validator"
)

// Module is the attribution bounded context implementing http.Module.
type Module struct {
	store   *Store
	handler *Handler
}

// NewModule creates and initializes the attribution module.
func NewModule(cfg config.TokenConfig, val *validator.Validator, log *logger.Logger) *Module {
	store := NewStore()
	return &Module{
		store:   store,
		handler: NewHandler(store, cfg, val, log),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "attribution"
}

// Store returns the attribution store for other modules to read snapshots.
func (m *Module) Store() *Store {
	return m.store
}

// RegisterRoutes mounts attribution routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Session capture is public: it is what issues the visitor token.
	ctx.Public.POST("/session", m.handler.HandleCapture)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
