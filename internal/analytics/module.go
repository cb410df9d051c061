package analytics

import (
	apphttp "funnel_backend/internal/http"
	"funnel_backend/platform/validator"
)

// Module is the analytics bounded context implementing http.Module.
type Module struct {
	pipeline *Pipeline
	handler  *Handler
}

// NewModule creates and initializes the analytics module with the given
// sinks already constructed by the composition root.
func NewModule(pipeline *Pipeline, val *validator.Validator) *Module {
	return &Module{
		pipeline: pipeline,
		handler:  NewHandler(pipeline, val),
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "analytics"
}

// Pipeline returns the pipeline for other modules (funnel transitions).
func (m *Module) Pipeline() *Pipeline {
	return m.pipeline
}

// RegisterRoutes mounts analytics routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Visitor.POST("/track", m.handler.HandleTrack)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
