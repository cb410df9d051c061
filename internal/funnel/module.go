// Package funnel wires the guided lead funnel: a five-step flow from segment
// choice to lead submission, with one analytics event per accepted
// transition.
package funnel

import (
	"context"
	"time"

	"funnel_backend/internal/analytics"
	"funnel_backend/internal/attribution"
	"funnel_backend/internal/events"
	"funnel_backend/internal/funnel/handler"
	"funnel_backend/internal/funnel/service"
	"funnel_backend/internal/http"
	"funnel_backend/internal/scoring"
	"funnel_backend/internal/submission"
	"funnel_backend/platform/logger"
	"funnel_backend/platform/phone"
	"funnel_backend/platform/validator"

	playvalidator "github.com/go-playground/validator/v10"
)

// Module is the funnel bounded context implementing http.Module.
type Module struct {
	svc     *service.Service
	handler *handler.Handler
}

// NewModule creates and initializes the funnel module. It registers the
// brphone validation rule on the shared validator.
func NewModule(
	pipeline *analytics.Pipeline,
	gateway submission.Gateway,
	engine *scoring.Engine,
	attrib *attribution.Store,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) (*Module, error) {
	if err := val.RegisterValidation("brphone", func(fl playvalidator.FieldLevel) bool {
		return phone.IsPlausible(fl.Field().String(), 10)
	}); err != nil {
		return nil, err
	}

	scorer := func(in service.ScoreInput) int {
		return engine.Score(scoring.Input{
			Segment:         in.Segment,
			BudgetBand:      in.BudgetBand,
			AudienceBand:    in.AudienceBand,
			EventType:       in.EventType,
			NoiseRestricted: in.NoiseRestricted,
			HasEventDate:    in.HasEventDate,
			WantsAddons:     in.WantsAddons,
		})
	}

	svc := service.NewService(pipeline, gateway, scorer, attrib, bus, log)
	return &Module{
		svc:     svc,
		handler: handler.NewHandler(svc, val),
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "funnel"
}

// Service exposes the funnel service for the session sweeper.
func (m *Module) Service() *service.Service {
	return m.svc
}

// Sweep expires idle sessions. Run periodically from the composition root.
func (m *Module) Sweep(ctx context.Context, ttl time.Duration) int {
	return m.svc.Sweep(ctx, ttl)
}

// RegisterRoutes mounts funnel routes on the visitor group; every funnel
// operation requires a visitor token.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.Visitor.POST("/funnel", m.handler.HandleOpen)
	ctx.Visitor.GET("/funnel/:id", m.handler.HandleState)
	ctx.Visitor.POST("/funnel/:id/segment", m.handler.HandleSegment)
	ctx.Visitor.POST("/funnel/:id/qualifiers", m.handler.HandleQualifiers)
	ctx.Visitor.POST("/funnel/:id/contact", m.handler.HandleContact)
	ctx.Visitor.POST("/funnel/:id/details", m.handler.HandleDetails)
	ctx.Visitor.POST("/funnel/:id/back", m.handler.HandleBack)
	ctx.Visitor.POST("/funnel/:id/submit", m.handler.HandleSubmit)
	ctx.Visitor.POST("/funnel/:id/close", m.handler.HandleClose)
}

// Compile-time check that Module implements http.Module
var _ http.Module = (*Module)(nil)
