// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"funnel_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// LeadSubmitted is published when a funnel session completes a successful
// lead submission. The notification module fans this out to the sales inbox.
type LeadSubmitted struct {
	BaseEvent
	LeadID      uuid.UUID `json:"leadId"`
	Segment     string    `json:"segment"`
	Score       int       `json:"score"`
	ContactName string    `json:"contactName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	EventType   string    `json:"eventType"`
	CityUF      string    `json:"cityUf"`
	EventDate   string    `json:"eventDate"`
	BudgetBand  string    `json:"budgetBand"`
	Source      string    `json:"source"`
}

func (e LeadSubmitted) EventName() string { return "funnel.lead.submitted" }

// FunnelAbandoned is published when the session sweeper expires a funnel
// session that never reached submission.
type FunnelAbandoned struct {
	BaseEvent
	SessionID uuid.UUID `json:"sessionId"`
	Segment   string    `json:"segment,omitempty"`
	LastStep  int       `json:"lastStep"`
	Source    string    `json:"source"`
}

func (e FunnelAbandoned) EventName() string { return "funnel.session.abandoned" }
