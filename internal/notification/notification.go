// Package notification emails new leads to the sales inbox. It subscribes to
// the lead-submitted event so the funnel never waits on SMTP.
package notification

import (
	"context"
	"fmt"
	"strings"

	"funnel_backend/internal/events"
	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"

	"github.com/wneessen/go-mail"
)

// Service sends one plain-text email per submitted lead. When email is
// disabled the service subscribes nothing and costs nothing.
type Service struct {
	cfg config.EmailConfig
	log *logger.Logger
}

// NewService creates the notification service and subscribes it to the bus
// when email is enabled.
func NewService(cfg config.EmailConfig, bus events.Bus, log *logger.Logger) *Service {
	s := &Service{cfg: cfg, log: log}

	if cfg.GetEmailEnabled() {
		bus.Subscribe(events.LeadSubmitted{}.EventName(), events.HandlerFunc(s.handleLeadSubmitted))
	}

	return s
}

func (s *Service) handleLeadSubmitted(ctx context.Context, event events.Event) error {
	lead, ok := event.(events.LeadSubmitted)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.GetEmailFromName(), s.cfg.GetEmailFromAddress()); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := msg.To(s.cfg.GetLeadInboxAddress()); err != nil {
		return fmt.Errorf("set to: %w", err)
	}

	msg.Subject(fmt.Sprintf("Novo lead (%s, score %d): %s", lead.Segment, lead.Score, lead.ContactName))
	msg.SetBodyString(mail.TypeTextPlain, leadBody(lead))

	client, err := mail.NewClient(s.cfg.GetSMTPHost(),
		mail.WithPort(s.cfg.GetSMTPPort()),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.GetSMTPUsername()),
		mail.WithPassword(s.cfg.GetSMTPPassword()),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send lead email: %w", err)
	}

	s.log.Info("lead notification sent",
		"leadId", lead.LeadID.String(),
		"segment", lead.Segment,
		"score", lead.Score,
	)
	return nil
}

func leadBody(lead events.LeadSubmitted) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lead: %s\n", lead.LeadID)
	fmt.Fprintf(&b, "Segmento: %s\n", lead.Segment)
	fmt.Fprintf(&b, "Score: %d\n\n", lead.Score)
	fmt.Fprintf(&b, "Nome: %s\n", lead.ContactName)
	fmt.Fprintf(&b, "Email: %s\n", lead.Email)
	fmt.Fprintf(&b, "Telefone: %s\n\n", lead.Phone)
	fmt.Fprintf(&b, "Evento: %s\n", lead.EventType)
	fmt.Fprintf(&b, "Cidade/UF: %s\n", lead.CityUF)
	if lead.EventDate != "" {
		fmt.Fprintf(&b, "Data: %s\n", lead.EventDate)
	}
	fmt.Fprintf(&b, "Faixa de orçamento: %s\n", lead.BudgetBand)
	fmt.Fprintf(&b, "Origem: %s\n", lead.Source)

	return b.String()
}
