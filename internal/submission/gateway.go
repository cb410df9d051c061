package submission

import (
	"context"
	"errors"
	"time"

	"funnel_backend/internal/metrics"
	"funnel_backend/platform/apperr"
	"funnel_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgconn"
)

// duplicateWindow suppresses double-submits (retry clicks, double taps).
const duplicateWindow = 60 * time.Second

// Gateway accepts a finished lead record for persistence.
type Gateway interface {
	Submit(ctx context.Context, rec LeadRecord) error
}

// Service is the submission gateway. It classifies backend outcomes into
// the error taxonomy the funnel surfaces: unconfigured backend vs failed
// insert.
type Service struct {
	repo *Repository
	log  *logger.Logger
}

// NewService creates the gateway. A nil repository means the persistence
// backend is not configured; submissions then fail with a configuration
// error suggesting the deep-link path.
func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Submit inserts the lead record exactly once. A recent duplicate is
// treated as an idempotent success.
func (s *Service) Submit(ctx context.Context, rec LeadRecord) error {
	if s.repo == nil {
		metrics.Submissions.WithLabelValues("unconfigured").Inc()
		return apperr.Unavailable(
			"o envio está indisponível no momento; fale conosco pelo WhatsApp",
		).WithOp("submission.Submit")
	}

	dupID, err := s.repo.FindRecentDuplicate(ctx, rec.Email, rec.Phone, duplicateWindow)
	if err != nil {
		// Better to risk a duplicate than to lose a lead.
		s.log.DatabaseError("find duplicate lead", err)
	} else if dupID != nil {
		s.log.Info("duplicate lead suppressed", "leadId", dupID.String())
		metrics.Submissions.WithLabelValues("duplicate").Inc()
		return nil
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		s.log.DatabaseError("insert lead", err)
		metrics.Submissions.WithLabelValues("failed").Inc()
		return classifyInsertError(err)
	}

	metrics.Submissions.WithLabelValues("accepted").Inc()
	return nil
}

// classifyInsertError surfaces the backend's message when it has one and a
// generic fallback otherwise.
func classifyInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Message != "" {
		return apperr.Wrap(apperr.KindInternal, pgErr.Message, err).WithOp("submission.Submit")
	}
	return apperr.Wrap(apperr.KindInternal, "não foi possível enviar sua solicitação, tente novamente", err).WithOp("submission.Submit")
}

var _ Gateway = (*Service)(nil)
