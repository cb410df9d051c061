package submission

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists lead records. One insert per successful submission;
// no reads are part of the funnel itself beyond the duplicate guard.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new lead repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores the flattened lead record.
func (r *Repository) Insert(ctx context.Context, rec LeadRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO leads (
			id, created_at, source, page,
			segment, audience_profile, score,
			contact_name, email, phone,
			event_type, city_uf, event_date,
			audience_band, budget_band, firework_points,
			noise_restricted, wants_addons, notes,
			utm_source, utm_medium, utm_campaign, utm_term, utm_content,
			ads_click_id, social_click_id, referrer
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10,
			$11, $12, $13,
			$14, $15, $16,
			$17, $18, $19,
			$20, $21, $22, $23, $24,
			$25, $26, $27
		)`,
		rec.ID, rec.CreatedAt, rec.Source, rec.Page,
		rec.Segment, rec.AudienceProfile, rec.Score,
		rec.ContactName, rec.Email, rec.Phone,
		rec.EventType, rec.CityUF, nullable(rec.EventDate),
		rec.AudienceBand, rec.BudgetBand, rec.FireworkPoints,
		rec.NoiseRestricted, rec.WantsAddons, nullable(rec.Notes),
		nullable(rec.UTMSource), nullable(rec.UTMMedium), nullable(rec.UTMCampaign),
		nullable(rec.UTMTerm), nullable(rec.UTMContent),
		nullable(rec.AdsClickID), nullable(rec.SocialClickID), nullable(rec.Referrer),
	)
	return err
}

// FindRecentDuplicate returns the ID of a lead with the same email or phone
// created within the window, if any.
func (r *Repository) FindRecentDuplicate(ctx context.Context, email, phone string, window time.Duration) (*uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		SELECT id FROM leads
		WHERE (email = $1 OR phone = $2)
		  AND created_at > $3
		ORDER BY created_at DESC
		LIMIT 1`,
		email, phone, time.Now().Add(-window),
	).Scan(&id)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
