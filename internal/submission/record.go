// Package submission maps the finished lead record to the persistence
// backend's insert call and classifies its outcome.
package submission

import (
	"time"

	"github.com/google/uuid"
)

// LeadRecord is the externally-submitted payload: the validated answers
// flattened together with segment, audience profile, score and attribution.
// Created once, immutable, sent exactly once per successful submission.
type LeadRecord struct {
	ID        uuid.UUID
	CreatedAt time.Time

	Source string
	Page   string

	Segment         string
	AudienceProfile string
	Score           int

	ContactName string
	Email       string
	Phone       string

	EventType       string
	CityUF          string
	EventDate       string
	AudienceBand    string
	BudgetBand      string
	FireworkPoints  string
	NoiseRestricted bool
	WantsAddons     bool
	Notes           string

	UTMSource     string
	UTMMedium     string
	UTMCampaign   string
	UTMTerm       string
	UTMContent    string
	AdsClickID    string
	SocialClickID string
	Referrer      string
}
