// Package attribution captures acquisition attribution once per visitor
// session and makes it available read-only to every downstream component.
package attribution

import (
	"net/url"
	"strings"
)

// ClickIDs holds the ad-platform click identifiers found on the entry URL.
type ClickIDs struct {
	AdsClickID    string `json:"adsClickId,omitempty"`
	SocialClickID string `json:"socialClickId,omitempty"`
}

// Snapshot is the captured-once record of how a visitor arrived. Absent
// fields are omitted, never synthesized.
type Snapshot struct {
	UTM         map[string]string `json:"utm,omitempty"`
	ClickIDs    ClickIDs          `json:"clickIds"`
	Referrer    string            `json:"referrer,omitempty"`
	LandingPage string            `json:"landingPage,omitempty"`
}

// IsEmpty reports whether the snapshot carries no attribution signal at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.UTM) == 0 && s.ClickIDs == ClickIDs{} && s.Referrer == "" && s.LandingPage == ""
}

// Parse extracts an attribution snapshot from the entry URL and referrer.
// Query parameters prefixed with utm_ populate the UTM map; gclid and fbclid
// populate the click identifiers. A malformed entry URL yields a snapshot
// with only the referrer set.
func Parse(entryURL, referrer string) Snapshot {
	snap := Snapshot{Referrer: strings.TrimSpace(referrer)}

	parsed, err := url.Parse(strings.TrimSpace(entryURL))
	if err != nil {
		return snap
	}

	snap.LandingPage = parsed.Path

	query := parsed.Query()
	for key := range query {
		value := strings.TrimSpace(query.Get(key))
		if value == "" {
			continue
		}

		switch {
		case strings.HasPrefix(key, "utm_"):
			if snap.UTM == nil {
				snap.UTM = make(map[string]string)
			}
			snap.UTM[key] = value
		case key == "gclid":
			snap.ClickIDs.AdsClickID = value
		case key == "fbclid":
			snap.ClickIDs.SocialClickID = value
		}
	}

	return snap
}
