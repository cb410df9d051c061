package httpkit

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

type tokenConfig struct {
	secret string
	ttl    time.Duration
}

func (c tokenConfig) GetVisitorTokenSecret() string      { return c.secret }
func (c tokenConfig) GetVisitorTokenTTL() time.Duration  { return c.ttl }

func TestVisitorToken_RoundTrip(t *testing.T) {
	cfg := tokenConfig{secret: "test-secret", ttl: time.Hour}
	visitorID := uuid.New()

	token, err := IssueVisitorToken(cfg, visitorID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	parsed, err := ParseVisitorToken(cfg, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed != visitorID {
		t.Fatalf("expected visitor %s, got %s", visitorID, parsed)
	}
}

func TestVisitorToken_WrongSecretRejected(t *testing.T) {
	token, err := IssueVisitorToken(tokenConfig{secret: "secret-a", ttl: time.Hour}, uuid.New())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := ParseVisitorToken(tokenConfig{secret: "secret-b", ttl: time.Hour}, token); err == nil {
		t.Fatalf("token signed with another secret was accepted")
	}
}

func TestVisitorToken_ExpiredRejected(t *testing.T) {
	cfg := tokenConfig{secret: "test-secret", ttl: -time.Minute}

	token, err := IssueVisitorToken(cfg, uuid.New())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := ParseVisitorToken(cfg, token); err == nil {
		t.Fatalf("expired token was accepted")
	}
}
