// Package httpkit provides HTTP utilities including visitor identity.
package httpkit

import (
	"net/http"
	"strings"
	"time"

	"funnel_backend/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// ContextVisitorIDKey is the gin context key for the visitor session ID.
	ContextVisitorIDKey = "visitorID"
	// VisitorTokenHeader carries the signed visitor token on funnel and
	// tracking requests.
	VisitorTokenHeader = "X-Visitor-Token"

	errMissingToken = "missing visitor token"
	errInvalidToken = "invalid visitor token"
)

type visitorClaims struct {
	VisitorID string `json:"vid"`
	jwt.RegisteredClaims
}

// IssueVisitorToken signs a token binding the caller to a visitor session.
func IssueVisitorToken(cfg config.TokenConfig, visitorID uuid.UUID) (string, error) {
	now := time.Now()
	claims := visitorClaims{
		VisitorID: visitorID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.GetVisitorTokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.GetVisitorTokenSecret()))
}

// ParseVisitorToken validates a visitor token and returns the visitor ID.
func ParseVisitorToken(cfg config.TokenConfig, tokenString string) (uuid.UUID, error) {
	claims := &visitorClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.GetVisitorTokenSecret()), nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(claims.VisitorID)
}

// VisitorAuth requires a valid visitor token and stores the visitor ID in the
// gin context for downstream handlers.
func VisitorAuth(cfg config.TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(c.GetHeader(VisitorTokenHeader))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingToken})
			return
		}

		visitorID, err := ParseVisitorToken(cfg, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
			return
		}

		c.Set(ContextVisitorIDKey, visitorID)
		c.Next()
	}
}

// GetVisitorID extracts the visitor session ID from a Gin context.
// Returns uuid.Nil and false if no valid visitor token was presented.
func GetVisitorID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextVisitorIDKey)
	if !ok {
		return uuid.Nil, false
	}

	id, ok := value.(uuid.UUID)
	return id, ok
}
