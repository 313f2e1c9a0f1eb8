package session

import (
	"context"
	"time"

	"github.com/edgebet/edgebet-cli/internal/client/credstore"
	"github.com/golang-jwt/jwt/v5"
)

// refreshSkew is how close to expiry a token may get before we rotate it
// proactively instead of eating a 401 round trip.
const refreshSkew = 30 * time.Second

// SessionToken returns the bearer token for outbound requests, rotating the
// pair first when the token is about to expire. Together with
// RefreshSession this makes Manager the api.TokenProvider.
func (m *Manager) SessionToken(ctx context.Context) string {
	token, err := m.store.Get(ctx, credstore.KeySessionToken)
	if err != nil {
		m.log.Error(ctx, "credential store read failed", "error", err)
		return ""
	}
	if token == "" {
		return ""
	}

	if exp, ok := tokenExpiry(token); ok && time.Until(exp) < refreshSkew {
		if !m.RefreshSession(ctx) {
			// Rotation failed, the session is being torn down; an
			// expiring token must not go out on the wire.
			return ""
		}
		rotated, err := m.store.Get(ctx, credstore.KeySessionToken)
		if err != nil {
			m.log.Error(ctx, "credential store read failed", "error", err)
			return ""
		}
		return rotated
	}
	return token
}

// tokenExpiry reads the exp claim without verifying the signature — the
// backend is the verifier, we only need the deadline. Opaque (non-JWT)
// tokens report no expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
