// Package api implements the REST client for the EdgeBet backend. It owns
// transport concerns only: bearer attachment, one refresh-and-retry on 401,
// rate limiting and error mapping. Token persistence belongs to the session
// manager, which plugs in through TokenProvider.
package api

import (
	"context"

	"github.com/edgebet/edgebet-cli/internal/client/models"
)

// Client is the full backend surface the application consumes. Analytics
// payloads are opaque precomputed results; this client never derives numbers
// itself.
type Client interface {
	// Auth.
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Me(ctx context.Context) (*models.UserProfile, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context) error

	// Betting clients.
	GetClient(ctx context.Context, id int64) (*models.ClientProfile, error)
	CreateClient(ctx context.Context, req CreateClientRequest) (*models.ClientProfile, error)
	UpdateClient(ctx context.Context, id int64, req UpdateClientRequest) (*models.ClientProfile, error)

	// Analytics boards.
	ListEdges(ctx context.Context, filter *EdgeFilter) ([]models.Edge, error)
	EdgeFactors(ctx context.Context, edgeID string) ([]models.FactorScore, error)
	PowerRatings(ctx context.Context, league string) ([]models.PowerRating, error)
	EvaluateParlay(ctx context.Context, legs []models.ParlayLeg) (*models.ParlayEvaluation, error)
	TrackerSummary(ctx context.Context, windowDays int) (*models.TrackerSummary, error)
	Weather(ctx context.Context, gameID string) (*models.WeatherImpact, error)

	// Liveness probe.
	Ping(ctx context.Context) error
}

// TokenProvider supplies the bearer token for authenticated calls and the
// refresh primitive the transport invokes once on a 401.
type TokenProvider interface {
	// SessionToken returns the current bearer token, or "" when logged out.
	SessionToken(ctx context.Context) string
	// RefreshSession rotates the token pair. It reports success and never
	// returns an error; a failed rotation leaves the caller logged out.
	RefreshSession(ctx context.Context) bool
}
