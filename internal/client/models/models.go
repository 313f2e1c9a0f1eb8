// Package models defines the data entities exchanged with the EdgeBet
// backend. Profiles are fetched fresh on every bootstrap cycle and are never
// persisted locally; only the token pair and the active client id are.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskProfile is the staking posture of a betting client.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskBalanced     RiskProfile = "balanced"
	RiskAggressive   RiskProfile = "aggressive"
)

// Valid reports whether the value is one of the known risk profiles.
func (r RiskProfile) Valid() bool {
	switch r {
	case RiskConservative, RiskBalanced, RiskAggressive:
		return true
	}
	return false
}

// UserProfile is the authenticated user identity.
type UserProfile struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Username          string    `json:"username"`
	DisplayName       string    `json:"display_name,omitempty"`
	PreferredCurrency string    `json:"preferred_currency"`
	IsVerified        bool      `json:"is_verified"`
	IsAgeVerified     bool      `json:"is_age_verified"`
	TOTPEnabled       bool      `json:"totp_enabled"`
	CreatedAt         time.Time `json:"created_at"`
}

// ClientProfile is a bankroll/risk-profile record representing a simulated
// betting account, distinct from the user identity. Exactly one client is
// active at a time per local session.
type ClientProfile struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Bankroll    decimal.Decimal `json:"bankroll"`
	RiskProfile RiskProfile     `json:"risk_profile"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TokenPair is a session token and its companion refresh token as issued by
// the backend.
type TokenPair struct {
	SessionToken string `json:"session_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
