package api

import (
	"github.com/edgebet/edgebet-cli/internal/client/models"
	"github.com/shopspring/decimal"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// CreateClientRequest creates a new betting client.
type CreateClientRequest struct {
	Name        string             `json:"name"`
	Bankroll    decimal.Decimal    `json:"bankroll"`
	RiskProfile models.RiskProfile `json:"risk_profile"`
}

// UpdateClientRequest is a partial update; nil fields are omitted from the
// PATCH body and left untouched by the backend.
type UpdateClientRequest struct {
	Name        *string             `json:"name,omitempty"`
	Bankroll    *decimal.Decimal    `json:"bankroll,omitempty"`
	RiskProfile *models.RiskProfile `json:"risk_profile,omitempty"`
}

// EdgeFilter narrows the edge board query.
type EdgeFilter struct {
	League     string
	Market     string
	MinEdge    decimal.Decimal
	Confidence string
	Limit      int
}

type parlayRequest struct {
	Legs []models.ParlayLeg `json:"legs"`
}

type errorResponse struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}
