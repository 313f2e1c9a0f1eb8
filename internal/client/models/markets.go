package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Edge is a single betting-edge recommendation computed by the backend.
// All numbers arrive precomputed; the client only renders them.
type Edge struct {
	ID          string          `json:"id"`
	GameID      string          `json:"game_id"`
	League      string          `json:"league"`
	Matchup     string          `json:"matchup"`
	Market      string          `json:"market"`
	Selection   string          `json:"selection"`
	Line        decimal.Decimal `json:"line"`
	Price       decimal.Decimal `json:"price"`
	ModelProb   decimal.Decimal `json:"model_prob"`
	ImpliedProb decimal.Decimal `json:"implied_prob"`
	EdgePercent decimal.Decimal `json:"edge_percent"`
	Confidence  string          `json:"confidence"`
	KickoffAt   time.Time       `json:"kickoff_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FactorScore is one scored component of an edge (power rating gap, rest,
// travel, weather and so on), aggregated server-side.
type FactorScore struct {
	Name        string          `json:"name"`
	Score       decimal.Decimal `json:"score"`
	Weight      decimal.Decimal `json:"weight"`
	Description string          `json:"description,omitempty"`
}

// PowerRating is a team strength entry from the backend's ELO model.
type PowerRating struct {
	Team      string          `json:"team"`
	League    string          `json:"league"`
	Rating    decimal.Decimal `json:"rating"`
	Rank      int             `json:"rank"`
	Trend     decimal.Decimal `json:"trend"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ParlayLeg is one selection inside a parlay to be evaluated.
type ParlayLeg struct {
	EdgeID    string `json:"edge_id"`
	Selection string `json:"selection,omitempty"`
}

// ParlayEvaluation is the backend's correlation-adjusted verdict on a
// proposed parlay.
type ParlayEvaluation struct {
	Legs            []ParlayLeg     `json:"legs"`
	CombinedPrice   decimal.Decimal `json:"combined_price"`
	NaiveProb       decimal.Decimal `json:"naive_prob"`
	AdjustedProb    decimal.Decimal `json:"adjusted_prob"`
	CorrelationNote string          `json:"correlation_note,omitempty"`
	ExpectedValue   decimal.Decimal `json:"expected_value"`
	Recommended     bool            `json:"recommended"`
}

// TrackerSummary is the performance record of tracked picks for the active
// client, including the backend's significance verdict.
type TrackerSummary struct {
	Picks       int             `json:"picks"`
	Wins        int             `json:"wins"`
	Losses      int             `json:"losses"`
	Pushes      int             `json:"pushes"`
	ROIPercent  decimal.Decimal `json:"roi_percent"`
	UnitsNet    decimal.Decimal `json:"units_net"`
	CLVPercent  decimal.Decimal `json:"clv_percent"`
	PValue      decimal.Decimal `json:"p_value"`
	Significant bool            `json:"significant"`
	WindowDays  int             `json:"window_days"`
}

// WeatherImpact is the backend's weather adjustment for an outdoor game.
type WeatherImpact struct {
	GameID        string          `json:"game_id"`
	Stadium       string          `json:"stadium"`
	Conditions    string          `json:"conditions"`
	WindMPH       decimal.Decimal `json:"wind_mph"`
	TempF         decimal.Decimal `json:"temp_f"`
	Precipitation decimal.Decimal `json:"precipitation"`
	TotalDelta    decimal.Decimal `json:"total_delta"`
	Note          string          `json:"note,omitempty"`
}
