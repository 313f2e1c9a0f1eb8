package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/edgebet/edgebet-cli/internal/client/api"
	"github.com/edgebet/edgebet-cli/internal/client/models"
)

// Edges shows the current edge board, optionally filtered:
//
//	edges [league] [market]
func (a *App) Edges(ctx context.Context, args []string) error {
	filter := &api.EdgeFilter{}
	if len(args) > 0 {
		filter.League = args[0]
	}
	if len(args) > 1 {
		filter.Market = args[1]
	}

	edges, err := a.api.ListEdges(ctx, filter)
	if err != nil {
		return err
	}
	renderEdges(a.out, edges)
	return nil
}

// Factors shows the scored factor breakdown behind one edge.
func (a *App) Factors(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: factors <edge-id>")
		return nil
	}

	factors, err := a.api.EdgeFactors(ctx, args[0])
	if err != nil {
		return err
	}
	renderFactors(a.out, args[0], factors)
	return nil
}

// Ratings shows the team power ratings, optionally for one league.
func (a *App) Ratings(ctx context.Context, args []string) error {
	league := ""
	if len(args) > 0 {
		league = args[0]
	}

	ratings, err := a.api.PowerRatings(ctx, league)
	if err != nil {
		return err
	}
	renderRatings(a.out, ratings)
	return nil
}

// Parlay collects edge ids interactively and asks the backend for its
// correlation-adjusted verdict.
func (a *App) Parlay(ctx context.Context) error {
	var legs []models.ParlayLeg
	for {
		id, err := GetSimpleText(a.reader, "Edge id (empty to evaluate)", a.out)
		if err != nil {
			return err
		}
		if id == "" {
			break
		}
		legs = append(legs, models.ParlayLeg{EdgeID: id})
	}

	if len(legs) < 2 {
		fmt.Fprintln(a.out, "A parlay needs at least two legs.")
		return nil
	}

	eval, err := a.api.EvaluateParlay(ctx, legs)
	if err != nil {
		return err
	}
	renderParlay(a.out, eval)
	return nil
}

// Tracker shows the pick tracker summary for the active client:
//
//	tracker [days]
func (a *App) Tracker(ctx context.Context, args []string) error {
	days := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintln(a.out, "Usage: tracker [days]")
			return nil
		}
		days = n
	}

	summary, err := a.api.TrackerSummary(ctx, days)
	if err != nil {
		return err
	}
	renderTracker(a.out, summary)
	return nil
}

// Weather shows the weather adjustment for an outdoor game.
func (a *App) Weather(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: weather <game-id>")
		return nil
	}

	impact, err := a.api.Weather(ctx, args[0])
	if err != nil {
		return err
	}
	renderWeather(a.out, impact)
	return nil
}
