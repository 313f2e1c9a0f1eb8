package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/edgebet/edgebet-cli/internal/client/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderEdges(w io.Writer, edges []models.Edge) {
	if len(edges) == 0 {
		fmt.Fprintln(w, "No edges on the board.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tLEAGUE\tMATCHUP\tMARKET\tSELECTION\tLINE\tPRICE\tEDGE%\tCONF\tKICKOFF")
	for _, e := range edges {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.League, e.Matchup, e.Market, e.Selection,
			e.Line.StringFixed(1), e.Price.String(),
			e.EdgePercent.StringFixed(2), e.Confidence,
			e.KickoffAt.Format("Jan 2 15:04"))
	}
	_ = tw.Flush()
}

func renderFactors(w io.Writer, edgeID string, factors []models.FactorScore) {
	if len(factors) == 0 {
		fmt.Fprintf(w, "No factor breakdown for edge %s.\n", edgeID)
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "Factors for edge %s\n", edgeID)
	fmt.Fprintln(tw, "FACTOR\tSCORE\tWEIGHT\tNOTE")
	for _, f := range factors {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			f.Name, f.Score.StringFixed(2), f.Weight.StringFixed(2), f.Description)
	}
	_ = tw.Flush()
}

func renderRatings(w io.Writer, ratings []models.PowerRating) {
	if len(ratings) == 0 {
		fmt.Fprintln(w, "No power ratings available.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "RANK\tTEAM\tLEAGUE\tRATING\tTREND")
	for _, r := range ratings {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			r.Rank, r.Team, r.League, r.Rating.StringFixed(1), r.Trend.StringFixed(1))
	}
	_ = tw.Flush()
}

func renderParlay(w io.Writer, eval *models.ParlayEvaluation) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Legs:\t%d\n", len(eval.Legs))
	fmt.Fprintf(tw, "Combined price:\t%s\n", eval.CombinedPrice.String())
	fmt.Fprintf(tw, "Naive probability:\t%s\n", eval.NaiveProb.StringFixed(4))
	fmt.Fprintf(tw, "Adjusted probability:\t%s\n", eval.AdjustedProb.StringFixed(4))
	fmt.Fprintf(tw, "Expected value:\t%s\n", eval.ExpectedValue.StringFixed(4))
	verdict := "pass"
	if eval.Recommended {
		verdict = "play"
	}
	fmt.Fprintf(tw, "Verdict:\t%s\n", verdict)
	if eval.CorrelationNote != "" {
		fmt.Fprintf(tw, "Note:\t%s\n", eval.CorrelationNote)
	}
	_ = tw.Flush()
}

func renderTracker(w io.Writer, s *models.TrackerSummary) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Window:\tlast %d days\n", s.WindowDays)
	fmt.Fprintf(tw, "Record:\t%d-%d-%d (%d picks)\n", s.Wins, s.Losses, s.Pushes, s.Picks)
	fmt.Fprintf(tw, "ROI:\t%s%%\n", s.ROIPercent.StringFixed(2))
	fmt.Fprintf(tw, "Units net:\t%s\n", s.UnitsNet.StringFixed(2))
	fmt.Fprintf(tw, "CLV:\t%s%%\n", s.CLVPercent.StringFixed(2))
	significance := fmt.Sprintf("not significant (p=%s)", s.PValue.StringFixed(3))
	if s.Significant {
		significance = fmt.Sprintf("significant (p=%s)", s.PValue.StringFixed(3))
	}
	fmt.Fprintf(tw, "Significance:\t%s\n", significance)
	_ = tw.Flush()
}

func renderWeather(w io.Writer, wi *models.WeatherImpact) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Game:\t%s\n", wi.GameID)
	fmt.Fprintf(tw, "Stadium:\t%s\n", wi.Stadium)
	fmt.Fprintf(tw, "Conditions:\t%s\n", wi.Conditions)
	fmt.Fprintf(tw, "Wind:\t%s mph\n", wi.WindMPH.StringFixed(0))
	fmt.Fprintf(tw, "Temp:\t%s F\n", wi.TempF.StringFixed(0))
	fmt.Fprintf(tw, "Precipitation:\t%s\n", wi.Precipitation.StringFixed(2))
	fmt.Fprintf(tw, "Total delta:\t%s\n", wi.TotalDelta.StringFixed(1))
	if wi.Note != "" {
		fmt.Fprintf(tw, "Note:\t%s\n", wi.Note)
	}
	_ = tw.Flush()
}

func renderProfile(w io.Writer, user *models.UserProfile, client *models.ClientProfile) {
	tw := newTable(w)
	fmt.Fprintf(tw, "User:\t%s (%s)\n", user.Username, user.Email)
	if user.DisplayName != "" {
		fmt.Fprintf(tw, "Display name:\t%s\n", user.DisplayName)
	}
	fmt.Fprintf(tw, "Verified:\t%t\tAge verified:\t%t\tTOTP:\t%t\n",
		user.IsVerified, user.IsAgeVerified, user.TOTPEnabled)
	if client != nil {
		fmt.Fprintf(tw, "Client:\t#%d %s\n", client.ID, client.Name)
		fmt.Fprintf(tw, "Bankroll:\t%s %s\n", client.Bankroll.StringFixed(2), user.PreferredCurrency)
		fmt.Fprintf(tw, "Risk profile:\t%s\n", client.RiskProfile)
	} else {
		fmt.Fprintln(tw, "Client:\tnone selected")
	}
	_ = tw.Flush()
}

func renderUpdate(w io.Writer, u models.Edge) {
	fmt.Fprintf(w, "[%s] %s %s %s %s @ %s (edge %s%%, %s)\n",
		u.UpdatedAt.Format("15:04:05"), u.League, u.Matchup, u.Market,
		u.Selection, u.Price.String(), u.EdgePercent.StringFixed(2), u.Confidence)
}
