package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/edgebet/edgebet-cli/internal/client/api"
	"github.com/edgebet/edgebet-cli/internal/client/models"
	"github.com/shopspring/decimal"
)

// ClientNew creates a betting client interactively and makes it the active
// selection.
func (a *App) ClientNew(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Client name", a.out)
	if err != nil {
		return err
	}

	rawBankroll, err := GetSimpleText(a.reader, "Starting bankroll", a.out)
	if err != nil {
		return err
	}
	bankroll, err := decimal.NewFromString(rawBankroll)
	if err != nil {
		fmt.Fprintln(a.out, "Bankroll must be a number.")
		return nil
	}

	rawRisk, err := GetSimpleText(a.reader, "Risk profile (conservative|balanced|aggressive)", a.out)
	if err != nil {
		return err
	}
	risk := models.RiskProfile(rawRisk)
	if !risk.Valid() {
		fmt.Fprintln(a.out, "Unknown risk profile:", rawRisk)
		return nil
	}

	client, err := a.session.CreateClient(ctx, api.CreateClientRequest{
		Name:        name,
		Bankroll:    bankroll,
		RiskProfile: risk,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created client #%d %s (active).\n", client.ID, client.Name)
	return nil
}

// ClientSwitch makes another betting client the active one.
func (a *App) ClientSwitch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: clientswitch <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Client id must be an integer.")
		return nil
	}

	if err := a.session.Login(ctx, id); err != nil {
		return err
	}

	st := a.session.State()
	fmt.Fprintf(a.out, "Active client is now #%d %s.\n", st.Client.ID, st.Client.Name)
	return nil
}

// ClientEdit applies a partial update to the active client. Empty answers
// leave the field untouched.
func (a *App) ClientEdit(ctx context.Context) error {
	req := api.UpdateClientRequest{}

	name, err := GetSimpleText(a.reader, "New name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		req.Name = &name
	}

	rawBankroll, err := GetSimpleText(a.reader, "New bankroll (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if rawBankroll != "" {
		bankroll, err := decimal.NewFromString(rawBankroll)
		if err != nil {
			fmt.Fprintln(a.out, "Bankroll must be a number.")
			return nil
		}
		req.Bankroll = &bankroll
	}

	rawRisk, err := GetSimpleText(a.reader, "New risk profile (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if rawRisk != "" {
		risk := models.RiskProfile(rawRisk)
		if !risk.Valid() {
			fmt.Fprintln(a.out, "Unknown risk profile:", rawRisk)
			return nil
		}
		req.RiskProfile = &risk
	}

	client, err := a.session.UpdateClient(ctx, req)
	if err != nil {
		return err
	}
	if client == nil {
		fmt.Fprintln(a.out, "No active client to edit.")
		return nil
	}

	fmt.Fprintf(a.out, "Client #%d updated.\n", client.ID)
	return nil
}
