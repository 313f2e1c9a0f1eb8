package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/edgebet/edgebet-cli/internal/client/api"
	"github.com/edgebet/edgebet-cli/internal/common"
)

// Login prompts for credentials and signs in. On success the session
// manager persists the token pair and resolves the user; if exactly one
// betting client exists it stays unselected until the user picks it.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.LoginWithPassword(ctx, email, string(password)); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Invalid email or password.")
			return nil
		}
		if errors.Is(err, api.ErrUnavailable) {
			fmt.Fprintln(a.out, "Backend unreachable, try again later.")
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Signed in.")
	if a.session.State().Client == nil {
		fmt.Fprintln(a.out, "No betting client selected; run 'clientswitch <id>' or 'clientnew'.")
	}
	return nil
}

// Logout signs out. Server-side invalidation is best effort; local state and
// credentials are always wiped.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

// WhoAmI shows the resolved user and the active betting client.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.session.State()
	if st.Loading {
		fmt.Fprintln(a.out, "Session is still loading.")
		return nil
	}
	if st.User == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	renderProfile(a.out, st.User, st.Client)
	return nil
}
