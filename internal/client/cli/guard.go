package cli

import "github.com/edgebet/edgebet-cli/internal/client/session"

// Gate is the single parameterized access rule applied to commands before
// they run. RequireAuth=true marks member-only commands, RequireAuth=false
// marks guest-only ones (login, register); commands with no gate are open to
// everyone. RedirectTo names the command the user should run instead when
// the gate bounces them.
type Gate struct {
	RequireAuth bool
	RedirectTo  string
}

// Verdict is the outcome of applying a Gate to a session snapshot.
type Verdict int

const (
	// VerdictWait means the session is still resolving; neither render nor
	// redirect until it settles.
	VerdictWait Verdict = iota
	// VerdictRedirect means the user belongs at RedirectTo instead.
	VerdictRedirect
	// VerdictAllow means the command may run.
	VerdictAllow
)

// Decide applies the rule to a session snapshot.
func (g Gate) Decide(st session.State) Verdict {
	if st.Loading {
		return VerdictWait
	}
	if g.RequireAuth != st.Authenticated() {
		return VerdictRedirect
	}
	return VerdictAllow
}
