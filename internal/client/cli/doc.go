// Package cli provides the interactive EdgeBet terminal client.
//
// It wires configuration, the local credential store, the REST client and
// the session manager into a REPL. Every command runs through a Gate that
// checks the current session snapshot: member commands bounce anonymous
// users toward login, guest commands bounce signed-in users, and nothing
// runs while the session is still resolving.
//
// Key features:
//   - Login / Logout / WhoAmI
//   - Betting client management: create, switch, edit
//   - Analytics boards: edges, factors, power ratings, parlay evaluation,
//     pick tracker, weather impact
//   - Live edge stream over websocket
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
