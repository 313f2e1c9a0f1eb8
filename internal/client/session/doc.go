// Package session owns the single source of truth for "is this client
// authenticated": the current user profile, the active betting client, and
// the persisted token pair. It performs the bootstrap, refresh and logout
// transitions and fails closed on every ambiguity — a fetch failure during
// bootstrap always lands in a clean unauthenticated state, never a
// half-authenticated one.
//
// Storage discipline: the manager is the only writer of the three persisted
// keys (clientId, session_token, refresh_token). Nothing else may touch
// them.
package session
