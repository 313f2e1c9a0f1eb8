// Package credstore persists the three credential keys that survive client
// restarts: the active client id, the session token and the refresh token.
//
// Only the session manager writes to a Store. The keys are consistency
// coupled: a session token must never outlive a failed user fetch, and the
// client id must never outlive a failed client fetch. Multi-key writes are
// therefore transactional in the SQLite implementation.
package credstore

import "context"

// Storage keys. Values are stored as strings; ClientID holds a stringified
// integer.
const (
	KeyClientID     = "clientId"
	KeySessionToken = "session_token"
	KeyRefreshToken = "refresh_token"
)

// Store is a minimal key/value surface so the session lifecycle stays
// storage-mechanism-agnostic. Get returns ("", nil) for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
