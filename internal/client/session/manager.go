package session

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/edgebet/edgebet-cli/internal/client/api"
	"github.com/edgebet/edgebet-cli/internal/client/credstore"
	"github.com/edgebet/edgebet-cli/internal/client/models"
	"github.com/edgebet/edgebet-cli/internal/logging"
)

// State is an immutable snapshot of the auth state handed to consumers
// (guards, commands). Loading is true only until the first Initialize call
// settles.
type State struct {
	User    *models.UserProfile
	Client  *models.ClientProfile
	Loading bool
}

// Authenticated requires both a valid user and an active betting client.
func (s State) Authenticated() bool {
	return s.User != nil && s.Client != nil
}

// Manager drives the session lifecycle over an API client and a credential
// store. All methods are safe for concurrent use; the bootstrap entry points
// (Initialize, LoginWithToken, LoginWithPassword) serialize behind a mutex
// so two overlapping chains can never race to set the final state.
type Manager struct {
	api   api.Client
	store credstore.Store
	log   logging.Logger

	// bootMu serializes bootstrap chains end to end.
	bootMu sync.Mutex

	// loggingOut breaks the cycle logout -> server call -> 401 -> refresh
	// -> logout: a logout triggered while one is already in flight returns
	// immediately and lets the first finish the wipe.
	loggingOut atomic.Bool

	mu      sync.RWMutex
	user    *models.UserProfile
	client  *models.ClientProfile
	loading bool
}

// NewManager creates a manager in the loading state; callers must run
// Initialize exactly once before consulting State.
func NewManager(apiClient api.Client, store credstore.Store, log logging.Logger) *Manager {
	return &Manager{
		api:     apiClient,
		store:   store,
		log:     log.With("component", "session"),
		loading: true,
	}
}

// State returns the current snapshot.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{User: m.user, Client: m.client, Loading: m.loading}
}

// IsAuthenticated reports whether both user and client are resolved.
func (m *Manager) IsAuthenticated() bool {
	return m.State().Authenticated()
}

// Initialize resolves the persisted session on startup. With no stored
// token it settles unauthenticated immediately, without a single network
// call. With a token it loads the user and then, only after the user
// resolved, the stored client. It never returns an error: every failure
// resolves to the unauthenticated state. Loading settles to false exactly
// once, whatever path is taken.
func (m *Manager) Initialize(ctx context.Context) {
	m.bootMu.Lock()
	defer m.bootMu.Unlock()
	defer m.settleLoading()

	token, err := m.store.Get(ctx, credstore.KeySessionToken)
	if err != nil {
		m.log.Error(ctx, "credential store read failed", "error", err)
		m.setState(nil, nil)
		return
	}
	if token == "" {
		m.setState(nil, nil)
		return
	}

	m.bootstrap(ctx)
}

// LoginWithToken persists a fresh token pair and runs the same load chain as
// Initialize. This is the canonical post-login entry point.
func (m *Manager) LoginWithToken(ctx context.Context, sessionToken, refreshToken string) {
	m.bootMu.Lock()
	defer m.bootMu.Unlock()
	defer m.settleLoading()

	err := m.store.SetMany(ctx, map[string]string{
		credstore.KeySessionToken: sessionToken,
		credstore.KeyRefreshToken: refreshToken,
	})
	if err != nil {
		m.log.Error(ctx, "failed to persist token pair", "error", err)
		m.setState(nil, nil)
		return
	}

	m.bootstrap(ctx)
}

// LoginWithPassword exchanges credentials for a token pair and bootstraps
// from it. Unlike the bootstrap paths, a rejected login is the caller's
// problem and is returned for inline display.
func (m *Manager) LoginWithPassword(ctx context.Context, email, password string) error {
	pair, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	m.LoginWithToken(ctx, pair.SessionToken, pair.RefreshToken)
	return nil
}

// bootstrap loads the user profile and then the stored client. Caller must
// hold bootMu.
func (m *Manager) bootstrap(ctx context.Context) {
	user, err := m.api.Me(ctx)
	if err != nil {
		// Fail closed: the session token must not outlive a failed user
		// fetch.
		m.log.Warn(ctx, "user fetch failed, clearing session", "error", err)
		m.wipeTokens(ctx)
		m.setState(nil, nil)
		return
	}

	client := m.loadStoredClient(ctx)
	m.setState(user, client)
}

// loadStoredClient resolves the persisted clientId, clearing it when it is
// stale or unparsable. Runs only after the user fetch succeeded.
func (m *Manager) loadStoredClient(ctx context.Context) *models.ClientProfile {
	raw, err := m.store.Get(ctx, credstore.KeyClientID)
	if err != nil {
		m.log.Error(ctx, "credential store read failed", "error", err)
		return nil
	}
	if raw == "" {
		return nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.log.Warn(ctx, "stored client id is not an integer, clearing", "clientId", raw)
		m.deleteKey(ctx, credstore.KeyClientID)
		return nil
	}

	client, err := m.api.GetClient(ctx, id)
	if err != nil {
		// Narrow failure: the session stays, only the stale selection goes.
		m.log.Warn(ctx, "client fetch failed, clearing selection", "clientId", id, "error", err)
		m.deleteKey(ctx, credstore.KeyClientID)
		return nil
	}
	return client
}

// Login selects a betting client by id, persists the selection, then
// re-loads the user profile as an idempotent refresh. Used for client-only
// flows that do not exchange a fresh token.
func (m *Manager) Login(ctx context.Context, clientID int64) error {
	client, err := m.api.GetClient(ctx, clientID)
	if err != nil {
		return err
	}

	if err := m.store.Set(ctx, credstore.KeyClientID, strconv.FormatInt(clientID, 10)); err != nil {
		return err
	}

	m.mu.Lock()
	m.client = client
	m.mu.Unlock()

	if user, err := m.api.Me(ctx); err == nil {
		m.mu.Lock()
		m.user = user
		m.mu.Unlock()
	} else {
		m.log.Warn(ctx, "user refresh after client selection failed", "error", err)
	}
	return nil
}

// RefreshSession exchanges the stored refresh token for a new pair. It never
// returns an error: false means either no refresh token exists (no side
// effects) or the exchange failed (full logout already performed).
func (m *Manager) RefreshSession(ctx context.Context) bool {
	refresh, err := m.store.Get(ctx, credstore.KeyRefreshToken)
	if err != nil {
		m.log.Error(ctx, "credential store read failed", "error", err)
		return false
	}
	if refresh == "" {
		return false
	}

	pair, err := m.api.Refresh(ctx, refresh)
	if err != nil {
		m.log.Warn(ctx, "refresh exchange failed, logging out", "error", err)
		m.Logout(ctx)
		return false
	}

	err = m.store.SetMany(ctx, map[string]string{
		credstore.KeySessionToken: pair.SessionToken,
		credstore.KeyRefreshToken: pair.RefreshToken,
	})
	if err != nil {
		m.log.Error(ctx, "failed to persist refreshed pair", "error", err)
		m.Logout(ctx)
		return false
	}
	return true
}

// Logout invalidates the session server-side on a best-effort basis, then
// unconditionally clears in-memory state and all persisted keys. It cannot
// fail from the caller's perspective. Logouts triggered while one is
// already running (the server call itself can land back here through the
// transport's refresh path) return immediately.
func (m *Manager) Logout(ctx context.Context) {
	if !m.loggingOut.CompareAndSwap(false, true) {
		return
	}
	defer m.loggingOut.Store(false)

	if err := m.api.Logout(ctx); err != nil {
		m.log.Debug(ctx, "server-side logout failed", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.client = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear credential store", "error", err)
	}
}

// CreateClient creates a betting client, makes it the active selection and
// persists its id. Errors propagate for inline form display.
func (m *Manager) CreateClient(ctx context.Context, req api.CreateClientRequest) (*models.ClientProfile, error) {
	client, err := m.api.CreateClient(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := m.store.Set(ctx, credstore.KeyClientID, strconv.FormatInt(client.ID, 10)); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.client = client
	m.mu.Unlock()
	return client, nil
}

// UpdateClient sends a partial update for the active client and replaces the
// local copy with the server's representation. No-op when no client is
// active.
func (m *Manager) UpdateClient(ctx context.Context, req api.UpdateClientRequest) (*models.ClientProfile, error) {
	m.mu.RLock()
	current := m.client
	m.mu.RUnlock()
	if current == nil {
		return nil, nil
	}

	client, err := m.api.UpdateClient(ctx, current.ID, req)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.client = client
	m.mu.Unlock()
	return client, nil
}

// RefreshUser re-fetches the user profile only, used after profile edits.
func (m *Manager) RefreshUser(ctx context.Context) error {
	user, err := m.api.Me(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return nil
}

func (m *Manager) setState(user *models.UserProfile, client *models.ClientProfile) {
	m.mu.Lock()
	m.user = user
	m.client = client
	m.mu.Unlock()
}

// settleLoading flips loading to false. It never goes back to true, so the
// transition happens at most once per process.
func (m *Manager) settleLoading() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

func (m *Manager) wipeTokens(ctx context.Context) {
	m.deleteKey(ctx, credstore.KeySessionToken)
	m.deleteKey(ctx, credstore.KeyRefreshToken)
}

func (m *Manager) deleteKey(ctx context.Context, key string) {
	if err := m.store.Delete(ctx, key); err != nil {
		m.log.Error(ctx, "credential store delete failed", "key", key, "error", err)
	}
}
