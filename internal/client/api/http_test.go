package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fakeTokens implements TokenProvider with scripted behavior.
type fakeTokens struct {
	token     atomic.Value // string
	refreshOK bool
	refreshed int32
	newToken  string
}

func newFakeTokens(token string) *fakeTokens {
	f := &fakeTokens{}
	f.token.Store(token)
	return f
}

func (f *fakeTokens) SessionToken(ctx context.Context) string {
	return f.token.Load().(string)
}

func (f *fakeTokens) RefreshSession(ctx context.Context) bool {
	atomic.AddInt32(&f.refreshed, 1)
	if !f.refreshOK {
		return false
	}
	f.token.Store(f.newToken)
	return true
}

func TestMe_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		require.Equal(t, "/auth/me", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": "a@b.c"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetTokenProvider(newFakeTokens("tok-1"))

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "Bearer tok-1", gotAuth)
	require.NotEmpty(t, gotRequestID)
}

func TestMe_RefreshesOnceOn401AndRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			require.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		require.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1"})
	}))
	defer srv.Close()

	tokens := newFakeTokens("stale")
	tokens.refreshOK = true
	tokens.newToken = "fresh"

	c := NewHTTPClient(srv.URL)
	c.SetTokenProvider(tokens)

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.EqualValues(t, 1, atomic.LoadInt32(&tokens.refreshed))
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestMe_NoSecondRetryAfterRefreshedRequestStill401(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := newFakeTokens("stale")
	tokens.refreshOK = true
	tokens.newToken = "fresh"

	c := NewHTTPClient(srv.URL)
	c.SetTokenProvider(tokens)

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
	require.EqualValues(t, 1, atomic.LoadInt32(&tokens.refreshed))
}

func TestMe_FailedRefreshSurfacesUnauthorized(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := newFakeTokens("stale") // refreshOK=false

	c := NewHTTPClient(srv.URL)
	c.SetTokenProvider(tokens)

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestLogout_401IsTerminalWithoutRefresh(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		require.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := newFakeTokens("stale")
	tokens.refreshOK = true
	tokens.newToken = "fresh"

	c := NewHTTPClient(srv.URL)
	c.SetTokenProvider(tokens)

	err := c.Logout(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))
	require.Zero(t, atomic.LoadInt32(&tokens.refreshed))
}

func TestLogin_SendsCredentialsAndDecodesPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a@b.c", req.Email)
		require.Equal(t, "secret", req.Password)

		_ = json.NewEncoder(w).Encode(map[string]string{
			"session_token": "tok",
			"refresh_token": "ref",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	pair, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok", pair.SessionToken)
	require.Equal(t, "ref", pair.RefreshToken)
}

func TestLogin_BadCredentialsMapToUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_credentials", "message": "bad login"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Login(context.Background(), "a@b.c", "nope")
	require.ErrorIs(t, err, ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "invalid_credentials", apiErr.Code)
}

func TestGetClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/clients/42", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetTokenProvider(newFakeTokens("tok"))
	_, err := c.GetClient(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListEdges_BuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "nfl", q.Get("league"))
		require.Equal(t, "spread", q.Get("market"))
		require.Equal(t, "2.5", q.Get("min_edge"))
		require.Equal(t, "25", q.Get("limit"))
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": "e1"}, {"id": "e2"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetTokenProvider(newFakeTokens("tok"))

	edges, err := c.ListEdges(context.Background(), &EdgeFilter{
		League:  "nfl",
		Market:  "spread",
		MinEdge: decimal.RequireFromString("2.5"),
		Limit:   25,
	})
	require.NoError(t, err)
	require.Len(t, edges, 2)
	require.Equal(t, "e1", edges[0].ID)
}

func TestPing_ServerErrorMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestPing_ConnectionRefusedMapsToUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewHTTPClient(srv.URL)
	err := c.Ping(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnavailable))
}
