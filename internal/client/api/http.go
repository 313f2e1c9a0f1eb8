package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/edgebet/edgebet-cli/internal/client/models"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultRateLimit = 10.0 // requests per second
	defaultBurst     = 5
)

// authMode controls bearer attachment and the 401 retry behavior of a call.
type authMode int

const (
	// authNone sends no bearer; a 401 surfaces as-is. Used for login,
	// refresh and the health probe, where a refresh attempt would be
	// meaningless or recursive.
	authNone authMode = iota
	// authRetry sends the bearer and, on 401, rotates the pair once and
	// retries once.
	authRetry
	// authOnce sends the bearer but treats 401 as terminal. Logout uses
	// this: rotating a dead pair just to invalidate it server-side would
	// loop back into logout.
	authOnce
)

// HTTPClient is the concrete REST transport.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	tokens     TokenProvider
}

// Option configures the client.
type Option func(*HTTPClient)

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// WithRateLimit sets custom rate limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// NewHTTPClient creates a backend client for the given base URL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetTokenProvider wires the session manager in after construction; the
// manager itself needs this client, so the two are linked in two steps.
func (c *HTTPClient) SetTokenProvider(p TokenProvider) {
	c.tokens = p
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &pair, authNone)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user, authRetry); err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh exchanges a refresh token for a new pair. It is deliberately an
// unauthenticated call: a 401 here must surface, not trigger another
// refresh.
func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var pair models.TokenPair
	err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, refreshRequest{RefreshToken: refreshToken}, &pair, authNone)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Logout invalidates the session server-side. A 401 is terminal here:
// refreshing a pair only to revoke it would send this call in circles with
// the session teardown.
func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, authOnce)
}

func (c *HTTPClient) GetClient(ctx context.Context, id int64) (*models.ClientProfile, error) {
	var client models.ClientProfile
	if err := c.do(ctx, http.MethodGet, "/clients/"+strconv.FormatInt(id, 10), nil, nil, &client, authRetry); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *HTTPClient) CreateClient(ctx context.Context, req CreateClientRequest) (*models.ClientProfile, error) {
	var client models.ClientProfile
	if err := c.do(ctx, http.MethodPost, "/clients", nil, req, &client, authRetry); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *HTTPClient) UpdateClient(ctx context.Context, id int64, req UpdateClientRequest) (*models.ClientProfile, error) {
	var client models.ClientProfile
	if err := c.do(ctx, http.MethodPatch, "/clients/"+strconv.FormatInt(id, 10), nil, req, &client, authRetry); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *HTTPClient) ListEdges(ctx context.Context, filter *EdgeFilter) ([]models.Edge, error) {
	params := url.Values{}
	if filter != nil {
		if filter.League != "" {
			params.Set("league", filter.League)
		}
		if filter.Market != "" {
			params.Set("market", filter.Market)
		}
		if !filter.MinEdge.IsZero() {
			params.Set("min_edge", filter.MinEdge.String())
		}
		if filter.Confidence != "" {
			params.Set("confidence", filter.Confidence)
		}
		if filter.Limit > 0 {
			params.Set("limit", strconv.Itoa(filter.Limit))
		}
	}

	var edges []models.Edge
	if err := c.do(ctx, http.MethodGet, "/edges", params, nil, &edges, authRetry); err != nil {
		return nil, err
	}
	return edges, nil
}

func (c *HTTPClient) EdgeFactors(ctx context.Context, edgeID string) ([]models.FactorScore, error) {
	var factors []models.FactorScore
	if err := c.do(ctx, http.MethodGet, "/edges/"+edgeID+"/factors", nil, nil, &factors, authRetry); err != nil {
		return nil, err
	}
	return factors, nil
}

func (c *HTTPClient) PowerRatings(ctx context.Context, league string) ([]models.PowerRating, error) {
	params := url.Values{}
	if league != "" {
		params.Set("league", league)
	}

	var ratings []models.PowerRating
	if err := c.do(ctx, http.MethodGet, "/power-ratings", params, nil, &ratings, authRetry); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (c *HTTPClient) EvaluateParlay(ctx context.Context, legs []models.ParlayLeg) (*models.ParlayEvaluation, error) {
	var eval models.ParlayEvaluation
	if err := c.do(ctx, http.MethodPost, "/parlays/evaluate", nil, parlayRequest{Legs: legs}, &eval, authRetry); err != nil {
		return nil, err
	}
	return &eval, nil
}

func (c *HTTPClient) TrackerSummary(ctx context.Context, windowDays int) (*models.TrackerSummary, error) {
	params := url.Values{}
	if windowDays > 0 {
		params.Set("window_days", strconv.Itoa(windowDays))
	}

	var summary models.TrackerSummary
	if err := c.do(ctx, http.MethodGet, "/tracker/summary", params, nil, &summary, authRetry); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *HTTPClient) Weather(ctx context.Context, gameID string) (*models.WeatherImpact, error) {
	var impact models.WeatherImpact
	if err := c.do(ctx, http.MethodGet, "/games/"+gameID+"/weather", nil, nil, &impact, authRetry); err != nil {
		return nil, err
	}
	return &impact, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, nil, authNone)
}

// do performs one request. For authRetry calls that come back 401, it asks
// the token provider to rotate the pair and retries exactly once with the
// new token.
func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, body, out any, mode authMode) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	status, err := c.once(ctx, method, path, params, payload, out, mode)
	if err != nil {
		return err
	}
	if status != http.StatusUnauthorized {
		return nil
	}

	if mode == authRetry && c.tokens != nil && c.tokens.RefreshSession(ctx) {
		status, err = c.once(ctx, method, path, params, payload, out, mode)
		if err != nil {
			return err
		}
		if status != http.StatusUnauthorized {
			return nil
		}
	}

	return &APIError{Status: http.StatusUnauthorized, Message: "session expired"}
}

// once executes a single HTTP exchange. A 401 on a bearer-carrying call is
// reported through the status return so do can decide on a retry; every
// other non-2xx becomes an *APIError.
func (c *HTTPClient) once(ctx context.Context, method, path string, params url.Values, payload []byte, out any, mode authMode) (int, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if mode != authNone && c.tokens != nil {
		if token := c.tokens.SessionToken(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && mode != authNone {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, parseError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// parseError builds an *APIError from a non-2xx response, using the JSON
// error body when the backend provides one.
func parseError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && (er.Code != "" || er.Message != "") {
		apiErr.Code = er.Code
		apiErr.Message = er.Message
	}
	return apiErr
}
