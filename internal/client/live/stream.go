// Package live maintains the websocket subscription to the edge feed and
// delivers updates to the terminal renderer. The connection heals itself:
// drops are retried with capped exponential backoff and the subscription is
// replayed after every reconnect.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edgebet/edgebet-cli/internal/client/api"
	"github.com/edgebet/edgebet-cli/internal/client/models"
	"github.com/edgebet/edgebet-cli/internal/logging"
	"github.com/gorilla/websocket"
)

const (
	defaultMinBackoff = time.Second
	defaultMaxBackoff = 30 * time.Second

	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	// readWait must outlast pingInterval so pongs keep the deadline fresh.
	readWait = 90 * time.Second
)

// Update is one frame of the edge feed. Heartbeat frames are consumed
// internally and never reach the consumer.
type Update struct {
	Type string      `json:"type"`
	Edge models.Edge `json:"edge"`
}

type subscribeFrame struct {
	Action  string   `json:"action"`
	Leagues []string `json:"leagues,omitempty"`
}

// Stream is a self-healing subscription to the edge feed.
type Stream struct {
	url     string
	leagues []string
	tokens  api.TokenProvider
	log     logging.Logger

	minBackoff time.Duration
	maxBackoff time.Duration

	updates chan Update
}

// NewStream prepares a subscription to url, filtered to the given leagues
// (nil means all). Nothing is dialed until Run.
func NewStream(url string, leagues []string, tokens api.TokenProvider, log logging.Logger) *Stream {
	return &Stream{
		url:        url,
		leagues:    leagues,
		tokens:     tokens,
		log:        log.With("component", "live"),
		minBackoff: defaultMinBackoff,
		maxBackoff: defaultMaxBackoff,
		updates:    make(chan Update, 64),
	}
}

// Updates returns the feed channel. It is closed when Run returns.
func (s *Stream) Updates() <-chan Update {
	return s.updates
}

// Run dials and reads until ctx is cancelled or the server closes the
// stream cleanly. Every successful dial resets the backoff.
func (s *Stream) Run(ctx context.Context) {
	defer close(s.updates)

	backoff := s.minBackoff
	for {
		connected, err := s.serve(ctx)
		if ctx.Err() != nil || err == nil {
			return
		}
		if connected {
			backoff = s.minBackoff
		}

		s.log.Warn(ctx, "edge stream disconnected", "error", err, "retry_in", backoff)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
	}
}

// serve runs a single connection: dial, subscribe, read until failure.
// connected reports whether the dial itself succeeded, so the caller knows
// whether to reset the backoff. A nil error means the server closed the
// stream deliberately and no reconnect should happen.
func (s *Stream) serve(ctx context.Context) (connected bool, err error) {
	header := http.Header{}
	if token := s.tokens.SessionToken(ctx); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, s.url, header)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return false, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(subscribeFrame{Action: "subscribe", Leagues: s.leagues}); err != nil {
		return true, fmt.Errorf("subscribe: %w", err)
	}

	// Unblock ReadMessage when the context goes away.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	go s.ping(conn, done)

	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return true, nil
			}
			return true, fmt.Errorf("read: %w", err)
		}
		_ = conn.SetReadDeadline(time.Now().Add(readWait))

		var u Update
		if err := json.Unmarshal(data, &u); err != nil {
			s.log.Debug(ctx, "dropping malformed frame", "error", err)
			continue
		}
		if u.Type == "heartbeat" {
			continue
		}

		select {
		case s.updates <- u:
		default:
			// Consumer is behind; dropping beats blocking the read loop.
			s.log.Debug(ctx, "dropping update, consumer is behind", "edge", u.Edge.ID)
		}
	}
}

func (s *Stream) ping(conn *websocket.Conn, done <-chan struct{}) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		}
	}
}
