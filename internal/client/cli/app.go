package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/edgebet/edgebet-cli/internal/client/api"
	"github.com/edgebet/edgebet-cli/internal/client/config"
	"github.com/edgebet/edgebet-cli/internal/client/credstore"
	"github.com/edgebet/edgebet-cli/internal/client/session"
	"github.com/edgebet/edgebet-cli/internal/logging"
)

// Mode reflects backend reachability as seen by the connectivity watcher.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// App wires config, credential storage, the REST client and the session
// manager into the interactive terminal client.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	api     api.Client
	session *session.Manager

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.Mutex
	mode   Mode
}

// NewApp builds the full dependency chain: credential database, store
// (sealed when a passphrase is configured), REST client, session manager.
// The manager doubles as the client's token provider, so the two are linked
// in a second step after construction.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewTextLogger(c.LogLevel)

	db, err := credstore.OpenSQLite(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	var store credstore.Store = credstore.NewSQLiteStore(db)
	if c.Passphrase != "" {
		store, err = credstore.NewSealedStore(ctx, store, []byte(c.Passphrase))
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	httpClient := api.NewHTTPClient(c.APIBaseURL,
		api.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		api.WithRateLimit(c.RateLimit, c.RateBurst),
	)

	manager := session.NewManager(httpClient, store, log)
	httpClient.SetTokenProvider(manager)

	return &App{
		config:  c,
		log:     log,
		db:      db,
		api:     httpClient,
		session: manager,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		mode:    ModeOffline,
	}, nil
}

// SessionState exposes the session snapshot to the REPL's gates.
func (a *App) SessionState() session.State {
	return a.session.State()
}

// Run resolves the persisted session, starts the connectivity watcher and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.db.Close(); err != nil {
			a.log.Error(ctx, "closing credential database", "error", err)
		}
	}()

	a.session.Initialize(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to the EdgeBet terminal (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) getStatus() string {
	st := a.session.State()

	s := string(a.getMode())
	if st.Loading {
		return "(" + s + " loading)"
	}
	if st.User != nil {
		s = st.User.Username + " " + s
		if st.Client != nil {
			s = s + " #" + st.Client.Name
		}
	}
	return "(" + s + ")"
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()
	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher probes backend reachability on a fixed interval
// and flips the online/offline indicator shown in the prompt.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
