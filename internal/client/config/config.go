package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the EdgeBet terminal client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - WSURL: websocket URL of the live edge feed.
//   - DatabasePath: sqlite file holding the credential store.
//   - Passphrase: optional sealing passphrase for credentials at rest;
//     taken from EDGEBET_PASSPHRASE so it never appears in argv.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - RequestTimeout: per-request deadline for REST calls.
//   - RateLimit / RateBurst: outbound request throttle.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	APIBaseURL          string
	WSURL               string
	DatabasePath        string
	Passphrase          string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	RateLimit           float64
	RateBurst           int
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.WSURL = "ws://127.0.0.1:8080/ws/edges"
	c.DatabasePath = "edgebet.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.RateLimit = 10
	c.RateBurst = 5
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	if v := os.Getenv("EDGEBET_PASSPHRASE"); v != "" {
		cfg.Passphrase = v
	}
}
