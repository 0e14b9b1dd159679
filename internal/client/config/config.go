package config

import "time"

// Config holds runtime settings for the galaxyterm CLI.
//
// Fields:
//   - APIBaseURL: origin of the blog backend, scheme included.
//   - RequestTimeout: per-request HTTP timeout.
//   - SuccessDelay: how long the auth overlay lingers in its success
//     state before closing.
//   - RedirectCountdown: seconds counted down after the server reports
//     an expired session, before dropping back to the login prompt.
//   - RedirectInterval: tick length of that countdown.
//   - AssetDir: directory for downloaded profile images; empty means a
//     per-user temp directory.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL        string
	RequestTimeout    time.Duration
	SuccessDelay      time.Duration
	RedirectCountdown int
	RedirectInterval  time.Duration
	AssetDir          string
	LogLevel          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://vagueame.top:5000"
	c.RequestTimeout = 15 * time.Second
	c.SuccessDelay = 1500 * time.Millisecond
	c.RedirectCountdown = 3
	c.RedirectInterval = time.Second
	c.AssetDir = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present) and command-line flags
// (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
