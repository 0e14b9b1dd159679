package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vagueame/galaxyterm/internal/flagx"
	"github.com/vagueame/galaxyterm/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify intervals either as strings like
// "15s" or as integer nanoseconds. After parsing, values are copied into
// the runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	SuccessDelay      timex.Duration `json:"success_delay"`
	RedirectCountdown int            `json:"redirect_countdown"`
	RedirectInterval  timex.Duration `json:"redirect_interval"`
	AssetDir          string         `json:"asset_dir"`
	LogLevel          string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. The
// file path comes from the -c or -config flag via flagx.JsonConfigFlags;
// when no path is given nothing is loaded. Fields absent from the JSON
// keep their current values. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SuccessDelay.Duration != 0 {
		cfg.SuccessDelay = time.Duration(jc.SuccessDelay.Duration)
	}
	if jc.RedirectCountdown != 0 {
		cfg.RedirectCountdown = jc.RedirectCountdown
	}
	if jc.RedirectInterval.Duration != 0 {
		cfg.RedirectInterval = time.Duration(jc.RedirectInterval.Duration)
	}
	if jc.AssetDir != "" {
		cfg.AssetDir = jc.AssetDir
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
