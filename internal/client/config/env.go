package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables. A
// .env file in the working directory is loaded first, without
// overriding variables already set in the real environment.
//
// Recognized variables:
//
//	API_BASE_URL          string
//	REQUEST_TIMEOUT       duration ("15s")
//	SUCCESS_DELAY         duration
//	REDIRECT_COUNTDOWN    int (seconds)
//	REDIRECT_INTERVAL     duration
//	ASSET_DIR             string
//	LOG_LEVEL             string
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	overlayString(&cfg.APIBaseURL, "API_BASE_URL")
	overlayDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT")
	overlayDuration(&cfg.SuccessDelay, "SUCCESS_DELAY")
	overlayInt(&cfg.RedirectCountdown, "REDIRECT_COUNTDOWN")
	overlayDuration(&cfg.RedirectInterval, "REDIRECT_INTERVAL")
	overlayString(&cfg.AssetDir, "ASSET_DIR")
	overlayString(&cfg.LogLevel, "LOG_LEVEL")
}

func overlayString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overlayDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func overlayInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
