// Package config loads runtime configuration for the galaxyterm CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with a .env file loaded first when present.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the blog API
//	-t int      request timeout (seconds)
//	-n int      redirect countdown after an expired session (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://vagueame.top:5000",
//	  "request_timeout": "15s",
//	  "success_delay": "1500ms",
//	  "redirect_countdown": 3,
//	  "redirect_interval": "1s",
//	  "asset_dir": "/tmp/galaxyterm",
//	  "log_level": "info"
//	}
package config
