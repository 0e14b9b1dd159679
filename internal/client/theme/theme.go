// Package theme holds the canonical in-memory representation of a user's
// profile background overlay and the conversions to and from the two wire
// formats the server stores: "#RRGGBB[AA]" and "rgba(r,g,b,a)". Whatever
// format arrives last wins; nothing outside this package touches raw
// color strings.
package theme

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Defaults mirror what the web client falls back to when the server has
// no stored theme.
const (
	DefaultColor        = "#EBF0F3"
	DefaultOpacity      = 90
	DefaultGradientStop = 60
)

// Config is the canonical theme configuration. Color is always "#RRGGBB";
// Opacity and GradientStop are percentages in [0,100].
type Config struct {
	Color        string `json:"color"`
	Opacity      int    `json:"opacity"`
	GradientStop int    `json:"gradientStop"`
}

// Default returns the fallback configuration.
func Default() Config {
	return Config{Color: DefaultColor, Opacity: DefaultOpacity, GradientStop: DefaultGradientStop}
}

var (
	hexRe  = regexp.MustCompile(`^#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)
	rgbaRe = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+)\s*)?\)$`)
)

// Parse converts a wire color string into a canonical Config. The gradient
// stop is not encoded in either wire format, so it keeps the default.
func Parse(s string) (Config, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default(), nil
	}

	if hexRe.MatchString(s) {
		cfg := Default()
		cfg.Color = strings.ToUpper(s[:7])
		if len(s) == 9 {
			alpha, err := strconv.ParseUint(s[7:], 16, 8)
			if err != nil {
				return Config{}, fmt.Errorf("invalid alpha in %q: %w", s, err)
			}
			cfg.Opacity = int(float64(alpha)/255*100 + 0.5)
		}
		return cfg, nil
	}

	if m := rgbaRe.FindStringSubmatch(s); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r > 255 || g > 255 || b > 255 {
			return Config{}, fmt.Errorf("rgb component out of range in %q", s)
		}
		cfg := Default()
		cfg.Color = fmt.Sprintf("#%02X%02X%02X", r, g, b)
		if m[4] != "" {
			a, err := strconv.ParseFloat(m[4], 64)
			if err != nil || a < 0 || a > 1 {
				return Config{}, fmt.Errorf("invalid alpha in %q", s)
			}
			cfg.Opacity = int(a*100 + 0.5)
		}
		return cfg, nil
	}

	return Config{}, fmt.Errorf("unrecognized color format %q", s)
}

// Mask renders the "#RRGGBBAA" form the server stores on save.
func (c Config) Mask() string {
	alpha := int(float64(c.Opacity)/100*255 + 0.5)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 255 {
		alpha = 255
	}
	return fmt.Sprintf("%s%02X", strings.ToUpper(c.Color), alpha)
}

// Valid reports whether the config is within bounds.
func (c Config) Valid() bool {
	return hexRe.MatchString(c.Color) && len(c.Color) == 7 &&
		c.Opacity >= 0 && c.Opacity <= 100 &&
		c.GradientStop >= 0 && c.GradientStop <= 100
}
