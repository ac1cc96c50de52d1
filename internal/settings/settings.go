// Package settings loads envgate's own configuration from ENVGATE_*
// environment variables.
package settings

import (
	"fmt"
	"strings"

	"envgate/internal/runmode"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Prefix is prepended to every settings variable (e.g., ENVGATE_SPEC).
const Prefix = "ENVGATE"

// Settings contains envgate's own configuration. Variables are only read
// with the prefix, so a bare CI or LOG_LEVEL never leaks in.
type Settings struct {
	Spec        string   `split_words:"true"`
	ModeVar     string   `split_words:"true"`
	DefaultMode string   `split_words:"true"`
	ExemptModes []string `split_words:"true"`
	EnvFile     string   `split_words:"true"`
	LogLevel    string   `split_words:"true"`
	LogFormat   string   `split_words:"true"`
	CI          bool     `split_words:"true"`
}

// Default returns the settings used when no ENVGATE_* variable is set.
func Default() Settings {
	return Settings{
		ModeVar:     "NODE_ENV",
		DefaultMode: string(runmode.Production),
		ExemptModes: []string{string(runmode.Development)},
		LogLevel:    "warn",
		LogFormat:   "text",
	}
}

// Load reads settings from the process environment on top of Default.
// Unset variables keep their default value.
func Load() (Settings, error) {
	s := Default()
	if err := envconfig.Process(Prefix, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to load settings from env: %w", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, fmt.Errorf("settings validation failed: %w", err)
	}
	return s, nil
}

// Exempt returns the parsed exempt modes.
func (s Settings) Exempt() []runmode.Mode {
	return runmode.ParseList(s.ExemptModes)
}

// Fallback returns the mode used when the mode variable is unset.
func (s Settings) Fallback() runmode.Mode {
	if m := runmode.Parse(s.DefaultMode); !m.IsZero() {
		return m
	}
	return runmode.Production
}

func (s Settings) validate() error {
	if strings.TrimSpace(s.ModeVar) == "" {
		return fmt.Errorf("%s_MODE_VAR must not be empty", Prefix)
	}
	if strings.Contains(s.ModeVar, "=") {
		return fmt.Errorf("invalid %s_MODE_VAR: %q", Prefix, s.ModeVar)
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid %s_LOG_LEVEL: %w", Prefix, err)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid %s_LOG_FORMAT: %q (must be text or json)", Prefix, s.LogFormat)
	}
	return nil
}
