// Package config holds the per-widget settings surface: what to fetch, when
// to reveal the result list, and how commits are validated.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default values applied by DefaultSettings.
const (
	DefaultMinLength  = 1
	DefaultDelayMS    = 300
	DefaultQueryParam = "q"
)

// Settings is the immutable per-widget configuration. It is loaded once at
// widget construction and never mutated afterwards.
type Settings struct {
	// RequireMatch controls whether a free-typed value may be committed when
	// no option is selected. When true, only fetched options commit.
	RequireMatch bool `yaml:"require_match" toml:"require_match"`

	// RevealOnClick triggers a fetch when the input surface is clicked while
	// nothing has been committed yet.
	RevealOnClick bool `yaml:"reveal_on_click" toml:"reveal_on_click"`

	// RevealOnFocus triggers a fetch when the input gains focus while
	// nothing has been committed yet.
	RevealOnFocus bool `yaml:"reveal_on_focus" toml:"reveal_on_focus"`

	// RevealOnKeyDown triggers a fetch when ArrowDown is pressed with the
	// result list closed.
	RevealOnKeyDown bool `yaml:"reveal_on_keydown" toml:"reveal_on_keydown"`

	// SubmitOnEnter lets Enter keep its default submit behavior after a
	// commit instead of being suppressed.
	SubmitOnEnter bool `yaml:"submit_on_enter" toml:"submit_on_enter"`

	// URL is the suggestion endpoint. Empty URL silently disables fetching.
	URL string `yaml:"url" toml:"url"`

	// MinLength is the minimum query length (in runes) that triggers a fetch.
	MinLength int `yaml:"min_length" toml:"min_length"`

	// DelayMS is the debounce interval in milliseconds between the last
	// input event and the fetch it triggers.
	DelayMS int `yaml:"delay_ms" toml:"delay_ms"`

	// QueryParam is the query-string parameter carrying the typed text.
	QueryParam string `yaml:"query_param" toml:"query_param"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		RequireMatch:    true,
		RevealOnClick:   false,
		RevealOnFocus:   false,
		RevealOnKeyDown: true,
		MinLength:       DefaultMinLength,
		DelayMS:         DefaultDelayMS,
		QueryParam:      DefaultQueryParam,
	}
}

// Normalize fills zero values with defaults so partially specified settings
// files behave predictably.
func (s Settings) Normalize() Settings {
	if s.MinLength <= 0 {
		s.MinLength = DefaultMinLength
	}
	if s.DelayMS <= 0 {
		s.DelayMS = DefaultDelayMS
	}
	if s.QueryParam == "" {
		s.QueryParam = DefaultQueryParam
	}
	return s
}

// DebounceDelay returns the configured debounce interval as a duration.
func (s Settings) DebounceDelay() time.Duration {
	return time.Duration(s.DelayMS) * time.Millisecond
}

// FetchEnabled reports whether the widget may issue network fetches. A
// missing endpoint disables fetching rather than raising an error.
func (s Settings) FetchEnabled() bool {
	return s.URL != ""
}

// Load reads a settings file in YAML or TOML form, chosen by file extension,
// and normalizes the result. Unknown extensions fall back to YAML.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings file: %w", err)
	}

	s := DefaultSettings()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse TOML settings %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("parse YAML settings %s: %w", path, err)
		}
	}
	return s.Normalize(), nil
}
