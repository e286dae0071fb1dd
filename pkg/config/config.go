// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/tidy/pkg/sorter"
	"gitlab.com/tozd/go/errors"
)

// 📚 Config represents the complete tidy configuration
type Config struct {
	IgnorePatterns  []string            `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty" toml:"ignore_patterns,omitempty" hcl:"ignore_patterns,optional"`
	Layout          string              `json:"layout,omitempty" yaml:"layout,omitempty" toml:"layout,omitempty" hcl:"layout,optional"`
	ExtraExtensions map[string][]string `json:"extra_extensions,omitempty" yaml:"extra_extensions,omitempty" toml:"extra_extensions,omitempty" hcl:"extra_extensions,optional"`
	Parallel        int                 `json:"parallel,omitempty" yaml:"parallel,omitempty" toml:"parallel,omitempty" hcl:"parallel,optional"`
	Lock            *bool               `json:"lock,omitempty" yaml:"lock,omitempty" toml:"lock,omitempty" hcl:"lock,optional"`
	LogLevel        string              `json:"log_level,omitempty" yaml:"log_level,omitempty" toml:"log_level,omitempty" hcl:"log_level,optional"`

	location string
}

// 🏭 Default returns a validated configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	// defaults never fail validation
	_ = Validate(context.Background(), cfg)
	return cfg
}

// 🔍 Validate checks the configuration and fills in defaults
func Validate(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	cleaned := make([]string, 0, len(cfg.IgnorePatterns))
	for i, p := range cfg.IgnorePatterns {
		p = strings.TrimSpace(p)
		if p == "" {
			return errors.Errorf("ignore_patterns[%d] is empty", i)
		}
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("ignore_patterns[%d]: invalid glob %q", i, p)
		}
		cleaned = append(cleaned, p)
	}
	cfg.IgnorePatterns = cleaned

	if cfg.Layout == "" {
		cfg.Layout = sorter.LayoutNested.String()
	}
	if _, err := sorter.ParseLayout(cfg.Layout); err != nil {
		return errors.Errorf("layout: %w", err)
	}

	for key := range cfg.ExtraExtensions {
		if _, err := sorter.ParseCategory(key); err != nil {
			return errors.Errorf("extra_extensions: %w", err)
		}
	}

	if cfg.Parallel < 0 {
		return errors.Errorf("parallel must not be negative, got %d", cfg.Parallel)
	}
	if cfg.Parallel == 0 {
		cfg.Parallel = 1
	}

	if cfg.Lock == nil {
		enabled := true
		cfg.Lock = &enabled
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return errors.Errorf("log_level: %w", err)
	}

	if _, err := cfg.SorterOptions(); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Strs("ignore_patterns", cfg.IgnorePatterns).
		Str("layout", cfg.Layout).
		Int("parallel", cfg.Parallel).
		Msg("configuration validated")

	return nil
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// LockEnabled reports whether each root should be locked while it is sorted
func (cfg *Config) LockEnabled() bool {
	return cfg.Lock == nil || *cfg.Lock
}

// Level returns the configured log level, falling back to info
func (cfg *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// 🧭 SorterOptions builds sorter options from the configuration. The
// reporter is left for the caller to set.
func (cfg *Config) SorterOptions() (sorter.Options, error) {
	layout, err := sorter.ParseLayout(cfg.Layout)
	if err != nil {
		return sorter.Options{}, errors.Errorf("layout: %w", err)
	}

	keys := make([]string, 0, len(cfg.ExtraExtensions))
	for key := range cfg.ExtraExtensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	extra := make(map[sorter.Category][]string, len(keys))
	for _, key := range keys {
		cat, err := sorter.ParseCategory(key)
		if err != nil {
			return sorter.Options{}, errors.Errorf("extra_extensions: %w", err)
		}
		extra[cat] = append(extra[cat], cfg.ExtraExtensions[key]...)
	}

	categorizer, err := sorter.NewCategorizer(extra)
	if err != nil {
		return sorter.Options{}, errors.Errorf("building categorizer: %w", err)
	}

	return sorter.Options{
		Categorizer:    categorizer,
		IgnorePatterns: cfg.IgnorePatterns,
		Layout:         layout,
	}, nil
}
