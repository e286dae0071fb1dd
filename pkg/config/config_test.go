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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tidy/pkg/sorter"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml",
			file: ".tidy.yaml",
			config: `
ignore_patterns:
  - "**/*.part"
  - ".git"
layout: flat
extra_extensions:
  images: [".webp"]
parallel: 2
lock: false
log_level: debug
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"**/*.part", ".git"}, cfg.IgnorePatterns, "ignore patterns should match")
				assert.Equal(t, "flat", cfg.Layout, "layout should match")
				assert.Equal(t, []string{".webp"}, cfg.ExtraExtensions["images"], "extra extensions should match")
				assert.Equal(t, 2, cfg.Parallel, "parallel should match")
				assert.False(t, cfg.LockEnabled(), "lock should be disabled")
				assert.Equal(t, zerolog.DebugLevel, cfg.Level(), "level should match")
			},
		},
		{
			name:   "yaml_minimal_gets_defaults",
			file:   "tidy.yml",
			config: "layout: nested\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 1, cfg.Parallel, "parallel should default to 1")
				assert.True(t, cfg.LockEnabled(), "lock should default to enabled")
				assert.Equal(t, "info", cfg.LogLevel, "log level should default to info")
			},
		},
		{
			name:   "yaml_empty_document",
			file:   "empty.yaml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "nested", cfg.Layout)
			},
		},
		{
			name:        "yaml_unknown_field",
			file:        ".tidy.yaml",
			config:      "destination: /tmp\n",
			errContains: "parsing YAML",
		},
		{
			name:   "json",
			file:   "tidy.json",
			config: `{"ignore_patterns": ["*.tmp"], "extra_extensions": {"audio": [".flac"]}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"*.tmp"}, cfg.IgnorePatterns)
				assert.Equal(t, []string{".flac"}, cfg.ExtraExtensions["audio"])
			},
		},
		{
			name:        "json_unknown_field",
			file:        "tidy.json",
			config:      `{"async": true}`,
			errContains: "parsing JSON",
		},
		{
			name: "hcl",
			file: "tidy.hcl",
			config: `
ignore_patterns = ["**/*.crdownload"]
layout          = layout.flat
parallel        = 3
extra_extensions = {
  video = [".webm"]
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"**/*.crdownload"}, cfg.IgnorePatterns)
				assert.Equal(t, "flat", cfg.Layout)
				assert.Equal(t, 3, cfg.Parallel)
				assert.Equal(t, []string{".webm"}, cfg.ExtraExtensions["video"])
			},
		},
		{
			name:        "hcl_syntax_error",
			file:        "tidy.hcl",
			config:      `layout = `,
			errContains: "parsing HCL",
		},
		{
			name: "toml",
			file: "tidy.toml",
			config: `
ignore_patterns = ["*.tmp"]
log_level = "warn"

[extra_extensions]
documents = [".md"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"*.tmp"}, cfg.IgnorePatterns)
				assert.Equal(t, zerolog.WarnLevel, cfg.Level())
				assert.Equal(t, []string{".md"}, cfg.ExtraExtensions["documents"])
			},
		},
		{
			name:        "toml_unknown_field",
			file:        "tidy.toml",
			config:      "force = true\n",
			errContains: "parsing TOML",
		},
		{
			name:   "tidy_file_as_hcl",
			file:   ".tidy",
			config: `layout = "flat"`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "flat", cfg.Layout)
			},
		},
		{
			name:        "unsupported_extension",
			file:        "tidy.ini",
			config:      "layout=flat",
			errContains: "unsupported file extension",
		},
		{
			name:        "invalid_layout",
			file:        ".tidy.yaml",
			config:      "layout: sideways\n",
			errContains: "unknown layout",
		},
		{
			name:        "invalid_glob",
			file:        ".tidy.yaml",
			config:      "ignore_patterns: ['[oops']\n",
			errContains: "invalid glob",
		},
		{
			name:        "unknown_category",
			file:        ".tidy.yaml",
			config:      "extra_extensions:\n  music: ['.flac']\n",
			errContains: "unknown category",
		},
		{
			name:        "conflicting_extension",
			file:        ".tidy.yaml",
			config:      "extra_extensions:\n  images: ['.mp3']\n",
			errContains: "already belongs to audio",
		},
		{
			name:        "negative_parallel",
			file:        ".tidy.yaml",
			config:      "parallel: -1\n",
			errContains: "parallel must not be negative",
		},
		{
			name:        "bad_log_level",
			file:        ".tidy.yaml",
			config:      "log_level: chatty\n",
			errContains: "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0o644))

			cfg, err := LoadConfig(ctx, path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	cfg, err := LoadOptional(ctx, filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, cfg.Location())

	_, err = LoadConfig(ctx, filepath.Join(t.TempDir(), DefaultFile))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestSorterOptions(t *testing.T) {
	cfg := &Config{
		IgnorePatterns:  []string{"*.tmp"},
		Layout:          "flat",
		ExtraExtensions: map[string][]string{"image": {".webp"}, "audio": {"flac"}},
	}
	require.NoError(t, Validate(context.Background(), cfg))

	opts, err := cfg.SorterOptions()
	require.NoError(t, err)

	assert.Equal(t, sorter.LayoutFlat, opts.Layout)
	assert.Equal(t, []string{"*.tmp"}, opts.IgnorePatterns)
	require.NotNil(t, opts.Categorizer)
	assert.Equal(t, sorter.Image, opts.Categorizer.Categorize(".WEBP"))
	assert.Equal(t, sorter.Audio, opts.Categorizer.Categorize(".flac"))
	assert.Equal(t, sorter.Document, opts.Categorizer.Categorize(".docx"))
	assert.Nil(t, opts.Reporter)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "nested", cfg.Layout)
	assert.Equal(t, 1, cfg.Parallel)
	assert.True(t, cfg.LockEnabled())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Empty(t, cfg.IgnorePatterns)
}
