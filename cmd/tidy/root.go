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

package main

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/tidy/cmd/tidy/commands"
	"github.com/walteh/tidy/cmd/tidy/opts"
	"github.com/walteh/tidy/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd builds the command tree. Shared state is filled into opts by
// the persistent pre-run once flags are parsed.
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "tidy",
		Short: "Sort messy folders into images, video, documents, audio and archives",
		Long: `tidy walks a folder, gives every file a safe ASCII name, moves it into
a folder for its kind, unpacks archives and removes folders left empty.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), rootOpts.Debug)
			setupColor(cmd.OutOrStdout())

			cfg, err := loadConfig(ctx, cmd, rootOpts.ConfigFile)
			if err != nil {
				return err
			}
			if !rootOpts.Debug {
				logger := zerolog.Ctx(ctx).Level(cfg.Level())
				ctx = logger.WithContext(ctx)
			}

			rootOpts.Config = cfg
			rootOpts.UserLogger = opts.NewUserLogger(ctx, cmd.OutOrStdout())
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(rootCmd, rootOpts)

	rootCmd.AddCommand(
		commands.NewSortCmd(rootOpts),
		commands.NewNormalizeCmd(rootOpts),
		commands.NewCategorizeCmd(rootOpts),
		commands.NewVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", config.DefaultFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// loadConfig reads the config file. The default file is optional; a file
// named explicitly must exist.
func loadConfig(ctx context.Context, cmd *cobra.Command, path string) (*config.Config, error) {
	if cmd.Flags().Changed("config") {
		cfg, err := config.LoadConfig(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadOptional(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if isTerminal(w) {
		w = zerolog.ConsoleWriter{Out: w}
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// setupColor turns styling off when output is not a terminal
func setupColor(w io.Writer) {
	if isTerminal(w) {
		return
	}
	color.NoColor = true
	pterm.DisableStyling()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
