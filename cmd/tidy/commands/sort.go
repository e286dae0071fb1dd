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

package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/tidy/cmd/tidy/opts"
	"github.com/walteh/tidy/pkg/config"
	"github.com/walteh/tidy/pkg/log"
	"github.com/walteh/tidy/pkg/operation"
	"github.com/walteh/tidy/pkg/status"
	"gitlab.com/tozd/go/errors"
)

type sortFlags struct {
	roots    []string
	layout   string
	ignore   []string
	parallel int
	noLock   bool
	summary  bool
	lockDir  string
}

// NewSortCmd creates a new sort command
func NewSortCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &sortFlags{}

	cmd := &cobra.Command{
		Use:   "sort [path words...]",
		Short: "Sort a folder into category subfolders",
		Long: `Sort organizes a folder in place.
It will:
1. Transliterate and sanitize every file name
2. Move images, video, documents and audio into category folders
3. Move archives into "archives" and extract them next to it
4. Remove folders left empty

The words of the path are joined with single spaces, so
"tidy sort My Downloads" sorts "My Downloads".`,
		Example: `  tidy sort ~/Downloads
  tidy sort --root ~/Downloads --root ~/Desktop --parallel 2 --summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "sort").Logger().WithContext(ctx)

			roots := flags.roots
			if path := strings.Join(args, " "); path != "" {
				roots = append([]string{path}, roots...)
			}
			if len(roots) == 0 {
				return errors.Errorf("no path given")
			}

			cfg := *opts.Config
			if cmd.Flags().Changed("layout") {
				cfg.Layout = flags.layout
			}
			cfg.IgnorePatterns = append(append([]string(nil), cfg.IgnorePatterns...), flags.ignore...)
			if cmd.Flags().Changed("parallel") {
				cfg.Parallel = flags.parallel
			}
			if flags.noLock {
				lock := false
				cfg.Lock = &lock
			}
			err := config.Validate(ctx, &cfg)
			opts.UserLogger.LogValidation("sort options", err)
			if err != nil {
				return errors.Errorf("validating flags: %w", err)
			}

			sorterOpts, err := cfg.SorterOptions()
			if err != nil {
				return errors.Errorf("building sorter options: %w", err)
			}

			lockDir := ""
			if cfg.LockEnabled() {
				lockDir = flags.lockDir
			}

			console := log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx), opts.Debug)
			ctx = log.NewContext(ctx, console)

			runner := operation.NewRunner(operation.Options{
				Sorter:   sorterOpts,
				Parallel: cfg.Parallel,
				LockDir:  lockDir,
			})

			console.Header(fmt.Sprintf("sorting %d folder(s)", len(roots)))
			summaries, runErr := runner.Run(ctx, roots)

			console.LogNewline()
			multi := len(summaries) > 1
			for _, s := range summaries {
				if s.State == status.StateFailed {
					console.Errorf("%s: %v", s.Root, s.Error)
					continue
				}
				opts.UserLogger.LogOutcome(s, multi)
				if n := len(s.Overwrites); n > 0 {
					console.Warningf("%s: %d existing file(s) were overwritten", s.Root, n)
				}
			}
			if runErr != nil && len(summaries) == 0 {
				console.Errorf("nothing was sorted: %v", runErr)
			}
			if multi {
				opts.UserLogger.LogProgress(summaries)
			}
			if flags.summary {
				opts.UserLogger.LogSummary(summaries)
			}

			if runErr != nil {
				return errors.Errorf("sorting: %w", runErr)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&flags.roots, "root", nil, "additional root to sort (repeatable)")
	cmd.Flags().StringVar(&flags.layout, "layout", "", "where category folders go: nested or flat")
	cmd.Flags().StringArrayVar(&flags.ignore, "ignore", nil, "glob of paths to leave alone (repeatable)")
	cmd.Flags().IntVar(&flags.parallel, "parallel", 1, "how many roots to sort at once")
	cmd.Flags().BoolVar(&flags.noLock, "no-lock", false, "do not take the per-root lock")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary table when done")
	cmd.Flags().StringVar(&flags.lockDir, "lock-dir", operation.DefaultLockDir(), "directory for lock files")
	_ = cmd.Flags().MarkHidden("lock-dir")

	return cmd
}
