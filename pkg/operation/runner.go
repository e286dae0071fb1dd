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

package operation

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/tidy/pkg/log"
	"github.com/walteh/tidy/pkg/sorter"
	"github.com/walteh/tidy/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔧 Options configures a Runner
type Options struct {
	// Sorter is passed to every root's sorter; its Reporter is kept and
	// joined with the console and tracker reporters.
	Sorter sorter.Options
	// Parallel bounds how many roots are sorted at once. Values below one
	// mean one.
	Parallel int
	// LockDir holds per-root lock files. Empty disables locking.
	LockDir string
	// Tracker collects per-root summaries. A new one is created when nil.
	Tracker *status.Tracker
}

// DefaultLockDir is where lock files live unless configured otherwise
func DefaultLockDir() string {
	return filepath.Join(os.TempDir(), "tidy-locks")
}

// 🏃 Runner executes sort operations for one or more roots
type Runner struct {
	opts  Options
	newID func() string
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) *Runner {
	if opts.Tracker == nil {
		opts.Tracker = status.NewTracker()
	}
	if opts.Parallel < 1 {
		opts.Parallel = 1
	}
	return &Runner{
		opts:  opts,
		newID: uuid.NewString,
	}
}

// Tracker returns the tracker collecting this runner's summaries
func (r *Runner) Tracker() *status.Tracker {
	return r.opts.Tracker
}

// 🏃 Run sorts every root. A missing root is recorded as not found and does
// not fail the run; any other failure cancels the remaining roots. ctx must
// carry a console logger (see log.NewContext).
func (r *Runner) Run(ctx context.Context, roots []string) ([]status.Summary, error) {
	// fail here rather than inside a worker goroutine
	_ = log.FromContext(ctx)

	roots, err := CleanRoots(roots)
	if err != nil {
		return nil, err
	}

	ops := make([]Operation, 0, len(roots))
	for _, root := range roots {
		ops = append(ops, r.newSortOperation(root))
	}

	if err := r.execute(ctx, ops); err != nil {
		return r.opts.Tracker.Summaries(), err
	}
	return r.opts.Tracker.Summaries(), nil
}

func (r *Runner) newSortOperation(root string) *sortOperation {
	return &sortOperation{
		root:    root,
		runID:   r.newID(),
		opts:    r.opts.Sorter,
		lockDir: r.opts.LockDir,
		tracker: r.opts.Tracker,
	}
}

// ⚡ execute runs operations through an errgroup bounded by Parallel
func (r *Runner) execute(ctx context.Context, ops []Operation) error {
	logger := zerolog.Ctx(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallel)

	for _, op := range ops {
		op := op
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			err := op.Execute(gctx)
			if errors.Is(err, sorter.ErrPathNotFound) {
				logger.Debug().Str("root", op.Root()).Msg("root does not exist")
				return nil
			}
			if err != nil {
				return errors.Errorf("executing operation: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// CleanRoots makes roots absolute, drops duplicates and rejects roots that
// contain one another. Order is preserved.
func CleanRoots(roots []string) ([]string, error) {
	out := make([]string, 0, len(roots))
	seen := make(map[string]bool, len(roots))
	for _, root := range roots {
		if strings.TrimSpace(root) == "" {
			return nil, errors.Errorf("empty root path")
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Errorf("resolving %s: %w", root, err)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
	}

	for i, a := range out {
		for j, b := range out {
			if i != j && isWithin(a, b) {
				return nil, errors.Errorf("%s is inside %s: %w", a, b, ErrNestedRoots)
			}
		}
	}
	return out, nil
}

// isWithin reports whether path lies inside parent
func isWithin(path, parent string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
