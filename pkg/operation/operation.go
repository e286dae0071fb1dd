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
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/walteh/tidy/pkg/log"
	"github.com/walteh/tidy/pkg/sorter"
	"github.com/walteh/tidy/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrLocked is returned when another process is sorting the same root.
	ErrLocked = errors.Base("root is locked by another sort")
	// ErrNestedRoots is returned when one root lies inside another.
	ErrNestedRoots = errors.Base("roots overlap")
)

// 🔧 Operation is one unit of work the runner executes
type Operation interface {
	// Root returns the directory the operation works on
	Root() string
	// Execute runs the operation
	Execute(ctx context.Context) error
}

// 🗂️ sortOperation sorts a single root
type sortOperation struct {
	root    string
	runID   string
	opts    sorter.Options
	lockDir string // empty disables locking
	tracker *status.Tracker
}

func (op *sortOperation) Root() string {
	return op.root
}

// 🏃 Execute sorts the root under its advisory lock, feeding events to the
// console logger carried by ctx and to the tracker
func (op *sortOperation) Execute(ctx context.Context) error {
	console := log.FromContext(ctx)

	logger := zerolog.Ctx(ctx).With().
		Str("root", op.root).
		Str("run_id", op.runID).
		Logger()
	ctx = logger.WithContext(ctx)

	trackRep := op.tracker.Start(op.root)

	if err := checkRoot(op.root); err != nil {
		op.finish(err)
		return err
	}

	if op.lockDir != "" {
		unlock, err := lockRoot(ctx, op.lockDir, op.root)
		if err != nil {
			op.finish(err)
			return err
		}
		defer unlock()
	}

	consoleRep := console.StartRootOperation(ctx, log.RootOperation{
		Path:   op.root,
		Layout: op.opts.Layout.String(),
		RunID:  op.runID,
	})
	defer console.EndRootOperation(ctx, op.root)

	opts := op.opts
	reps := sorter.MultiReporter{consoleRep, trackRep}
	if opts.Reporter != nil {
		reps = append(reps, opts.Reporter)
	}
	opts.Reporter = reps

	s, err := sorter.New(opts)
	if err != nil {
		op.finish(err)
		return errors.Errorf("creating sorter: %w", err)
	}

	err = s.Sort(ctx, op.root)
	op.finish(err)
	if err != nil {
		return errors.Errorf("sorting %s: %w", op.root, err)
	}
	return nil
}

func (op *sortOperation) finish(err error) {
	switch {
	case err == nil:
		op.tracker.Finish(op.root, status.StateSorted, nil)
	case errors.Is(err, sorter.ErrPathNotFound):
		op.tracker.Finish(op.root, status.StateNotFound, err)
	default:
		op.tracker.Finish(op.root, status.StateFailed, err)
	}
}

func checkRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%s: %w", root, sorter.ErrPathNotFound)
		}
		return errors.Errorf("checking root: %w", err)
	}
	if !info.IsDir() {
		return errors.Errorf("%s: %w", root, sorter.ErrNotADirectory)
	}
	return nil
}

// LockPath returns the lock file used for root inside dir
func LockPath(dir, root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(dir, "tidy-"+hex.EncodeToString(sum[:8])+".lock")
}

// 🔒 lockRoot takes the advisory lock for root without blocking
func lockRoot(ctx context.Context, dir, root string) (func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Errorf("creating lock directory: %w", err)
	}

	path := LockPath(dir, root)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, errors.Errorf("acquiring lock %s: %w", path, err)
	}
	if !ok {
		return nil, errors.Errorf("%s: %w", root, ErrLocked)
	}

	zerolog.Ctx(ctx).Debug().Str("lock", path).Msg("acquired root lock")

	return func() {
		if err := lock.Unlock(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("lock", path).Msg("releasing root lock")
			return
		}
		zerolog.Ctx(ctx).Debug().Str("lock", path).Msg("released root lock")
	}, nil
}
