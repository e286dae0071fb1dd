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

package sorter

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🗂️ Layout selects where category directories are created.
type Layout int

const (
	// LayoutNested creates category directories inside each visited directory.
	LayoutNested Layout = iota
	// LayoutFlat collects every file into category directories under the root.
	LayoutFlat
)

// String returns a string representation of Layout
func (l Layout) String() string {
	if l == LayoutFlat {
		return "flat"
	}
	return "nested"
}

// ParseLayout parses "nested" or "flat". An empty string is nested.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "nested":
		return LayoutNested, nil
	case "flat":
		return LayoutFlat, nil
	default:
		return LayoutNested, errors.Errorf("unknown layout %q", s)
	}
}

// 🔧 Options configures a Sorter.
type Options struct {
	// Categorizer maps extensions to categories; nil uses the built-in tables.
	Categorizer *Categorizer
	// Reporter receives an event for every step; nil discards them.
	Reporter Reporter
	// IgnorePatterns are doublestar globs matched against slash-separated
	// paths relative to the root. Matching entries are left alone.
	IgnorePatterns []string
	// Layout selects where category directories are created.
	Layout Layout
}

// 🧭 Sorter organizes directory trees into category folders.
type Sorter struct {
	categorizer *Categorizer
	reporter    Reporter
	ignore      []string
	layout      Layout
}

// 🏭 New creates a sorter with the given options
func New(opts Options) (*Sorter, error) {
	for _, p := range opts.IgnorePatterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid ignore pattern %q", p)
		}
	}

	s := &Sorter{
		categorizer: opts.Categorizer,
		reporter:    opts.Reporter,
		ignore:      opts.IgnorePatterns,
		layout:      opts.Layout,
	}
	if s.categorizer == nil {
		s.categorizer = defaultCategorizer
	}
	if s.reporter == nil {
		s.reporter = nopReporter{}
	}
	return s, nil
}

// Sort checks that root is an existing directory and sorts it.
// A missing root yields ErrPathNotFound.
func (s *Sorter) Sort(ctx context.Context, root string) error {
	info, err := os.Stat(root)
	if errors.Is(err, os.ErrNotExist) {
		return errors.Errorf("%s: %w", root, ErrPathNotFound)
	}
	if err != nil {
		return errors.Errorf("checking root %s: %w", root, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%s: %w", root, ErrNotADirectory)
	}
	return s.SortFolder(ctx, root)
}

// SortFolder recursively organizes root. Subdirectories are fully processed
// before they are checked for emptiness; reserved category directories are
// never entered, renamed or pruned.
func (s *Sorter) SortFolder(ctx context.Context, root string) error {
	return s.walk(ctx, filepath.Clean(root), filepath.Clean(root))
}

func (s *Sorter) walk(ctx context.Context, root, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Errorf("listing %s: %w", dir, err)
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Int("entries", len(entries)).Msg("sorting directory")

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("sorting %s: %w", dir, err)
		}

		path := filepath.Join(dir, entry.Name())

		if s.isIgnored(root, path) {
			s.report(ctx, Event{Kind: EventIgnored, Path: path})
			continue
		}

		if entry.IsDir() {
			err = s.visitDir(ctx, root, path, entry.Name())
		} else {
			err = s.visitFile(ctx, root, dir, path, entry.Name())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Sorter) visitDir(ctx context.Context, root, path, name string) error {
	if IsReservedDir(name) {
		s.report(ctx, Event{Kind: EventSkippedReserved, Path: path})
		return nil
	}

	pruned, err := s.prune(ctx, path)
	if err != nil || pruned {
		return err
	}

	if err := s.walk(ctx, root, path); err != nil {
		return err
	}

	_, err = s.prune(ctx, path)
	return err
}

func (s *Sorter) visitFile(ctx context.Context, root, dir, path, name string) error {
	if normalized := Normalize(name); normalized != name {
		target := filepath.Join(dir, normalized)
		free, err := isFree(target)
		if err != nil {
			return err
		}
		if free {
			if err := os.Rename(path, target); err != nil {
				return errors.Errorf("renaming %s to %s: %w", path, normalized, err)
			}
			s.report(ctx, Event{Kind: EventRenamed, Path: path, Dest: target})
			path, name = target, normalized
		} else {
			s.report(ctx, Event{Kind: EventRenameBlocked, Path: path, Dest: target})
		}
	}

	_, ext := SplitExt(name)
	cat := s.categorizer.Categorize(ext)

	destRoot := dir
	if s.layout == LayoutFlat {
		destRoot = root
	}

	switch cat {
	case Unclassified:
		s.report(ctx, Event{Kind: EventUnclassified, Path: path})
		return nil
	case Archive:
		return s.expandArchive(ctx, path, destRoot)
	default:
		_, err := s.moveToCategory(ctx, path, destRoot, cat)
		return err
	}
}

func (s *Sorter) prune(ctx context.Context, dir string) (bool, error) {
	pruned, err := PruneIfEmpty(dir)
	if err != nil {
		return false, err
	}
	if pruned {
		s.report(ctx, Event{Kind: EventPruned, Path: dir})
	}
	return pruned, nil
}

func (s *Sorter) isIgnored(root, path string) bool {
	if len(s.ignore) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range s.ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (s *Sorter) report(ctx context.Context, ev Event) {
	s.reporter.Report(ctx, ev)
}

// isFree reports whether nothing exists at path.
func isFree(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	return false, errors.Errorf("checking %s: %w", path, err)
}

// SortFolder organizes root with the built-in tables and default options.
func SortFolder(ctx context.Context, root string) error {
	s, _ := New(Options{})
	return s.SortFolder(ctx, root)
}

// Sort checks root and organizes it with default options.
func Sort(ctx context.Context, root string) error {
	s, _ := New(Options{})
	return s.Sort(ctx, root)
}
