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

	"gitlab.com/tozd/go/errors"
)

// 📦 moveToCategory moves file into dir/<category dir>, creating it on first
// use. An existing file with the same name at the destination is replaced.
func (s *Sorter) moveToCategory(ctx context.Context, file, dir string, cat Category) (string, error) {
	destDir := filepath.Join(dir, cat.DirName())
	if err := ensureDir(destDir); err != nil {
		return "", err
	}

	dest := filepath.Join(destDir, filepath.Base(file))
	overwrote, err := moveFile(file, dest)
	if err != nil {
		return "", err
	}

	if overwrote {
		s.report(ctx, Event{Kind: EventOverwrote, Path: file, Dest: dest, Category: cat})
	}
	s.report(ctx, Event{Kind: EventMoved, Path: file, Dest: dest, Category: cat})
	return dest, nil
}

// ensureDir creates a single directory level if it is missing.
func ensureDir(dir string) error {
	err := os.Mkdir(dir, 0o755)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrExist) {
		return errors.Errorf("creating directory %s: %w", dir, err)
	}

	info, statErr := os.Stat(dir)
	if statErr != nil {
		return errors.Errorf("checking directory %s: %w", dir, statErr)
	}
	if !info.IsDir() {
		return errors.Errorf("%s: %w", dir, ErrNotADirectory)
	}
	return nil
}

// moveFile renames src to dest and reports whether a file was replaced.
func moveFile(src, dest string) (bool, error) {
	overwrote := false
	if info, err := os.Lstat(dest); err == nil {
		if info.IsDir() {
			return false, errors.Errorf("moving %s: destination %s is a directory", src, dest)
		}
		overwrote = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, errors.Errorf("checking destination %s: %w", dest, err)
	}

	if err := os.Rename(src, dest); err != nil {
		return false, errors.Errorf("moving %s to %s: %w", src, dest, err)
	}
	return overwrote, nil
}
