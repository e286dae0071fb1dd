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
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// 🗑️ PruneIfEmpty removes dir when it has no entries and reports whether it did.
func PruneIfEmpty(dir string) (bool, error) {
	empty, err := isEmptyDir(dir)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}
	if err := os.Remove(dir); err != nil {
		return false, errors.Errorf("removing empty directory %s: %w", dir, err)
	}
	return true, nil
}

func isEmptyDir(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, errors.Errorf("opening directory %s: %w", dir, err)
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		return false, errors.Errorf("reading directory %s: %w", dir, err)
	}
	return false, nil
}
