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

import "gitlab.com/tozd/go/errors"

var (
	// ErrPathNotFound is returned when the root to sort does not exist.
	ErrPathNotFound = errors.Base("path not found")
	// ErrNotADirectory is returned when the root to sort is a file.
	ErrNotADirectory = errors.Base("not a directory")
	// ErrUnsupportedArchive is returned for archive extensions with no extractor.
	ErrUnsupportedArchive = errors.Base("unsupported archive format")
	// ErrUnsafeArchiveEntry is returned when an archive entry would land outside its extraction directory.
	ErrUnsafeArchiveEntry = errors.Base("archive entry escapes extraction directory")
)
