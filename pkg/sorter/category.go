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
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📂 Category is a file-type group with a reserved destination directory.
type Category string

const (
	Unclassified Category = ""
	Image        Category = "images"
	Video        Category = "video"
	Document     Category = "documents"
	Audio        Category = "audio"
	Archive      Category = "archives"
)

// Categories lists every category in a stable order.
var Categories = []Category{Image, Video, Document, Audio, Archive}

// DirName returns the reserved directory name for the category.
func (c Category) DirName() string {
	return string(c)
}

// String returns a human readable name for the category.
func (c Category) String() string {
	switch c {
	case Image:
		return "image"
	case Video:
		return "video"
	case Document:
		return "document"
	case Audio:
		return "audio"
	case Archive:
		return "archive"
	default:
		return "unclassified"
	}
}

// ParseCategory resolves a reserved directory name or a category name.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if s == c.DirName() || s == c.String() {
			return c, nil
		}
	}
	return Unclassified, errors.Errorf("unknown category %q", s)
}

var defaultExtensions = map[Category][]string{
	Image:    {".jpeg", ".png", ".jpg", ".svg", ".bmp", ".heic"},
	Video:    {".avi", ".mp4", ".mov", ".mkv"},
	Document: {".doc", ".docx", ".txt", ".pdf", ".xls", ".pptx", ".xlsx"},
	Audio:    {".mp3", ".ogg", ".wav", ".amr"},
	Archive:  {".zip", ".gz", ".tar", ".tar.gz"},
}

// IsReservedDir reports whether name is one of the category directory names.
// Such directories are treated as already organized.
func IsReservedDir(name string) bool {
	for _, c := range Categories {
		if name == c.DirName() {
			return true
		}
	}
	return false
}

// 🏷️ Categorizer maps extensions to categories.
type Categorizer struct {
	byExt map[string]Category
}

// NewCategorizer builds a categorizer from the built-in tables plus extra
// extensions. Extra extensions may not be claimed by two categories.
func NewCategorizer(extra map[Category][]string) (*Categorizer, error) {
	c := &Categorizer{byExt: make(map[string]Category)}
	for _, cat := range Categories {
		for _, ext := range defaultExtensions[cat] {
			c.byExt[ext] = cat
		}
	}

	cats := make([]Category, 0, len(extra))
	for cat := range extra {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	for _, cat := range cats {
		if cat == Unclassified {
			return nil, errors.New("extra extensions need a category")
		}
		for _, ext := range extra[cat] {
			ext = canonicalExt(ext)
			if ext == "" {
				return nil, errors.Errorf("empty extension for category %s", cat)
			}
			if existing, ok := c.byExt[ext]; ok && existing != cat {
				return nil, errors.Errorf("extension %s already belongs to %s", ext, existing)
			}
			c.byExt[ext] = cat
		}
	}
	return c, nil
}

// Categorize returns the category of ext, or Unclassified. Matching is case
// insensitive and includes the leading dot.
func (c *Categorizer) Categorize(ext string) Category {
	return c.byExt[strings.ToLower(ext)]
}

// Extensions returns the sorted extensions that belong to cat.
func (c *Categorizer) Extensions(cat Category) []string {
	var out []string
	for ext, owner := range c.byExt {
		if owner == cat {
			out = append(out, ext)
		}
	}
	sort.Strings(out)
	return out
}

var defaultCategorizer, _ = NewCategorizer(nil)

// Categorize looks ext up in the built-in tables.
func Categorize(ext string) Category {
	return defaultCategorizer.Categorize(ext)
}

func canonicalExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
