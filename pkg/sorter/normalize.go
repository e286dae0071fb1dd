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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// source alphabet and its latin replacements, paired by index
var (
	cyrillicSymbols = []rune("абвгдеёжзийклмнопрстуфхцчшщъыьэюяєіїґ")
	latinAlternates = []string{
		"a", "b", "v", "g", "d", "e", "e", "j", "z", "i", "j", "k", "l", "m", "n", "o", "p", "r", "s", "t", "u",
		"f", "h", "ts", "ch", "sh", "sch", "", "y", "", "e", "yu", "ya", "je", "i", "ji", "g",
	}
)

// 🔤 transliteration maps a single rune to its ascii replacement. Built once in init, read-only after.
var transliteration map[rune]string

func init() {
	transliteration = buildTransliteration(cyrillicSymbols, latinAlternates)
}

func buildTransliteration(from []rune, to []string) map[rune]string {
	if len(from) != len(to) {
		panic("transliteration alphabets differ in length")
	}

	title := cases.Title(language.Und)
	table := make(map[rune]string, len(from)*2)
	for i, r := range from {
		table[r] = to[i]
		table[[]rune(strings.ToUpper(string(r)))[0]] = title.String(to[i])
	}
	return table
}

// 🧹 Normalize maps a file name to a filesystem-safe ascii form.
//
// The stem (everything before the last dot) is transliterated and every rune
// that is not an ascii letter, digit or underscore becomes an underscore. The
// extension, including its dot, is kept as is. Normalize is idempotent.
func Normalize(name string) string {
	stem, ext := SplitExt(name)

	var b strings.Builder
	b.Grow(len(stem))
	for _, r := range norm.NFC.String(stem) {
		if repl, ok := transliteration[r]; ok {
			b.WriteString(repl)
			continue
		}
		if isWordRune(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}

	return b.String() + ext
}

// SplitExt splits name at its last dot. The extension keeps the dot; a name
// without a dot has an empty extension.
func SplitExt(name string) (stem, ext string) {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
