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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/tidy/pkg/operation"
	"github.com/walteh/tidy/pkg/sorter"
	"gitlab.com/tozd/go/errors"
)

func runTidy(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	// keep the default config lookup inside the test directory
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSortCommand(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		config   string
		args     func(dir string) []string
		wantOut  []string
		wantErr  error
		validate func(t *testing.T, dir string)
	}{
		{
			name:  "sorts_folder",
			files: map[string]string{"box/report.docx": "doc", "box/Фото.png": "png"},
			args:  func(dir string) []string { return []string{"sort", "--no-lock", filepath.Join(dir, "box")} },
			wantOut: []string{
				"tidy • sorting 1 folder(s)",
				"Folder is sorted",
			},
			validate: func(t *testing.T, dir string) {
				assert.FileExists(t, filepath.Join(dir, "box", "documents", "report.docx"))
				assert.FileExists(t, filepath.Join(dir, "box", "images", "Foto.png"))
			},
		},
		{
			name:  "path_words_are_joined",
			files: map[string]string{"My Downloads/song.mp3": "mp3"},
			args: func(dir string) []string {
				return []string{"sort", "--no-lock", filepath.Join(dir, "My"), "Downloads"}
			},
			wantOut: []string{"Folder is sorted"},
			validate: func(t *testing.T, dir string) {
				assert.FileExists(t, filepath.Join(dir, "My Downloads", "audio", "song.mp3"))
			},
		},
		{
			name:    "missing_path_is_not_fatal",
			args:    func(dir string) []string { return []string{"sort", "--no-lock", filepath.Join(dir, "nowhere")} },
			wantOut: []string{"Path does not exist. Try again."},
		},
		{
			name:    "no_path",
			args:    func(dir string) []string { return []string{"sort"} },
			wantErr: errors.New("no path given"),
		},
		{
			name:  "several_roots_with_summary",
			files: map[string]string{"a/x.mov": "mov", "b/y.ogg": "ogg"},
			args: func(dir string) []string {
				return []string{"sort", "--no-lock", "--summary", "--parallel", "2",
					"--root", filepath.Join(dir, "a"), "--root", filepath.Join(dir, "b")}
			},
			wantOut: []string{
				"tidy • sorting 2 folder(s)",
				"a: Folder is sorted",
				"b: Folder is sorted",
				"Progress: 2/2 (100%)",
				"sorted",
			},
			validate: func(t *testing.T, dir string) {
				assert.FileExists(t, filepath.Join(dir, "a", "video", "x.mov"))
				assert.FileExists(t, filepath.Join(dir, "b", "audio", "y.ogg"))
			},
		},
		{
			name:    "nested_roots_rejected",
			files:   map[string]string{"a/b/x.txt": "x"},
			args:    func(dir string) []string { return []string{"sort", "--no-lock", "--root", filepath.Join(dir, "a"), filepath.Join(dir, "a", "b")} },
			wantOut: []string{"nothing was sorted"},
			wantErr: operation.ErrNestedRoots,
		},
		{
			name:    "file_root_fails",
			files:   map[string]string{"plain.txt": "x"},
			args:    func(dir string) []string { return []string{"sort", "--no-lock", filepath.Join(dir, "plain.txt")} },
			wantOut: []string{"plain.txt: ", "not a directory"},
			wantErr: sorter.ErrNotADirectory,
		},
		{
			name:  "overwrite_is_reported",
			files: map[string]string{"box/documents/a.txt": "old", "box/a.txt": "new"},
			args:  func(dir string) []string { return []string{"sort", "--no-lock", filepath.Join(dir, "box")} },
			wantOut: []string{
				"Folder is sorted",
				"1 existing file(s) were overwritten",
			},
		},
		{
			name:   "config_file_applies",
			files:  map[string]string{"box/keep.txt": "k", "box/sub/deep.txt": "d"},
			config: "layout: flat\nignore_patterns:\n  - keep.txt\n",
			args:   func(dir string) []string { return []string{"sort", "--no-lock", filepath.Join(dir, "box")} },
			validate: func(t *testing.T, dir string) {
				assert.FileExists(t, filepath.Join(dir, "box", "keep.txt"))
				assert.FileExists(t, filepath.Join(dir, "box", "documents", "deep.txt"))
				assert.NoDirExists(t, filepath.Join(dir, "box", "sub"))
			},
		},
		{
			name:   "flags_override_config",
			files:  map[string]string{"box/sub/deep.txt": "d", "box/skip.part": "p"},
			config: "layout: flat\n",
			args: func(dir string) []string {
				return []string{"sort", "--no-lock", "--layout", "nested", "--ignore", "**/*.part", filepath.Join(dir, "box")}
			},
			validate: func(t *testing.T, dir string) {
				assert.FileExists(t, filepath.Join(dir, "box", "sub", "documents", "deep.txt"))
				assert.FileExists(t, filepath.Join(dir, "box", "skip.part"))
			},
		},
		{
			name:    "bad_layout_flag",
			files:   map[string]string{"box/a.txt": "a"},
			args:    func(dir string) []string { return []string{"sort", "--layout", "spiral", filepath.Join(dir, "box")} },
			wantOut: []string{"invalid sort options", "unknown layout"},
			wantErr: errors.New("unknown layout"),
		},
		{
			name:  "with_lock",
			files: map[string]string{"box/a.bmp": "bmp"},
			args: func(dir string) []string {
				return []string{"sort", "--lock-dir", filepath.Join(dir, "locks"), filepath.Join(dir, "box")}
			},
			wantOut: []string{"Folder is sorted"},
			validate: func(t *testing.T, dir string) {
				assert.FileExists(t, filepath.Join(dir, "box", "images", "a.bmp"))
				assert.FileExists(t, operation.LockPath(filepath.Join(dir, "locks"), filepath.Join(dir, "box")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for path, content := range tt.files {
				write(t, filepath.Join(dir, path), content)
			}
			if tt.config != "" {
				write(t, filepath.Join(dir, ".tidy.yaml"), tt.config)
			}

			out, err := runTidy(t, dir, tt.args(dir)...)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(err, tt.wantErr) {
					return
				}
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				return
			}
			require.NoError(t, err)

			if tt.validate != nil {
				tt.validate(t, dir)
			}
		})
	}
}

func TestNormalizeCommand(t *testing.T) {
	out, err := runTidy(t, t.TempDir(), "normalize", "отчет.docx", "Щука Ёж.txt", "plain.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"otchet.docx", "Schuka_Ej.txt", "plain.txt"}, strings.Fields(out))
}

func TestCategorizeCommand(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, ".tidy.yaml"), "extra_extensions:\n  documents: [\".md\"]\n")

	out, err := runTidy(t, dir, "categorize", "a.JPG", "b.md", "c.xyz", "d.tar.gz")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"a.JPG\t" + sorter.Image.String(),
		"b.md\t" + sorter.Document.String(),
		"c.xyz\t" + sorter.Unclassified.String(),
		"d.tar.gz\t" + sorter.Archive.String(),
	}, lines)
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := runTidy(t, t.TempDir(), "--config", "missing.yaml", "normalize", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestVersionCommand(t *testing.T) {
	out, err := runTidy(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tidy version info")
	assert.Contains(t, out, "Go:")
}
