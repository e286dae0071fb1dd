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
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// archiveFormat identifies how an archive is unpacked.
type archiveFormat int

const (
	formatUnknown archiveFormat = iota
	formatZip
	formatTar
	formatTarGz
	formatGz
)

// compound suffixes are checked before the single last extension
var archiveSuffixes = []struct {
	suffix string
	format archiveFormat
}{
	{".tar.gz", formatTarGz},
	{".tgz", formatTarGz},
	{".zip", formatZip},
	{".tar", formatTar},
	{".gz", formatGz},
}

func detectFormat(name string) (archiveFormat, string) {
	lower := strings.ToLower(name)
	for _, s := range archiveSuffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return s.format, s.suffix
		}
	}
	return formatUnknown, ""
}

// ArchiveStem returns the archive base name without its archive extension.
// "photos.tar.gz" becomes "photos"; unknown extensions lose only the last one.
// The result is never empty: ".zip" yields "zip" and ".tar.gz" "tar_gz".
func ArchiveStem(name string) string {
	name = filepath.Base(name)
	stem, ext := SplitExt(name)
	if _, suffix := detectFormat(name); suffix != "" {
		stem, ext = name[:len(name)-len(suffix)], suffix
	}
	if stem != "" {
		return stem
	}
	if ext = strings.ReplaceAll(strings.TrimPrefix(ext, "."), ".", "_"); ext != "" {
		return ext
	}
	return "_"
}

// 📤 expandArchive moves the archive into dir/archives, unpacks it into
// dir/archives/<stem> and removes the moved archive. When unpacking fails
// the archive stays in dir/archives.
func (s *Sorter) expandArchive(ctx context.Context, file, dir string) error {
	archiveDir := filepath.Join(dir, Archive.DirName())
	if err := ensureDir(archiveDir); err != nil {
		return err
	}

	moved := filepath.Join(archiveDir, filepath.Base(file))
	overwrote, err := moveFile(file, moved)
	if err != nil {
		return err
	}
	if overwrote {
		s.report(ctx, Event{Kind: EventOverwrote, Path: file, Dest: moved, Category: Archive})
	}
	s.report(ctx, Event{Kind: EventMoved, Path: file, Dest: moved, Category: Archive})

	target := filepath.Join(archiveDir, ArchiveStem(moved))
	if err := Extract(ctx, moved, target); err != nil {
		return errors.Errorf("extracting %s: %w", moved, err)
	}

	if err := os.Remove(moved); err != nil {
		return errors.Errorf("removing extracted archive %s: %w", moved, err)
	}
	s.report(ctx, Event{Kind: EventExtracted, Path: moved, Dest: target, Category: Archive})
	return nil
}

// Extract unpacks the archive at path into destDir, creating destDir as
// needed. The format is chosen by the file name.
func Extract(ctx context.Context, path, destDir string) error {
	format, _ := detectFormat(path)
	if format == formatUnknown {
		return errors.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedArchive)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return errors.Errorf("creating extraction directory: %w", err)
	}

	switch format {
	case formatZip:
		return extractZip(ctx, path, destDir)
	case formatTar:
		f, err := os.Open(path)
		if err != nil {
			return errors.Errorf("opening archive: %w", err)
		}
		defer f.Close()
		return extractTar(ctx, f, destDir)
	default:
		return extractGzip(ctx, path, destDir, format == formatTarGz)
	}
}

func extractZip(ctx context.Context, path, destDir string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return errors.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := entryPath(destDir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Errorf("creating %s: %w", f.Name, err)
			}
			continue
		}

		if !f.Mode().IsRegular() {
			zerolog.Ctx(ctx).Debug().
				Str("entry", f.Name).
				Str("mode", f.Mode().String()).
				Msg("skipping zip entry that is not a file or directory")
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return errors.Errorf("opening zip entry %s: %w", f.Name, err)
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func extractTar(ctx context.Context, r io.Reader, destDir string) error {
	tr := tar.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return errors.Errorf("reading tar: %w", err)
		}

		target, err := entryPath(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.Errorf("creating %s: %w", hdr.Name, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, hdr.FileInfo().Mode()); err != nil {
				return err
			}
		default:
			zerolog.Ctx(ctx).Debug().
				Str("entry", hdr.Name).
				Int("type", int(hdr.Typeflag)).
				Msg("skipping tar entry that is not a file or directory")
		}
	}
}

// extractGzip unpacks a gzip stream. A tar payload is untarred; anything
// else becomes a single file named after the gzip header or the stem.
func extractGzip(ctx context.Context, path, destDir string, wantTar bool) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return errors.Errorf("opening gzip: %w", err)
	}
	defer gz.Close()

	br := bufio.NewReaderSize(gz, 1024)
	if wantTar || isTarStream(br) {
		return extractTar(ctx, br, destDir)
	}

	name := filepath.Base(filepath.FromSlash(gz.Header.Name))
	switch name {
	case ".", "..", string(filepath.Separator):
		name = ArchiveStem(path)
	}
	target, err := entryPath(destDir, name)
	if err != nil {
		return err
	}
	return writeEntry(target, br, 0o644)
}

var ustarMagic = []byte("ustar")

func isTarStream(br *bufio.Reader) bool {
	head, _ := br.Peek(262)
	return len(head) >= 262 && bytes.Equal(head[257:262], ustarMagic)
}

// entryPath joins name onto destDir and refuses results outside destDir.
func entryPath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("%s: %w", name, ErrUnsafeArchiveEntry)
	}
	return target, nil
}

func writeEntry(target string, r io.Reader, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Errorf("creating parent of %s: %w", target, err)
	}

	perm := mode.Perm()
	if perm == 0 {
		perm = 0o644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm|0o200)
	if err != nil {
		return errors.Errorf("creating %s: %w", target, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return errors.Errorf("writing %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing %s: %w", target, err)
	}
	return nil
}
