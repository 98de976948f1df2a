package patch

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/ulikunitz/xz"
)

// openPatch opens a .pat file regardless of whether it sits bare on the
// filesystem or inside a compressed or archived container, picking the
// decoder by extension.
func openPatch(fs afero.Fs, path string) (io.ReadCloser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".7z":
		return open7z(fs, path)
	case ".xz":
		return openXZ(fs, path)
	case ".zip":
		return openZip(fs, path)
	default:
		f, err := fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("patch: open %s: %w", path, err)
		}
		return f, nil
	}
}

func open7z(fs afero.Fs, path string) (io.ReadCloser, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("patch: open %s: %w", path, err)
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("patch: stat %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	rc, err := sevenzip.NewReader(f, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("patch: open 7z archive %s: %w", path, err)
	}
	for _, fi := range rc.File {
		if strings.EqualFold(filepath.Ext(fi.Name), ".pat") {
			r, err := fi.Open()
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("patch: open %s inside %s: %w", fi.Name, path, err)
			}
			return &archiveEntry{ReadCloser: r, outer: f}, nil
		}
	}
	f.Close()
	return nil, fmt.Errorf("patch: no .pat entry inside %s", path)
}

// archiveEntry chains the closing of an archive member to its backing
// file, so callers only ever need to close the one handle they got back.
type archiveEntry struct {
	io.ReadCloser
	outer afero.File
}

func (e *archiveEntry) Close() error {
	err := e.ReadCloser.Close()
	if cerr := e.outer.Close(); err == nil {
		err = cerr
	}
	return err
}

func openXZ(fs afero.Fs, path string) (io.ReadCloser, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("patch: open %s: %w", path, err)
	}
	r, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("patch: open xz stream %s: %w", path, err)
	}
	return &archiveEntry{ReadCloser: io.NopCloser(r), outer: f}, nil
}

func openZip(fs afero.Fs, path string) (io.ReadCloser, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("patch: open %s: %w", path, err)
	}
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("patch: stat %s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	zr, err := zip.NewReader(f, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("patch: open zip archive %s: %w", path, err)
	}
	for _, fi := range zr.File {
		if strings.EqualFold(filepath.Ext(fi.Name), ".pat") {
			r, err := fi.Open()
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("patch: open %s inside %s: %w", fi.Name, path, err)
			}
			return &archiveEntry{ReadCloser: r, outer: f}, nil
		}
	}
	f.Close()
	return nil, fmt.Errorf("patch: no .pat entry inside %s", path)
}
