package fileutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic writes path through a temp file in the same directory and
// renames it into place, so readers see either the old file or the complete
// new one. The temp file is removed on any error.
func WriteAtomic(path string, mode os.FileMode, write func(io.Writer) (int64, error)) (int64, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	written, err := write(tmp)
	if err != nil {
		return 0, fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return 0, fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("rename into %s: %w", path, err)
	}
	committed = true

	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return written, nil
}

// ReplaceFile atomically replaces path with data, keeping the permission bits
// of the existing file (0o644 when it does not exist yet).
func ReplaceFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	_, err := WriteAtomic(path, mode, func(w io.Writer) (int64, error) {
		return bytes.NewReader(data).WriteTo(w)
	})
	return err
}

// CopyFileAtomic copies src to dst (0o644) through WriteAtomic, overwriting
// dst, and fails if the copied size differs from the source size.
func CopyFileAtomic(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}

	written, err := WriteAtomic(dst, 0o644, func(w io.Writer) (int64, error) {
		n, err := io.Copy(w, in)
		if err != nil {
			return n, err
		}
		if n != info.Size() {
			return n, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", info.Size(), n)
		}
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}
