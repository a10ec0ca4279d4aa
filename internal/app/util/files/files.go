package files

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteUnique copies r into a new file named <prefix><uuid><suffix> inside dir.
// The file is created exclusively, so two callers never share a path. On any
// error the partial file is removed.
func WriteUnique(dir, prefix, suffix string, r io.Reader) (string, int64, error) {
	path := filepath.Join(dir, prefix+uuid.NewString()+suffix)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", 0, err
	}

	size, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(path)
		return "", 0, err
	}

	return path, size, nil
}

// Remove deletes path. A file that is already gone is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// StripExt returns path without its final extension.
func StripExt(path string) string {
	return path[:len(path)-len(filepath.Ext(path))]
}
