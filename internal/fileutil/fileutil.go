package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/arcanaland/deckhand/internal/save"
)

// LockName is the lock file created in the output root while a run is active.
const LockName = ".deckhand.lock"

// ErrLocked is returned when another run holds the output root.
var ErrLocked = errors.New("another deckhand run is using this output directory")

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place. An existing file keeps its permissions.
func WriteFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".deckhand-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// WriteJSON encodes v in the tool's output layout and writes it atomically.
func WriteJSON(path string, v any) error {
	data, err := save.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return WriteFileAtomic(path, data)
}

// LockDir takes an exclusive lock on dir for the duration of a run. The
// returned function releases it.
func LockDir(dir string) (func() error, error) {
	lock := flock.New(filepath.Join(dir, LockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return lock.Unlock, nil
}
