package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const defaultLockName = "player_bridge.lock"

// ErrAlreadyRunning means another bridge holds the instance lock.
var ErrAlreadyRunning = errors.New("another bridge instance is running")

// InstanceLock keeps a single bridge per lock file.
type InstanceLock struct {
	f *flock.Flock
}

// NewInstanceLock creates the lock; an empty path means the temp dir.
func NewInstanceLock(path string) (*InstanceLock, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), defaultLockName)
	}
	if err := CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("lock dir: %w", err)
	}
	return &InstanceLock{f: flock.New(path)}, nil
}

// TryLock takes the lock without waiting.
func (l *InstanceLock) TryLock() error {
	ok, err := l.f.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", l.f.Path(), err)
	}
	if !ok {
		return fmt.Errorf("%w (%s)", ErrAlreadyRunning, l.f.Path())
	}
	return nil
}

func (l *InstanceLock) Unlock() error { return l.f.Unlock() }
func (l *InstanceLock) Path() string  { return l.f.Path() }
