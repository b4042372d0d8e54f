package os

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Flock guards the capture device against a second mirror process.
type Flock struct {
	f *flock.Flock
}

func NewFileLock(path string) (*Flock, error) {
	if path == "" {
		path = filepath.Join(os.TempDir(), "sidecast.lock")
	}

	if err := CheckCreateDir(filepath.Dir(path)); err != nil {
		return nil, err
	} else {
		f, err := os.Create(path)
		defer func() { _ = f.Close() }()
		if err != nil {
			return nil, err
		}
	}

	f := Flock{
		f: flock.New(path),
	}

	return &f, nil
}

// TryLock attempts to take the lock without blocking.
// It returns false when another process already holds it.
func (f *Flock) TryLock() (bool, error) { return f.f.TryLock() }
func (f *Flock) Unlock() error          { return f.f.Unlock() }
