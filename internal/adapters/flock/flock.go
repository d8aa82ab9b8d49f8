// Package flock serializes environment mutation through an advisory lock
// file inside the environment's metadata directory.
package flock

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/zerr"

	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/core/ports"
)

// Locker implements ports.EnvironmentLocker using exclusive lock file
// creation. O_EXCL makes creation atomic on every platform blast supports.
type Locker struct{}

// NewLocker creates a new file-based environment locker.
func NewLocker() *Locker {
	return &Locker{}
}

// Acquire takes the exclusive lock for env. When another process already
// holds it, Acquire fails immediately with domain.ErrEnvironmentBusy rather
// than waiting.
func (l *Locker) Acquire(env *domain.Environment) (func() error, error) {
	path := env.LockPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, zerr.Wrap(err, "failed to create lock directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, zerr.With(domain.ErrEnvironmentBusy, "lock", path)
		}
		return nil, zerr.Wrap(err, "failed to create lock file")
	}

	// Record the owner pid so a stuck lock can be diagnosed by hand.
	_, _ = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, zerr.Wrap(err, "failed to close lock file")
	}

	release := func() error {
		if err := os.Remove(path); err != nil {
			return zerr.Wrap(err, "failed to release environment lock")
		}
		return nil
	}
	return release, nil
}

var _ ports.EnvironmentLocker = (*Locker)(nil)
