// Package state persists the installed-package record of an environment as a
// pip-freeze style lockfile.
package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/core/ports"
)

// Store implements ports.StateStore on top of a plain text lockfile inside
// the environment's metadata directory.
type Store struct{}

// NewStore creates a new lockfile state store.
func NewStore() *Store {
	return &Store{}
}

// Read returns the recorded state of env. A missing lockfile means the
// environment has nothing installed yet.
func (s *Store) Read(env *domain.Environment) (domain.State, error) {
	data, err := os.ReadFile(env.StatePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.State{}, nil
		}
		return nil, zerr.Wrap(err, "failed to read state file")
	}

	st, err := domain.ParseStateLines(strings.Split(string(data), "\n"))
	if err != nil {
		return nil, zerr.With(
			zerr.Wrap(err, "failed to parse state file"),
			"path", env.StatePath(),
		)
	}
	return st, nil
}

// Write atomically replaces the recorded state of env. The new content is
// written to a temp file in the same directory and renamed into place, so a
// crash mid-write never leaves a partial record.
func (s *Store) Write(env *domain.Environment, st domain.State) error {
	dir := filepath.Dir(env.StatePath())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerr.Wrap(err, "failed to create state directory")
	}

	tmp, err := os.CreateTemp(dir, ".packages-*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp state file")
	}
	defer os.Remove(tmp.Name())

	content := strings.Join(st.Lines(), "\n")
	if len(content) > 0 {
		content += "\n"
	}
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return zerr.Wrap(err, "failed to write temp state file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return zerr.Wrap(err, "failed to sync temp state file")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp state file")
	}

	if err := os.Rename(tmp.Name(), env.StatePath()); err != nil {
		return zerr.Wrap(err, "failed to replace state file")
	}
	return nil
}

var _ ports.StateStore = (*Store)(nil)
