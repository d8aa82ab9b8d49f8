// Package venv materializes and opens Python virtual environments.
package venv

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/zerr"

	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/core/ports"
)

// pyvenvConfig is the marker file every venv carries at its root.
const pyvenvConfig = "pyvenv.cfg"

// Store implements ports.EnvironmentStore on top of the interpreter's own
// venv module. Creation shells out; everything else is filesystem reads.
type Store struct {
	runner ports.CommandRunner
	logger ports.Logger
}

// NewStore creates a new environment store.
func NewStore(runner ports.CommandRunner, logger ports.Logger) *Store {
	return &Store{
		runner: runner,
		logger: logger,
	}
}

// Materialize creates a fresh environment at path. pythonVersion selects a
// versioned interpreter on PATH ("3.12" runs python3.12); empty means the
// default python3.
func (s *Store) Materialize(ctx context.Context, path, pythonVersion string) (*domain.Environment, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve environment path")
	}

	if _, err := os.Stat(filepath.Join(abs, pyvenvConfig)); err == nil {
		return nil, zerr.With(zerr.New("environment already exists"), "path", abs)
	}

	interpreter := "python3"
	if pythonVersion != "" {
		interpreter = "python" + pythonVersion
	}

	s.logger.Info("creating environment at " + abs)
	if _, err := s.runner.Run(ctx, interpreter, "-m", "venv", abs); err != nil {
		return nil, zerr.Wrap(err, "failed to create virtual environment")
	}

	env := &domain.Environment{Path: abs, PythonVersion: pythonVersion}
	if err := os.MkdirAll(env.MetaDir(), 0o755); err != nil {
		return nil, zerr.Wrap(err, "failed to create metadata directory")
	}

	if env.PythonVersion == "" {
		if v, err := readPyvenvVersion(abs); err == nil {
			env.PythonVersion = v
		}
	}
	return env, nil
}

// Open returns the environment rooted at path. The path must be a venv that
// blast manages, meaning it carries both pyvenv.cfg and the metadata
// directory.
func (s *Store) Open(path string) (*domain.Environment, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve environment path")
	}

	if _, err := os.Stat(filepath.Join(abs, pyvenvConfig)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrNotAnEnvironment, "path", abs)
		}
		return nil, zerr.Wrap(err, "failed to inspect environment")
	}
	env := &domain.Environment{Path: abs}
	if _, err := os.Stat(env.MetaDir()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrNotAnEnvironment, "path", abs)
		}
		return nil, zerr.Wrap(err, "failed to inspect environment")
	}

	if v, err := readPyvenvVersion(abs); err == nil {
		env.PythonVersion = v
	}
	return env, nil
}

// LocateExecutable returns the absolute path of tool inside env, honoring
// the platform's venv layout.
func (s *Store) LocateExecutable(env *domain.Environment, tool string) (string, error) {
	candidate := filepath.Join(env.BinDir(), tool)
	if runtime.GOOS == "windows" && filepath.Ext(tool) == "" {
		candidate += ".exe"
	}

	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", zerr.With(domain.ErrExecutableNotFound, "tool", tool)
	}
	return candidate, nil
}

// readPyvenvVersion extracts the interpreter version recorded in pyvenv.cfg.
func readPyvenvVersion(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, pyvenvConfig))
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "version" {
			return strings.TrimSpace(value), nil
		}
	}
	return "", zerr.New("pyvenv.cfg has no version entry")
}

var _ ports.EnvironmentStore = (*Store)(nil)
