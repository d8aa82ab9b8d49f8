package domain

import (
	"path/filepath"
	"runtime"
)

// Environment is an isolated interpreter installation rooted at an absolute
// filesystem path. It is the sole owner of its installed-package state.
type Environment struct {
	// Path is the absolute root of the environment directory.
	Path string

	// PythonVersion is the interpreter version recorded at creation,
	// e.g. "3.12".
	PythonVersion string
}

// MetaDir returns the directory holding blast's own records for the
// environment (state file, lock file, staging areas).
func (e *Environment) MetaDir() string {
	return filepath.Join(e.Path, ".blast")
}

// StatePath returns the path of the installed-package state file.
func (e *Environment) StatePath() string {
	return filepath.Join(e.MetaDir(), "packages.lock")
}

// LockPath returns the path of the advisory lock file.
func (e *Environment) LockPath() string {
	return filepath.Join(e.MetaDir(), "env.lock")
}

// BinDir returns the directory holding the environment's executables.
func (e *Environment) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.Path, "Scripts")
	}
	return filepath.Join(e.Path, "bin")
}

// PackagesDir returns the directory packages are installed into.
func (e *Environment) PackagesDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.Path, "Lib", "site-packages")
	}
	return filepath.Join(e.Path, "lib", "site-packages")
}
