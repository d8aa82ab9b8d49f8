package domain

import "go.trai.ch/zerr"

var (
	// ErrResolutionConflict is returned when no version assignment satisfies every constraint.
	ErrResolutionConflict = zerr.New("resolution conflict")

	// ErrArtifactNotFound is returned when the index has no package with the requested name.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrVersionNotFound is returned when a package exists but the requested version does not.
	ErrVersionNotFound = zerr.New("version not found")

	// ErrNetworkFailure is returned for transient fetch failures after retries are exhausted.
	ErrNetworkFailure = zerr.New("network failure")

	// ErrChecksumMismatch is returned when a downloaded artifact does not match its
	// declared digest. Never retried.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrEnvironmentBusy is returned when another process holds the environment lock.
	ErrEnvironmentBusy = zerr.New("environment busy")

	// ErrStaleBaseline is returned when the environment state changed between
	// resolution and commit.
	ErrStaleBaseline = zerr.New("stale baseline")

	// ErrInvalidSpec is returned when a requirement string cannot be parsed.
	ErrInvalidSpec = zerr.New("invalid package spec")

	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrStateCorrupt is returned when the environment state file cannot be parsed.
	ErrStateCorrupt = zerr.New("state file corrupt")

	// ErrNotAnEnvironment is returned when a path does not contain a managed environment.
	ErrNotAnEnvironment = zerr.New("not a blast environment")

	// ErrExecutableNotFound is returned when a tool is not present in an environment.
	ErrExecutableNotFound = zerr.New("executable not found")
)
