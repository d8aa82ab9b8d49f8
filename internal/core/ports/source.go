// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.blast.dev/blast/internal/core/domain"
)

// ArtifactSource provides package versions, per-version metadata, and
// downloadable artifacts.
//
// Implementations retry transient network failures internally with bounded
// backoff; all other failures propagate to the caller unchanged.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type ArtifactSource interface {
	// ListVersions returns the available versions of a package, newest first.
	// Returns domain.ErrArtifactNotFound for unknown packages.
	ListVersions(ctx context.Context, name domain.PackageName) ([]domain.Version, error)

	// FetchMetadata returns the dependencies a package declares at a version.
	// Returns domain.ErrVersionNotFound if the version does not exist.
	FetchMetadata(ctx context.Context, name domain.PackageName, version domain.Version) ([]domain.PackageSpec, error)

	// FetchArtifact downloads the package payload and returns its local path
	// together with the index-declared checksum.
	FetchArtifact(ctx context.Context, name domain.PackageName, version domain.Version) (domain.Artifact, error)
}
