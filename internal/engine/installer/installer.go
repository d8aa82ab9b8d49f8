// Package installer applies install plans to an environment transactionally:
// every operation is staged before any live mutation, and the state write is
// the single commit point.
package installer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Installer executes install plans against environments.
type Installer struct {
	source   ports.ArtifactSource
	states   ports.StateStore
	reporter ports.Reporter
	logger   ports.Logger

	// parallelism bounds concurrent artifact fetches during staging.
	parallelism int
}

// New creates an Installer. parallelism must be at least 1.
func New(
	source ports.ArtifactSource,
	states ports.StateStore,
	reporter ports.Reporter,
	logger ports.Logger,
	parallelism int,
) *Installer {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Installer{
		source:      source,
		states:      states,
		reporter:    reporter,
		logger:      logger,
		parallelism: parallelism,
	}
}

// Apply executes the plan against the environment and records target as the
// new state.
//
// baselineFingerprint is the fingerprint of the state the plan was computed
// against; if the environment's recorded state no longer matches, Apply
// fails with domain.ErrStaleBaseline before touching anything, and the
// caller re-plans.
//
// Every operation is staged into a side directory first. Any staging
// failure (fetch error, checksum mismatch, cancellation) discards the
// staging area and leaves the live tree and recorded state untouched. Only
// after all operations have staged does Apply mutate the live tree, with
// the replaced content kept aside for rollback until the state file has
// been atomically replaced.
func (i *Installer) Apply(
	ctx context.Context,
	env *domain.Environment,
	plan *domain.Plan,
	target domain.State,
	baselineFingerprint uint64,
) error {
	if plan.Empty() {
		return nil
	}

	i.reporter.EmitPlan(ctx, planSummary(plan))

	if err := os.MkdirAll(env.MetaDir(), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create environment metadata directory")
	}
	staging, err := os.MkdirTemp(env.MetaDir(), "staging-")
	if err != nil {
		return zerr.Wrap(err, "failed to create staging area")
	}
	defer os.RemoveAll(staging) //nolint:errcheck // Best effort cleanup

	staged, err := i.stage(ctx, staging, plan)
	if err != nil {
		return err
	}

	current, err := i.states.Read(env)
	if err != nil {
		return err
	}
	if current.Fingerprint() != baselineFingerprint {
		return zerr.With(domain.ErrStaleBaseline, "environment", env.Path)
	}

	return i.commit(ctx, env, plan, target, staging, staged)
}

// stage fetches, verifies and materializes every install/upgrade operation
// into the staging area with a bounded worker pool. Staged content is laid
// out one directory per package so the commit is a sequence of renames.
func (i *Installer) stage(ctx context.Context, staging string, plan *domain.Plan) (map[domain.PackageName]string, error) {
	staged := make(map[domain.PackageName]string, len(plan.Ops))
	var mu sync.Mutex

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(i.parallelism)

	for _, op := range plan.Mutations() {
		g.Go(func() error {
			// Cancellation is checked at operation boundaries.
			if err := groupCtx.Err(); err != nil {
				return err
			}

			span := i.reporter.StartOperation(groupCtx, op.String())
			path, err := i.stageOne(groupCtx, staging, op)
			span.Complete(err)
			if err != nil {
				return zerr.With(err, "operation", op.String())
			}

			mu.Lock()
			staged[op.Name] = path
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return staged, nil
}

func (i *Installer) stageOne(ctx context.Context, staging string, op domain.Operation) (string, error) {
	artifact, err := i.source.FetchArtifact(ctx, op.Name, op.Version)
	if err != nil {
		return "", err
	}

	if err := verifyChecksum(artifact); err != nil {
		return "", err
	}

	dir := filepath.Join(staging, op.Name.String())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", zerr.Wrap(err, "failed to create staging directory")
	}

	// TODO: unpack wheel payloads into the staged directory instead of
	// carrying the archive verbatim.
	if err := copyFile(artifact.Path, filepath.Join(dir, filepath.Base(artifact.Path))); err != nil {
		return "", err
	}

	record := op.Name.String() + "==" + op.Version.String() + "\n"
	if err := os.WriteFile(filepath.Join(dir, "BLAST-INFO"), []byte(record), 0o644); err != nil { //nolint:gosec // Metadata record
		return "", zerr.Wrap(err, "failed to write staged package record")
	}
	return dir, nil
}

// commit swaps staged content into the live tree, applies removals, and
// finally replaces the recorded state. Live mutations performed before a
// failure are rolled back so the environment matches its recorded state
// again.
func (i *Installer) commit(
	ctx context.Context,
	env *domain.Environment,
	plan *domain.Plan,
	target domain.State,
	staging string,
	staged map[domain.PackageName]string,
) error {
	if err := os.MkdirAll(env.PackagesDir(), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create packages directory")
	}
	backup := filepath.Join(staging, ".backup")
	if err := os.MkdirAll(backup, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create backup area")
	}

	tx := &commitLog{}

	for _, op := range plan.Mutations() {
		live := filepath.Join(env.PackagesDir(), op.Name.String())
		if op.Kind == domain.OpUpgrade {
			if err := tx.move(live, filepath.Join(backup, op.Name.String())); err != nil {
				tx.rollback()
				return zerr.With(zerr.Wrap(err, "failed to set aside old version"), "operation", op.String())
			}
		}
		if err := tx.move(staged[op.Name], live); err != nil {
			tx.rollback()
			return zerr.With(zerr.Wrap(err, "failed to place staged package"), "operation", op.String())
		}
	}

	for _, op := range plan.Removals() {
		span := i.reporter.StartOperation(ctx, op.String())
		live := filepath.Join(env.PackagesDir(), op.Name.String())
		err := tx.move(live, filepath.Join(backup, op.Name.String()))
		if err != nil && !os.IsNotExist(err) {
			span.Complete(err)
			tx.rollback()
			return zerr.With(zerr.Wrap(err, "failed to remove package"), "operation", op.String())
		}
		span.Complete(nil)
	}

	// The state write is the commit point.
	if err := i.states.Write(env, target); err != nil {
		tx.rollback()
		return err
	}

	i.logger.Info("environment updated: " + strings.Join(planSummary(plan), ", "))
	return nil
}

// commitLog records performed renames so a failed commit can be undone in
// reverse order.
type commitLog struct {
	moves [][2]string
}

func (c *commitLog) move(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return err
	}
	c.moves = append(c.moves, [2]string{from, to})
	return nil
}

func (c *commitLog) rollback() {
	for idx := len(c.moves) - 1; idx >= 0; idx-- {
		m := c.moves[idx]
		_ = os.Rename(m[1], m[0]) //nolint:errcheck // Best effort restore
	}
}

func verifyChecksum(artifact domain.Artifact) error {
	if artifact.Checksum == "" {
		return nil
	}
	f, err := os.Open(artifact.Path) //nolint:gosec // Path produced by the artifact source
	if err != nil {
		return zerr.Wrap(err, "failed to open downloaded artifact")
	}
	defer f.Close() //nolint:errcheck // Read-only file

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return zerr.Wrap(err, "failed to hash downloaded artifact")
	}
	got := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(got, artifact.Checksum) {
		err := zerr.With(domain.ErrChecksumMismatch, "expected", artifact.Checksum)
		return zerr.With(err, "actual", got)
	}
	return nil
}

func copyFile(from, to string) error {
	src, err := os.Open(from) //nolint:gosec // Path produced by the artifact source
	if err != nil {
		return zerr.Wrap(err, "failed to open artifact")
	}
	defer src.Close() //nolint:errcheck // Read-only file

	dst, err := os.Create(to) //nolint:gosec // Path inside our staging area
	if err != nil {
		return zerr.Wrap(err, "failed to create staged file")
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return zerr.Wrap(err, "failed to copy artifact into staging")
	}
	return dst.Close()
}

func planSummary(plan *domain.Plan) []string {
	names := make([]string, 0, len(plan.Ops))
	for _, op := range plan.Ops {
		names = append(names, op.String())
	}
	return names
}
