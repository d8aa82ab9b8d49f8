// Package app implements the application layer for blast.
package app

import (
	"context"
	"errors"

	"go.trai.ch/zerr"

	"go.blast.dev/blast/internal/core/domain"
	"go.blast.dev/blast/internal/core/ports"
	"go.blast.dev/blast/internal/engine/installer"
	"go.blast.dev/blast/internal/engine/planner"
	"go.blast.dev/blast/internal/engine/resolver"
)

// App wires the engine and the adapters into the user-facing operations.
type App struct {
	resolver  *resolver.Resolver
	planner   *planner.Planner
	installer *installer.Installer
	envs      ports.EnvironmentStore
	states    ports.StateStore
	locker    ports.EnvironmentLocker
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	res *resolver.Resolver,
	plan *planner.Planner,
	inst *installer.Installer,
	envs ports.EnvironmentStore,
	states ports.StateStore,
	locker ports.EnvironmentLocker,
	logger ports.Logger,
) *App {
	return &App{
		resolver:  res,
		planner:   plan,
		installer: inst,
		envs:      envs,
		states:    states,
		locker:    locker,
		logger:    logger,
	}
}

// Create materializes a fresh environment at path.
func (a *App) Create(ctx context.Context, path, pythonVersion string) (*domain.Environment, error) {
	env, err := a.envs.Materialize(ctx, path, pythonVersion)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create environment")
	}
	// Seed an empty state so the environment is recognized from now on.
	if err := a.states.Write(env, domain.State{}); err != nil {
		return nil, zerr.Wrap(err, "failed to initialize environment state")
	}
	a.logger.Info("created environment at " + env.Path)
	return env, nil
}

// Install resolves rawSpecs against the environment at path and applies the
// resulting plan. The whole environment is re-resolved so already-installed
// packages keep their versions unless a new constraint forces a change.
func (a *App) Install(ctx context.Context, path string, rawSpecs []string) error {
	if len(rawSpecs) == 0 {
		return zerr.With(domain.ErrInvalidSpec, "reason", "no packages requested")
	}
	specs := make([]domain.PackageSpec, 0, len(rawSpecs))
	for _, raw := range rawSpecs {
		spec, err := domain.ParseSpec(raw)
		if err != nil {
			return err
		}
		specs = append(specs, spec)
	}

	env, err := a.envs.Open(path)
	if err != nil {
		return err
	}

	release, err := a.locker.Acquire(env)
	if err != nil {
		return err
	}
	defer release() //nolint:errcheck // Release error is not actionable

	// One automatic retry when the recorded state changed between the
	// baseline read and the commit.
	for attempt := 0; ; attempt++ {
		err := a.installOnce(ctx, env, specs)
		if err == nil {
			return nil
		}
		if attempt == 0 && errors.Is(err, domain.ErrStaleBaseline) {
			a.logger.Warn("environment changed during resolution, re-planning")
			continue
		}
		return err
	}
}

func (a *App) installOnce(ctx context.Context, env *domain.Environment, specs []domain.PackageSpec) error {
	baseline, err := a.states.Read(env)
	if err != nil {
		return err
	}

	resolution, err := a.resolver.Resolve(ctx, specs, baseline)
	if err != nil {
		return err
	}

	plan := a.planner.Plan(resolution.Packages, baseline, resolution.Graph)
	if plan.Empty() {
		a.logger.Info("nothing to do, environment already satisfies the request")
		return nil
	}

	return a.installer.Apply(ctx, env, plan, resolution.Packages, baseline.Fingerprint())
}

// Uninstall removes the named packages from the environment at path.
// Packages are addressed by name alone; versions in the arguments are
// rejected. Dependencies of the removed packages stay installed.
func (a *App) Uninstall(ctx context.Context, path string, names []string) error {
	if len(names) == 0 {
		return zerr.With(domain.ErrInvalidSpec, "reason", "no packages named")
	}

	env, err := a.envs.Open(path)
	if err != nil {
		return err
	}

	release, err := a.locker.Acquire(env)
	if err != nil {
		return err
	}
	defer release() //nolint:errcheck // Release error is not actionable

	baseline, err := a.states.Read(env)
	if err != nil {
		return err
	}

	target := baseline.Clone()
	for _, raw := range names {
		spec, err := domain.ParseSpec(raw)
		if err != nil {
			return err
		}
		if spec.Constraint.String() != domain.AnyVersion().String() {
			return zerr.With(domain.ErrInvalidSpec, "reason", "uninstall takes bare package names")
		}
		if _, installed := target[spec.Name]; !installed {
			return zerr.With(zerr.New("package not installed"), "package", spec.Name.String())
		}
		delete(target, spec.Name)
	}

	graph, err := a.resolver.GraphFor(ctx, baseline)
	if err != nil {
		return err
	}

	plan := a.planner.Plan(target, baseline, graph)
	return a.installer.Apply(ctx, env, plan, target, baseline.Fingerprint())
}

// List returns the installed packages of the environment at path in
// pip-freeze form, sorted by name.
func (a *App) List(ctx context.Context, path string) ([]string, error) {
	env, err := a.envs.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := a.states.Read(env)
	if err != nil {
		return nil, err
	}
	return st.Lines(), nil
}
