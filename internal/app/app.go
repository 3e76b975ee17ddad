// Package app implements the application layer for drift.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"go.trai.ch/drift/internal/adapters/detector"
	"go.trai.ch/drift/internal/adapters/report"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/drift/internal/engine/checker"
	"go.trai.ch/drift/internal/engine/finder"
	"go.trai.ch/drift/internal/engine/format"
	"go.trai.ch/drift/internal/engine/policy"
	"go.trai.ch/drift/internal/engine/provider"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolvers    ports.ResolverFactory
	caches       ports.CacheFactory
	tracer       ports.Tracer
	logger       ports.Logger
	stdout       io.Writer
	reporter     ports.Reporter
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	resolvers ports.ResolverFactory,
	caches ports.CacheFactory,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		resolvers:    resolvers,
		caches:       caches,
		tracer:       tracer,
		logger:       log,
		stdout:       os.Stdout,
	}
}

// WithOutput sets the writer reports are rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithReporter replaces the terminal reporter.
func (a *App) WithReporter(r ports.Reporter) *App {
	a.reporter = r
	return a
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	// NoCache bypasses the invalid resolves cache.
	NoCache bool
	// FailOnOutdated makes Check return ErrOutdatedDependencies when updates exist.
	FailOnOutdated bool
	// Parallelism overrides the configured parallelism when positive.
	Parallelism int
	// Color is one of "auto", "always" or "never".
	Color string
}

// Check looks for updates of every dependency and plugin declared in the workspace
// and reports them per project.
func (a *App) Check(ctx context.Context, opts CheckOptions) error {
	ws, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	resolver, err := a.resolvers.NewResolver(ws.Repositories)
	if err != nil {
		return err
	}

	cacheSettings := ws.Cache
	if opts.NoCache {
		cacheSettings.Disabled = true
	}
	cache := a.caches.Open(cacheSettings)

	parallelism := ws.Parallelism
	if opts.Parallelism > 0 {
		parallelism = opts.Parallelism
	}

	reporter := a.reporter
	if reporter == nil {
		mode := detector.ResolveMode(detector.DetectEnvironment(), opts.Color)
		reporter = report.NewReporter(a.stdout, detector.Profile(mode))
	}

	resolve := finder.Chain(finder.FromResolver(resolver), finder.Cache(cache))

	var outdated, failed int
	for _, project := range ws.Projects {
		rep, err := a.checkProject(ctx, project, resolve, parallelism)
		if err != nil {
			return zerr.With(err, "project", project.Name)
		}
		if err := reporter.Report(rep); err != nil {
			return err
		}
		outdated += len(rep.Outdated)
		failed += len(rep.Failed)
	}

	a.logger.Debug(fmt.Sprintf("checked %d project(s): %d outdated, %d failed", len(ws.Projects), outdated, failed))

	if opts.FailOnOutdated && outdated > 0 {
		return zerr.With(domain.ErrOutdatedDependencies, "count", outdated)
	}
	return nil
}

func (a *App) checkProject(ctx context.Context, project domain.Project, resolve finder.Func, parallelism int) (domain.Report, error) {
	pol := policy.FromSpec(project.Policy)
	base := finder.Base(pol.Provider(provider.Default), resolve, a.logger)
	find := finder.Chain(pol.Finder(base), finder.Traced(a.tracer))

	deps := slices.Concat(project.Dependencies, project.Plugins)
	updates, err := checker.New(find, parallelism).Check(ctx, deps)
	if err != nil {
		return domain.Report{}, err
	}
	return BuildReport(project.Name, updates), nil
}

// BuildReport sorts the updates of a project into outdated, up to date and failed.
// A dependency with failed candidates is listed once as failed, with the first cause,
// even when it is also outdated.
func BuildReport(project string, updates []domain.Update) domain.Report {
	rep := domain.Report{Project: project}
	for _, u := range updates {
		failures := u.Failures()
		if u.IsOutdated() {
			rep.Outdated = append(rep.Outdated, format.Update(u))
		}
		if len(failures) > 0 {
			rep.Failed = append(rep.Failed, domain.Failed(u.Dependency, failures[0].Cause()).String())
		}
		if !u.IsOutdated() && len(failures) == 0 {
			rep.UpToDate++
		}
	}
	return rep
}

// Clean removes the invalid resolves cache of the workspace.
func (a *App) Clean(_ context.Context) error {
	ws, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	a.logger.Info("removing invalid resolves cache...")
	if err := a.caches.Clean(ws.Cache); err != nil {
		return err
	}
	a.logger.Info("removed invalid resolves cache")
	return nil
}
