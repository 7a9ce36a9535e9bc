package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eugenenazirov/aca-deployer/internal/config"
	"github.com/eugenenazirov/aca-deployer/internal/deploy"
	"github.com/eugenenazirov/aca-deployer/internal/report"
)

// ErrMissingCollaborator is returned by New when a collaborator is nil.
var ErrMissingCollaborator = errors.New("deployment collaborator is not configured")

// Collaborators groups the external services the pipeline depends on.
type Collaborators struct {
	Registry deploy.RegistryClient
	Builder  deploy.BuildService
	Updater  deploy.ServiceUpdater
}

// App encapsulates one deployment run and its dependencies.
type App struct {
	cfg      config.Config
	pipeline *deploy.Pipeline
	reporter *report.Reporter
	logger   *zap.Logger
}

// New initializes the application from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, reporter *report.Reporter, collab Collaborators) (*App, error) {
	if collab.Registry == nil || collab.Builder == nil || collab.Updater == nil {
		return nil, ErrMissingCollaborator
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = report.New(nil, false)
	}

	pipeline := deploy.New(collab.Registry, collab.Builder, collab.Updater, logger,
		deploy.WithProgress(reporter),
	)

	return &App{
		cfg:      cfg,
		pipeline: pipeline,
		reporter: reporter,
		logger:   logger,
	}, nil
}

// Run validates the configuration, runs the pipeline once, and reports the
// outcome. Validation failures are reported before any remote call is made.
func (a *App) Run(ctx context.Context) (deploy.Result, error) {
	if err := a.cfg.Validate(); err != nil {
		a.reporter.Fail(fmt.Sprintf("Configuration error: %v", err))
		return deploy.Result{}, err
	}
	for _, warning := range a.cfg.Warnings() {
		a.reporter.Warn(warning)
	}

	a.reporter.Configuration(a.cfg)

	result, err := a.pipeline.Run(ctx, a.cfg)
	if err != nil {
		a.reporter.Fail(fmt.Sprintf("Deployment failed: %v", err))
		return deploy.Result{}, err
	}

	a.logger.Info("deployment succeeded", zap.String("run_id", result.RunID), zap.String("url", result.URL))
	a.reporter.Summary(a.cfg, result)
	return result, nil
}

// Config returns the configuration the app was built with.
func (a *App) Config() config.Config {
	return a.cfg
}
