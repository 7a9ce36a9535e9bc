package deploy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eugenenazirov/aca-deployer/internal/config"
)

// Pipeline wires the collaborators used by a deployment run.
type Pipeline struct {
	registry RegistryClient
	builder  BuildService
	updater  ServiceUpdater
	progress Progress
	logger   *zap.Logger
	newRunID func() string
}

// Option configures Pipeline behaviour.
type Option func(*Pipeline)

// WithProgress sets the progress sink.
func WithProgress(progress Progress) Option {
	return func(p *Pipeline) {
		if progress != nil {
			p.progress = progress
		}
	}
}

// WithRunID overrides the run ID generator, primarily for tests.
func WithRunID(fn func() string) Option {
	return func(p *Pipeline) {
		p.newRunID = fn
	}
}

// New constructs a Pipeline with the provided collaborators.
func New(registry RegistryClient, builder BuildService, updater ServiceUpdater, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		registry: registry,
		builder:  builder,
		updater:  updater,
		progress: nopProgress{},
		logger:   logger,
		newRunID: func() string {
			return uuid.New().String()
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run performs one deployment pass. A configuration error is returned before
// any collaborator is called; collaborator failures come back as *StepError.
func (p *Pipeline) Run(ctx context.Context, cfg config.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	cfg = cfg.WithDefaults()

	runID := p.newRunID()
	logger := p.logger.With(zap.String("run_id", runID))
	start := time.Now()

	p.progress.Stage("Resolving container registry")
	loginServer, err := p.loginServer(ctx, logger, cfg.RegistryName)
	if err != nil {
		return Result{}, err
	}
	p.progress.Done("Registry: " + loginServer)

	image := loginServer + "/" + cfg.ImageRef()

	p.progress.Stage("Building container image (this may take a few minutes)")
	build := BuildRequest{
		Registry:   cfg.RegistryName,
		Image:      cfg.ImageRef(),
		Dockerfile: cfg.Dockerfile,
		ContextDir: cfg.BuildContext,
	}
	logger.Info("building image",
		zap.String("registry", build.Registry),
		zap.String("image", build.Image),
		zap.String("dockerfile", build.Dockerfile),
		zap.String("context", build.ContextDir),
	)
	if err := p.builder.Build(ctx, build); err != nil {
		return Result{}, p.fail(logger, StepBuild, err)
	}
	p.progress.Done("Image built: " + image)

	p.progress.Stage("Updating container app")
	update := UpdateRequest{
		AppName:       cfg.AppName,
		ResourceGroup: cfg.ResourceGroup,
		Image:         image,
		Env:           ContainerEnv(cfg),
	}
	logger.Info("updating service",
		zap.String("app", update.AppName),
		zap.String("resource_group", update.ResourceGroup),
		zap.String("image", update.Image),
		zap.Strings("env", envNames(update.Env)),
	)
	if err := p.updater.Update(ctx, update); err != nil {
		return Result{}, p.fail(logger, StepUpdate, err)
	}
	p.progress.Done("Container app updated")

	p.progress.Stage("Discovering application endpoint")
	hostname, err := p.updater.Hostname(ctx, cfg.AppName, cfg.ResourceGroup)
	if err == nil && strings.TrimSpace(hostname) == "" {
		err = ErrEmptyHostname
	}
	if err != nil {
		return Result{}, p.fail(logger, StepDiscover, err)
	}
	hostname = strings.TrimSpace(hostname)

	logger.Info("deployment finished",
		zap.String("hostname", hostname),
		zap.Duration("duration", time.Since(start)),
	)

	return Result{
		RunID:    runID,
		Image:    image,
		Hostname: hostname,
		URL:      "https://" + hostname,
		Routes:   append([]string(nil), Routes...),
	}, nil
}

func (p *Pipeline) loginServer(ctx context.Context, logger *zap.Logger, registry string) (string, error) {
	logger.Info("querying registry", zap.String("registry", registry))
	server, err := p.registry.LoginServer(ctx, registry)
	if err == nil && strings.TrimSpace(server) == "" {
		err = ErrEmptyLoginServer
	}
	if err != nil {
		return "", p.fail(logger, StepRegistry, err)
	}
	return strings.TrimSpace(server), nil
}

func (p *Pipeline) fail(logger *zap.Logger, step Step, err error) error {
	logger.Debug("step failed", zap.String("step", string(step)), zap.Error(err))
	return &StepError{Step: step, Err: err}
}

// ContainerEnv computes the variables injected into the running service.
// cfg is expected to have defaults applied.
func ContainerEnv(cfg config.Config) []EnvVar {
	return []EnvVar{
		{Name: config.OpenAIEndpointKey, Value: cfg.OpenAIEndpoint},
		{Name: config.SearchEndpointKey, Value: cfg.SearchEndpoint},
		{Name: config.ChatDeploymentEnvKey, Value: cfg.ChatModel},
		{Name: config.SearchIndexKey, Value: cfg.SearchIndex},
		{Name: config.AppInsightsKey, Value: cfg.AppInsightsConnectionString},
	}
}

func envNames(env []EnvVar) []string {
	names := make([]string, 0, len(env))
	for _, v := range env {
		names = append(names, v.Name)
	}
	return names
}

// String renders the variable as NAME=VALUE.
func (v EnvVar) String() string {
	return fmt.Sprintf("%s=%s", v.Name, v.Value)
}

type nopProgress struct{}

func (nopProgress) Stage(string) {}
func (nopProgress) Done(string) {}
