package azcli

import (
	"context"

	"go.uber.org/zap"

	"github.com/eugenenazirov/aca-deployer/internal/deploy"
)

// DefaultBinary is the Azure CLI executable name.
const DefaultBinary = "az"

const fqdnQuery = "properties.configuration.ingress.fqdn"

// Client implements the deployment collaborators on top of the Azure CLI.
type Client struct {
	runner Runner
	binary string
	logger *zap.Logger
}

var (
	_ deploy.RegistryClient = (*Client)(nil)
	_ deploy.BuildService   = (*Client)(nil)
	_ deploy.ServiceUpdater = (*Client)(nil)
)

// ClientOption configures Client behaviour.
type ClientOption func(*Client)

// WithBinary overrides the Azure CLI executable.
func WithBinary(binary string) ClientOption {
	return func(c *Client) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// New creates a Client that runs commands through runner.
func New(runner Runner, logger *zap.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		runner: runner,
		binary: DefaultBinary,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoginServer returns the registry's login server, e.g. myreg.azurecr.io.
func (c *Client) LoginServer(ctx context.Context, registry string) (string, error) {
	return c.runner.Capture(ctx, c.binary,
		"acr", "show",
		"--name", registry,
		"--query", "loginServer",
		"--output", "tsv",
	)
}

// Build runs a registry-side build. Build output is streamed to the operator.
func (c *Client) Build(ctx context.Context, req deploy.BuildRequest) error {
	return c.runner.Stream(ctx, c.binary,
		"acr", "build",
		"--registry", req.Registry,
		"--image", req.Image,
		"--file", req.Dockerfile,
		req.ContextDir,
	)
}

// Update points the container app at a new image and sets its environment.
func (c *Client) Update(ctx context.Context, req deploy.UpdateRequest) error {
	args := []string{
		"containerapp", "update",
		"--name", req.AppName,
		"--resource-group", req.ResourceGroup,
		"--image", req.Image,
	}
	if len(req.Env) > 0 {
		args = append(args, "--set-env-vars")
		for _, v := range req.Env {
			args = append(args, v.String())
		}
	}
	args = append(args, "--output", "none")

	c.logger.Debug("container app update", zap.String("app", req.AppName), zap.Int("env_vars", len(req.Env)))
	return c.runner.Stream(ctx, c.binary, args...)
}

// Hostname returns the app's public ingress FQDN.
func (c *Client) Hostname(ctx context.Context, appName, resourceGroup string) (string, error) {
	return c.runner.Capture(ctx, c.binary,
		"containerapp", "show",
		"--name", appName,
		"--resource-group", resourceGroup,
		"--query", fqdnQuery,
		"--output", "tsv",
	)
}
