package deploy

import "context"

// Routes served by the deployed application, in report order.
var Routes = []string{"/", "/api/chat", "/docs", "/health"}

// EnvVar is one environment variable injected into the running service.
type EnvVar struct {
	Name  string
	Value string
}

// BuildRequest describes a remote image build.
type BuildRequest struct {
	Registry   string
	Image      string
	Dockerfile string
	ContextDir string
}

// UpdateRequest describes a service update to a new image.
type UpdateRequest struct {
	AppName       string
	ResourceGroup string
	Image         string
	Env           []EnvVar
}

// RegistryClient resolves a registry's network address.
type RegistryClient interface {
	LoginServer(ctx context.Context, registry string) (string, error)
}

// BuildService builds an image from a context and pushes it to a registry.
type BuildService interface {
	Build(ctx context.Context, req BuildRequest) error
}

// ServiceUpdater converges a running service to a new image and reports its
// public hostname.
type ServiceUpdater interface {
	Update(ctx context.Context, req UpdateRequest) error
	Hostname(ctx context.Context, appName, resourceGroup string) (string, error)
}

// Progress receives pipeline progress. Implementations must not fail;
// nothing they do can change the pipeline outcome.
type Progress interface {
	Stage(title string)
	Done(message string)
}

// Result is the outcome of a successful deployment.
type Result struct {
	RunID    string
	Image    string
	Hostname string
	URL      string
	Routes   []string
}
