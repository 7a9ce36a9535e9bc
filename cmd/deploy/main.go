package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/aca-deployer/internal/application"
	"github.com/eugenenazirov/aca-deployer/internal/azcli"
	"github.com/eugenenazirov/aca-deployer/internal/config"
	"github.com/eugenenazirov/aca-deployer/internal/envfile"
	"github.com/eugenenazirov/aca-deployer/internal/logging"
	"github.com/eugenenazirov/aca-deployer/internal/report"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// newCollaborators builds the remote collaborators; tests replace it with fakes.
var newCollaborators = func(stdout, stderr io.Writer, binary string, logger *zap.Logger) application.Collaborators {
	client := azcli.New(azcli.NewExecRunner(stdout, stderr, logger), logger, azcli.WithBinary(binary))
	return application.Collaborators{
		Registry: client,
		Builder:  client,
		Updater:  client,
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

func run(args, environ []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("aca-deploy", "Build the application image remotely and roll it out to an Azure Container App")
	kingpinApp.UsageWriter(stdout)
	kingpinApp.ErrorWriter(stderr)

	rootDir := kingpinApp.Flag("root", "Project root containing the .azure provisioning state").Default(".").String()
	environment := kingpinApp.Flag("environment", "Environment name (default: defaultEnvironment from .azure/config.json)").Short('e').String()
	buildContext := kingpinApp.Flag("build-context", "Build context directory (default: project root)").String()
	dockerfile := kingpinApp.Flag("dockerfile", "Build definition path, relative to the build context").String()
	azBinary := kingpinApp.Flag("az", "Azure CLI executable").Default(azcli.DefaultBinary).String()
	noColor := kingpinApp.Flag("no-color", "Disable colored output").Bool()
	logLevel := kingpinApp.Flag("log-level", "Structured log level written to stderr (debug, info, warn, error)").Default(logging.DefaultLevel).String()

	if _, err := kingpinApp.Parse(args); err != nil {
		fmt.Fprintf(stderr, "aca-deploy: %v\n", err)
		return exitUsage
	}

	logger, err := logging.New(*logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "aca-deploy: failed to initialize logger: %v\n", err)
		return exitUsage
	}
	defer func() {
		_ = logger.Sync()
	}()

	reporter := report.New(stdout, colorEnabled(*noColor, environ))
	reporter.Header("Deploying to Azure Container Apps")

	resolution, err := envfile.NewResolver(*rootDir, *environment, logger).Resolve(config.SettingsFromEnviron(environ))
	if err != nil {
		reporter.Fail(err.Error())
		return exitFailed
	}
	for _, warning := range resolution.Warnings {
		reporter.Warn(warning)
	}
	if resolution.SettingsFile != "" {
		reporter.Step(fmt.Sprintf("Loaded %d settings from %s", len(resolution.Loaded), resolution.SettingsFile))
	}

	overrides := &config.CLIOverrides{
		RootDir:     *rootDir,
		Environment: resolution.Environment,
	}
	if *buildContext != "" {
		overrides.BuildContext = buildContext
	}
	if *dockerfile != "" {
		overrides.Dockerfile = dockerfile
	}
	cfg := config.Load(resolution.Settings, overrides)

	app, err := application.New(cfg, logger, reporter, newCollaborators(stdout, stderr, *azBinary, logger))
	if err != nil {
		reporter.Fail(err.Error())
		return exitFailed
	}

	if _, err := app.Run(context.Background()); err != nil {
		return exitFailed
	}
	return exitOK
}

// colorEnabled honours --no-color and the NO_COLOR convention.
func colorEnabled(noColor bool, environ []string) bool {
	if noColor {
		return false
	}
	for _, kv := range environ {
		if name, value, ok := strings.Cut(kv, "="); ok && name == "NO_COLOR" && value != "" {
			return false
		}
	}
	return true
}
