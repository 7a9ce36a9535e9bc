package azcli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/aca-deployer/internal/deploy"
)

type call struct {
	mode string
	name string
	args []string
}

type fakeRunner struct {
	calls  []call
	output string
	err    error
}

func (f *fakeRunner) Capture(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{mode: "capture", name: name, args: args})
	return f.output, f.err
}

func (f *fakeRunner) Stream(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, call{mode: "stream", name: name, args: args})
	return f.err
}

func TestLoginServer(t *testing.T) {
	runner := &fakeRunner{output: "myreg.azurecr.io"}
	client := New(runner, zaptest.NewLogger(t))

	server, err := client.LoginServer(context.Background(), "myreg")
	require.NoError(t, err)
	assert.Equal(t, "myreg.azurecr.io", server)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, call{
		mode: "capture",
		name: "az",
		args: []string{"acr", "show", "--name", "myreg", "--query", "loginServer", "--output", "tsv"},
	}, runner.calls[0])
}

func TestBuild(t *testing.T) {
	runner := &fakeRunner{}
	client := New(runner, nil, WithBinary("/opt/az"))

	err := client.Build(context.Background(), deploy.BuildRequest{
		Registry:   "myreg",
		Image:      "rag-chat-app:latest",
		Dockerfile: "Dockerfile",
		ContextDir: "/src",
	})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, call{
		mode: "stream",
		name: "/opt/az",
		args: []string{"acr", "build", "--registry", "myreg", "--image", "rag-chat-app:latest", "--file", "Dockerfile", "/src"},
	}, runner.calls[0])
}

func TestUpdate(t *testing.T) {
	runner := &fakeRunner{}
	client := New(runner, zaptest.NewLogger(t))

	err := client.Update(context.Background(), deploy.UpdateRequest{
		AppName:       "chat-app",
		ResourceGroup: "rg1",
		Image:         "myreg.azurecr.io/rag-chat-app:latest",
		Env: []deploy.EnvVar{
			{Name: "AZURE_SEARCH_INDEX", Value: "documents"},
			{Name: "APPLICATIONINSIGHTS_CONNECTION_STRING", Value: ""},
		},
	})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "stream", runner.calls[0].mode)
	assert.Equal(t, []string{
		"containerapp", "update",
		"--name", "chat-app",
		"--resource-group", "rg1",
		"--image", "myreg.azurecr.io/rag-chat-app:latest",
		"--set-env-vars", "AZURE_SEARCH_INDEX=documents", "APPLICATIONINSIGHTS_CONNECTION_STRING=",
		"--output", "none",
	}, runner.calls[0].args)
}

func TestHostname(t *testing.T) {
	runner := &fakeRunner{output: "app123.region.azurecontainerapps.io"}
	client := New(runner, nil)

	host, err := client.Hostname(context.Background(), "chat-app", "rg1")
	require.NoError(t, err)
	assert.Equal(t, "app123.region.azurecontainerapps.io", host)
	assert.Equal(t, []string{
		"containerapp", "show",
		"--name", "chat-app",
		"--resource-group", "rg1",
		"--query", "properties.configuration.ingress.fqdn",
		"--output", "tsv",
	}, runner.calls[0].args)
}

func TestErrorsPassThrough(t *testing.T) {
	boom := errors.New("az acr show: exit status 3: ResourceNotFound")
	client := New(&fakeRunner{err: boom}, nil)

	_, err := client.LoginServer(context.Background(), "missing")
	assert.Same(t, boom, err)
	assert.Same(t, boom, client.Build(context.Background(), deploy.BuildRequest{}))
	assert.Same(t, boom, client.Update(context.Background(), deploy.UpdateRequest{}))
	_, err = client.Hostname(context.Background(), "a", "b")
	assert.Same(t, boom, err)
}

func TestCommandLineStopsAtFlags(t *testing.T) {
	got := commandLine("az", []string{"containerapp", "update", "--set-env-vars", "SECRET=x"})
	assert.Equal(t, "az containerapp update", got)
	assert.NotContains(t, got, "SECRET")
	assert.Equal(t, "az", commandLine("az", nil))
}

func TestCommandErrorIncludesStderr(t *testing.T) {
	err := commandError("az", []string{"acr", "show"}, errors.New("exit status 1"), "  ERROR: not found \n")
	assert.Equal(t, "az acr show: exit status 1: ERROR: not found", err.Error())

	err = commandError("az", []string{"acr", "build"}, errors.New("exit status 1"), "")
	assert.True(t, strings.HasSuffix(err.Error(), "exit status 1"))
}
