package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	v0 "github.com/provision-dev/provision/internal/api/handlers/v0"
	"github.com/provision-dev/provision/internal/config"
	"github.com/provision-dev/provision/internal/status"
	"github.com/provision-dev/provision/pkg/models"
)

type fakeRunner struct {
	result *models.PipelineResult
}

func (f *fakeRunner) Process(_ context.Context, _ string, _ bool) *models.PipelineResult {
	return f.result
}

func newTestClient(t *testing.T, runner v0.Runner) (*Client, *status.Registry) {
	t.Helper()
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("Test API", "1.0.0"))
	registry := status.NewRegistry()

	v0.RegisterPingEndpoint(api, "/v0")
	v0.RegisterConfigEndpoint(api, "/v0", &config.Config{GitHubToken: "t", RepoOwner: "acme", RepoName: "infra"})
	v0.RegisterRunEndpoints(api, "/v0", runner, registry, zap.NewNop())

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return New(server.URL), registry
}

func TestClient_Ping(t *testing.T) {
	c, _ := newTestClient(t, &fakeRunner{})
	assert.NoError(t, c.Ping(context.Background()))
}

func TestClient_GetConfig(t *testing.T) {
	c, _ := newTestClient(t, &fakeRunner{})

	cfg, err := c.GetConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.GitHubConfigured)
	assert.Equal(t, "acme", cfg.RepoOwner)
}

func TestClient_SubmitAndWaitForRun(t *testing.T) {
	runner := &fakeRunner{result: &models.PipelineResult{Success: &models.PipelineSuccess{
		Request: &models.ResourceRequest{ResourceType: models.ResourceTypeBucket, Name: "logs"},
	}}}
	c, _ := newTestClient(t, runner)

	submitted, err := c.SubmitRun(context.Background(), "a bucket for logs", false)
	require.NoError(t, err)
	require.NotEmpty(t, submitted.RunID)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	run, err := c.WaitForRun(ctx, submitted.RunID, 10*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, status.StateCompleted, run.State)
	require.NotNil(t, run.Result)
	assert.Equal(t, "logs", run.Result.Success.Request.Name)
}

func TestClient_GetRunNotFound(t *testing.T) {
	c, _ := newTestClient(t, &fakeRunner{})

	_, err := c.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_ListRuns(t *testing.T) {
	c, registry := newTestClient(t, &fakeRunner{})
	registry.Put(&status.Run{ID: "run-1", State: status.StateQueued, CreatedAt: time.Now().UTC()})

	runs, err := c.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
}
