// Package client is a thin HTTP client for the Provision API, for use by
// other Go programs and the test suite.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	v0 "github.com/provision-dev/provision/internal/api/handlers/v0"
	"github.com/provision-dev/provision/internal/status"
)

// Client talks to a running Provision API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	var body v0.PingBody
	if err := c.get(ctx, "/v0/ping", &body); err != nil {
		return err
	}
	if !body.Pong {
		return fmt.Errorf("unexpected ping response")
	}
	return nil
}

// GetConfig reports which collaborators the server has configured.
func (c *Client) GetConfig(ctx context.Context) (*v0.ConfigBody, error) {
	var body v0.ConfigBody
	if err := c.get(ctx, "/v0/config", &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// SubmitRun starts a pipeline run for a natural language request and returns
// the run ID for polling.
func (c *Client) SubmitRun(ctx context.Context, prompt string, autoPublish bool) (*v0.SubmitBody, error) {
	payload, err := json.Marshal(map[string]any{
		"prompt":      prompt,
		"autoPublish": autoPublish,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v0/runs", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var body v0.SubmitBody
	if err := c.do(req, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, runID string) (*status.Run, error) {
	var run status.Run
	if err := c.get(ctx, "/v0/runs/"+runID, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns fetches all tracked runs, newest first.
func (c *Client) ListRuns(ctx context.Context) ([]*status.Run, error) {
	var body v0.RunsListBody
	if err := c.get(ctx, "/v0/runs", &body); err != nil {
		return nil, err
	}
	return body.Runs, nil
}

// WaitForRun polls a run until it completes, fails, or the context expires.
func (c *Client) WaitForRun(ctx context.Context, runID string, pollInterval time.Duration) (*status.Run, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		run, err := c.GetRun(ctx, runID)
		if err != nil {
			return nil, err
		}
		if run.State == status.StateCompleted || run.State == status.StateError {
			return run, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request to %s failed with status %d: %s", req.URL.Path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
