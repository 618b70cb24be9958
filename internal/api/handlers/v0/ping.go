package v0

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/provision-dev/provision/internal/config"
	"github.com/provision-dev/provision/pkg/types"
)

// PingBody represents the ping response body
type PingBody struct {
	Pong bool `json:"pong" example:"true" doc:"Ping response"`
}

// ConfigBody reports which external collaborators are configured.
type ConfigBody struct {
	OpenAIConfigured bool   `json:"openaiConfigured" doc:"Whether the language model collaborator is configured"`
	GitHubConfigured bool   `json:"githubConfigured" doc:"Whether the hosting repository is configured"`
	RepoOwner        string `json:"repoOwner,omitempty" doc:"Target repository owner"`
	RepoName         string `json:"repoName,omitempty" doc:"Target repository name"`
}

// RegisterPingEndpoint registers the ping endpoint.
func RegisterPingEndpoint(api huma.API, pathPrefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/ping",
		Summary:     "Ping",
		Description: "Simple ping endpoint",
		Tags:        []string{"ping"},
	}, func(_ context.Context, _ *struct{}) (*types.Response[PingBody], error) {
		return &types.Response[PingBody]{
			Body: PingBody{Pong: true},
		}, nil
	})
}

// RegisterConfigEndpoint registers the collaborator configuration check.
func RegisterConfigEndpoint(api huma.API, pathPrefix string, cfg *config.Config) {
	huma.Register(api, huma.Operation{
		OperationID: "get-config",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/config",
		Summary:     "Configuration check",
		Description: "Reports which external collaborators are configured, without exposing credentials.",
		Tags:        []string{"config"},
	}, func(_ context.Context, _ *struct{}) (*types.Response[ConfigBody], error) {
		return &types.Response[ConfigBody]{
			Body: ConfigBody{
				OpenAIConfigured: cfg.OpenAIConfigured(),
				GitHubConfigured: cfg.GitHubConfigured(),
				RepoOwner:        cfg.RepoOwner,
				RepoName:         cfg.RepoName,
			},
		}, nil
	})
}
