// Package config loads pipeline configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/provision-dev/provision/internal/utils"
)

// Config holds every externally supplied setting the pipeline needs.
type Config struct {
	// Language-understanding collaborator
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-5"`
	FallbackModel string `env:"OPENAI_FALLBACK_MODEL" envDefault:"gpt-3.5-turbo"`

	// Hosting collaborator. The repository can be named either by owner and
	// name or by a single GITHUB_REPO_URL; explicit owner/name win.
	GitHubToken string `env:"GITHUB_TOKEN"`
	RepoOwner   string `env:"GITHUB_REPO_OWNER"`
	RepoName    string `env:"GITHUB_REPO_NAME"`
	RepoURL     string `env:"GITHUB_REPO_URL"`
	BaseBranch  string `env:"GITHUB_BASE_BRANCH"`

	// HTTP API
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`

	// Local inspection output
	OutputDir string `env:"OUTPUT_DIR" envDefault:"generated"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present, without overriding real env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.RepoURL != "" && (cfg.RepoOwner == "" || cfg.RepoName == "") {
		info, err := utils.ParseGitHubURL(cfg.RepoURL)
		if err != nil {
			return nil, err
		}
		cfg.RepoOwner = info.Owner
		cfg.RepoName = info.Repo
		if cfg.BaseBranch == "" {
			cfg.BaseBranch = info.Branch
		}
	}
	return cfg, nil
}

// OpenAIConfigured reports whether the language collaborator is usable.
func (c *Config) OpenAIConfigured() bool { return c.OpenAIAPIKey != "" }

// GitHubConfigured reports whether the hosting collaborator is usable.
func (c *Config) GitHubConfigured() bool {
	return c.GitHubToken != "" && c.RepoOwner != "" && c.RepoName != ""
}
