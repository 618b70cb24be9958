package config

import "fmt"

// Validate performs runtime validations on the loaded configuration.
// Collaborator credentials are optional (the resolver degrades to pattern
// matching and publication can be skipped), but partial GitHub settings are
// almost certainly a misconfiguration and rejected outright.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	githubSet := 0
	for _, v := range []string{cfg.GitHubToken, cfg.RepoOwner, cfg.RepoName} {
		if v != "" {
			githubSet++
		}
	}
	if githubSet != 0 && githubSet != 3 {
		return fmt.Errorf("GITHUB_TOKEN, GITHUB_REPO_OWNER and GITHUB_REPO_NAME must be set together")
	}
	if cfg.ServerAddress == "" {
		return fmt.Errorf("server address must not be empty")
	}
	return nil
}
