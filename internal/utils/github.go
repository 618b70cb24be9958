// Package utils holds small shared helpers.
package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// GitHubRepoInfo identifies a hosting repository parsed from a URL.
type GitHubRepoInfo struct {
	Owner  string
	Repo   string
	Branch string
}

// ParseGitHubURL extracts owner and repository from an HTTPS or SSH GitHub
// URL. The branch defaults to "main"; callers override it from configuration.
func ParseGitHubURL(rawURL string) (*GitHubRepoInfo, error) {
	if strings.HasPrefix(rawURL, "git@github.com:") {
		path := strings.TrimPrefix(rawURL, "git@github.com:")
		path = strings.TrimSuffix(path, ".git")
		parts := strings.Split(path, "/")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid GitHub SSH URL: %s", rawURL)
		}
		return &GitHubRepoInfo{
			Owner:  parts[0],
			Repo:   parts[1],
			Branch: "main",
		}, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Host != "github.com" {
		return nil, fmt.Errorf("not a GitHub URL: %s", rawURL)
	}

	path := strings.TrimPrefix(parsed.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")

	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid GitHub URL path: %s", rawURL)
	}

	return &GitHubRepoInfo{
		Owner:  parts[0],
		Repo:   parts[1],
		Branch: "main",
	}, nil
}
