package generator

import (
	"fmt"
	"regexp"

	"github.com/provision-dev/provision/pkg/models"
)

var (
	namePattern       = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	bucketNamePattern = regexp.MustCompile(`^[a-z0-9.-]+$`)
	versionPattern    = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)
)

const (
	minNameLength    = 3
	maxBucketNameLen = 63
	maxNodeCount     = 20
	minStorageGB     = 20
)

var supportedEngines = map[string]bool{
	"mysql":    true,
	"postgres": true,
	"mariadb":  true,
}

// Validate checks a request for type-specific constraints and returns the
// issues found. An empty slice means the request is valid. Validation never
// mutates the request; issues are data, not errors.
func Validate(req *models.ResourceRequest) []string {
	var issues []string

	if len(req.Name) < minNameLength {
		issues = append(issues, fmt.Sprintf("resource name must be at least %d characters long", minNameLength))
	}
	if req.Name != "" && !namePattern.MatchString(req.Name) {
		issues = append(issues, "resource name can only contain letters, numbers, hyphens, and underscores")
	}

	switch req.ResourceType {
	case models.ResourceTypeCluster:
		if req.NodeCount != nil {
			if *req.NodeCount < 1 {
				issues = append(issues, "node count must be at least 1")
			}
			if *req.NodeCount > maxNodeCount {
				issues = append(issues, fmt.Sprintf("node count should not exceed %d without special consideration", maxNodeCount))
			}
		}
		if req.KubernetesVersion != "" && !versionPattern.MatchString(req.KubernetesVersion) {
			issues = append(issues, "kubernetes version must be in format X.Y or X.Y.Z")
		}

	case models.ResourceTypeBucket:
		if len(req.Name) > maxBucketNameLen {
			issues = append(issues, fmt.Sprintf("bucket name cannot exceed %d characters", maxBucketNameLen))
		}
		if req.Name != "" && !bucketNamePattern.MatchString(req.Name) {
			issues = append(issues, "bucket name can only contain lowercase letters, numbers, dots, and hyphens")
		}

	case models.ResourceTypeDatabase:
		if req.AllocatedStorage != nil && *req.AllocatedStorage < minStorageGB {
			issues = append(issues, fmt.Sprintf("allocated storage must be at least %d GB", minStorageGB))
		}
		if req.Engine != "" && !supportedEngines[req.Engine] {
			issues = append(issues, "supported database engines: mysql, postgres, mariadb")
		}
	}

	return issues
}
