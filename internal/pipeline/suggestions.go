package pipeline

import "github.com/provision-dev/provision/pkg/models"

// EnhancementSuggestions computes advisory configuration hints for a resolved
// request. Suggestions never block the pipeline; they ride along in the
// result and the change-request body.
func EnhancementSuggestions(req *models.ResourceRequest) []string {
	var suggestions []string

	switch req.ResourceType {
	case models.ResourceTypeCluster:
		if req.NodeCount != nil && *req.NodeCount < 3 {
			suggestions = append(suggestions, "Consider using at least 3 nodes for high availability")
		}
		if req.Environment == models.EnvProduction && len(req.InstanceTypes) == 0 {
			suggestions = append(suggestions, "For production, consider specifying instance types like ['m6i.large', 'm6i.xlarge']")
		}
		if _, ok := req.Tags["cost-center"]; !ok {
			suggestions = append(suggestions, "Consider adding cost-center tags for billing tracking")
		}

	case models.ResourceTypeBucket:
		if req.Encryption == nil {
			suggestions = append(suggestions, "Consider enabling encryption for security")
		}
		if req.Versioning == nil {
			suggestions = append(suggestions, "Consider enabling versioning for data protection")
		}
	}

	if req.Environment == models.EnvProduction {
		suggestions = append(suggestions,
			"Ensure backup and disaster recovery plans are in place",
			"Consider implementing monitoring and alerting")
	}

	return suggestions
}
