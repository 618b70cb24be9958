package resolver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/provision-dev/provision/pkg/models"
)

var (
	calledNamePattern  = regexp.MustCompile(`(?:called|named)\s+([a-zA-Z0-9-]+)`)
	trailerNamePattern = regexp.MustCompile(`([a-zA-Z0-9-]+)(?:\s+cluster|\s+bucket|\s+database)`)
	unsafeNameChars    = regexp.MustCompile(`[^a-zA-Z0-9-]`)
	regionPattern      = regexp.MustCompile(`(us-[a-z]+-\d+|eu-[a-z]+-\d+|ap-[a-z]+-\d+)`)
	nodeCountPattern   = regexp.MustCompile(`(\d+)\s+nodes?`)
)

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// resolveWithPatterns is the last resolution tier: a purely local, heuristic
// parse. It always yields a request; a cluster is assumed when no other type
// keyword matches.
func (r *Resolver) resolveWithPatterns(text string) (*models.ResourceRequest, error) {
	lower := strings.ToLower(text)

	resourceType := models.ResourceTypeCluster
	switch {
	case containsAny(lower, "bucket", "s3", "storage"):
		resourceType = models.ResourceTypeBucket
	case containsAny(lower, "database", "db", "rds", "mysql", "postgres"):
		resourceType = models.ResourceTypeDatabase
	case containsAny(lower, "vpc", "network", "subnet"):
		resourceType = models.ResourceTypeNetwork
	}

	name := "default-resource"
	if m := calledNamePattern.FindStringSubmatch(text); m != nil {
		name = m[1]
	} else if m := trailerNamePattern.FindStringSubmatch(text); m != nil {
		name = m[1]
	}
	name = strings.ToLower(unsafeNameChars.ReplaceAllString(name, "-"))

	region := ""
	if m := regionPattern.FindString(text); m != "" {
		region = m
	}

	environment := models.EnvDevelopment
	if containsAny(lower, "prod") {
		environment = models.EnvProduction
	} else if containsAny(lower, "staging", "stage") {
		environment = models.EnvStaging
	}

	req := &models.ResourceRequest{
		ResourceType: resourceType,
		Name:         name,
		Region:       region,
		Environment:  environment,
		Description:  "Parsed from: " + truncate(text, 100),
	}

	if resourceType == models.ResourceTypeCluster {
		nodeCount := 3
		if m := nodeCountPattern.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				nodeCount = n
			}
		}
		req.NodeCount = &nodeCount
		req.KubernetesVersion = "1.28"
	}

	req.ApplyDefaults()
	return req, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
