package resolver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/provision-dev/provision/pkg/models"
)

func patternResolve(t *testing.T, text string) *models.ResourceRequest {
	t.Helper()
	r := New(nil, "", "", zap.NewNop())
	req, err := r.resolveWithPatterns(text)
	require.NoError(t, err)
	return req
}

func TestPatterns_TypeClassification(t *testing.T) {
	cases := map[string]models.ResourceType{
		"I need a secure S3 bucket for storing customer data": models.ResourceTypeBucket,
		"spin up a postgres database for the orders service":  models.ResourceTypeDatabase,
		"a new VPC for the data platform":                     models.ResourceTypeNetwork,
		"we need somewhere to run our workloads":              models.ResourceTypeCluster,
	}
	for text, want := range cases {
		req := patternResolve(t, text)
		assert.Equal(t, want, req.ResourceType, "text %q", text)
	}
}

func TestPatterns_NameExtraction(t *testing.T) {
	req := patternResolve(t, "Create a bucket called Customer-Archive")
	assert.Equal(t, "customer-archive", req.Name)

	req = patternResolve(t, "set up the analytics cluster")
	assert.Equal(t, "analytics", req.Name)

	req = patternResolve(t, "we need compute capacity")
	assert.Equal(t, "default-resource", req.Name)
}

func TestPatterns_RegionAndEnvironment(t *testing.T) {
	req := patternResolve(t, "a staging bucket in eu-west-1 named backups")
	assert.Equal(t, "eu-west-1", req.Region)
	assert.Equal(t, models.EnvStaging, req.Environment)

	req = patternResolve(t, "a production database")
	assert.Equal(t, models.DefaultRegion, req.Region)
	assert.Equal(t, models.EnvProduction, req.Environment)

	req = patternResolve(t, "a bucket named scratch")
	assert.Equal(t, models.EnvDevelopment, req.Environment)
}

func TestPatterns_ClusterDefaults(t *testing.T) {
	req := patternResolve(t, "a cluster called compute with 7 nodes")
	require.NotNil(t, req.NodeCount)
	assert.Equal(t, 7, *req.NodeCount)
	assert.Equal(t, "1.28", req.KubernetesVersion)

	req = patternResolve(t, "a cluster called compute")
	require.NotNil(t, req.NodeCount)
	assert.Equal(t, 3, *req.NodeCount)
}

func TestPatterns_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("very long request ", 20)
	req := patternResolve(t, long)

	assert.True(t, strings.HasPrefix(req.Description, "Parsed from: "))
	assert.True(t, strings.HasSuffix(req.Description, "..."))
	assert.LessOrEqual(t, len(req.Description), len("Parsed from: ")+103)
}
