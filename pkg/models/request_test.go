package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResourceType(t *testing.T) {
	for _, s := range []string{"eks_cluster", "s3_bucket", "rds_database", "vpc"} {
		got, err := ParseResourceType(s)
		require.NoError(t, err)
		assert.Equal(t, ResourceType(s), got)
	}

	_, err := ParseResourceType("lambda_function")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	req := &ResourceRequest{ResourceType: ResourceTypeBucket, Name: "logs"}
	req.ApplyDefaults()

	assert.Equal(t, DefaultRegion, req.Region)
	assert.Equal(t, EnvDevelopment, req.Environment)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	req := &ResourceRequest{
		ResourceType: ResourceTypeBucket,
		Name:         "logs",
		Region:       "eu-west-1",
		Environment:  EnvProduction,
	}
	req.ApplyDefaults()

	assert.Equal(t, "eu-west-1", req.Region)
	assert.Equal(t, EnvProduction, req.Environment)
}

func TestPipelineResultFailed(t *testing.T) {
	ok := &PipelineResult{Success: &PipelineSuccess{}}
	assert.False(t, ok.Failed())

	failed := &PipelineResult{Failure: &PipelineFailure{Stage: StageValidation}}
	assert.True(t, failed.Failed())
}
