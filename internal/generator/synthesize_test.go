package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provision-dev/provision/pkg/models"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func clusterRequest(env models.Environment) *models.ResourceRequest {
	return &models.ResourceRequest{
		ResourceType: models.ResourceTypeCluster,
		Name:         "analytics",
		Region:       "us-east-1",
		Environment:  env,
	}
}

func TestSynthesizeCluster_DevelopmentDocumentSet(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	docs, err := s.Synthesize(clusterRequest(models.EnvDevelopment))
	require.NoError(t, err)

	assert.Len(t, docs, 3)
	assert.Contains(t, docs, RoleProviderConfig)
	assert.Contains(t, docs, RoleCluster)
	assert.Contains(t, docs, RoleNodeGroup)
	assert.NotContains(t, docs, RoleLBController)
	assert.NotContains(t, docs, RoleStorageCSI)
}

func TestSynthesizeCluster_ProductionAddsAddons(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	docs, err := s.Synthesize(clusterRequest(models.EnvProduction))
	require.NoError(t, err)

	assert.Len(t, docs, 5)
	assert.Contains(t, docs, RoleLBController)
	assert.Contains(t, docs, RoleStorageCSI)
}

func TestSynthesizeCluster_ProductionHardening(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	docs, err := s.Synthesize(clusterRequest(models.EnvProduction))
	require.NoError(t, err)

	cluster, ok := docs[RoleCluster].Content.(*Cluster)
	require.True(t, ok)
	assert.False(t, cluster.Spec.ForProvider.ResourcesVpcConfig.EndpointConfigPublicAccess)
	assert.True(t, cluster.Spec.ForProvider.ResourcesVpcConfig.EndpointConfigPrivateAccess)

	nodeGroup, ok := docs[RoleNodeGroup].Content.(*NodeGroup)
	require.True(t, ok)
	require.Len(t, nodeGroup.Spec.ForProvider.Taints, 1)
	assert.Equal(t, "node.kubernetes.io/production", nodeGroup.Spec.ForProvider.Taints[0].Key)
	assert.Equal(t, []string{"m6i.large", "m6i.xlarge", "m5.large", "m5.xlarge"}, nodeGroup.Spec.ForProvider.InstanceTypes)
}

func TestSynthesizeCluster_ScalingDerivedFromNodeCount(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	req := clusterRequest(models.EnvDevelopment)
	req.NodeCount = intPtr(5)

	docs, err := s.Synthesize(req)
	require.NoError(t, err)

	nodeGroup := docs[RoleNodeGroup].Content.(*NodeGroup)
	scaling := nodeGroup.Spec.ForProvider.ScalingConfig
	assert.Equal(t, 4, scaling.MinSize)
	assert.Equal(t, 10, scaling.MaxSize)
	assert.Equal(t, 5, scaling.DesiredSize)
	assert.Equal(t, 1, nodeGroup.Spec.ForProvider.UpdateConfig.MaxUnavailable)
}

func TestSynthesizeCluster_SingleNodeKeepsZeroUnavailable(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	req := clusterRequest(models.EnvDevelopment)
	req.NodeCount = intPtr(1)

	docs, err := s.Synthesize(req)
	require.NoError(t, err)

	nodeGroup := docs[RoleNodeGroup].Content.(*NodeGroup)
	assert.Equal(t, 1, nodeGroup.Spec.ForProvider.ScalingConfig.MinSize)
	assert.Equal(t, 0, nodeGroup.Spec.ForProvider.UpdateConfig.MaxUnavailable)
}

func TestSynthesizeBucket_EncryptionTriState(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	base := func() *models.ResourceRequest {
		return &models.ResourceRequest{
			ResourceType: models.ResourceTypeBucket,
			Name:         "customer-data",
			Region:       "us-east-1",
			Environment:  models.EnvProduction,
		}
	}

	// Unspecified falls back to AES256.
	docs, err := s.Synthesize(base())
	require.NoError(t, err)
	bucket := docs[RoleBucket].Content.(*Bucket)
	require.NotNil(t, bucket.Spec.ForProvider.Encryption)
	assert.Equal(t, "AES256", bucket.Spec.ForProvider.Encryption.Rules[0].ApplyServerSideEncryptionByDefault.SSEAlgorithm)

	// Explicitly requested selects KMS with a bucket key.
	req := base()
	req.Encryption = boolPtr(true)
	docs, err = s.Synthesize(req)
	require.NoError(t, err)
	bucket = docs[RoleBucket].Content.(*Bucket)
	require.NotNil(t, bucket.Spec.ForProvider.Encryption)
	rule := bucket.Spec.ForProvider.Encryption.Rules[0]
	assert.Equal(t, "aws:kms", rule.ApplyServerSideEncryptionByDefault.SSEAlgorithm)
	assert.True(t, rule.BucketKeyEnabled)

	// Explicitly disabled drops the block entirely.
	req = base()
	req.Encryption = boolPtr(false)
	docs, err = s.Synthesize(req)
	require.NoError(t, err)
	bucket = docs[RoleBucket].Content.(*Bucket)
	assert.Nil(t, bucket.Spec.ForProvider.Encryption)
}

func TestSynthesizeBucket_VersioningSuspendedOnlyWhenExplicit(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	req := &models.ResourceRequest{
		ResourceType: models.ResourceTypeBucket,
		Name:         "logs",
		Region:       "us-east-1",
		Environment:  models.EnvDevelopment,
		Versioning:   boolPtr(false),
	}

	docs, err := s.Synthesize(req)
	require.NoError(t, err)
	bucket := docs[RoleBucket].Content.(*Bucket)
	assert.Equal(t, "Suspended", bucket.Spec.ForProvider.VersioningConfiguration.Status)

	req.Versioning = nil
	docs, err = s.Synthesize(req)
	require.NoError(t, err)
	bucket = docs[RoleBucket].Content.(*Bucket)
	assert.Equal(t, "Enabled", bucket.Spec.ForProvider.VersioningConfiguration.Status)
}

func TestSynthesizeDatabase_EnvironmentDefaults(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	req := &models.ResourceRequest{
		ResourceType: models.ResourceTypeDatabase,
		Name:         "orders",
		Region:       "us-east-1",
		Environment:  models.EnvProduction,
	}

	docs, err := s.Synthesize(req)
	require.NoError(t, err)

	db := docs[RoleDatabase].Content.(*RDSInstance)
	params := db.Spec.ForProvider
	assert.Equal(t, "mysql", params.Engine)
	assert.Equal(t, "8.0.35", params.EngineVersion)
	assert.Equal(t, "db.t3.medium", params.DBInstanceClass)
	assert.Equal(t, 20, params.AllocatedStorage)
	assert.True(t, params.MultiAZ)
	assert.True(t, params.DeletionProtection)
	assert.False(t, params.AutoMinorVersionUpgrade)
	assert.Equal(t, 7, params.BackupRetentionPeriod)
	assert.Equal(t, "orders-db-connection", db.Spec.WriteConnectionSecretsToRef.Name)
}

func TestSynthesizeDatabase_DevelopmentDefaults(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	req := &models.ResourceRequest{
		ResourceType: models.ResourceTypeDatabase,
		Name:         "orders",
		Region:       "us-east-1",
		Environment:  models.EnvDevelopment,
		Engine:       "postgres",
	}

	docs, err := s.Synthesize(req)
	require.NoError(t, err)

	db := docs[RoleDatabase].Content.(*RDSInstance)
	params := db.Spec.ForProvider
	assert.Equal(t, "15.4", params.EngineVersion)
	assert.Equal(t, "db.t3.micro", params.DBInstanceClass)
	assert.False(t, params.MultiAZ)
	assert.False(t, params.DeletionProtection)
	assert.True(t, params.AutoMinorVersionUpgrade)
	assert.Equal(t, 1, params.BackupRetentionPeriod)
}

func TestSynthesizeNetwork_StandardCIDRAndDNS(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	req := &models.ResourceRequest{
		ResourceType: models.ResourceTypeNetwork,
		Name:         "platform",
		Region:       "us-east-1",
		Environment:  models.EnvStaging,
	}

	docs, err := s.Synthesize(req)
	require.NoError(t, err)

	vpc := docs[RoleVPC].Content.(*VPC)
	assert.Equal(t, "10.0.0.0/16", vpc.Spec.ForProvider.CIDRBlock)
	assert.True(t, vpc.Spec.ForProvider.EnableDNSHostnames)
	assert.True(t, vpc.Spec.ForProvider.EnableDNSSupport)
	assert.Equal(t, "platform", vpc.Spec.ForProvider.Tags["Name"])
	assert.Equal(t, "platform-provider-config", vpc.Spec.ProviderConfigRef.Name)
}

func TestSynthesize_UnsupportedType(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)

	_, err := s.Synthesize(&models.ResourceRequest{ResourceType: "lambda_function", Name: "fn"})

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, models.ResourceType("lambda_function"), unsupported.Type)
}

func TestRenderFiles_DeterministicAcrossRuns(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)
	req := clusterRequest(models.EnvProduction)

	render := func() []models.PublishableFile {
		docs, err := s.Synthesize(req)
		require.NoError(t, err)
		files, err := s.RenderFiles(req, docs)
		require.NoError(t, err)
		return files
	}

	first := render()
	second := render()
	assert.Equal(t, first, second)
}

func TestRenderFiles_PathsAndOrdering(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)
	req := clusterRequest(models.EnvProduction)

	docs, err := s.Synthesize(req)
	require.NoError(t, err)
	files, err := s.RenderFiles(req, docs)
	require.NoError(t, err)

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{
		"crossplane/production/analytics-provider_config.yaml",
		"crossplane/production/analytics-cluster.yaml",
		"crossplane/production/analytics-node_group.yaml",
		"crossplane/production/analytics-aws_load_balancer_controller.yaml",
		"crossplane/production/analytics-ebs_csi_driver.yaml",
	}, paths)
}

func TestRenderFiles_ProvenanceHeader(t *testing.T) {
	s := NewSynthesizerWithClock(fixedClock)
	req := &models.ResourceRequest{
		ResourceType: models.ResourceTypeBucket,
		Name:         "logs",
		Region:       "us-east-1",
		Environment:  models.EnvDevelopment,
		Description:  "Bucket for service logs",
	}

	docs, err := s.Synthesize(req)
	require.NoError(t, err)
	files, err := s.RenderFiles(req, docs)
	require.NoError(t, err)

	require.NotEmpty(t, files)
	for _, f := range files {
		assert.True(t, strings.HasPrefix(f.Content, "# Generated by provision-automation\n"))
		assert.Contains(t, f.Content, "# Generated at: 2025-06-15T12:00:00Z")
		assert.Contains(t, f.Content, "# Description: Bucket for service logs")
	}
}
