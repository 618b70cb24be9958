// Package generator validates resource requests and expands them into
// declarative Crossplane configuration documents.
package generator

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/provision-dev/provision/pkg/models"
)

// Document roles within one request's synthesis run.
const (
	RoleProviderConfig models.DocumentRole = "provider_config"
	RoleCluster        models.DocumentRole = "cluster"
	RoleNodeGroup      models.DocumentRole = "node_group"
	RoleLBController   models.DocumentRole = "aws_load_balancer_controller"
	RoleStorageCSI     models.DocumentRole = "ebs_csi_driver"
	RoleBucket         models.DocumentRole = "bucket"
	RoleDatabase       models.DocumentRole = "database"
	RoleVPC            models.DocumentRole = "vpc"
)

// ObjectMeta is the metadata block of a generated manifest. Kept local
// (instead of metav1.ObjectMeta) so rendered documents stay free of empty
// creationTimestamp noise.
type ObjectMeta struct {
	Name        string            `json:"name"`
	Labels      map[string]string `json:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

// ProviderConfigRef points a managed resource at its provider configuration.
type ProviderConfigRef struct {
	Name string `json:"name"`
}

// ProviderConfig grants the provider access to cloud credentials.
type ProviderConfig struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        ObjectMeta         `json:"metadata"`
	Spec            ProviderConfigSpec `json:"spec"`
}

type ProviderConfigSpec struct {
	Credentials ProviderCredentials `json:"credentials"`
}

type ProviderCredentials struct {
	Source    string    `json:"source"`
	SecretRef SecretRef `json:"secretRef"`
}

type SecretRef struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Key       string `json:"key"`
}

// Cluster is a managed Kubernetes control plane.
type Cluster struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        ObjectMeta  `json:"metadata"`
	Spec            ClusterSpec `json:"spec"`
}

type ClusterSpec struct {
	ForProvider       ClusterParameters `json:"forProvider"`
	ProviderConfigRef ProviderConfigRef `json:"providerConfigRef"`
}

type ClusterParameters struct {
	Region             string            `json:"region"`
	RoleARN            string            `json:"roleArn"`
	Version            string            `json:"version"`
	ResourcesVpcConfig VpcConfig         `json:"resourcesVpcConfig"`
	EncryptionConfig   EncryptionConfig  `json:"encryptionConfig"`
	Logging            ClusterLogging    `json:"logging"`
	Tags               map[string]string `json:"tags,omitempty"`
}

type VpcConfig struct {
	SecurityGroupIDs            []string `json:"securityGroupIds"`
	SubnetIDs                   []string `json:"subnetIds"`
	EndpointConfigPrivateAccess bool     `json:"endpointConfigPrivateAccess"`
	EndpointConfigPublicAccess  bool     `json:"endpointConfigPublicAccess"`
}

type EncryptionConfig struct {
	Resources []string           `json:"resources"`
	Provider  EncryptionProvider `json:"provider"`
}

type EncryptionProvider struct {
	KeyARN string `json:"keyArn"`
}

type ClusterLogging struct {
	ClusterLogging []LogSetup `json:"clusterLogging"`
}

type LogSetup struct {
	Types   []string `json:"types"`
	Enabled bool     `json:"enabled"`
}

// NodeGroup is the worker pool attached to a cluster.
type NodeGroup struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        ObjectMeta    `json:"metadata"`
	Spec            NodeGroupSpec `json:"spec"`
}

type NodeGroupSpec struct {
	ForProvider       NodeGroupParameters `json:"forProvider"`
	ProviderConfigRef ProviderConfigRef   `json:"providerConfigRef"`
}

type NodeGroupParameters struct {
	ClusterName   string            `json:"clusterName"`
	NodeRole      string            `json:"nodeRole"`
	Subnets       []string          `json:"subnets"`
	InstanceTypes []string          `json:"instanceTypes"`
	ScalingConfig ScalingConfig     `json:"scalingConfig"`
	UpdateConfig  UpdateConfig      `json:"updateConfig"`
	Labels        map[string]string `json:"labels,omitempty"`
	Taints        []Taint           `json:"taints"`
	Tags          map[string]string `json:"tags,omitempty"`
}

type ScalingConfig struct {
	MinSize     int `json:"minSize"`
	MaxSize     int `json:"maxSize"`
	DesiredSize int `json:"desiredSize"`
}

type UpdateConfig struct {
	MaxUnavailable           int `json:"maxUnavailable"`
	MaxUnavailablePercentage int `json:"maxUnavailablePercentage"`
}

type Taint struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Effect string `json:"effect"`
}

// Addon is a managed cluster add-on, synthesized for production clusters.
type Addon struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        ObjectMeta `json:"metadata"`
	Spec            AddonSpec  `json:"spec"`
}

type AddonSpec struct {
	ForProvider AddonParameters `json:"forProvider"`
}

type AddonParameters struct {
	ClusterName  string `json:"clusterName"`
	AddonName    string `json:"addonName"`
	AddonVersion string `json:"addonVersion"`
}

// Bucket is a managed object-store bucket.
type Bucket struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        ObjectMeta `json:"metadata"`
	Spec            BucketSpec `json:"spec"`
}

type BucketSpec struct {
	ForProvider       BucketParameters  `json:"forProvider"`
	ProviderConfigRef ProviderConfigRef `json:"providerConfigRef"`
}

type BucketParameters struct {
	Region                  string           `json:"region"`
	ACL                     string           `json:"acl"`
	VersioningConfiguration VersioningConfig `json:"versioningConfiguration"`
	// Encryption is omitted entirely when the request explicitly disabled it.
	Encryption        *SSEConfiguration `json:"serverSideEncryptionConfiguration,omitempty"`
	PublicAccessBlock PublicAccessBlock `json:"publicAccessBlockConfiguration"`
	Lifecycle         LifecycleConfig   `json:"lifecycleConfiguration"`
	Tags              map[string]string `json:"tags,omitempty"`
}

type VersioningConfig struct {
	Status string `json:"status"`
}

type SSEConfiguration struct {
	Rules []SSERule `json:"rules"`
}

type SSERule struct {
	ApplyServerSideEncryptionByDefault SSEDefault `json:"applyServerSideEncryptionByDefault"`
	BucketKeyEnabled                   bool       `json:"bucketKeyEnabled"`
}

type SSEDefault struct {
	SSEAlgorithm   string `json:"sseAlgorithm"`
	KMSMasterKeyID string `json:"kmsMasterKeyID,omitempty"`
}

type PublicAccessBlock struct {
	BlockPublicAcls       bool `json:"blockPublicAcls"`
	BlockPublicPolicy     bool `json:"blockPublicPolicy"`
	IgnorePublicAcls      bool `json:"ignorePublicAcls"`
	RestrictPublicBuckets bool `json:"restrictPublicBuckets"`
}

type LifecycleConfig struct {
	Rules []LifecycleRule `json:"rules"`
}

type LifecycleRule struct {
	ID                             string                `json:"id"`
	Status                         string                `json:"status"`
	AbortIncompleteMultipartUpload *AbortMultipartUpload `json:"abortIncompleteMultipartUpload,omitempty"`
	Transitions                    []LifecycleTransition `json:"transitions,omitempty"`
}

type AbortMultipartUpload struct {
	DaysAfterInitiation int `json:"daysAfterInitiation"`
}

type LifecycleTransition struct {
	Days         int    `json:"days"`
	StorageClass string `json:"storageClass"`
}

// RDSInstance is a managed relational database instance.
type RDSInstance struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        ObjectMeta      `json:"metadata"`
	Spec            RDSInstanceSpec `json:"spec"`
}

type RDSInstanceSpec struct {
	ForProvider                 RDSParameters     `json:"forProvider"`
	ProviderConfigRef           ProviderConfigRef `json:"providerConfigRef"`
	WriteConnectionSecretsToRef SecretTargetRef   `json:"writeConnectionSecretsToRef"`
}

type SecretTargetRef struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

type RDSParameters struct {
	Region                  string            `json:"region"`
	DBInstanceClass         string            `json:"dbInstanceClass"`
	Engine                  string            `json:"engine"`
	EngineVersion           string            `json:"engineVersion"`
	AllocatedStorage        int               `json:"allocatedStorage"`
	StorageType             string            `json:"storageType"`
	StorageEncrypted        bool              `json:"storageEncrypted"`
	MultiAZ                 bool              `json:"multiAZ"`
	PubliclyAccessible      bool              `json:"publiclyAccessible"`
	VPCSecurityGroupIDs     []string          `json:"vpcSecurityGroupIds"`
	DBSubnetGroupName       string            `json:"dbSubnetGroupName"`
	BackupRetentionPeriod   int               `json:"backupRetentionPeriod"`
	BackupWindow            string            `json:"backupWindow"`
	MaintenanceWindow       string            `json:"maintenanceWindow"`
	AutoMinorVersionUpgrade bool              `json:"autoMinorVersionUpgrade"`
	DeletionProtection      bool              `json:"deletionProtection"`
	Tags                    map[string]string `json:"tags,omitempty"`
}

// VPC is a managed network.
type VPC struct {
	metav1.TypeMeta `json:",inline"`
	Metadata        ObjectMeta `json:"metadata"`
	Spec            VPCSpec    `json:"spec"`
}

type VPCSpec struct {
	ForProvider       VPCParameters     `json:"forProvider"`
	ProviderConfigRef ProviderConfigRef `json:"providerConfigRef"`
}

type VPCParameters struct {
	Region             string            `json:"region"`
	CIDRBlock          string            `json:"cidrBlock"`
	EnableDNSHostnames bool              `json:"enableDnsHostnames"`
	EnableDNSSupport   bool              `json:"enableDnsSupport"`
	Tags               map[string]string `json:"tags,omitempty"`
}
