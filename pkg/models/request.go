package models

import "fmt"

// ResourceType enumerates the infrastructure resource kinds the pipeline
// understands.
type ResourceType string

const (
	ResourceTypeCluster  ResourceType = "eks_cluster"
	ResourceTypeBucket   ResourceType = "s3_bucket"
	ResourceTypeDatabase ResourceType = "rds_database"
	ResourceTypeNetwork  ResourceType = "vpc"
)

// ParseResourceType maps a wire value onto a known ResourceType.
func ParseResourceType(s string) (ResourceType, error) {
	switch ResourceType(s) {
	case ResourceTypeCluster, ResourceTypeBucket, ResourceTypeDatabase, ResourceTypeNetwork:
		return ResourceType(s), nil
	}
	return "", fmt.Errorf("unknown resource type %q", s)
}

// Environment is the deployment tier a resource is requested for.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// DefaultRegion is applied when a request does not name a region.
const DefaultRegion = "us-east-1"

// ResourceRequest is the canonical structured form of an infrastructure ask.
// It is produced once by the resolver (or constructed directly) and read-only
// afterwards; downstream stages derive data from it but never mutate it.
type ResourceRequest struct {
	ResourceType ResourceType `json:"resource_type"`
	Name         string       `json:"name"`
	Region       string       `json:"region,omitempty"`
	Environment  Environment  `json:"environment,omitempty"`

	// Cluster
	NodeCount         *int     `json:"node_count,omitempty"`
	KubernetesVersion string   `json:"kubernetes_version,omitempty"`
	InstanceTypes     []string `json:"instance_types,omitempty"`

	// Object store. Versioning and Encryption are deliberately tri-state:
	// nil means "not specified", which synthesis treats differently from an
	// explicit false.
	Versioning *bool `json:"versioning,omitempty"`
	Encryption *bool `json:"encryption,omitempty"`

	// Relational database
	Engine           string `json:"engine,omitempty"`
	InstanceClass    string `json:"instance_class,omitempty"`
	AllocatedStorage *int   `json:"allocated_storage,omitempty"`

	Tags        map[string]string `json:"tags,omitempty"`
	Description string            `json:"description,omitempty"`
}

// ApplyDefaults fills the region and environment when the resolver left them
// empty. It is the only mutation a ResourceRequest ever sees, and it happens
// before the request is handed to any downstream stage.
func (r *ResourceRequest) ApplyDefaults() {
	if r.Region == "" {
		r.Region = DefaultRegion
	}
	if r.Environment == "" {
		r.Environment = EnvDevelopment
	}
}

func (t ResourceType) String() string { return string(t) }
