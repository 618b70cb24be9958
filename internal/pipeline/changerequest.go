package pipeline

import (
	"fmt"
	"strings"

	"github.com/provision-dev/provision/pkg/models"
)

// displayType renders a resource type for humans: "eks_cluster" → "EKS Cluster".
var displayTypes = map[models.ResourceType]string{
	models.ResourceTypeCluster:  "EKS Cluster",
	models.ResourceTypeBucket:   "S3 Bucket",
	models.ResourceTypeDatabase: "RDS Database",
	models.ResourceTypeNetwork:  "VPC",
}

func displayType(t models.ResourceType) string {
	if d, ok := displayTypes[t]; ok {
		return d
	}
	return string(t)
}

func changeRequestTitle(req *models.ResourceRequest) string {
	return fmt.Sprintf("Add %s: %s", displayType(req.ResourceType), req.Name)
}

// changeRequestBody renders the reviewable markdown description for the
// change request: request details, generated file list, a per-type
// configuration summary, suggestions, and a review checklist.
func changeRequestBody(req *models.ResourceRequest, files []models.PublishableFile, suggestions []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Automated Infrastructure Request\n\n")
	fmt.Fprintf(&b, "**Resource Type**: %s\n", displayType(req.ResourceType))
	fmt.Fprintf(&b, "**Name**: `%s`\n", req.Name)
	fmt.Fprintf(&b, "**Environment**: `%s`\n", req.Environment)
	fmt.Fprintf(&b, "**Region**: `%s`\n\n", req.Region)

	fmt.Fprintf(&b, "### Request Details\n\n")
	if req.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", req.Description)
	} else {
		fmt.Fprintf(&b, "Generated from natural language request\n\n")
	}

	fmt.Fprintf(&b, "### Generated Configurations\n\n")
	fmt.Fprintf(&b, "This change adds the following Crossplane configurations:\n\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- `%s`\n", f.Path)
	}
	b.WriteString("\n")

	writeConfigSummary(&b, req)

	if len(suggestions) > 0 {
		fmt.Fprintf(&b, "### Enhancement Suggestions\n\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "### Review Checklist\n\n")
	fmt.Fprintf(&b, "- [ ] Resource naming follows organizational conventions\n")
	fmt.Fprintf(&b, "- [ ] Security configurations are appropriate for `%s`\n", req.Environment)
	fmt.Fprintf(&b, "- [ ] Resource sizing and scaling parameters are reasonable\n")
	fmt.Fprintf(&b, "- [ ] All required tags and labels are properly set\n")
	fmt.Fprintf(&b, "- [ ] Cost implications have been considered\n\n")

	fmt.Fprintf(&b, "Once approved and merged, Crossplane will provision the requested resources. ")
	fmt.Fprintf(&b, "Note that this creates real cloud resources and may incur costs.\n")

	return b.String()
}

func writeConfigSummary(b *strings.Builder, req *models.ResourceRequest) {
	switch req.ResourceType {
	case models.ResourceTypeCluster:
		fmt.Fprintf(b, "### Configuration Summary\n\n")
		fmt.Fprintf(b, "- Kubernetes Version: `%s`\n", orDefault(req.KubernetesVersion, "1.28"))
		nodeCount := 3
		if req.NodeCount != nil {
			nodeCount = *req.NodeCount
		}
		fmt.Fprintf(b, "- Node Count: `%d`\n", nodeCount)
		if len(req.InstanceTypes) > 0 {
			fmt.Fprintf(b, "- Instance Types: `%s`\n", strings.Join(req.InstanceTypes, ", "))
		} else {
			fmt.Fprintf(b, "- Instance Types: auto-selected for the environment\n")
		}
		b.WriteString("\n")

	case models.ResourceTypeBucket:
		fmt.Fprintf(b, "### Configuration Summary\n\n")
		fmt.Fprintf(b, "- Versioning: `%s`\n", enabledUnlessFalse(req.Versioning))
		fmt.Fprintf(b, "- Encryption: `%s`\n", enabledUnlessFalse(req.Encryption))
		b.WriteString("\n")

	case models.ResourceTypeDatabase:
		fmt.Fprintf(b, "### Configuration Summary\n\n")
		fmt.Fprintf(b, "- Engine: `%s`\n", orDefault(req.Engine, "mysql"))
		fmt.Fprintf(b, "- Instance Class: `%s`\n", orDefault(req.InstanceClass, "auto-selected"))
		storage := 20
		if req.AllocatedStorage != nil {
			storage = *req.AllocatedStorage
		}
		fmt.Fprintf(b, "- Storage: `%dGB`\n", storage)
		b.WriteString("\n")
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func enabledUnlessFalse(v *bool) string {
	if v != nil && !*v {
		return "Disabled"
	}
	return "Enabled"
}
