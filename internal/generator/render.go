package generator

import (
	"fmt"
	"time"

	"sigs.k8s.io/yaml"

	"github.com/provision-dev/provision/pkg/models"
)

// roleOrder fixes the file ordering within a change so renders are stable
// across runs and map iteration order never leaks into commits.
var roleOrder = []models.DocumentRole{
	RoleProviderConfig,
	RoleCluster,
	RoleNodeGroup,
	RoleLBController,
	RoleStorageCSI,
	RoleBucket,
	RoleDatabase,
	RoleVPC,
}

// RenderFiles serializes a document set into publishable files, one per
// document, each prefixed with a provenance header. Paths follow
// crossplane/<environment>/<name>-<role>.yaml.
func (s *Synthesizer) RenderFiles(req *models.ResourceRequest, docs map[models.DocumentRole]*models.GeneratedDocument) ([]models.PublishableFile, error) {
	header := s.provenanceHeader(req)

	var files []models.PublishableFile
	for _, role := range roleOrder {
		doc, ok := docs[role]
		if !ok {
			continue
		}
		body, err := yaml.Marshal(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s document: %w", role, err)
		}
		files = append(files, models.PublishableFile{
			Path:    fmt.Sprintf("crossplane/%s/%s-%s.yaml", req.Environment, req.Name, role),
			Content: header + string(body),
		})
	}
	return files, nil
}

func (s *Synthesizer) provenanceHeader(req *models.ResourceRequest) string {
	description := req.Description
	if description == "" {
		description = "No description provided"
	}
	return fmt.Sprintf(`# Generated by provision-automation
# Resource: %s
# Name: %s
# Environment: %s
# Generated at: %s
# Description: %s

`, req.ResourceType, req.Name, req.Environment, s.now().UTC().Format(time.RFC3339), description)
}
