package generator

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/provision-dev/provision/pkg/models"
)

func (s *Synthesizer) synthesizeNetwork(req *models.ResourceRequest) map[models.DocumentRole]*models.GeneratedDocument {
	now := s.now()

	vpc := &VPC{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "ec2.aws.crossplane.io/v1beta1",
			Kind:       "VPC",
		},
		Metadata: ObjectMeta{
			Name: req.Name,
			Labels: map[string]string{
				"environment": string(req.Environment),
				"managed-by":  managedByLabel,
			},
		},
		Spec: VPCSpec{
			ForProvider: VPCParameters{
				Region:             req.Region,
				CIDRBlock:          "10.0.0.0/16",
				EnableDNSHostnames: true,
				EnableDNSSupport:   true,
				Tags:               mergeTags(req, now, map[string]string{"Name": req.Name}),
			},
			ProviderConfigRef: ProviderConfigRef{Name: providerConfigName(req)},
		},
	}

	return map[models.DocumentRole]*models.GeneratedDocument{
		RoleProviderConfig: providerConfig(req),
		RoleVPC:            {Role: RoleVPC, Content: vpc},
	}
}
