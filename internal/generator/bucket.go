package generator

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/provision-dev/provision/pkg/models"
)

func (s *Synthesizer) synthesizeBucket(req *models.ResourceRequest) map[models.DocumentRole]*models.GeneratedDocument {
	now := s.now()

	versioning := "Enabled"
	if req.Versioning != nil && !*req.Versioning {
		versioning = "Suspended"
	}

	bucket := &Bucket{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "s3.aws.crossplane.io/v1beta1",
			Kind:       "Bucket",
		},
		Metadata: ObjectMeta{
			Name:   req.Name,
			Labels: standardLabels(req),
		},
		Spec: BucketSpec{
			ForProvider: BucketParameters{
				Region:                  req.Region,
				ACL:                     "private",
				VersioningConfiguration: VersioningConfig{Status: versioning},
				Encryption:              bucketEncryption(req),
				// Locked down regardless of environment.
				PublicAccessBlock: PublicAccessBlock{
					BlockPublicAcls:       true,
					BlockPublicPolicy:     true,
					IgnorePublicAcls:      true,
					RestrictPublicBuckets: true,
				},
				Lifecycle: LifecycleConfig{
					Rules: []LifecycleRule{
						{
							ID:     "DeleteIncompleteMultipartUploads",
							Status: "Enabled",
							AbortIncompleteMultipartUpload: &AbortMultipartUpload{
								DaysAfterInitiation: 7,
							},
						},
						{
							ID:     "TransitionToIA",
							Status: "Enabled",
							Transitions: []LifecycleTransition{
								{Days: 30, StorageClass: "STANDARD_IA"},
								{Days: 90, StorageClass: "GLACIER"},
							},
						},
					},
				},
				Tags: mergeTags(req, now, nil),
			},
			ProviderConfigRef: ProviderConfigRef{Name: providerConfigName(req)},
		},
	}

	return map[models.DocumentRole]*models.GeneratedDocument{
		RoleProviderConfig: providerConfig(req),
		RoleBucket:         {Role: RoleBucket, Content: bucket},
	}
}

// bucketEncryption implements the tri-state encryption contract: explicitly
// disabled drops the block entirely, explicitly requested selects KMS with a
// bucket key, and unspecified falls back to AES256 in every environment.
func bucketEncryption(req *models.ResourceRequest) *SSEConfiguration {
	if req.Encryption != nil && !*req.Encryption {
		return nil
	}

	rule := SSERule{
		ApplyServerSideEncryptionByDefault: SSEDefault{SSEAlgorithm: "AES256"},
	}
	if req.Encryption != nil && *req.Encryption {
		rule.ApplyServerSideEncryptionByDefault = SSEDefault{
			SSEAlgorithm:   "aws:kms",
			KMSMasterKeyID: valuesRef(req.Environment, "kmsKeyArn"),
		}
		rule.BucketKeyEnabled = true
	}
	return &SSEConfiguration{Rules: []SSERule{rule}}
}
