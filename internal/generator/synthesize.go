package generator

import (
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/provision-dev/provision/pkg/models"
)

// UnsupportedTypeError reports a resource type outside the enumerated set.
// Upstream validation should make this unreachable.
type UnsupportedTypeError struct {
	Type models.ResourceType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported resource type: %s", e.Type)
}

// Synthesizer expands validated requests into configuration documents.
// Synthesis is deterministic given the request and the clock; the timestamp
// only feeds advisory metadata (tags, provenance headers).
type Synthesizer struct {
	now func() time.Time
}

// NewSynthesizer returns a Synthesizer using the wall clock.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{now: time.Now}
}

// NewSynthesizerWithClock lets tests pin the timestamp.
func NewSynthesizerWithClock(now func() time.Time) *Synthesizer {
	return &Synthesizer{now: now}
}

// Synthesize produces the document set for a request, keyed by role.
func (s *Synthesizer) Synthesize(req *models.ResourceRequest) (map[models.DocumentRole]*models.GeneratedDocument, error) {
	switch req.ResourceType {
	case models.ResourceTypeCluster:
		return s.synthesizeCluster(req), nil
	case models.ResourceTypeBucket:
		return s.synthesizeBucket(req), nil
	case models.ResourceTypeDatabase:
		return s.synthesizeDatabase(req), nil
	case models.ResourceTypeNetwork:
		return s.synthesizeNetwork(req), nil
	default:
		return nil, &UnsupportedTypeError{Type: req.ResourceType}
	}
}

// providerConfigName is referenced by every managed resource of the request.
func providerConfigName(req *models.ResourceRequest) string {
	return req.Name + "-provider-config"
}

// providerConfig is synthesized for every request regardless of type.
func providerConfig(req *models.ResourceRequest) *models.GeneratedDocument {
	doc := &ProviderConfig{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "aws.crossplane.io/v1beta1",
			Kind:       "ProviderConfig",
		},
		Metadata: ObjectMeta{
			Name: providerConfigName(req),
			Labels: map[string]string{
				"environment": string(req.Environment),
				"managed-by":  managedByLabel,
			},
		},
		Spec: ProviderConfigSpec{
			Credentials: ProviderCredentials{
				Source: "Secret",
				SecretRef: SecretRef{
					Namespace: credentialNamespace,
					Name:      credentialSecret,
					Key:       credentialKey,
				},
			},
		},
	}
	return &models.GeneratedDocument{Role: RoleProviderConfig, Content: doc}
}

func standardLabels(req *models.ResourceRequest) map[string]string {
	return map[string]string{
		"environment": string(req.Environment),
		"region":      req.Region,
		"managed-by":  managedByLabel,
	}
}

// valuesRef renders a per-environment values placeholder to be substituted by
// the deployment tooling downstream.
func valuesRef(env models.Environment, field string) string {
	return fmt.Sprintf("{{ .Values.%s.%s }}", env, field)
}
