package generator

import "github.com/provision-dev/provision/pkg/models"

const (
	defaultKubernetesVersion = "1.28"
	defaultNodeCount         = 3
	defaultAllocatedStorage  = 20
	defaultEngine            = "mysql"

	credentialNamespace = "crossplane-system"
	credentialSecret    = "aws-secret"
	credentialKey       = "credentials"

	managedByLabel = "provision-automation"
)

// defaultInstanceTypes picks node instance shapes by environment tier.
func defaultInstanceTypes(env models.Environment) []string {
	switch env {
	case models.EnvProduction:
		return []string{"m6i.large", "m6i.xlarge", "m5.large", "m5.xlarge"}
	case models.EnvStaging:
		return []string{"m6i.large", "m5.large", "t3.large"}
	default:
		return []string{"t3.medium", "t3.large"}
	}
}

// defaultDBInstanceClass picks a database instance class by environment tier.
func defaultDBInstanceClass(env models.Environment) string {
	switch env {
	case models.EnvProduction:
		return "db.t3.medium"
	case models.EnvStaging:
		return "db.t3.small"
	default:
		return "db.t3.micro"
	}
}

var engineVersions = map[string]string{
	"mysql":    "8.0.35",
	"postgres": "15.4",
	"mariadb":  "10.11.5",
}

// engineVersion returns the pinned version for a database engine.
func engineVersion(engine string) string {
	if v, ok := engineVersions[engine]; ok {
		return v
	}
	return engineVersions[defaultEngine]
}
