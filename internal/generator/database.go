package generator

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/provision-dev/provision/pkg/models"
)

func (s *Synthesizer) synthesizeDatabase(req *models.ResourceRequest) map[models.DocumentRole]*models.GeneratedDocument {
	now := s.now()
	env := req.Environment

	engine := req.Engine
	if engine == "" {
		engine = defaultEngine
	}
	instanceClass := req.InstanceClass
	if instanceClass == "" {
		instanceClass = defaultDBInstanceClass(env)
	}
	storage := defaultAllocatedStorage
	if req.AllocatedStorage != nil {
		storage = *req.AllocatedStorage
	}

	backupRetention := 1
	if env == models.EnvProduction {
		backupRetention = 7
	}

	database := &RDSInstance{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "rds.aws.crossplane.io/v1alpha1",
			Kind:       "RDSInstance",
		},
		Metadata: ObjectMeta{
			Name: req.Name,
			Labels: map[string]string{
				"environment": string(env),
				"engine":      engine,
				"managed-by":  managedByLabel,
			},
		},
		Spec: RDSInstanceSpec{
			ForProvider: RDSParameters{
				Region:                req.Region,
				DBInstanceClass:       instanceClass,
				Engine:                engine,
				EngineVersion:         engineVersion(engine),
				AllocatedStorage:      storage,
				StorageType:           "gp2",
				StorageEncrypted:      true,
				MultiAZ:               env == models.EnvProduction,
				PubliclyAccessible:    false,
				VPCSecurityGroupIDs:   []string{valuesRef(env, "databaseSecurityGroupId")},
				DBSubnetGroupName:     valuesRef(env, "dbSubnetGroupName"),
				BackupRetentionPeriod: backupRetention,
				BackupWindow:          "03:00-04:00",
				MaintenanceWindow:     "sun:04:00-sun:05:00",
				// Minor upgrades are applied automatically everywhere except
				// production, where they go through the change process.
				AutoMinorVersionUpgrade: env != models.EnvProduction,
				DeletionProtection:      env == models.EnvProduction,
				Tags:                    mergeTags(req, now, map[string]string{"Engine": engine}),
			},
			ProviderConfigRef: ProviderConfigRef{Name: providerConfigName(req)},
			WriteConnectionSecretsToRef: SecretTargetRef{
				Name:      req.Name + "-db-connection",
				Namespace: credentialNamespace,
			},
		},
	}

	return map[models.DocumentRole]*models.GeneratedDocument{
		RoleProviderConfig: providerConfig(req),
		RoleDatabase:       {Role: RoleDatabase, Content: database},
	}
}
