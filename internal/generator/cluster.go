package generator

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/provision-dev/provision/pkg/models"
)

func (s *Synthesizer) synthesizeCluster(req *models.ResourceRequest) map[models.DocumentRole]*models.GeneratedDocument {
	now := s.now()
	env := req.Environment

	nodeCount := defaultNodeCount
	if req.NodeCount != nil {
		nodeCount = *req.NodeCount
	}
	version := req.KubernetesVersion
	if version == "" {
		version = defaultKubernetesVersion
	}
	instanceTypes := req.InstanceTypes
	if len(instanceTypes) == 0 {
		instanceTypes = defaultInstanceTypes(env)
	}

	subnets := []string{
		valuesRef(env, "privateSubnet1Id"),
		valuesRef(env, "privateSubnet2Id"),
	}

	cluster := &Cluster{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "eks.aws.crossplane.io/v1alpha1",
			Kind:       "Cluster",
		},
		Metadata: ObjectMeta{
			Name:   req.Name,
			Labels: standardLabels(req),
			Annotations: map[string]string{
				"crossplane.io/external-name": req.Name,
			},
		},
		Spec: ClusterSpec{
			ForProvider: ClusterParameters{
				Region:  req.Region,
				RoleARN: fmt.Sprintf("arn:aws:iam::{{ .Values.awsAccountId }}:role/eks-cluster-role-%s", env),
				Version: version,
				ResourcesVpcConfig: VpcConfig{
					SecurityGroupIDs:            []string{valuesRef(env, "securityGroupId")},
					SubnetIDs:                   subnets,
					EndpointConfigPrivateAccess: true,
					// Public endpoint access is closed in production only.
					EndpointConfigPublicAccess: env != models.EnvProduction,
				},
				EncryptionConfig: EncryptionConfig{
					Resources: []string{"secrets"},
					Provider:  EncryptionProvider{KeyARN: valuesRef(env, "kmsKeyArn")},
				},
				Logging: ClusterLogging{
					ClusterLogging: []LogSetup{{
						Types:   []string{"api", "audit", "authenticator", "controllerManager", "scheduler"},
						Enabled: true,
					}},
				},
				Tags: mergeTags(req, now, map[string]string{"Owner": "platform-team"}),
			},
			ProviderConfigRef: ProviderConfigRef{Name: providerConfigName(req)},
		},
	}

	maxUnavailable := 0
	if nodeCount > 2 {
		maxUnavailable = 1
	}
	taints := []Taint{}
	if env == models.EnvProduction {
		taints = append(taints, Taint{
			Key:    "node.kubernetes.io/production",
			Value:  "true",
			Effect: "NoSchedule",
		})
	}

	nodeGroup := &NodeGroup{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "eks.aws.crossplane.io/v1alpha1",
			Kind:       "NodeGroup",
		},
		Metadata: ObjectMeta{
			Name: req.Name + "-node-group",
			Labels: map[string]string{
				"environment": string(env),
				"cluster":     req.Name,
			},
		},
		Spec: NodeGroupSpec{
			ForProvider: NodeGroupParameters{
				ClusterName:   req.Name,
				NodeRole:      fmt.Sprintf("arn:aws:iam::{{ .Values.awsAccountId }}:role/eks-node-group-role-%s", env),
				Subnets:       subnets,
				InstanceTypes: instanceTypes,
				ScalingConfig: ScalingConfig{
					MinSize:     max(1, nodeCount-1),
					MaxSize:     nodeCount * 2,
					DesiredSize: nodeCount,
				},
				UpdateConfig: UpdateConfig{
					MaxUnavailable:           maxUnavailable,
					MaxUnavailablePercentage: 25,
				},
				Labels: map[string]string{
					"node.kubernetes.io/role": "application",
					"environment":             string(env),
				},
				Taints: taints,
				Tags: map[string]string{
					"Environment": string(env),
					"Cluster":     req.Name,
					"NodeGroup":   req.Name + "-node-group",
				},
			},
			ProviderConfigRef: ProviderConfigRef{Name: providerConfigName(req)},
		},
	}

	docs := map[models.DocumentRole]*models.GeneratedDocument{
		RoleProviderConfig: providerConfig(req),
		RoleCluster:        {Role: RoleCluster, Content: cluster},
		RoleNodeGroup:      {Role: RoleNodeGroup, Content: nodeGroup},
	}

	if env == models.EnvProduction {
		for role, doc := range clusterAddons(req) {
			docs[role] = doc
		}
	}
	return docs
}

// clusterAddons are only synthesized for production clusters.
func clusterAddons(req *models.ResourceRequest) map[models.DocumentRole]*models.GeneratedDocument {
	addon := func(name, addonName, addonVersion string) *Addon {
		return &Addon{
			TypeMeta: metav1.TypeMeta{
				APIVersion: "eks.aws.crossplane.io/v1alpha1",
				Kind:       "Addon",
			},
			Metadata: ObjectMeta{Name: req.Name + "-" + name},
			Spec: AddonSpec{
				ForProvider: AddonParameters{
					ClusterName:  req.Name,
					AddonName:    addonName,
					AddonVersion: addonVersion,
				},
			},
		}
	}

	return map[models.DocumentRole]*models.GeneratedDocument{
		RoleLBController: {
			Role:    RoleLBController,
			Content: addon("aws-load-balancer-controller", "aws-load-balancer-controller", "v1.6.2-eksbuild.1"),
		},
		RoleStorageCSI: {
			Role:    RoleStorageCSI,
			Content: addon("ebs-csi-driver", "aws-ebs-csi-driver", "v1.24.0-eksbuild.1"),
		},
	}
}
