package resolver

import "github.com/sashabaranov/go-openai/jsonschema"

// systemPrompt is deliberately compact to keep the input token budget small;
// the response schema carries the structural constraints.
const systemPrompt = "You are an infrastructure engineer. Parse the user's request for cloud infrastructure and return JSON only, matching the provided schema. Use kebab-case resource names and infer reasonable defaults."

// requestSchema constrains the collaborator's output to the request model.
func requestSchema() *jsonschema.Definition {
	str := jsonschema.Definition{Type: jsonschema.String}
	boolean := jsonschema.Definition{Type: jsonschema.Boolean}
	integer := jsonschema.Definition{Type: jsonschema.Integer}

	return &jsonschema.Definition{
		Type:                 jsonschema.Object,
		AdditionalProperties: false,
		Required:             []string{"resource_type", "name"},
		Properties: map[string]jsonschema.Definition{
			"resource_type": {
				Type: jsonschema.String,
				Enum: []string{"eks_cluster", "s3_bucket", "rds_database", "vpc"},
			},
			"name":   str,
			"region": str,
			"environment": {
				Type: jsonschema.String,
				Enum: []string{"development", "staging", "production"},
			},
			"node_count":         integer,
			"kubernetes_version": str,
			"instance_types": {
				Type:  jsonschema.Array,
				Items: &str,
			},
			"versioning":        boolean,
			"encryption":        boolean,
			"engine":            str,
			"instance_class":    str,
			"allocated_storage": integer,
			"tags": {
				Type:                 jsonschema.Object,
				AdditionalProperties: jsonschema.Definition{Type: jsonschema.String},
			},
			"description": str,
		},
	}
}
