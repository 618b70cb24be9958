package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"gopkg.in/yaml.v3"

	v0 "github.com/provision-dev/provision/internal/api/handlers/v0"
	"github.com/provision-dev/provision/internal/config"
	"github.com/provision-dev/provision/internal/status"
	"github.com/provision-dev/provision/internal/version"
)

func main() {
	outputPath := flag.String("output", "openapi.yaml", "Output path for OpenAPI spec")
	versionOverride := flag.String("version", "", "Override the API version (defaults to version.Version)")
	flag.Parse()

	apiVersion := version.Version
	if *versionOverride != "" {
		apiVersion = *versionOverride
	}

	spec := generateSpec(apiVersion)

	yamlData, err := yaml.Marshal(spec)
	if err != nil {
		log.Fatalf("Failed to marshal OpenAPI spec to YAML: %v", err)
	}

	if err := os.WriteFile(*outputPath, yamlData, 0644); err != nil {
		log.Fatalf("Failed to write OpenAPI spec to %s: %v", *outputPath, err)
	}

	absPath, err := filepath.Abs(*outputPath)
	if err != nil {
		absPath = *outputPath
	}
	fmt.Printf("OpenAPI spec generated: %s\n", absPath)
}

// generateSpec creates a Huma API, registers all routes, and returns the
// OpenAPI spec.
func generateSpec(apiVersion string) *huma.OpenAPI {
	mux := http.NewServeMux()

	humaConfig := huma.DefaultConfig("Provision API", apiVersion)
	humaConfig.Info.Description = "Provision API for turning natural language infrastructure requests into reviewable Crossplane changes."
	// Disable $schema property injection in responses
	humaConfig.CreateHooks = []func(huma.Config) huma.Config{}

	api := humago.New(mux, humaConfig)

	// Handlers only capture their collaborators in closures invoked at request
	// time, so an empty config and registry are enough to register routes.
	v0.RegisterPingEndpoint(api, "/v0")
	v0.RegisterConfigEndpoint(api, "/v0", &config.Config{})
	v0.RegisterRunEndpoints(api, "/v0", nil, status.NewRegistry(), nil)

	return api.OpenAPI()
}
