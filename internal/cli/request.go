package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provision-dev/provision/internal/config"
	"github.com/provision-dev/provision/internal/logging"
)

var requestPublish bool

var RequestCmd = &cobra.Command{
	Use:   "request <text>",
	Short: "Process an infrastructure request",
	Long: `Turns a natural language infrastructure request into Crossplane YAML
documents and, unless --publish=false, opens a pull request with them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRequest,
}

func init() {
	RequestCmd.Flags().BoolVar(&requestPublish, "publish", true, "Open a pull request with the generated files")
}

func runRequest(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger := logging.NewLogger("cli")
	defer func() { _ = logger.Sync() }()

	p := buildPipeline(cfg, logger)

	text := strings.Join(args, " ")
	result := p.Process(cmd.Context(), text, requestPublish)
	printResult(result)

	if result.Failed() {
		return fmt.Errorf("%s failed", result.Failure.Stage)
	}
	return nil
}
