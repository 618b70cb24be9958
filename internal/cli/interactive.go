package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provision-dev/provision/internal/config"
	"github.com/provision-dev/provision/internal/logging"
)

var interactivePublish bool

var InteractiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Process requests in an interactive session",
	Long: `Reads infrastructure requests from stdin, one per line, and processes
each through the full pipeline. Type "exit" or "quit" to leave.`,
	RunE: runInteractive,
}

func init() {
	InteractiveCmd.Flags().BoolVar(&interactivePublish, "publish", false, "Open a pull request for each processed request")
}

func runInteractive(cmd *cobra.Command, args []string) error {
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

	fmt.Println(headingStyle.Render("Describe the infrastructure you need, one request per line."))
	fmt.Println(dimStyle.Render(`Example: "Create an EKS cluster called analytics for production with 5 nodes"`))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		result := p.Process(cmd.Context(), line, interactivePublish)
		printResult(result)
	}

	return scanner.Err()
}
