package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/provision-dev/provision/internal/config"
	"github.com/provision-dev/provision/internal/exporter"
	"github.com/provision-dev/provision/internal/generator"
	"github.com/provision-dev/provision/internal/pipeline"
	"github.com/provision-dev/provision/internal/publisher"
	"github.com/provision-dev/provision/internal/resolver"
	"github.com/provision-dev/provision/pkg/models"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// buildPipeline assembles the pipeline from configuration. Collaborators that
// are not configured are simply left out: the resolver degrades to pattern
// matching and publication fails cleanly if requested.
func buildPipeline(cfg *config.Config, logger *zap.Logger) *pipeline.Pipeline {
	var chat resolver.ChatCompleter
	if cfg.OpenAIConfigured() {
		chat = openai.NewClient(cfg.OpenAIAPIKey)
	}
	res := resolver.New(chat, cfg.OpenAIModel, cfg.FallbackModel, logger.Named("resolver"))

	opts := []pipeline.Option{
		pipeline.WithExporter(exporter.NewService(cfg.OutputDir)),
	}
	if cfg.GitHubConfigured() {
		var pubOpts []publisher.Option
		if cfg.BaseBranch != "" {
			pubOpts = append(pubOpts, publisher.WithBaseBranch(cfg.BaseBranch))
		}
		pub := publisher.NewFromToken(cfg.GitHubToken, cfg.RepoOwner, cfg.RepoName, logger.Named("publisher"), pubOpts...)
		opts = append(opts, pipeline.WithPublisher(pub))
	}

	return pipeline.New(res, generator.NewSynthesizer(), logger.Named("pipeline"), opts...)
}

// printResult renders a pipeline result for the terminal.
func printResult(result *models.PipelineResult) {
	if result.Failed() {
		fmt.Println(errStyle.Render(fmt.Sprintf("✗ %s failed: %s", result.Failure.Stage, result.Failure.Reason)))
		for _, issue := range result.Failure.Issues {
			fmt.Printf("  - %s\n", issue)
		}
		return
	}

	s := result.Success
	fmt.Println(okStyle.Render("✓ Request processed"))
	fmt.Printf("  Type:        %s\n", s.Request.ResourceType)
	fmt.Printf("  Name:        %s\n", s.Request.Name)
	fmt.Printf("  Region:      %s\n", s.Request.Region)
	fmt.Printf("  Environment: %s\n", s.Request.Environment)

	fmt.Println(headingStyle.Render("Generated files:"))
	for _, f := range s.Files {
		fmt.Printf("  - %s\n", f.Path)
	}

	if len(s.Suggestions) > 0 {
		fmt.Println(headingStyle.Render("Suggestions:"))
		for _, sg := range s.Suggestions {
			fmt.Println(dimStyle.Render("  - " + sg))
		}
	}

	if s.ChangeRequest != nil {
		fmt.Println(okStyle.Render(fmt.Sprintf("✓ Opened pull request #%d", s.ChangeRequest.Number)))
		fmt.Printf("  Branch: %s\n", s.ChangeRequest.Branch)
		fmt.Printf("  URL:    %s\n", s.ChangeRequest.URL)
	}
}
