// Package pipeline sequences resolution, validation, synthesis, and
// publication for one infrastructure request, producing a single
// discriminated result.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/provision-dev/provision/internal/generator"
	"github.com/provision-dev/provision/internal/metrics"
	"github.com/provision-dev/provision/pkg/models"
)

// RequestResolver turns free text into a structured request.
type RequestResolver interface {
	Resolve(ctx context.Context, text string) (*models.ResourceRequest, error)
}

// ChangePublisher publishes a file set as a reviewable change request.
type ChangePublisher interface {
	Publish(ctx context.Context, files []models.PublishableFile, title, description, branchPrefix string) (*models.ChangeRequestInfo, error)
}

// FileExporter persists rendered files for local inspection. Export failures
// are advisory and never fail a run.
type FileExporter interface {
	Export(files []models.PublishableFile) error
}

// Pipeline is the request-to-change orchestrator. Each Process call is an
// independent run; the pipeline itself holds no per-run state.
type Pipeline struct {
	resolver    RequestResolver
	synthesizer *generator.Synthesizer
	publisher   ChangePublisher
	exporter    FileExporter
	logger      *zap.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithPublisher attaches the hosting collaborator. Without one, runs that ask
// for publication fail at the publication stage.
func WithPublisher(p ChangePublisher) Option {
	return func(pl *Pipeline) { pl.publisher = p }
}

// WithExporter attaches a local file exporter.
func WithExporter(e FileExporter) Option {
	return func(pl *Pipeline) { pl.exporter = e }
}

// New creates a Pipeline.
func New(resolver RequestResolver, synthesizer *generator.Synthesizer, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		resolver:    resolver,
		synthesizer: synthesizer,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the full pipeline for one request. It always returns a
// discriminated result: either the complete artifact set or the first failing
// stage with a reason. Validation issues are data; they short-circuit the run
// without being treated as errors.
func (p *Pipeline) Process(ctx context.Context, userText string, autoPublish bool) *models.PipelineResult {
	result := p.process(ctx, userText, autoPublish)
	if result.Failure != nil {
		metrics.ObserveResult(string(result.Failure.Stage))
	} else {
		metrics.ObserveResult("")
	}
	return result
}

func (p *Pipeline) process(ctx context.Context, userText string, autoPublish bool) *models.PipelineResult {
	logger := p.logger

	req, err := p.resolver.Resolve(ctx, userText)
	if err != nil {
		logger.Warn("request resolution failed", zap.Error(err))
		return failure(models.StageResolution, err.Error(), nil)
	}
	logger.Info("resolved request",
		zap.String("resource_type", string(req.ResourceType)),
		zap.String("name", req.Name),
		zap.String("environment", string(req.Environment)))

	if issues := generator.Validate(req); len(issues) > 0 {
		logger.Warn("request validation failed", zap.Strings("issues", issues))
		return failure(models.StageValidation, "request validation failed: "+strings.Join(issues, "; "), issues)
	}

	suggestions := EnhancementSuggestions(req)

	docs, err := p.synthesizer.Synthesize(req)
	if err != nil {
		logger.Error("document synthesis failed", zap.Error(err))
		return failure(models.StageSynthesis, err.Error(), nil)
	}

	files, err := p.synthesizer.RenderFiles(req, docs)
	if err != nil {
		logger.Error("document rendering failed", zap.Error(err))
		return failure(models.StageSynthesis, err.Error(), nil)
	}

	if p.exporter != nil {
		if err := p.exporter.Export(files); err != nil {
			logger.Warn("local export failed", zap.Error(err))
		}
	}

	success := &models.PipelineSuccess{
		Request:     req,
		Suggestions: suggestions,
		Documents:   docs,
		Files:       files,
	}

	if autoPublish {
		if p.publisher == nil {
			return failure(models.StagePublication, "hosting collaborator is not configured", nil)
		}
		info, err := p.publisher.Publish(ctx, files,
			changeRequestTitle(req),
			changeRequestBody(req, files, suggestions),
			branchPrefix(req))
		if err != nil {
			logger.Error("publication failed", zap.Error(err))
			return failure(models.StagePublication, err.Error(), nil)
		}
		success.ChangeRequest = info
	}

	return &models.PipelineResult{Success: success}
}

func failure(stage models.Stage, reason string, issues []string) *models.PipelineResult {
	return &models.PipelineResult{Failure: &models.PipelineFailure{
		Stage:  stage,
		Reason: reason,
		Issues: issues,
	}}
}

func branchPrefix(req *models.ResourceRequest) string {
	return fmt.Sprintf("%s-%s", req.ResourceType, req.Environment)
}
