package v0

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/provision-dev/provision/internal/logging"
	"github.com/provision-dev/provision/internal/status"
	"github.com/provision-dev/provision/pkg/models"
	"github.com/provision-dev/provision/pkg/types"
)

// Runner executes one pipeline run; *pipeline.Pipeline satisfies it.
type Runner interface {
	Process(ctx context.Context, userText string, autoPublish bool) *models.PipelineResult
}

// SubmitRequest is the input for starting a pipeline run.
type SubmitRequest struct {
	Body struct {
		Prompt      string `json:"prompt" minLength:"1" doc:"Natural language infrastructure request" example:"Create an EKS cluster called analytics-cluster for production with 5 nodes"`
		AutoPublish bool   `json:"autoPublish,omitempty" doc:"Open a change request after synthesis" default:"true"`
	}
}

// SubmitBody acknowledges an accepted run.
type SubmitBody struct {
	RunID   string `json:"runId" doc:"Identifier for polling run status"`
	Status  string `json:"status" example:"queued"`
	Message string `json:"message"`
}

// RunInput addresses a run by ID.
type RunInput struct {
	ID string `path:"id" json:"id" doc:"Run ID" example:"6b7ce4ab-ec3d-4789-95f4-8be5fac2e6be"`
}

// RunsListBody lists all tracked runs, newest first.
type RunsListBody struct {
	Runs []*status.Run `json:"runs" doc:"All tracked pipeline runs"`
}

// RegisterRunEndpoints registers run submission and status polling.
func RegisterRunEndpoints(api huma.API, pathPrefix string, runner Runner, registry *status.Registry, logger *zap.Logger) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-run",
		Method:        http.MethodPost,
		Path:          pathPrefix + "/runs",
		Summary:       "Submit an infrastructure request",
		Description:   "Starts a pipeline run for a natural language infrastructure request and returns a run ID for status polling.",
		Tags:          []string{"runs"},
		DefaultStatus: http.StatusAccepted,
	}, func(_ context.Context, input *SubmitRequest) (*types.Response[SubmitBody], error) {
		runID := uuid.NewString()

		registry.Put(&status.Run{
			ID:        runID,
			Prompt:    input.Body.Prompt,
			State:     status.StateQueued,
			Stage:     "queued",
			Message:   "Run queued for processing",
			CreatedAt: time.Now().UTC(),
		})

		// Each run executes on its own goroutine and reports progress through
		// the registry; the submitting request never blocks on the pipeline.
		go executeRun(runner, registry, logger, runID, input.Body.Prompt, input.Body.AutoPublish)

		return &types.Response[SubmitBody]{
			Body: SubmitBody{
				RunID:   runID,
				Status:  string(status.StateQueued),
				Message: "Run started successfully",
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-run",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/runs/{id}",
		Summary:     "Get run status",
		Description: "Returns the current status and, once finished, the result of a pipeline run.",
		Tags:        []string{"runs"},
	}, func(_ context.Context, input *RunInput) (*types.Response[status.Run], error) {
		run, ok := registry.Get(input.ID)
		if !ok {
			return nil, huma.Error404NotFound("Run not found")
		}
		return &types.Response[status.Run]{Body: *run}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-runs",
		Method:      http.MethodGet,
		Path:        pathPrefix + "/runs",
		Summary:     "List runs",
		Description: "Lists all tracked pipeline runs, newest first.",
		Tags:        []string{"runs"},
	}, func(_ context.Context, _ *struct{}) (*types.Response[RunsListBody], error) {
		return &types.Response[RunsListBody]{
			Body: RunsListBody{Runs: registry.List()},
		}, nil
	})
}

func executeRun(runner Runner, registry *status.Registry, logger *zap.Logger, runID, prompt string, autoPublish bool) {
	ctx := logging.SetRunID(context.Background(), runID)
	log := logging.WithRunID(ctx, logger)

	started := time.Now().UTC()
	registry.Update(runID, func(run *status.Run) {
		run.State = status.StateRunning
		run.Stage = "resolution"
		run.Message = "Processing request"
		run.StartedAt = &started
	})

	result := runner.Process(ctx, prompt, autoPublish)

	completed := time.Now().UTC()
	registry.Update(runID, func(run *status.Run) {
		run.Result = result
		run.CompletedAt = &completed
		if result.Failed() {
			run.State = status.StateError
			run.Stage = string(result.Failure.Stage)
			run.Message = result.Failure.Reason
		} else {
			run.State = status.StateCompleted
			run.Stage = "completed"
			run.Message = "Run completed successfully"
		}
	})

	if result.Failed() {
		log.Warn("run failed",
			zap.String("stage", string(result.Failure.Stage)),
			zap.String("reason", result.Failure.Reason))
		return
	}
	log.Info("run completed")
}
