package logging

import (
	"context"

	"go.uber.org/zap"
)

type runIDKeyType struct{}

var runIDKey = runIDKeyType{}

// NewLogger creates a named zap production logger.
func NewLogger(name string) *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return logger.Named(name)
}

// WithRunID returns a logger carrying the pipeline run_id from context.
func WithRunID(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		return logger.With(zap.String("run_id", runID))
	}
	return logger
}

// SetRunID stores the pipeline run_id in context (call once at submission).
func SetRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID retrieves the pipeline run_id from context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(runIDKey).(string); ok {
		return runID
	}
	return ""
}
