// Package types holds shared API plumbing types.
package types

// Response is a generic wrapper for Huma responses.
// Usage: Response[RunBody] instead of a dedicated RunOutput struct.
type Response[T any] struct {
	Body T
}

// EmptyResponse represents a simple success response with a message.
type EmptyResponse struct {
	Message string `json:"message" doc:"Success message" example:"Operation completed successfully"`
}
