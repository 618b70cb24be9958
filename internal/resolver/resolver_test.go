package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/provision-dev/provision/pkg/models"
)

// stubCompleter replays canned responses in order; the last entry repeats.
type stubCompleter struct {
	responses []stubResponse
	requests  []openai.ChatCompletionRequest
}

type stubResponse struct {
	content string
	err     error
}

func (s *stubCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)

	idx := len(s.requests) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	r := s.responses[idx]
	if r.err != nil {
		return openai.ChatCompletionResponse{}, r.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: r.content}},
		},
	}, nil
}

const validContent = `{"resource_type": "s3_bucket", "name": "customer-data", "environment": "production"}`

func newTestResolver(client ChatCompleter) *Resolver {
	return New(client, "primary-model", "fallback-model", zap.NewNop())
}

func TestResolve_FirstAttemptSucceeds(t *testing.T) {
	stub := &stubCompleter{responses: []stubResponse{{content: validContent}}}
	r := newTestResolver(stub)

	req, err := r.Resolve(context.Background(), "a bucket please")
	require.NoError(t, err)

	assert.Equal(t, models.ResourceTypeBucket, req.ResourceType)
	assert.Equal(t, "customer-data", req.Name)
	assert.Equal(t, models.EnvProduction, req.Environment)
	// Region was not given and must be defaulted.
	assert.Equal(t, models.DefaultRegion, req.Region)
	assert.Len(t, stub.requests, 1)
}

func TestResolve_EmptyContentWalksAttemptLadder(t *testing.T) {
	stub := &stubCompleter{responses: []stubResponse{
		{content: ""},
		{content: "   "},
		{content: validContent},
	}}
	r := newTestResolver(stub)

	req, err := r.Resolve(context.Background(), "a bucket please")
	require.NoError(t, err)
	assert.Equal(t, "customer-data", req.Name)

	require.Len(t, stub.requests, 3)
	assert.Equal(t, 512, stub.requests[0].MaxCompletionTokens)
	assert.Equal(t, 1024, stub.requests[1].MaxCompletionTokens)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONSchema, stub.requests[0].ResponseFormat.Type)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, stub.requests[2].ResponseFormat.Type)
}

func TestResolve_TransportFailureSubstitutesFallbackModel(t *testing.T) {
	transportErr := errors.New("connection refused")
	stub := &stubCompleter{responses: []stubResponse{
		{err: transportErr},
		{err: transportErr},
		{err: transportErr},
		{content: validContent},
	}}
	r := newTestResolver(stub)

	req, err := r.Resolve(context.Background(), "a bucket please")
	require.NoError(t, err)
	assert.Equal(t, "customer-data", req.Name)

	require.Len(t, stub.requests, 4)
	assert.Equal(t, "primary-model", stub.requests[0].Model)
	assert.Equal(t, "fallback-model", stub.requests[3].Model)
}

func TestResolve_AllTiersEmptyFallsBackToPatterns(t *testing.T) {
	stub := &stubCompleter{responses: []stubResponse{{content: ""}}}
	r := newTestResolver(stub)

	req, err := r.Resolve(context.Background(), "I need a secure S3 bucket for storing customer data")
	require.NoError(t, err)

	// Empty responses are not transport failures, so the fallback model is
	// never consulted and the pattern tier takes over directly.
	assert.Len(t, stub.requests, 3)
	assert.Equal(t, models.ResourceTypeBucket, req.ResourceType)
}

func TestResolve_AllTransportFailuresFallBackToPatterns(t *testing.T) {
	stub := &stubCompleter{responses: []stubResponse{{err: errors.New("connection refused")}}}
	r := newTestResolver(stub)

	req, err := r.Resolve(context.Background(), "I need a secure S3 bucket for storing customer data")
	require.NoError(t, err)

	// Both models walked their full attempt ladders before the pattern tier.
	assert.Len(t, stub.requests, 6)
	assert.Equal(t, models.ResourceTypeBucket, req.ResourceType)
	assert.Equal(t, models.EnvDevelopment, req.Environment)
}

func TestResolve_MalformedJSONIsAContractViolation(t *testing.T) {
	stub := &stubCompleter{responses: []stubResponse{{content: "{not json"}}}
	r := newTestResolver(stub)

	_, err := r.Resolve(context.Background(), "a bucket please")

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Reason, "invalid JSON")
	assert.Len(t, stub.requests, 1)
}

func TestResolve_UnknownResourceTypeFails(t *testing.T) {
	stub := &stubCompleter{responses: []stubResponse{
		{content: `{"resource_type": "lambda_function", "name": "fn"}`},
	}}
	r := newTestResolver(stub)

	_, err := r.Resolve(context.Background(), "a lambda please")

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Reason, "unknown resource type")
}

func TestResolve_FencedJSONIsUnwrapped(t *testing.T) {
	stub := &stubCompleter{responses: []stubResponse{
		{content: "```json\n" + validContent + "\n```"},
	}}
	r := newTestResolver(stub)

	req, err := r.Resolve(context.Background(), "a bucket please")
	require.NoError(t, err)
	assert.Equal(t, "customer-data", req.Name)
}

func TestResolve_NilClientUsesPatterns(t *testing.T) {
	r := newTestResolver(nil)

	req, err := r.Resolve(context.Background(), "Create an EKS cluster called analytics for production with 5 nodes")
	require.NoError(t, err)

	assert.Equal(t, models.ResourceTypeCluster, req.ResourceType)
	assert.Equal(t, "analytics", req.Name)
	assert.Equal(t, models.EnvProduction, req.Environment)
	require.NotNil(t, req.NodeCount)
	assert.Equal(t, 5, *req.NodeCount)
}
