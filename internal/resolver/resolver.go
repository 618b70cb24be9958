// Package resolver converts free-text infrastructure requests into the
// structured request model using a tiered strategy: schema-constrained model
// calls, a relaxed JSON contract, a substitute model, and finally a local
// pattern-based parser.
package resolver

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/provision-dev/provision/pkg/models"
)

// ChatCompleter is the narrow slice of the OpenAI client the resolver needs;
// *openai.Client satisfies it and tests substitute stubs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// attempt is one ordered try against a single model: a token budget and
// whether the strict schema contract is applied.
type attempt struct {
	maxTokens int
	useSchema bool
}

// modelAttempts escalates the token budget before relaxing the contract.
var modelAttempts = []attempt{
	{maxTokens: 512, useSchema: true},
	{maxTokens: 1024, useSchema: true},
	{maxTokens: 1024, useSchema: false},
}

// Resolver resolves natural language into ResourceRequests.
type Resolver struct {
	client        ChatCompleter
	model         string
	fallbackModel string
	logger        *zap.Logger
}

// New creates a resolver backed by the given chat collaborator. A nil client
// means the collaborator is not configured; resolution then goes straight to
// the pattern tier.
func New(client ChatCompleter, model, fallbackModel string, logger *zap.Logger) *Resolver {
	return &Resolver{
		client:        client,
		model:         model,
		fallbackModel: fallbackModel,
		logger:        logger,
	}
}

// Resolve turns free text into a fully defaulted ResourceRequest, or fails
// with *ResolutionError. Empty collaborator responses walk down the tier
// ladder; syntactically invalid JSON is a contract violation and surfaces
// immediately rather than falling through to the pattern tier.
func (r *Resolver) Resolve(ctx context.Context, text string) (*models.ResourceRequest, error) {
	if r.client == nil {
		r.logger.Info("language collaborator not configured, using pattern resolver")
		return r.resolveWithPatterns(text)
	}

	content, err := r.tryModel(ctx, r.model, text)
	if err == nil && content != "" {
		return r.mapContent(content)
	}

	if err != nil {
		// Outright transport/config failure: substitute the lower-capability
		// model and walk the same attempt ladder again.
		r.logger.Warn("model call failed, substituting fallback model",
			zap.String("model", r.model),
			zap.String("fallback", r.fallbackModel),
			zap.Error(err))
		content, err = r.tryModel(ctx, r.fallbackModel, text)
		if err == nil && content != "" {
			return r.mapContent(content)
		}
	}

	r.logger.Warn("all collaborator tiers exhausted, using pattern resolver", zap.Error(err))
	return r.resolveWithPatterns(text)
}

// tryModel walks the attempt ladder for one model. It returns the first
// non-empty content, an empty string when every attempt returned empty
// content, or the last transport error when no attempt succeeded at all.
func (r *Resolver) tryModel(ctx context.Context, model, text string) (string, error) {
	var lastErr error
	anySucceeded := false

	for _, a := range modelAttempts {
		req := openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: text},
			},
			MaxCompletionTokens: a.maxTokens,
		}
		if a.useSchema {
			req.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:   "resource_request",
					Schema: requestSchema(),
					Strict: true,
				},
			}
		} else {
			req.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		}

		resp, err := r.client.CreateChatCompletion(ctx, req)
		if err != nil {
			r.logger.Warn("chat completion attempt failed",
				zap.String("model", model),
				zap.Int("max_tokens", a.maxTokens),
				zap.Bool("schema", a.useSchema),
				zap.Error(err))
			lastErr = err
			continue
		}
		anySucceeded = true

		if len(resp.Choices) == 0 {
			continue
		}
		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if content != "" {
			return content, nil
		}
		r.logger.Debug("empty completion content",
			zap.String("model", model),
			zap.String("finish_reason", string(resp.Choices[0].FinishReason)))
	}

	if !anySucceeded && lastErr != nil {
		return "", lastErr
	}
	return "", nil
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// mapContent parses collaborator output into a ResourceRequest. Invalid JSON
// here is a contract violation, not a transient condition.
func (r *Resolver) mapContent(content string) (*models.ResourceRequest, error) {
	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		content = m[1]
	}

	var raw struct {
		ResourceType      string            `json:"resource_type"`
		Name              string            `json:"name"`
		Region            string            `json:"region"`
		Environment       string            `json:"environment"`
		NodeCount         *int              `json:"node_count"`
		KubernetesVersion string            `json:"kubernetes_version"`
		InstanceTypes     []string          `json:"instance_types"`
		Versioning        *bool             `json:"versioning"`
		Encryption        *bool             `json:"encryption"`
		Engine            string            `json:"engine"`
		InstanceClass     string            `json:"instance_class"`
		AllocatedStorage  *int              `json:"allocated_storage"`
		Tags              map[string]string `json:"tags"`
		Description       string            `json:"description"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, &ResolutionError{Reason: "collaborator returned invalid JSON", Err: err}
	}

	resourceType, err := models.ParseResourceType(raw.ResourceType)
	if err != nil {
		return nil, &ResolutionError{Reason: "collaborator returned an unknown resource type", Err: err}
	}

	req := &models.ResourceRequest{
		ResourceType:      resourceType,
		Name:              raw.Name,
		Region:            raw.Region,
		Environment:       models.Environment(raw.Environment),
		NodeCount:         raw.NodeCount,
		KubernetesVersion: raw.KubernetesVersion,
		InstanceTypes:     raw.InstanceTypes,
		Versioning:        raw.Versioning,
		Encryption:        raw.Encryption,
		Engine:            raw.Engine,
		InstanceClass:     raw.InstanceClass,
		AllocatedStorage:  raw.AllocatedStorage,
		Tags:              raw.Tags,
		Description:       raw.Description,
	}
	req.ApplyDefaults()
	return req, nil
}
