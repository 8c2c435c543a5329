package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/docmindhq/docmind-be/types"
)

const (
	// DefaultChatModel is used when neither the request nor the service
	// configuration names a model.
	DefaultChatModel = "gpt-4o"

	// DefaultEmbeddingModel is the fallback embedding model.
	DefaultEmbeddingModel = "text-embedding-3-small"
)

// OpenAIService talks to an OpenAI-compatible completion and embedding
// endpoint. Configuration is fixed at construction; the service is safe for
// concurrent use.
type OpenAIService struct {
	client         *openai.Client
	model          string
	embeddingModel string
}

func NewOpenAIService(baseURL, apiKey, model, embeddingModel string) (*OpenAIService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &types.ConfigurationError{Field: "api_key", Reason: "must not be empty"}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultChatModel
	}
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	return &OpenAIService{
		client:         openai.NewClientWithConfig(cfg),
		model:          model,
		embeddingModel: embeddingModel,
	}, nil
}

// GenerateCompletion invokes the chat model and returns the raw content plus
// usage metadata. Temperature and max tokens pass through unchanged; the
// remote service enforces its own limits.
func (s *OpenAIService) GenerateCompletion(ctx context.Context, req types.CompletionRequest) (*types.CompletionResult, error) {
	resp, err := s.complete(ctx, req, req.SystemPrompt)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GenerateStructured invokes the chat model with formatting instructions
// derived from req.OutputSchema appended to the system prompt, then strictly
// parses the response into out.
func (s *OpenAIService) GenerateStructured(ctx context.Context, req types.CompletionRequest, out any) (*types.CompletionResult, error) {
	if req.OutputSchema == nil {
		return nil, errors.New("output schema is required for structured completion")
	}
	contract := NewJSONSchemaContract(*req.OutputSchema)
	systemPrompt := req.SystemPrompt + "\n" + contract.FormatInstructions()

	resp, err := s.complete(ctx, req, systemPrompt)
	if err != nil {
		return nil, err
	}
	if err := contract.Parse(resp.Content, out); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *OpenAIService) complete(ctx context.Context, req types.CompletionRequest, systemPrompt string) (*types.CompletionResult, error) {
	if err := validatePrompts(req); err != nil {
		return nil, err
	}
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.resolveModel(req.Model),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, translateOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response generated")
	}
	choice := resp.Choices[0]
	return &types.CompletionResult{
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

// GenerateStream streams response fragments to the handler until the model
// finishes.
func (s *OpenAIService) GenerateStream(ctx context.Context, req types.CompletionRequest, handler types.StreamHandler) error {
	if err := validatePrompts(req); err != nil {
		return err
	}
	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model: s.resolveModel(req.Model),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return translateOpenAIError(err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return translateOpenAIError(err)
		}
		if len(resp.Choices) > 0 {
			handler(resp.Choices[0].Delta.Content)
		}
	}
}

// GetEmbeddings returns one vector per input, in input order.
func (s *OpenAIService) GetEmbeddings(ctx context.Context, req types.EmbeddingRequest) (*types.EmbeddingResult, error) {
	if len(req.Input) == 0 {
		return nil, errors.New("input text for embedding cannot be empty")
	}
	for _, in := range req.Input {
		if strings.TrimSpace(in) == "" {
			return nil, errors.New("input text for embedding cannot be empty")
		}
	}
	model := req.Model
	if model == "" {
		model = s.embeddingModel
	}
	if req.Dimensions > 0 && !supportsDimensions(model) {
		return nil, &types.UnsupportedModelOptionError{Model: model, Option: "dimensions"}
	}

	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      req.Input,
		Model:      openai.EmbeddingModel(model),
		Dimensions: req.Dimensions,
	})
	if err != nil {
		return nil, translateOpenAIError(err)
	}

	vectors := make([][]float32, len(resp.Data))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding response index %d out of range", item.Index)
		}
		if req.Dimensions > 0 && len(item.Embedding) != req.Dimensions {
			return nil, fmt.Errorf("unexpected embedding dimensions: expected %d, got %d", req.Dimensions, len(item.Embedding))
		}
		vectors[item.Index] = item.Embedding
	}
	return &types.EmbeddingResult{
		Vectors: vectors,
		Model:   string(resp.Model),
		Usage: types.Usage{
			PromptTokens: resp.Usage.PromptTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (s *OpenAIService) resolveModel(requested string) string {
	if requested != "" {
		return requested
	}
	return s.model
}

// supportsDimensions reports whether the model accepts a reduced-dimension
// request. Only the third-generation embedding models do.
func supportsDimensions(model string) bool {
	return strings.HasPrefix(model, "text-embedding-3")
}

func validatePrompts(req types.CompletionRequest) error {
	if strings.TrimSpace(req.SystemPrompt) == "" {
		return errors.New("system prompt cannot be empty")
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		return errors.New("user prompt cannot be empty")
	}
	return nil
}

// translateOpenAIError maps API status errors onto the shared taxonomy so
// callers see the same error shape regardless of backend.
func translateOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		body := apiErr.Message
		return &types.RequestFailedError{StatusCode: apiErr.HTTPStatusCode, Body: body}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &types.RequestFailedError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}
	return err
}
