package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/docmindhq/docmind-be/types"
)

const (
	DefaultGeminiModel          = "gemini-1.5-flash"
	DefaultGeminiEmbeddingModel = "text-embedding-004"
)

// GeminiService is an alternative completion/embedding backend. Several API
// keys may be supplied; on a failed call the service rotates to the next key
// and retries once.
type GeminiService struct {
	apiKeys        []string
	currentKey     int
	client         *genai.Client
	model          string
	embeddingModel string
	mu             sync.Mutex
}

func NewGeminiService(apiKeys []string, model, embeddingModel string) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, &types.ConfigurationError{Field: "gemini_api_keys", Reason: "at least one API key is required"}
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if embeddingModel == "" {
		embeddingModel = DefaultGeminiEmbeddingModel
	}
	s := &GeminiService{
		apiKeys:        apiKeys,
		model:          model,
		embeddingModel: embeddingModel,
	}
	if err := s.initClient(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

func (s *GeminiService) generativeModel(req types.CompletionRequest, systemPrompt string) *genai.GenerativeModel {
	name := req.Model
	if name == "" {
		name = s.model
	}
	model := s.client.GenerativeModel(name)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	if req.Temperature != 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens != 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	return model
}

func (s *GeminiService) GenerateCompletion(ctx context.Context, req types.CompletionRequest) (*types.CompletionResult, error) {
	return s.complete(ctx, req, req.SystemPrompt)
}

func (s *GeminiService) GenerateStructured(ctx context.Context, req types.CompletionRequest, out any) (*types.CompletionResult, error) {
	if req.OutputSchema == nil {
		return nil, errors.New("output schema is required for structured completion")
	}
	contract := NewJSONSchemaContract(*req.OutputSchema)
	resp, err := s.complete(ctx, req, req.SystemPrompt+"\n"+contract.FormatInstructions())
	if err != nil {
		return nil, err
	}
	if err := contract.Parse(resp.Content, out); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *GeminiService) complete(ctx context.Context, req types.CompletionRequest, systemPrompt string) (*types.CompletionResult, error) {
	if err := validatePrompts(req); err != nil {
		return nil, err
	}
	model := s.generativeModel(req, systemPrompt)
	resp, err := model.GenerateContent(ctx, genai.Text(req.UserPrompt))
	if err != nil {
		if rotateErr := s.rotateAPIKey(); rotateErr != nil {
			return nil, rotateErr
		}
		model = s.generativeModel(req, systemPrompt)
		resp, err = model.GenerateContent(ctx, genai.Text(req.UserPrompt))
		if err != nil {
			return nil, err
		}
	}
	if len(resp.Candidates) == 0 {
		return nil, errors.New("no response generated")
	}

	candidate := resp.Candidates[0]
	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	result := &types.CompletionResult{
		Content:      sb.String(),
		Model:        s.model,
		FinishReason: candidate.FinishReason.String(),
	}
	if resp.UsageMetadata != nil {
		result.Usage = types.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	return result, nil
}

func (s *GeminiService) GenerateStream(ctx context.Context, req types.CompletionRequest, handler types.StreamHandler) error {
	if err := validatePrompts(req); err != nil {
		return err
	}
	model := s.generativeModel(req, req.SystemPrompt)
	iter := model.GenerateContentStream(ctx, genai.Text(req.UserPrompt))

	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if rotateErr := s.rotateAPIKey(); rotateErr != nil {
				return rotateErr
			}
			model = s.generativeModel(req, req.SystemPrompt)
			iter = model.GenerateContentStream(ctx, genai.Text(req.UserPrompt))
			resp, err = iter.Next()
			if err != nil {
				return err
			}
		}
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					handler(string(text))
				}
			}
		}
	}
	return nil
}

// GetEmbeddings embeds each input separately and keeps input order. The
// Gemini embedding models have a fixed width, so a dimensions override is
// rejected instead of truncated.
func (s *GeminiService) GetEmbeddings(ctx context.Context, req types.EmbeddingRequest) (*types.EmbeddingResult, error) {
	if len(req.Input) == 0 {
		return nil, errors.New("input text for embedding cannot be empty")
	}
	model := req.Model
	if model == "" {
		model = s.embeddingModel
	}
	if req.Dimensions > 0 {
		return nil, &types.UnsupportedModelOptionError{Model: model, Option: "dimensions"}
	}

	em := s.client.EmbeddingModel(model)
	vectors := make([][]float32, 0, len(req.Input))
	for _, in := range req.Input {
		if strings.TrimSpace(in) == "" {
			return nil, errors.New("input text for embedding cannot be empty")
		}
		resp, err := em.EmbedContent(ctx, genai.Text(in))
		if err != nil {
			return nil, err
		}
		if resp.Embedding == nil {
			return nil, errors.New("no embedding returned")
		}
		vectors = append(vectors, resp.Embedding.Values)
	}
	return &types.EmbeddingResult{Vectors: vectors, Model: model}, nil
}

// Close releases the underlying client.
func (s *GeminiService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client.Close()
}
