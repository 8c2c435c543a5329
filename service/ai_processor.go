package service

import (
	"context"

	"github.com/docmindhq/docmind-be/config"
	"github.com/docmindhq/docmind-be/types"
)

// AIProcessor bundles one completion client and one embedding client behind
// a single entry point. It adds no logic of its own; it exists so callers
// construct one object from shared configuration.
type AIProcessor struct {
	completion CompletionService
	embedding  EmbeddingService
}

// NewAIProcessor builds a processor from config. Gemini API keys select the
// Gemini backend; otherwise the OpenAI-compatible endpoint is used.
func NewAIProcessor(cfg config.AIConfig) (*AIProcessor, error) {
	if len(cfg.GeminiAPIKeys) > 0 {
		svc, err := NewGeminiService(cfg.GeminiAPIKeys, cfg.Model, cfg.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		return &AIProcessor{completion: svc, embedding: svc}, nil
	}
	svc, err := NewOpenAIService(cfg.Endpoint, cfg.APIKey, cfg.Model, cfg.EmbeddingModel)
	if err != nil {
		return nil, err
	}
	return &AIProcessor{completion: svc, embedding: svc}, nil
}

// NewAIProcessorWith assembles a processor from explicit clients.
func NewAIProcessorWith(completion CompletionService, embedding EmbeddingService) *AIProcessor {
	return &AIProcessor{completion: completion, embedding: embedding}
}

func (p *AIProcessor) GenerateCompletion(ctx context.Context, req types.CompletionRequest) (*types.CompletionResult, error) {
	return p.completion.GenerateCompletion(ctx, req)
}

func (p *AIProcessor) GenerateStructured(ctx context.Context, req types.CompletionRequest, out any) (*types.CompletionResult, error) {
	return p.completion.GenerateStructured(ctx, req, out)
}

func (p *AIProcessor) GenerateStream(ctx context.Context, req types.CompletionRequest, handler types.StreamHandler) error {
	return p.completion.GenerateStream(ctx, req, handler)
}

func (p *AIProcessor) GetEmbeddings(ctx context.Context, req types.EmbeddingRequest) (*types.EmbeddingResult, error) {
	return p.embedding.GetEmbeddings(ctx, req)
}
