package service

import (
	"context"

	"github.com/docmindhq/docmind-be/types"
)

// CompletionService is one LLM invocation producing either free text or a
// schema-conforming structured value.
type CompletionService interface {
	// GenerateCompletion invokes the model and returns the raw content plus
	// usage metadata, unmodified.
	GenerateCompletion(ctx context.Context, req types.CompletionRequest) (*types.CompletionResult, error)

	// GenerateStructured invokes the model with req.OutputSchema bound,
	// validates the response against it and unmarshals into out. A
	// non-conforming response fails with SchemaParseError; a partially
	// valid object is never returned.
	GenerateStructured(ctx context.Context, req types.CompletionRequest, out any) (*types.CompletionResult, error)

	// GenerateStream invokes the model and feeds response fragments to the
	// handler as they arrive.
	GenerateStream(ctx context.Context, req types.CompletionRequest, handler types.StreamHandler) error
}

// EmbeddingService turns text into fixed-dimensionality float vectors.
type EmbeddingService interface {
	GetEmbeddings(ctx context.Context, req types.EmbeddingRequest) (*types.EmbeddingResult, error)
}
