package service

import (
	"context"
	"fmt"
	"log"

	"github.com/docmindhq/docmind-be/database"
	"github.com/docmindhq/docmind-be/types"
	"github.com/docmindhq/docmind-be/utils"
)

// IndexService runs the local ingestion pipeline: extract pages, chunk,
// embed and insert into the vector store. A copy of the original file is
// kept in uploadDir.
type IndexService struct {
	uploadDir string
	store     *database.WeaviateStore
	embedder  EmbeddingService
	pdf       *PDFService
	chunker   *Chunker
}

// NewIndexService wires the pipeline. embedder may be nil to rely on the
// store's server-side vectorizer.
func NewIndexService(uploadDir string, store *database.WeaviateStore, embedder EmbeddingService, pdf *PDFService, chunker *Chunker) *IndexService {
	return &IndexService{
		uploadDir: uploadDir,
		store:     store,
		embedder:  embedder,
		pdf:       pdf,
		chunker:   chunker,
	}
}

// IndexDocument ingests one PDF and returns the number of indexed chunks.
func (s *IndexService) IndexDocument(ctx context.Context, req types.UploadRequest, fileName string, data []byte) (int, error) {
	pages, err := s.pdf.ExtractPages(data)
	if err != nil {
		return 0, err
	}

	if s.uploadDir != "" {
		savedPath, err := utils.SaveUpload(data, s.uploadDir, fileName)
		if err != nil {
			return 0, err
		}
		log.Println("Saved upload to", savedPath)
	}

	meta := types.DocumentMetadata{
		Title:  req.Title,
		Source: req.Source,
		Tags:   req.Tags,
	}
	chunks := s.chunker.ChunkPages(pages, meta)
	if len(chunks) == 0 {
		return 0, nil
	}

	var embeddings [][]float32
	if s.embedder != nil {
		inputs := make([]string, len(chunks))
		for i, chunk := range chunks {
			inputs[i] = chunk.Content
		}
		result, err := s.embedder.GetEmbeddings(ctx, types.EmbeddingRequest{Input: inputs})
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunks: %w", err)
		}
		embeddings = result.Vectors
	}

	if err := s.store.BatchInsertChunks(ctx, chunks, embeddings); err != nil {
		return 0, err
	}
	return len(chunks), nil
}
