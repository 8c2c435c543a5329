package database

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/docmindhq/docmind-be/config"
	"github.com/docmindhq/docmind-be/types"
)

const BATCH_SIZE = 200

var (
	CHUNK_CLASS        = "DocumentChunk"
	CHUNK_CLASS_OBJECT = &models.Class{
		Class: CHUNK_CLASS,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "title", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "tags", DataType: []string{"text[]"}},
			{Name: "page", DataType: []string{"int"}},
			{Name: "totalPages", DataType: []string{"int"}},
		},
		VectorIndexType: "hnsw",
	}
)

// WeaviateStore indexes document chunks for local semantic search. The
// weaviate server owns the index; this type only ensures the schema and
// issues queries.
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(cfg config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(cfg.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(cfg.Host, scheme+"://")
	clientCfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if cfg.APIKey != "" {
		clientCfg.AuthConfig = auth.ApiKey{Value: cfg.APIKey}
		clientCfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     cfg.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	CHUNK_CLASS_OBJECT.Vectorizer = cfg.Text2Vec
	CHUNK_CLASS_OBJECT.ModuleConfig = cfg.ModuleConfig

	client, err := weaviate.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %v", err)
	}
	hasClass := false
	for _, class := range schema.Classes {
		if class.Class == CHUNK_CLASS {
			hasClass = true
			break
		}
	}
	if !hasClass {
		if err := client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to create %s class: %v", CHUNK_CLASS, err)
		}
	}
	return &WeaviateStore{client: client}, nil
}

// ReInit drops and recreates the chunk class.
func (s *WeaviateStore) ReInit() error {
	if err := s.client.Schema().ClassDeleter().WithClassName(CHUNK_CLASS).Do(context.Background()); err != nil {
		return fmt.Errorf("failed to delete %s class: %v", CHUNK_CLASS, err)
	}
	if err := s.client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background()); err != nil {
		return fmt.Errorf("failed to create %s class: %v", CHUNK_CLASS, err)
	}
	return nil
}

// BatchInsertChunks writes chunks in batches; embeddings may be nil to let
// the server-side vectorizer run.
func (s *WeaviateStore) BatchInsertChunks(ctx context.Context, chunks []types.DocumentChunk, embeddings [][]float32) error {
	total := len(chunks)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			obj := &models.Object{
				Class:      CHUNK_CLASS,
				Properties: chunkProperties(chunks[j]),
			}
			if embeddings != nil && j < len(embeddings) {
				obj.Vector = embeddings[j]
			}
			batcher = batcher.WithObjects(obj)
		}
		if _, err := batcher.Do(ctx); err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}
		log.Printf("Inserted batch %d-%d of %d chunks", i, end, total)
	}
	return nil
}

// DeleteChunk removes one object by id.
func (s *WeaviateStore) DeleteChunk(ctx context.Context, id string) error {
	return s.client.Data().Deleter().
		WithClassName(CHUNK_CLASS).
		WithID(id).
		Do(ctx)
}

// SearchSimilar runs a nearText query and returns ranked snippets, score
// descending. An empty result set is valid.
func (s *WeaviateStore) SearchSimilar(ctx context.Context, queries []string, limit int) ([]types.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	fields := []graphql.Field{
		{Name: "content"},
		{Name: "title"},
		{Name: "source"},
		{Name: "page"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}, {Name: "id"}}},
	}
	response, err := s.client.GraphQL().Get().
		WithClassName(CHUNK_CLASS).
		WithFields(fields...).
		WithNearText((&graphql.NearTextArgumentBuilder{}).
			WithConcepts(queries).WithDistance(0.7)).
		WithLimit(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("search failed: %s", response.Errors[0].Message)
	}

	results := make([]types.SearchResult, 0)
	get, ok := response.Data["Get"].(map[string]interface{})
	if !ok {
		return results, nil
	}
	data, ok := get[CHUNK_CLASS].([]interface{})
	if !ok {
		return results, nil
	}
	for _, item := range data {
		chunk, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		result := types.SearchResult{}
		if content, ok := chunk["content"].(string); ok {
			result.Snippet = content
		}
		if additional, ok := chunk["_additional"].(map[string]interface{}); ok {
			if id, ok := additional["id"].(string); ok {
				result.DocumentID = id
			}
			if distance, ok := additional["distance"].(float64); ok {
				result.Score = 1 - distance
			}
		}
		results = append(results, result)
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

func chunkProperties(chunk types.DocumentChunk) map[string]interface{} {
	return map[string]interface{}{
		"content":    chunk.Content,
		"title":      chunk.Metadata.Title,
		"source":     chunk.Metadata.Source,
		"tags":       chunk.Metadata.Tags,
		"page":       chunk.Page,
		"totalPages": chunk.Metadata.TotalPages,
	}
}
