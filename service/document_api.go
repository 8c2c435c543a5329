package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/docmindhq/docmind-be/types"
	"github.com/docmindhq/docmind-be/utils"
)

const platformAPIVersion = "2025-02-01"

// DocumentAPIClient calls the hosted document-management and semantic-search
// endpoints. The remote service is the source of truth; nothing is cached.
type DocumentAPIClient struct {
	api      *utils.APIClient
	clientID string
}

// SearchOptions tunes a semantic search call. The zero value is usable; each
// field falls back to the service defaults below.
type SearchOptions struct {
	IndexName               string
	IndexVersion            int
	EmbeddingDeploymentName string
	EmbeddingModel          string
	VectorDimensions        int
	KNearestNeighbors       int
	Exhaustive              bool
	Threshold               float64
	Skip                    int
	Take                    int
}

// DefaultSearchOptions mirrors the document service defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		IndexName:               "default_semantic_search_index",
		IndexVersion:            3,
		EmbeddingDeploymentName: "text-embedding-3-large-dev-shared",
		EmbeddingModel:          "text-embedding-3-large",
		VectorDimensions:        3072,
		KNearestNeighbors:       3,
		Exhaustive:              true,
		Threshold:               0.3,
		Skip:                    0,
		Take:                    5,
	}
}

func NewDocumentAPIClient(baseURL, clientID, apiKey string) (*DocumentAPIClient, error) {
	if clientID == "" {
		return nil, &types.ConfigurationError{Field: "client_id", Reason: "must not be empty"}
	}
	if apiKey == "" {
		return nil, &types.ConfigurationError{Field: "api_key", Reason: "must not be empty"}
	}
	api, err := utils.NewAPIClient(baseURL, map[string]string{
		"Platform-Api-Version": platformAPIVersion,
		"Accept":               "application/json",
		"x-api-key":            apiKey,
	})
	if err != nil {
		return nil, err
	}
	return &DocumentAPIClient{api: api, clientID: clientID}, nil
}

// UploadDocument sends the file as multipart content and returns the
// reference assigned by the service. documentID may be empty to let the
// service pick one; ttl, when non-zero, must be positive.
func (c *DocumentAPIClient) UploadDocument(ctx context.Context, fileName string, data []byte, documentID string, ttl time.Duration) (*types.DocumentReference, error) {
	if len(data) == 0 {
		return nil, errors.New("file content cannot be empty")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	fields := map[string]string{
		"documentId":   documentID,
		"documentPart": "0",
		"ttl":          strconv.Itoa(int(ttl.Seconds())),
	}
	files := []utils.FilePart{{
		FieldName:   "file1",
		FileName:    fileName,
		ContentType: "application/pdf",
		Data:        data,
	}}

	var resp struct {
		DocumentID string `json:"documentId"`
	}
	path := fmt.Sprintf("/document-management/api/%s/documents", c.clientID)
	if err := c.api.PostMultipart(ctx, path, fields, files, nil, &resp); err != nil {
		return nil, err
	}
	return &types.DocumentReference{
		DocumentID:   resp.DocumentID,
		DocumentPart: "0",
		TTL:          ttl,
	}, nil
}

// GetDocument retrieves the raw bytes of a previously uploaded document.
func (c *DocumentAPIClient) GetDocument(ctx context.Context, documentID string) ([]byte, error) {
	if documentID == "" {
		return nil, errors.New("document id cannot be empty")
	}
	path := fmt.Sprintf("/document-management/api/%s/documents/%s", c.clientID, documentID)
	data, err := c.api.Get(ctx, path, nil, nil)
	if err != nil {
		var reqErr *types.RequestFailedError
		if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", types.ErrNotFound, documentID)
		}
		return nil, err
	}
	return data, nil
}

// SemanticSearch runs a ranked snippet search over the given documents.
// Results come back ordered by descending score; an empty result set is not
// an error.
func (c *DocumentAPIClient) SemanticSearch(ctx context.Context, query string, documentIDs []string, opts SearchOptions) ([]types.SearchResult, error) {
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}
	defaults := DefaultSearchOptions()
	if opts.IndexName == "" {
		opts.IndexName = defaults.IndexName
	}
	if opts.IndexVersion == 0 {
		opts.IndexVersion = defaults.IndexVersion
	}
	if opts.EmbeddingDeploymentName == "" {
		opts.EmbeddingDeploymentName = defaults.EmbeddingDeploymentName
	}
	if opts.EmbeddingModel == "" {
		opts.EmbeddingModel = defaults.EmbeddingModel
	}
	if opts.VectorDimensions == 0 {
		opts.VectorDimensions = defaults.VectorDimensions
	}
	if opts.KNearestNeighbors == 0 {
		opts.KNearestNeighbors = defaults.KNearestNeighbors
	}
	if opts.Threshold == 0 {
		opts.Threshold = defaults.Threshold
	}
	if opts.Take == 0 {
		opts.Take = defaults.Take
	}

	payload := map[string]any{
		"documentIds":             documentIDs,
		"query":                   query,
		"embeddingDeploymentName": opts.EmbeddingDeploymentName,
		"embeddingModel":          opts.EmbeddingModel,
		"vectorDimensions":        opts.VectorDimensions,
		"searchParams": map[string]any{
			"type": "RegularSearchParameters",
			"contentVectorSearchParams": map[string]any{
				"kNearestNeighborsCount": opts.KNearestNeighbors,
				"exhaustive":             opts.Exhaustive,
				"threshold":              opts.Threshold,
			},
		},
		"skip": opts.Skip,
		"take": opts.Take,
	}

	var resp struct {
		Results []struct {
			DocumentID string  `json:"documentId"`
			Content    string  `json:"content"`
			Score      float64 `json:"score"`
		} `json:"results"`
	}
	path := fmt.Sprintf("/semantic-search/api/%s/indexes/%s/search?indexVersion=%d", c.clientID, opts.IndexName, opts.IndexVersion)
	if err := c.api.PostJSON(ctx, path, payload, nil, &resp); err != nil {
		return nil, err
	}

	results := make([]types.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, types.SearchResult{
			DocumentID: r.DocumentID,
			Snippet:    r.Content,
			Score:      r.Score,
		})
	}
	// The service already ranks; re-sort so the ordering holds regardless.
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}
