package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmindhq/docmind-be/service"
	"github.com/docmindhq/docmind-be/types"
)

// fakeAI implements the completion and embedding interfaces with canned
// responses so handler behavior is tested in isolation.
type fakeAI struct {
	completion *types.CompletionResult
	structured string
	embedding  *types.EmbeddingResult
	err        error
}

func (f *fakeAI) GenerateCompletion(ctx context.Context, req types.CompletionRequest) (*types.CompletionResult, error) {
	return f.completion, f.err
}

func (f *fakeAI) GenerateStructured(ctx context.Context, req types.CompletionRequest, out any) (*types.CompletionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := json.Unmarshal([]byte(f.structured), out); err != nil {
		return nil, err
	}
	return f.completion, nil
}

func (f *fakeAI) GenerateStream(ctx context.Context, req types.CompletionRequest, handler types.StreamHandler) error {
	if f.err != nil {
		return f.err
	}
	handler(f.completion.Content)
	return nil
}

func (f *fakeAI) GetEmbeddings(ctx context.Context, req types.EmbeddingRequest) (*types.EmbeddingResult, error) {
	return f.embedding, f.err
}

func newChatRouter(fake *fakeAI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewChatHandler(service.NewAIProcessorWith(fake, fake))
	r := gin.New()
	r.POST("/chat", h.HandleCompletion)
	r.POST("/embeddings", h.HandleEmbeddings)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleCompletion(t *testing.T) {
	fake := &fakeAI{completion: &types.CompletionResult{
		Content:      "hello there",
		Model:        "gpt-4o",
		FinishReason: "stop",
		Usage:        types.Usage{TotalTokens: 9},
	}}
	r := newChatRouter(fake)

	w := postJSON(t, r, "/chat", types.CompletionRequest{
		SystemPrompt: "sys",
		UserPrompt:   "hi",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "hello there", data["content"])
}

func TestHandleCompletionStructured(t *testing.T) {
	fake := &fakeAI{
		completion: &types.CompletionResult{Model: "gpt-4o"},
		structured: `{"title":"pump failure","priority":1}`,
	}
	r := newChatRouter(fake)

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"priority": map[string]any{"type": "integer"},
		},
	}
	w := postJSON(t, r, "/chat", map[string]any{
		"system_prompt": "extract",
		"user_prompt":   "the pump failed",
		"output_schema": schema,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	structured := data["structured"].(map[string]any)
	assert.Equal(t, "pump failure", structured["title"])
	assert.Equal(t, "gpt-4o", data["model"])
}

func TestHandleCompletionBadBody(t *testing.T) {
	r := newChatRouter(&fakeAI{})
	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCompletionSchemaParseFailure(t *testing.T) {
	fake := &fakeAI{err: &types.SchemaParseError{Raw: "not json"}}
	r := newChatRouter(fake)

	w := postJSON(t, r, "/chat", map[string]any{
		"system_prompt": "extract",
		"user_prompt":   "hello",
		"output_schema": map[string]any{"type": "object"},
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandleEmbeddings(t *testing.T) {
	fake := &fakeAI{embedding: &types.EmbeddingResult{
		Vectors: [][]float32{{0.5, 0.5}},
		Model:   "text-embedding-3-small",
	}}
	r := newChatRouter(fake)

	w := postJSON(t, r, "/embeddings", types.EmbeddingRequest{Input: []string{"hello"}})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.DataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
}

func TestHandleEmbeddingsUnsupportedOption(t *testing.T) {
	fake := &fakeAI{err: &types.UnsupportedModelOptionError{Model: "ada", Option: "dimensions"}}
	r := newChatRouter(fake)

	w := postJSON(t, r, "/embeddings", types.EmbeddingRequest{Input: []string{"x"}, Dimensions: 64})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusForTaxonomy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", types.ErrNotFound, http.StatusNotFound},
		{"unsupported format", types.ErrUnsupportedFormat, http.StatusBadRequest},
		{"corrupt file", types.ErrCorruptFile, http.StatusBadRequest},
		{"upstream 4xx passes through", &types.RequestFailedError{StatusCode: 422}, 422},
		{"upstream 5xx becomes bad gateway", &types.RequestFailedError{StatusCode: 503}, http.StatusBadGateway},
		{"schema parse", &types.SchemaParseError{Raw: "x"}, http.StatusBadGateway},
		{"model option", &types.UnsupportedModelOptionError{Model: "m", Option: "o"}, http.StatusBadRequest},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}
