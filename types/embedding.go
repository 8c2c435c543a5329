package types

// EmbeddingRequest describes one embedding call. Dimensions, when non-zero,
// asks the model for reduced-dimension vectors; models without that support
// reject it instead of truncating.
type EmbeddingRequest struct {
	Input      []string `json:"input"`
	Model      string   `json:"model,omitempty"`
	Dimensions int      `json:"dimensions,omitempty"`
}

// EmbeddingResult holds one vector per input, in input order.
type EmbeddingResult struct {
	Vectors [][]float32 `json:"vectors"`
	Model   string      `json:"model"`
	Usage   Usage       `json:"usage"`
}
