package types

import "github.com/sashabaranov/go-openai/jsonschema"

// CompletionRequest describes one chat-completion call. Requests are built
// fresh per call and never retained.
type CompletionRequest struct {
	SystemPrompt string  `json:"system_prompt"`
	UserPrompt   string  `json:"user_prompt"`
	Model        string  `json:"model,omitempty"`
	Temperature  float32 `json:"temperature,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`

	// OutputSchema, when set, steers the model toward structured JSON output
	// and makes the client validate the response against it.
	OutputSchema *jsonschema.Definition `json:"output_schema,omitempty"`
}

// CompletionResult is the normalized response of a completion call.
type CompletionResult struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	FinishReason string `json:"finish_reason"`
	Usage        Usage  `json:"usage"`
}

// Usage tracks token consumption as reported by the completion endpoint.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamHandler receives streamed response fragments.
type StreamHandler func(chunk string)
