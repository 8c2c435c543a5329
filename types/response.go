package types

// DataResponse is the generic envelope returned by the HTTP surface.
type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ChatResponse wraps the assistant message returned by the chat endpoint.
type ChatResponse struct {
	Message *Message `json:"message"`
}
