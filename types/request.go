package types

// ChatRequest is the body of the chat endpoint.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// SearchRequest is the body of the search endpoint.
type SearchRequest struct {
	Query       string   `json:"query"`
	DocumentIDs []string `json:"document_ids,omitempty"`
	TopK        int      `json:"top_k,omitempty"`
}

// ExtractRequest selects a sheet for spreadsheet extraction endpoints.
type ExtractRequest struct {
	Sheet string `json:"sheet,omitempty"`
}
