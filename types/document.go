package types

import "time"

// DocumentReference identifies a document held by the remote document
// service. The service is the source of truth; nothing is cached locally.
type DocumentReference struct {
	DocumentID   string        `json:"document_id"`
	DocumentPart string        `json:"document_part,omitempty"`
	TTL          time.Duration `json:"ttl,omitempty"`
}

// SearchResult is one ranked snippet from a semantic search.
type SearchResult struct {
	DocumentID string  `json:"document_id"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
}

// Page is one page of extracted text.
type Page struct {
	Number int    `json:"page_number"`
	Text   string `json:"page_content"`
}

// Table is one table extracted from a document page.
type Table struct {
	Page int        `json:"page_number"`
	Rows [][]string `json:"table"`
}

// DocumentChunk is a slice of extracted text ready for indexing.
type DocumentChunk struct {
	Content  string
	Page     int
	Metadata DocumentMetadata
}

// DocumentMetadata describes the source of a chunk.
type DocumentMetadata struct {
	Title      string
	Source     string
	Tags       []string
	PageNum    int
	TotalPages int
}

// ChunkerConfig controls how extracted text is split for indexing.
type ChunkerConfig struct {
	MaxChunkSize int
	OverlapSize  int
}

// UploadRequest carries the metadata sent alongside an indexed document.
type UploadRequest struct {
	Title  string   `json:"title"`
	Source string   `json:"source"`
	Tags   []string `json:"tags"`
}
