package service

import (
	"strings"

	"github.com/docmindhq/docmind-be/types"
)

// DefaultChunkerConfig bounds chunk size for the local index.
var DefaultChunkerConfig = types.ChunkerConfig{
	MaxChunkSize: 1024,
	OverlapSize:  128,
}

// Chunker splits extracted page text into overlapping chunks on sentence
// boundaries so no indexed unit exceeds the vector store's sweet spot.
type Chunker struct {
	maxChunkSize int
	overlapSize  int
}

func NewChunker(cfg types.ChunkerConfig) *Chunker {
	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = DefaultChunkerConfig.MaxChunkSize
	}
	if cfg.OverlapSize < 0 || cfg.OverlapSize >= cfg.MaxChunkSize {
		cfg.OverlapSize = DefaultChunkerConfig.OverlapSize
	}
	return &Chunker{maxChunkSize: cfg.MaxChunkSize, overlapSize: cfg.OverlapSize}
}

// ChunkPages chunks each page in order, carrying trailing text into the next
// page so sentences straddling a page break stay together.
func (c *Chunker) ChunkPages(pages []types.Page, meta types.DocumentMetadata) []types.DocumentChunk {
	var chunks []types.DocumentChunk
	carry := ""
	for _, page := range pages {
		text := strings.TrimSpace(carry + " " + page.Text)
		if text == "" {
			continue
		}
		pageMeta := meta
		pageMeta.PageNum = page.Number
		pageMeta.TotalPages = len(pages)

		pageChunks, leftover := c.chunk(text, pageMeta)
		carry = leftover
		chunks = append(chunks, pageChunks...)
	}
	if trimmed := strings.TrimSpace(carry); trimmed != "" {
		lastMeta := meta
		if n := len(pages); n > 0 {
			lastMeta.PageNum = pages[n-1].Number
			lastMeta.TotalPages = n
		}
		chunks = append(chunks, types.DocumentChunk{
			Content:  trimmed,
			Page:     lastMeta.PageNum,
			Metadata: lastMeta,
		})
	}
	return chunks
}

// chunk splits text into complete chunks and returns the trailing remainder
// shorter than one chunk, which the caller carries into the next page.
func (c *Chunker) chunk(text string, meta types.DocumentMetadata) ([]types.DocumentChunk, string) {
	if len(text) <= c.maxChunkSize {
		return nil, text
	}

	var chunks []types.DocumentChunk
	pos := 0
	for len(text)-pos > c.maxChunkSize {
		end := c.splitPoint(text, pos)
		chunk := strings.TrimSpace(text[pos:end])
		if chunk != "" {
			chunks = append(chunks, types.DocumentChunk{
				Content:  chunk,
				Page:     meta.PageNum,
				Metadata: meta,
			})
		}
		next := end - c.overlapSize
		if next <= pos {
			next = end
		}
		pos = next
	}
	return chunks, text[pos:]
}

// splitPoint finds the nearest sentence end at or before the chunk limit,
// falling back to a word boundary, then to a hard cut.
func (c *Chunker) splitPoint(text string, pos int) int {
	limit := pos + c.maxChunkSize
	for i := limit; i > pos; i-- {
		switch text[i] {
		case '.', '?', '!':
			return i + 1
		}
	}
	for i := limit; i > pos; i-- {
		if text[i] == ' ' {
			return i
		}
	}
	return limit
}
