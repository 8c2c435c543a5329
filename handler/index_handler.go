package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docmindhq/docmind-be/service"
	"github.com/docmindhq/docmind-be/types"
)

// IndexHandler ingests documents into the local vector store.
type IndexHandler struct {
	indexer *service.IndexService
}

func NewIndexHandler(indexer *service.IndexService) *IndexHandler {
	return &IndexHandler{indexer: indexer}
}

// HandleIndex accepts a multipart PDF plus a JSON metadata field and indexes
// its chunks.
func (h *IndexHandler) HandleIndex(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Invalid file"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "File too large"})
		return
	}

	var req types.UploadRequest
	if metadata := c.Request.FormValue("metadata"); metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &req); err != nil {
			c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Invalid metadata"})
			return
		}
	}
	if req.Title == "" {
		req.Title = header.Filename
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Failed to read file"})
		return
	}

	count, err := h.indexer.IndexDocument(c.Request.Context(), req, header.Filename, data)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, gin.H{"indexed_chunks": count})
}
