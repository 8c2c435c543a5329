package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docmindhq/docmind-be/service"
	"github.com/docmindhq/docmind-be/types"
)

const maxUploadSize = 10 << 20

// DocumentHandler proxies the hosted document service: upload, retrieval
// and semantic search.
type DocumentHandler struct {
	docs *service.DocumentOperations
}

func NewDocumentHandler(docs *service.DocumentOperations) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// HandleUpload forwards a multipart file to the document service.
func (h *DocumentHandler) HandleUpload(c *gin.Context) {
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
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Failed to read file"})
		return
	}

	var ttl time.Duration
	if raw := c.Request.FormValue("ttl"); raw != "" {
		seconds, err := time.ParseDuration(raw + "s")
		if err != nil {
			c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Invalid ttl"})
			return
		}
		ttl = seconds
	}

	ref, err := h.docs.UploadDocument(c.Request.Context(), header.Filename, data, c.Request.FormValue("document_id"), ttl)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, ref)
}

// HandleGet streams the raw document bytes back to the caller.
func (h *DocumentHandler) HandleGet(c *gin.Context) {
	data, err := h.docs.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		sendError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// HandleSearch runs a semantic search across the given documents.
func (h *DocumentHandler) HandleSearch(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Invalid request body"})
		return
	}
	opts := service.SearchOptions{Take: req.TopK}
	results, err := h.docs.SemanticSearch(c.Request.Context(), req.Query, req.DocumentIDs, opts)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, results)
}
