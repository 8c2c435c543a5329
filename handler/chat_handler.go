package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docmindhq/docmind-be/service"
	"github.com/docmindhq/docmind-be/types"
)

type ChatHandler struct {
	ai *service.AIProcessor
}

func NewChatHandler(ai *service.AIProcessor) *ChatHandler {
	return &ChatHandler{ai: ai}
}

// HandleCompletion runs one completion. When an output schema is present the
// response carries the parsed structured value instead of raw text.
func (h *ChatHandler) HandleCompletion(c *gin.Context) {
	var req types.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Invalid request body"})
		return
	}

	if req.OutputSchema != nil {
		var structured json.RawMessage
		result, err := h.ai.GenerateStructured(c.Request.Context(), req, &structured)
		if err != nil {
			sendError(c, err)
			return
		}
		sendSuccess(c, gin.H{
			"structured": structured,
			"usage":      result.Usage,
			"model":      result.Model,
		})
		return
	}

	result, err := h.ai.GenerateCompletion(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, result)
}

// HandleEmbeddings returns one vector per input.
func (h *ChatHandler) HandleEmbeddings(c *gin.Context) {
	var req types.EmbeddingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Invalid request body"})
		return
	}
	result, err := h.ai.GetEmbeddings(c.Request.Context(), req)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, result)
}
