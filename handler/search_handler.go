package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docmindhq/docmind-be/database"
	"github.com/docmindhq/docmind-be/types"
)

// SearchHandler queries the local vector store.
type SearchHandler struct {
	store *database.WeaviateStore
}

func NewSearchHandler(store *database.WeaviateStore) *SearchHandler {
	return &SearchHandler{store: store}
}

func (h *SearchHandler) HandleSearch(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Invalid request body"})
		return
	}
	if req.TopK == 0 {
		req.TopK = 5
	}
	results, err := h.store.SearchSimilar(c.Request.Context(), []string{req.Query}, req.TopK)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, results)
}
