package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docmindhq/docmind-be/service"
	"github.com/docmindhq/docmind-be/types"
)

// ExtractHandler exposes local PDF and spreadsheet extraction over HTTP.
// The file travels as multipart content; nothing is stored.
type ExtractHandler struct {
	docs *service.DocumentOperations
}

func NewExtractHandler(docs *service.DocumentOperations) *ExtractHandler {
	return &ExtractHandler{docs: docs}
}

func (h *ExtractHandler) HandleText(c *gin.Context) {
	data, ok := h.readFile(c)
	if !ok {
		return
	}
	text, err := h.docs.ExtractText(data)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, gin.H{"text": text})
}

func (h *ExtractHandler) HandlePages(c *gin.Context) {
	data, ok := h.readFile(c)
	if !ok {
		return
	}
	pages, err := h.docs.ExtractPages(data)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, pages)
}

func (h *ExtractHandler) HandleTables(c *gin.Context) {
	data, ok := h.readFile(c)
	if !ok {
		return
	}
	tables, err := h.docs.ExtractTables(data)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, tables)
}

func (h *ExtractHandler) HandleSheets(c *gin.Context) {
	data, ok := h.readFile(c)
	if !ok {
		return
	}
	sheets, err := h.docs.ListSheets(data)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, sheets)
}

func (h *ExtractHandler) HandleSheetRows(c *gin.Context) {
	data, ok := h.readFile(c)
	if !ok {
		return
	}
	sheet := c.Request.FormValue("sheet")
	if sheet == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Sheet name is required"})
		return
	}
	rows, err := h.docs.SheetRows(data, sheet)
	if err != nil {
		sendError(c, err)
		return
	}
	sendSuccess(c, rows)
}

func (h *ExtractHandler) readFile(c *gin.Context) ([]byte, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Invalid file"})
		return nil, false
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "File too large"})
		return nil, false
	}
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: false, Message: "Failed to read file"})
		return nil, false
	}
	return data, true
}
