package service

import (
	"context"
	"time"

	"github.com/docmindhq/docmind-be/config"
	"github.com/docmindhq/docmind-be/types"
)

// DocumentOperations composes the document API client with local PDF and
// spreadsheet extraction. Pure pass-through; each method forwards to the
// owning client.
type DocumentOperations struct {
	api   *DocumentAPIClient
	pdf   *PDFService
	excel *ExcelService
}

func NewDocumentOperations(cfg config.PlatformConfig) (*DocumentOperations, error) {
	api, err := NewDocumentAPIClient(cfg.BaseURL, cfg.ClientID, cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return &DocumentOperations{
		api:   api,
		pdf:   NewPDFService(),
		excel: NewExcelService(),
	}, nil
}

// Document management

func (o *DocumentOperations) UploadDocument(ctx context.Context, fileName string, data []byte, documentID string, ttl time.Duration) (*types.DocumentReference, error) {
	return o.api.UploadDocument(ctx, fileName, data, documentID, ttl)
}

func (o *DocumentOperations) GetDocument(ctx context.Context, documentID string) ([]byte, error) {
	return o.api.GetDocument(ctx, documentID)
}

func (o *DocumentOperations) SemanticSearch(ctx context.Context, query string, documentIDs []string, opts SearchOptions) ([]types.SearchResult, error) {
	return o.api.SemanticSearch(ctx, query, documentIDs, opts)
}

// PDF operations

func (o *DocumentOperations) ExtractText(data []byte) (string, error) {
	return o.pdf.ExtractText(data)
}

func (o *DocumentOperations) ExtractPages(data []byte) ([]types.Page, error) {
	return o.pdf.ExtractPages(data)
}

func (o *DocumentOperations) ExtractTables(data []byte) ([]types.Table, error) {
	return o.pdf.ExtractTables(data)
}

// Spreadsheet operations

func (o *DocumentOperations) ListSheets(data []byte) ([]string, error) {
	return o.excel.ListSheets(data)
}

func (o *DocumentOperations) SheetRows(data []byte, sheet string) ([][]string, error) {
	return o.excel.SheetRows(data, sheet)
}

func (o *DocumentOperations) SheetRecords(data []byte, sheet string) ([]map[string]string, error) {
	return o.excel.SheetRecords(data, sheet)
}
