package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docmindhq/docmind-be/types"
)

// PDFService extracts text and tables from PDF bytes. The parsing itself is
// delegated to the pdf library; this layer validates input and translates
// errors into the shared taxonomy.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// ExtractText returns the concatenated plain text of all pages.
func (s *PDFService) ExtractText(data []byte) (string, error) {
	pages, err := s.ExtractPages(data)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString(strings.TrimSpace(p.Text))
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// ExtractPages returns the text of each page in order.
func (s *PDFService) ExtractPages(data []byte) (pages []types.Page, err error) {
	r, err := s.open(data)
	if err != nil {
		return nil, err
	}
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, fmt.Errorf("%w: %v", types.ErrCorruptFile, rec)
		}
	}()

	total := r.NumPage()
	pages = make([]types.Page, 0, total)
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", types.ErrCorruptFile, i, err)
		}
		pages = append(pages, types.Page{Number: i, Text: cleanText(text)})
	}
	return pages, nil
}

// ExtractTables returns row-grouped text per page. Words on the same visual
// row form one table row, ordered left to right.
func (s *PDFService) ExtractTables(data []byte) (tables []types.Table, err error) {
	r, err := s.open(data)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rec := recover(); rec != nil {
			tables, err = nil, fmt.Errorf("%w: %v", types.ErrCorruptFile, rec)
		}
	}()

	total := r.NumPage()
	for i := 1; i <= total; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", types.ErrCorruptFile, i, err)
		}
		table := types.Table{Page: i}
		for _, row := range rows {
			cells := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				if text := strings.TrimSpace(word.S); text != "" {
					cells = append(cells, text)
				}
			}
			if len(cells) > 0 {
				table.Rows = append(table.Rows, cells)
			}
		}
		if len(table.Rows) > 0 {
			tables = append(tables, table)
		}
	}
	return tables, nil
}

func (s *PDFService) open(data []byte) (*pdf.Reader, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no PDF bytes provided", types.ErrUnsupportedFormat)
	}
	if !isPDF(data) {
		return nil, fmt.Errorf("%w: missing %%PDF header", types.ErrUnsupportedFormat)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptFile, err)
	}
	if r.NumPage() == 0 {
		return nil, fmt.Errorf("%w: no pages found", types.ErrCorruptFile)
	}
	return r, nil
}

func isPDF(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

func cleanText(text string) string {
	replacements := map[string]string{
		"\x00": "",
		"�": "",
		"\x1b": "",
		"\r":     "",
		"\f":     "\n",
		"  ":     " ",
	}
	cleaned := text
	for old, new := range replacements {
		cleaned = strings.ReplaceAll(cleaned, old, new)
	}
	return strings.TrimSpace(cleaned)
}
