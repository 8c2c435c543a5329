package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmindhq/docmind-be/types"
)

func TestPDFRejectsEmptyInput(t *testing.T) {
	svc := NewPDFService()

	_, err := svc.ExtractText(nil)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = svc.ExtractPages([]byte{})
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = svc.ExtractTables(nil)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestPDFRejectsNonPDFBytes(t *testing.T) {
	svc := NewPDFService()
	data := []byte("this is a plain text file, not a PDF")

	_, err := svc.ExtractText(data)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = svc.ExtractPages(data)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = svc.ExtractTables(data)
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestPDFTruncatedFileIsCorrupt(t *testing.T) {
	svc := NewPDFService()
	// Valid magic, garbage body. The parser must fail, never panic through.
	data := []byte("%PDF-1.7\ngarbage with no xref table")

	_, err := svc.ExtractPages(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrCorruptFile)

	_, err = svc.ExtractText(data)
	assert.ErrorIs(t, err, types.ErrCorruptFile)

	_, err = svc.ExtractTables(data)
	assert.ErrorIs(t, err, types.ErrCorruptFile)
}

func TestIsPDF(t *testing.T) {
	assert.True(t, isPDF([]byte("%PDF-1.4 rest")))
	assert.False(t, isPDF([]byte("%PDF")))
	assert.False(t, isPDF([]byte("PK\x03\x04")))
	assert.False(t, isPDF(nil))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b", cleanText(" a  b \r"))
	assert.Equal(t, "line\nnext", cleanText("line\fnext"))
}
