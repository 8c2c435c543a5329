package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUpload(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveUpload([]byte("content"), dir, "report final.pdf")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	name := filepath.Base(path)
	assert.True(t, strings.HasPrefix(name, "report_final_"), "got %q", name)
	assert.True(t, strings.HasSuffix(name, ".pdf"), "got %q", name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestSaveUploadCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	path, err := SaveUpload([]byte("x"), dir, "a.pdf")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestFileNameWithoutExt(t *testing.T) {
	assert.Equal(t, "report", FileNameWithoutExt("/tmp/report.pdf"))
	assert.Equal(t, "archive.tar", FileNameWithoutExt("archive.tar.gz"))
	assert.Equal(t, "noext", FileNameWithoutExt("noext"))
}
