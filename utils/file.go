package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveUpload writes uploaded bytes into uploadDir under a sanitized,
// timestamped filename and returns the destination path.
func SaveUpload(data []byte, uploadDir, originalName string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	filename := fmt.Sprintf("%s_%d%s", base, time.Now().Unix(), ext)
	filename = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, filename)

	destPath := filepath.Join(uploadDir, filename)
	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}
	return destPath, nil
}

// FileNameWithoutExt extracts the filename without extension from a path.
func FileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	return base
}
