package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Content types accepted for performance card images.
var performanceImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func ValidateImageFile(file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	if !performanceImageTypes[contentType] {
		return fmt.Errorf("unsupported image type: %s", contentType)
	}
	return nil
}

// GenerateUniqueFilename names an upload after a fresh UUID. The original
// client-supplied name is discarded entirely; only its extension survives,
// so no client-controlled path component ever reaches the filesystem.
func GenerateUniqueFilename(originalName string) string {
	return uuid.New().String() + filepath.Ext(originalName)
}

func SaveUploadedFile(file *multipart.FileHeader, destDir, filename string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(destDir, filename))
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}

	return nil
}
