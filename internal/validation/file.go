package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Admintools08/BP/internal/apperror"
)

// FileConstraints defines validation rules for file uploads
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// CertificateConstraints accepts scanned or exported certificates and project write-ups.
var CertificateConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"application/pdf": true,
		"image/jpeg":      true,
		"image/png":       true,
		"image/webp":      true,
	},
	AllowedExtensions: map[string]bool{
		".pdf":  true,
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	},
	MaxSize: 10 << 20, // 10MB
}

// ValidateFile checks size, sniffed content type and extension of an upload.
// The content type comes from the file's magic numbers, not the request header.
func ValidateFile(header *multipart.FileHeader, constraints FileConstraints) (string, error) {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return "", apperror.Validation("file", fmt.Sprintf("file too large: maximum size is %d MB", maxMB))
	}

	file, err := header.Open()
	if err != nil {
		return "", apperror.Validation("file", "failed to open file")
	}
	defer func() { _ = file.Close() }()

	// http.DetectContentType reads at most 512 bytes
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", apperror.Validation("file", "failed to read file")
	}

	detectedType := http.DetectContentType(buffer[:n])
	if !constraints.AllowedMimeTypes[detectedType] {
		return "", apperror.Validation("file", fmt.Sprintf("invalid file type (detected: %s)", detectedType))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return "", apperror.Validation("file", fmt.Sprintf("invalid file extension: %s", ext))
	}

	return detectedType, nil
}
