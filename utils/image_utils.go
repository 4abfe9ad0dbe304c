package utils

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// AllowedImageContentTypes is the set of allowed content types for image uploads.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/svg+xml": true,
}

// MaxUploadSize is the default maximum size of a single uploaded image (5MB).
const MaxUploadSize = 5 << 20

// DetectImageType returns the MIME type of an uploaded image. The declared
// type from the multipart header wins unless it is missing or generic, in
// which case the payload is sniffed.
func DetectImageType(declared string, data []byte) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	detected := mimetype.Detect(data).String()
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = detected[:i]
	}
	return detected
}

// ValidateImage checks content type and size of an upload.
func ValidateImage(contentType string, size int64, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = MaxUploadSize
	}
	if size > maxSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of %d bytes", size, maxSize)
	}
	if !AllowedImageContentTypes[contentType] {
		return fmt.Errorf("invalid file type '%s'; allowed types: image/jpeg, image/png, image/webp, image/gif, image/svg+xml", contentType)
	}
	return nil
}

// EncodeDataURI renders a payload as data:<mime>;base64,<payload>.
func EncodeDataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURI reports whether s is an inline data URI rather than a URL.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}
