package validation

import (
	"path/filepath"
	"strings"
)

// mimeTypes is the fixed extension lookup used for uploaded files.
// Unknown extensions fall back to a generic binary type, so derivation
// never fails.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".mp4":  "video/mp4",
	".mp3":  "audio/mpeg",
	".zip":  "application/zip",
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".html": "text/html",
	".json": "application/json",
}

const defaultMimeType = "application/octet-stream"

// MimeTypeForFilename derives a content type from the filename
// extension alone.
func MimeTypeForFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if mime, ok := mimeTypes[ext]; ok {
		return mime
	}
	return defaultMimeType
}

// SanitizeFilename strips every rune outside the alphanumeric /
// '.' / '-' / '_' whitelist so the result is safe to embed in a
// storage key.
func SanitizeFilename(filename string) string {
	if filename == "" {
		filename = "file"
	}
	var b strings.Builder
	b.Grow(len(filename))
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
