package xmlutil

import (
	"mime"
	"path/filepath"
	"strings"
)

// MimeType resolves a file's MIME type from its extension, falling back
// to a small table of the extensions BigBlueButton recordings actually
// use when the mime package's registry doesn't know the extension
// (grounded on generateSVG.go's getMimeType).
func MimeType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
