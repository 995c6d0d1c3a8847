package extract

import (
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	mimePDF = "application/pdf"

	// PreviewLimit is the number of characters shown before the text is elided.
	PreviewLimit = 1000
)

// IsPDFUpload reports whether an uploaded file should be treated as a PDF,
// judged by extension, declared content type, or sniffed leading bytes.
func IsPDFUpload(fileName, contentType string, head []byte) bool {
	if strings.EqualFold(filepath.Ext(strings.TrimSpace(fileName)), ".pdf") {
		return true
	}
	if normalizeMimeType(contentType) == mimePDF {
		return true
	}
	if len(head) > 0 && normalizeMimeType(http.DetectContentType(head)) == mimePDF {
		return true
	}
	return false
}

// Preview shortens text to limit characters, appending "..." when it was cut.
func Preview(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
