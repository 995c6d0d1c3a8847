package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledongthuc/pdf"

	"resume-analyzer/internal/shared/metrics"
)

// ErrExtractionFailed marks a document that could not be opened as a PDF.
var ErrExtractionFailed = errors.New("extraction failed")

// PDFExtractor pulls the text layer out of PDF documents.
// Library used: github.com/ledongthuc/pdf.
type PDFExtractor struct{}

// NewPDFExtractor constructs a PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the concatenated text of every page in document order.
// Pages without a readable text layer contribute nothing; only an unreadable
// document is an error, and then no partial text is returned.
func (e *PDFExtractor) Extract(ctx context.Context, document []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	text, err := extractPDF(document)
	metrics.ObserveExtractionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncExtractionFailed()
		return "", err
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: pdf reader panic: %v", ErrExtractionFailed, rec)
		}
	}()

	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrExtractionFailed)
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	var buf bytes.Buffer
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(pageText)
	}
	return buf.String(), nil
}
