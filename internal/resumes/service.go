package resumes

import (
	"context"
	"time"
	"unicode/utf8"

	"resume-analyzer/internal/analysis"
	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/telemetry"
)

// Extractor pulls plain text out of an uploaded document.
type Extractor interface {
	Extract(ctx context.Context, document []byte) (string, error)
}

// Service runs the extract-then-analyze flow for one document.
type Service struct {
	Extractor Extractor
	Provider  analysis.Provider
}

// Report is the outcome of analyzing one document.
type Report struct {
	Result      analysis.Result
	TextPreview string
	TextLength  int
	Provider    string
}

// Analyze extracts the document text and hands it to the provider. When
// extraction fails the provider is never called.
func (s *Service) Analyze(ctx context.Context, document []byte) (Report, error) {
	metrics.IncAnalysisRequested()
	text, err := s.Extract(ctx, document)
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	result, err := s.Provider.Analyze(ctx, text)
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		return Report{}, err
	}
	metrics.IncAnalysisCompleted()

	return Report{
		Result:      result,
		TextPreview: extract.Preview(text, extract.PreviewLimit),
		TextLength:  utf8.RuneCountInString(text),
		Provider:    s.Provider.Name(),
	}, nil
}

// Extract returns the document text alone.
func (s *Service) Extract(ctx context.Context, document []byte) (string, error) {
	text, err := s.Extractor.Extract(ctx, document)
	if err != nil {
		telemetry.Warn("resume.extract_failed", map[string]any{
			"size_bytes": len(document),
			"error":      err,
		})
		return "", err
	}
	return text, nil
}

// Demo returns the fixed demo analysis shown before any upload.
func (s *Service) Demo() analysis.Result {
	return analysis.DemoResult()
}

// Techniques returns the general résumé-writing tips shown alongside results.
func (s *Service) Techniques() []string {
	out := make([]string, len(techniques))
	copy(out, techniques)
	return out
}
