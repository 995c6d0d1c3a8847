package resumes

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/analysis"
	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/extract/pdftest"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Analyze(ctx context.Context, text string) (analysis.Result, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(analysis.Result), args.Error(1)
}

func (m *mockProvider) Name() string { return "mock" }

func newStubService() *Service {
	return &Service{Extractor: extract.NewPDFExtractor(), Provider: analysis.NewStubProvider(0)}
}

func TestAnalyzeWellFormedPDF(t *testing.T) {
	svc := newStubService()

	report, err := svc.Analyze(context.Background(), pdftest.Build("Experienced Python developer"))
	require.NoError(t, err)
	assert.Contains(t, report.TextPreview, "Experienced Python developer")
	assert.Equal(t, 76, report.Result.ResumeScore)
	assert.Contains(t, report.Result.Skills, "Python")
	assert.Equal(t, "stub", report.Provider)
	assert.Greater(t, report.TextLength, 0)
}

func TestAnalyzeImageOnlyPDFStillAnalyzes(t *testing.T) {
	svc := newStubService()

	report, err := svc.Analyze(context.Background(), pdftest.Build(""))
	require.NoError(t, err)
	assert.Equal(t, 0, report.TextLength)
	assert.Equal(t, "", report.TextPreview)
	assert.Equal(t, 76, report.Result.ResumeScore)
}

func TestAnalyzeSkipsProviderOnExtractionFailure(t *testing.T) {
	provider := &mockProvider{}
	svc := &Service{Extractor: extract.NewPDFExtractor(), Provider: provider}

	_, err := svc.Analyze(context.Background(), []byte("PK\x03\x04 this is a zip, not a pdf"))
	require.ErrorIs(t, err, extract.ErrExtractionFailed)
	provider.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalyzePassesExtractedTextToProvider(t *testing.T) {
	provider := &mockProvider{}
	provider.On("Analyze", mock.Anything, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Go engineer")
	})).Return(analysis.DemoResult(), nil).Once()
	svc := &Service{Extractor: extract.NewPDFExtractor(), Provider: provider}

	report, err := svc.Analyze(context.Background(), pdftest.Build("Go engineer"))
	require.NoError(t, err)
	assert.Equal(t, 84, report.Result.ResumeScore)
	assert.Equal(t, "mock", report.Provider)
	provider.AssertExpectations(t)
}

func TestAnalyzePreviewIsTruncated(t *testing.T) {
	long := strings.Repeat("A", extract.PreviewLimit+200)
	svc := newStubService()

	report, err := svc.Analyze(context.Background(), pdftest.Build(long))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(report.TextPreview, "..."))
	assert.Equal(t, extract.PreviewLimit+3, len(report.TextPreview))
	assert.GreaterOrEqual(t, report.TextLength, extract.PreviewLimit+200)
}

func TestDemoAndTechniques(t *testing.T) {
	svc := newStubService()
	assert.Equal(t, 84, svc.Demo().ResumeScore)

	tips := svc.Techniques()
	require.Len(t, tips, 10)
	tips[0] = "changed"
	assert.NotEqual(t, "changed", svc.Techniques()[0])
}
