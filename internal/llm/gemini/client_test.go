package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"resume-analyzer/internal/llm"
)

type fakeModels struct {
	resp *genai.GenerateContentResponse
	err  error

	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "  ", "", Options{})
	require.ErrorIs(t, err, llm.ErrConfigurationMissing)
}

func TestGenerateJoinsParts(t *testing.T) {
	fake := &fakeModels{resp: textResponse(`{"skills":`, `["Go"]}`)}
	c := &Client{models: fake, model: DefaultModel}

	out, err := c.Generate(context.Background(), "analyze this")
	require.NoError(t, err)
	assert.Equal(t, `{"skills":["Go"]}`, out)
	assert.Equal(t, DefaultModel, fake.model)
	assert.Equal(t, "analyze this", fake.prompt)
	require.NotNil(t, fake.config)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.Equal(t, "gemini", c.Name())
}

func TestGenerateEmptyResponse(t *testing.T) {
	c := &Client{models: &fakeModels{resp: &genai.GenerateContentResponse{}}, model: DefaultModel}
	_, err := c.Generate(context.Background(), "x")
	require.ErrorIs(t, err, llm.ErrUpstreamError)
	assert.True(t, llm.IsRetryable(err))
}

func TestGenerateClassifiesAPIErrors(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		retryable bool
	}{
		{name: "rate limited", code: 429, retryable: true},
		{name: "unavailable", code: 503, retryable: true},
		{name: "bad key", code: 400, retryable: false},
		{name: "forbidden", code: 403, retryable: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{models: &fakeModels{err: genai.APIError{Code: tt.code, Message: "nope"}}, model: DefaultModel}
			_, err := c.Generate(context.Background(), "x")
			require.ErrorIs(t, err, llm.ErrUpstreamError)
			assert.Equal(t, tt.retryable, llm.IsRetryable(err))

			var upstream *llm.UpstreamError
			require.True(t, errors.As(err, &upstream))
			assert.Equal(t, tt.code, upstream.StatusCode)
		})
	}
}

func TestGenerateDeadline(t *testing.T) {
	c := &Client{models: &fakeModels{err: context.DeadlineExceeded}, model: DefaultModel}
	_, err := c.Generate(context.Background(), "x")
	require.ErrorIs(t, err, llm.ErrUpstreamTimeout)
}
