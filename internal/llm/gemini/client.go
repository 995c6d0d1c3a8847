package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"resume-analyzer/internal/llm"
)

const (
	providerName = "gemini"
	DefaultModel = "gemini-2.5-flash"
)

// contentGenerator is the slice of *genai.Models the client needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client implements llm.Client on the Gemini Developer API.
type Client struct {
	models contentGenerator
	model  string
}

// Options tweak client construction. Zero values use the public endpoint.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient constructs a Gemini client. An empty key returns
// llm.ErrConfigurationMissing without contacting the API.
func NewClient(ctx context.Context, apiKey, model string, opts Options) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required: %w", llm.ErrConfigurationMissing)
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w: %w", llm.ErrConfigurationMissing, err)
	}
	return &Client{models: client.Models, model: model}, nil
}

func (c *Client) Name() string { return providerName }

// Generate sends one JSON-mode prompt and returns the raw text answer.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", classify(err)
	}
	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", llm.Malformed(providerName, errors.New("empty response"))
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			b.WriteString(part.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return llm.StatusError(providerName, apiErr.Code, err)
	}
	return llm.ClassifyTransport(providerName, err)
}
