package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"resume-analyzer/internal/llm"
)

const providerName = "ollama"

// Client implements llm.Client against a local Ollama server.
type Client struct {
	api   *api.Client
	model string
}

// NewClient builds a client for model. An empty host falls back to OLLAMA_HOST
// (or the Ollama default of 127.0.0.1:11434).
func NewClient(host, model string, httpClient *http.Client) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("OLLAMA_MODEL is required: %w", llm.ErrConfigurationMissing)
	}
	if strings.TrimSpace(host) == "" {
		c, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("ollama client: %w: %w", llm.ErrConfigurationMissing, err)
		}
		return &Client{api: c, model: model}, nil
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("ollama host %q: %w: %w", host, llm.ErrConfigurationMissing, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{api: api.NewClient(base, httpClient), model: model}, nil
}

func (c *Client) Name() string { return providerName }

// Generate runs a single non-streaming JSON-format chat turn.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Format:   json.RawMessage(`"json"`),
		Options:  map[string]any{"temperature": 0.1},
	}

	var out strings.Builder
	err := c.api.Chat(ctx, req, func(resp api.ChatResponse) error {
		out.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", classify(err)
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", llm.Malformed(providerName, errors.New("empty response"))
	}
	return out.String(), nil
}

func classify(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		return llm.StatusError(providerName, statusErr.StatusCode, err)
	}
	return llm.ClassifyTransport(providerName, err)
}
