package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/llm/gemini"
	"resume-analyzer/internal/llm/ollama"
	"resume-analyzer/internal/shared/telemetry"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAuto   = "auto"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderStub   = "stub"
)

// Config selects and tunes the analysis provider.
type Config struct {
	Provider       string
	GeminiAPIKey   string
	GeminiModel    string
	GeminiBaseURL  string
	OllamaHost     string
	OllamaModel    string
	StubDelay      time.Duration
	AttemptTimeout time.Duration
	MaxAttempts    int
	RetryBaseDelay time.Duration
}

// New picks the provider described by cfg. Missing credentials are logged and
// degrade to the stub, so New always returns a usable provider.
func New(ctx context.Context, cfg Config) (Provider, Mode) {
	stub := NewStubProvider(cfg.StubDelay)
	choice := strings.ToLower(strings.TrimSpace(cfg.Provider))

	var (
		client llm.Client
		err    error
	)
	switch choice {
	case ProviderStub:
		return stub, ModeDemo
	case ProviderOllama:
		client, err = newOllamaClient(cfg)
	case ProviderGemini:
		client, err = newGeminiClient(ctx, cfg)
	default:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			return stub, ModeDemo
		}
		client, err = newGeminiClient(ctx, cfg)
	}
	if err != nil {
		fields := map[string]any{"provider": choice, "error": err}
		if errors.Is(err, llm.ErrConfigurationMissing) {
			fields["reason"] = "configuration_missing"
		}
		telemetry.Warn("analysis.provider_fallback", fields)
		return stub, ModeDemo
	}

	upstream := NewResilientProvider(NewUpstreamProvider(client), RetryPolicy{
		MaxAttempts:    cfg.MaxAttempts,
		AttemptTimeout: cfg.AttemptTimeout,
		BaseDelay:      cfg.RetryBaseDelay,
	})
	telemetry.Info("analysis.provider_selected", map[string]any{"provider": client.Name()})
	return upstream, ModeConfigured
}

var (
	newGeminiClient = func(ctx context.Context, cfg Config) (llm.Client, error) {
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, gemini.Options{BaseURL: cfg.GeminiBaseURL})
	}
	newOllamaClient = func(cfg Config) (llm.Client, error) {
		return ollama.NewClient(cfg.OllamaHost, cfg.OllamaModel, nil)
	}
)
