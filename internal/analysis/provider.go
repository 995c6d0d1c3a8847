package analysis

import (
	"context"

	"resume-analyzer/internal/llm"
)

// Provider turns extracted résumé text into a Result.
type Provider interface {
	Analyze(ctx context.Context, text string) (Result, error)
	Name() string
}

// Mode reports whether analyses come from a real model or the fixed stub.
type Mode string

const (
	ModeConfigured Mode = "configured"
	ModeDemo       Mode = "demo"
)

var (
	ErrConfigurationMissing = llm.ErrConfigurationMissing
	ErrUpstreamTimeout      = llm.ErrUpstreamTimeout
	ErrUpstreamError        = llm.ErrUpstreamError
)
