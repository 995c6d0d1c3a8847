package analysis

import (
	"context"

	"resume-analyzer/internal/llm"
)

// UpstreamProvider asks an LLM for the analysis. It does not retry; wrap it in
// a ResilientProvider for that.
type UpstreamProvider struct {
	client llm.Client
}

func NewUpstreamProvider(client llm.Client) *UpstreamProvider {
	return &UpstreamProvider{client: client}
}

func (p *UpstreamProvider) Name() string { return p.client.Name() }

func (p *UpstreamProvider) Analyze(ctx context.Context, text string) (Result, error) {
	raw, err := p.client.Generate(ctx, BuildPrompt(text))
	if err != nil {
		return Result{}, err
	}
	return ParsePayload(p.client.Name(), raw)
}
