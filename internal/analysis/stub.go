package analysis

import (
	"context"
	"time"
)

// DefaultStubDelay mimics the latency of a real inference call.
const DefaultStubDelay = 2 * time.Second

// StubProvider ignores its input and answers with SampleResult after Delay.
// It never fails; a cancelled context only shortens the wait.
type StubProvider struct {
	Delay time.Duration
}

func NewStubProvider(delay time.Duration) *StubProvider {
	if delay < 0 {
		delay = 0
	}
	return &StubProvider{Delay: delay}
}

func (p *StubProvider) Name() string { return "stub" }

func (p *StubProvider) Analyze(ctx context.Context, _ string) (Result, error) {
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		}
	}
	return SampleResult(), nil
}
