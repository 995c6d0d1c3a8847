package analysis

import (
	"context"
	"errors"
	"time"

	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/telemetry"
)

const (
	defaultAttemptTimeout = 60 * time.Second
	defaultRetryBaseDelay = 300 * time.Millisecond
	maxRetryDelay         = 5 * time.Second
)

// RetryPolicy bounds how hard the resilient provider tries upstream.
type RetryPolicy struct {
	MaxAttempts    int
	AttemptTimeout time.Duration
	BaseDelay      time.Duration
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.AttemptTimeout <= 0 {
		p.AttemptTimeout = defaultAttemptTimeout
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaultRetryBaseDelay
	}
	return p
}

// backoff returns the wait before attempt n+1 (n starts at 1).
func (p RetryPolicy) backoff(n int) time.Duration {
	d := p.BaseDelay
	for i := 1; i < n; i++ {
		d *= 2
		if d >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return d
}

// ResilientProvider retries transient upstream failures and, when the
// upstream cannot produce a result, answers with the stub result instead.
// The only error it returns is the caller's own context cancellation.
type ResilientProvider struct {
	upstream Provider
	fallback Result
	policy   RetryPolicy
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewResilientProvider(upstream Provider, policy RetryPolicy) *ResilientProvider {
	return &ResilientProvider{
		upstream: upstream,
		fallback: SampleResult(),
		policy:   policy.normalized(),
		sleep:    sleepContext,
	}
}

func (p *ResilientProvider) Name() string { return p.upstream.Name() }

func (p *ResilientProvider) Analyze(ctx context.Context, text string) (Result, error) {
	var lastErr error
	for attempt := 1; attempt <= p.policy.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, p.policy.AttemptTimeout)
		res, err := p.upstream.Analyze(attemptCtx, text)
		cancel()
		if err == nil {
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, llm.ErrUpstreamTimeout) {
			err = errors.Join(llm.ErrUpstreamTimeout, err)
		}
		lastErr = err

		if !llm.IsRetryable(err) || attempt == p.policy.MaxAttempts {
			break
		}
		delay := p.policy.backoff(attempt)
		metrics.IncUpstreamRetry()
		telemetry.Warn("analysis.retry", map[string]any{
			"provider": p.upstream.Name(),
			"attempt":  attempt,
			"delay_ms": delay.Milliseconds(),
			"error":    err,
		})
		if err := p.sleep(ctx, delay); err != nil {
			return Result{}, err
		}
	}

	metrics.IncAnalysisFallback()
	telemetry.Error("analysis.fallback", map[string]any{
		"provider": p.upstream.Name(),
		"error":    lastErr,
	})
	return p.fallback.clone(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
