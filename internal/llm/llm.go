package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Client abstracts LLM providers that answer a single JSON-mode prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

var (
	// ErrConfigurationMissing means the provider has no usable credential or model.
	ErrConfigurationMissing = errors.New("llm configuration missing")
	// ErrUpstreamTimeout means the provider did not answer in time.
	ErrUpstreamTimeout = errors.New("llm upstream timeout")
	// ErrUpstreamError means the provider answered with a failure or malformed payload.
	ErrUpstreamError = errors.New("llm upstream error")
)

// UpstreamError carries provider failure details. It matches ErrUpstreamError
// with errors.Is.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Retryable  bool
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s upstream error status=%d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s upstream error: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamError }

// StatusError classifies an HTTP status returned by a provider. 408, 429 and
// 5xx are transient; everything else (bad key, bad request) is not.
func StatusError(provider string, status int, err error) error {
	return &UpstreamError{
		Provider:   provider,
		StatusCode: status,
		Retryable:  status == 408 || status == 429 || status >= 500,
		Err:        err,
	}
}

// Malformed reports a response that arrived but cannot be used.
func Malformed(provider string, err error) error {
	return &UpstreamError{Provider: provider, Retryable: true, Err: err}
}

// ClassifyTransport maps a transport-level failure onto the upstream taxonomy.
func ClassifyTransport(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", provider, ErrUpstreamTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: %w: %w", provider, ErrUpstreamTimeout, err)
	}
	return &UpstreamError{Provider: provider, Retryable: isTransientMessage(err), Err: err}
}

// IsRetryable reports whether another attempt could plausibly succeed.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrUpstreamTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Retryable
	}
	return isTransientMessage(err)
}

func isTransientMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "unexpected eof")
}

// CleanJSON strips markdown code fences some models wrap around JSON output.
func CleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}
