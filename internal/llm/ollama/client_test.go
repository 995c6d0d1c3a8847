package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/llm"
)

func TestNewClientRequiresModel(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:11434", "", nil)
	require.ErrorIs(t, err, llm.ErrConfigurationMissing)
}

func TestGenerateSendsJSONChat(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"{\"resumeScore\":70}"},"done":true}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "llama3", srv.Client())
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), "analyze")
	require.NoError(t, err)
	assert.Equal(t, `{"resumeScore":70}`, out)
	assert.Equal(t, "llama3", got["model"])
	assert.Equal(t, "json", got["format"])
	assert.Equal(t, false, got["stream"])
	assert.Equal(t, "ollama", c.Name())
}

func TestGenerateStatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		retryable bool
	}{
		{name: "server error", status: http.StatusInternalServerError, retryable: true},
		{name: "model missing", status: http.StatusNotFound, retryable: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":"boom"}`))
			}))
			defer srv.Close()

			c, err := NewClient(srv.URL, "llama3", srv.Client())
			require.NoError(t, err)

			_, err = c.Generate(context.Background(), "analyze")
			require.ErrorIs(t, err, llm.ErrUpstreamError)
			assert.Equal(t, tt.retryable, llm.IsRetryable(err))
		})
	}
}

func TestGenerateEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":""},"done":true}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "llama3", srv.Client())
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), "analyze")
	require.ErrorIs(t, err, llm.ErrUpstreamError)
}
