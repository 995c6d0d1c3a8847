package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/extract/pdftest"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ANALYSIS_DELAY_MS", "0")
	t.Setenv("ANALYSIS_PROVIDER", "stub")
	t.Setenv("CONFIG_FILE", "")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePDF(t *testing.T, pages ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, pdftest.Build(pages...), 0o600))
	return path
}

func TestDemoCommand(t *testing.T) {
	out, err := runCLI(t, "demo")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(84), got["resumeScore"])
	assert.Equal(t, "Master's", got["educationLevel"])
}

func TestExtractCommand(t *testing.T) {
	out, err := runCLI(t, "extract", writePDF(t, "Experienced Python developer"))
	require.NoError(t, err)
	assert.Contains(t, out, "Experienced Python developer")
}

func TestExtractCommandRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

	_, err := runCLI(t, "extract", path)
	require.Error(t, err)
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := runCLI(t, "analyze", "--provider", "stub", writePDF(t, "Experienced Python developer"))
	require.NoError(t, err)

	var got struct {
		Result struct {
			ResumeScore int      `json:"resumeScore"`
			Skills      []string `json:"skills"`
		} `json:"result"`
		TextPreview string `json:"textPreview"`
		Provider    string `json:"provider"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 76, got.Result.ResumeScore)
	assert.Contains(t, got.Result.Skills, "Python")
	assert.Contains(t, got.TextPreview, "Python developer")
	assert.Equal(t, "stub", got.Provider)
}

func TestAnalyzeCommandRequiresFile(t *testing.T) {
	_, err := runCLI(t, "analyze")
	require.Error(t, err)
}

func TestConfigFlagWithMissingFile(t *testing.T) {
	_, err := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "analyze", writePDF(t, "x"))
	require.Error(t, err)
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, ":0", func(context.Context) (http.Handler, error) {
			return http.NotFoundHandler(), nil
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
