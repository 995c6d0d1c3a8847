package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-analyzer/internal/analysis"
	"resume-analyzer/internal/bootstrap"
	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/resumes"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var provider string
	cmd := &cobra.Command{
		Use:   "analyze <resume.pdf>",
		Short: "Extract and analyze a local PDF résumé, printing the JSON report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if strings.TrimSpace(provider) != "" {
				cfg.Analysis.Provider = provider
			}
			document, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			p, _ := analysis.New(cmd.Context(), bootstrap.AnalysisConfig(cfg.Analysis))
			svc := &resumes.Service{Extractor: extract.NewPDFExtractor(), Provider: p}
			report, err := svc.Analyze(cmd.Context(), document)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resumes.ToAnalyzeResponse(report))
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "Analysis provider: auto, gemini, ollama or stub")
	return cmd
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <resume.pdf>",
		Short: "Print the text layer of a local PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			text, err := extract.NewPDFExtractor().Extract(cmd.Context(), document)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print the demo analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), analysis.DemoResult())
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
