package main

import (
	"strings"

	"github.com/spf13/cobra"

	"resume-analyzer/internal/shared/config"
)

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Resume analyzer HTTP API",
		Long:          "Extracts text from PDF résumés and returns a structured analysis of skills, experience and career matches.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a YAML config file (overrides CONFIG_FILE)")

	serve := newServeCmd(opts)
	cmd.RunE = serve.RunE
	cmd.Flags().AddFlagSet(serve.Flags())
	cmd.AddCommand(
		serve,
		newAnalyzeCmd(opts),
		newExtractCmd(),
		newDemoCmd(),
	)
	return cmd
}

func (o *rootOptions) load() (config.Config, error) {
	if strings.TrimSpace(o.configFile) == "" {
		return config.Load(), nil
	}
	return config.LoadFile(o.configFile)
}
