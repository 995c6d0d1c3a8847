package bootstrap

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analysis"
	"resume-analyzer/internal/extract"
	"resume-analyzer/internal/resumes"
	"resume-analyzer/internal/services/health"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/server"
	"resume-analyzer/internal/shared/server/middleware"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	Mode           analysis.Mode
	Provider       analysis.Provider
	ResumesService *resumes.Service
	ResumesHandler *resumes.Handler
	Health         *health.Service
}

// Build resolves the analysis provider and wires services into the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, mode := analysis.New(ctx, AnalysisConfig(cfg.Analysis))

	svc := &resumes.Service{
		Extractor: extract.NewPDFExtractor(),
		Provider:  provider,
	}
	app := &App{
		Config:         cfg,
		Mode:           mode,
		Provider:       provider,
		ResumesService: svc,
		ResumesHandler: resumes.NewHandler(svc, cfg.MaxUploadBytes),
		Health:         health.NewService(mode),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:  app.Config,
		Resumes: app.ResumesHandler,
		Health:  app.Health,
		Limiter: middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// AnalysisConfig maps the process configuration onto provider selection.
func AnalysisConfig(a config.AnalysisConfig) analysis.Config {
	return analysis.Config{
		Provider:       a.Provider,
		GeminiAPIKey:   a.GeminiAPIKey,
		GeminiModel:    a.GeminiModel,
		GeminiBaseURL:  a.GeminiBaseURL,
		OllamaHost:     a.OllamaHost,
		OllamaModel:    a.OllamaModel,
		StubDelay:      a.Delay,
		AttemptTimeout: a.Timeout,
		MaxAttempts:    a.MaxAttempts,
		RetryBaseDelay: a.RetryBaseDelay,
	}
}
