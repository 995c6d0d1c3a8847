package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderAuto   = "auto"
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderStub   = "stub"
)

// Config holds application configuration.
type Config struct {
	Port            string         `yaml:"port"`
	Env             string         `yaml:"env"`
	CORSAllowOrigin []string       `yaml:"corsAllowOrigins"`
	MaxUploadBytes  int64          `yaml:"maxUploadBytes"`
	RateLimit       RateLimit      `yaml:"rateLimit"`
	Analysis        AnalysisConfig `yaml:"analysis"`
}

// RateLimit configures the per-client token bucket.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// AnalysisConfig selects and tunes the analysis provider.
type AnalysisConfig struct {
	Provider       string        `yaml:"provider"`
	GeminiAPIKey   string        `yaml:"-"`
	GeminiModel    string        `yaml:"geminiModel"`
	GeminiBaseURL  string        `yaml:"geminiBaseUrl"`
	OllamaHost     string        `yaml:"ollamaHost"`
	OllamaModel    string        `yaml:"ollamaModel"`
	Delay          time.Duration `yaml:"delay"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxAttempts    int           `yaml:"maxAttempts"`
	RetryBaseDelay time.Duration `yaml:"retryBaseDelay"`
}

// Defaults returns the built-in configuration used beneath file and env values.
func Defaults() Config {
	return Config{
		Port:            "8080",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		MaxUploadBytes:  10 << 20,
		RateLimit: RateLimit{
			RPS:   2,
			Burst: 10,
		},
		Analysis: AnalysisConfig{
			Provider:       ProviderAuto,
			GeminiModel:    "gemini-2.5-flash",
			Delay:          2 * time.Second,
			Timeout:        60 * time.Second,
			MaxAttempts:    3,
			RetryBaseDelay: 300 * time.Millisecond,
		},
	}
}

// Load reads configuration from environment variables with sensible defaults.
// CONFIG_FILE, when set, names a YAML file whose values sit beneath env.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env")

	cfg, err := LoadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: ignoring CONFIG_FILE: %v\n", err)
		cfg = FromEnv(Defaults())
	}
	return cfg
}

// LoadFile layers the YAML file at path (if any) over Defaults, then env over both.
func LoadFile(path string) (Config, error) {
	base := Defaults()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &base); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	cfg := FromEnv(base)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv overrides base with any environment variables that are set.
func FromEnv(base Config) Config {
	cfg := base
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = normalizeEnv(getEnv("ENV", cfg.Env))
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		cfg.CORSAllowOrigin = splitAndTrim(raw)
	}
	cfg.MaxUploadBytes = getEnvInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.RateLimit.RPS = getEnvFloat("RATE_LIMIT_RPS", cfg.RateLimit.RPS)
	cfg.RateLimit.Burst = int(getEnvInt64("RATE_LIMIT_BURST", int64(cfg.RateLimit.Burst)))

	a := &cfg.Analysis
	a.Provider = normalizeProvider(getEnv("ANALYSIS_PROVIDER", a.Provider))
	a.GeminiAPIKey = getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", a.GeminiAPIKey))
	a.GeminiModel = getEnv("GEMINI_MODEL", a.GeminiModel)
	a.GeminiBaseURL = getEnv("GEMINI_BASE_URL", a.GeminiBaseURL)
	a.OllamaHost = getEnv("OLLAMA_HOST", a.OllamaHost)
	a.OllamaModel = getEnv("OLLAMA_MODEL", a.OllamaModel)
	a.Delay = getEnvMillis("ANALYSIS_DELAY_MS", a.Delay)
	a.Timeout = getEnvSeconds("LLM_TIMEOUT_SECONDS", a.Timeout)
	a.MaxAttempts = int(getEnvInt64("LLM_MAX_ATTEMPTS", int64(a.MaxAttempts)))
	a.RetryBaseDelay = getEnvMillis("LLM_RETRY_BASE_DELAY_MS", a.RetryBaseDelay)
	return cfg
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	var errs []error
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("maxUploadBytes must be positive"))
	}
	if c.Analysis.MaxAttempts < 1 {
		errs = append(errs, errors.New("analysis.maxAttempts must be at least 1"))
	}
	if c.Analysis.Delay < 0 || c.Analysis.Timeout < 0 || c.Analysis.RetryBaseDelay < 0 {
		errs = append(errs, errors.New("analysis durations must not be negative"))
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("rateLimit values must not be negative"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getEnvMillis(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return def
	}
	return time.Duration(parsed) * time.Millisecond
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderGemini:
		return ProviderGemini
	case ProviderOllama:
		return ProviderOllama
	case ProviderStub, "demo", "none":
		return ProviderStub
	default:
		return ProviderAuto
	}
}
