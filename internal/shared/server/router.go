package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/resumes"
	"resume-analyzer/internal/services/health"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
)

const (
	rateGroupDefault = "DEFAULT"
	rateGroupUpload  = "UPLOAD"
)

// RouterDeps carries the handlers the router mounts.
type RouterDeps struct {
	Config  config.Config
	Resumes *resumes.Handler
	Health  *health.Service
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})

	limited := api.Group("")
	if rules := rateLimitRules(deps.Config.RateLimit); len(rules) > 0 {
		limited.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules:        rules,
			DefaultGroup: rateGroupDefault,
			GroupFor:     rateGroupFor,
			Limiter:      deps.Limiter,
		}))
	}
	deps.Resumes.RegisterRoutes(limited)

	return r
}

// Uploads run extraction and analysis, so they get a tighter bucket than reads.
func rateLimitRules(rl config.RateLimit) map[string]middleware.RateLimitRule {
	if rl.RPS <= 0 || rl.Burst <= 0 {
		return nil
	}
	uploadBurst := rl.Burst / 2
	if uploadBurst < 1 {
		uploadBurst = 1
	}
	return map[string]middleware.RateLimitRule{
		rateGroupDefault: {Rate: rl.RPS * 5, Burst: rl.Burst * 2},
		rateGroupUpload:  {Rate: rl.RPS, Burst: uploadBurst},
	}
}

func rateGroupFor(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && strings.HasPrefix(c.Request.URL.Path, "/api/v1/resumes/") {
		return rateGroupUpload
	}
	return rateGroupDefault
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
