package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"application-backend/internal/applications"
	"application-backend/internal/resumes"
	"application-backend/internal/services/health"
	"application-backend/internal/shared/config"
	"application-backend/internal/shared/metrics"
	"application-backend/internal/shared/server/middleware"
	"application-backend/internal/shared/server/respond"
	"application-backend/internal/shared/telemetry"
)

// Rate limit groups.
const (
	GroupParse  = "PARSE"
	GroupSubmit = "SUBMIT"
)

// RouterDeps holds the handlers mounted by NewRouter.
type RouterDeps struct {
	Config             config.Config
	ResumeHandler      *resumes.Handler
	ApplicationHandler *applications.Handler
	Health             *health.Service
	Limiter            *middleware.RateLimiter // optional
	TrustedPlatform    string                  // header carrying the client IP set by the hosting platform
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Routes are served both at the root and under /api.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	// Forwarding headers are honored only from listed proxies; with none
	// listed the client IP is the socket peer.
	if err := r.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		telemetry.Warn("router.trusted_proxies_invalid", map[string]any{"error": err})
		_ = r.SetTrustedProxies(nil)
	}
	r.TrustedPlatform = deps.TrustedPlatform

	rules := map[string]middleware.RateLimitRule{}
	if n := deps.Config.RateLimitPerMin; n > 0 {
		rules[GroupParse] = middleware.PerMinute(n)
		rules[GroupSubmit] = middleware.PerMinute(n)
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    rules,
			GroupFor: rateLimitGroup,
			Limiter:  deps.Limiter,
		}),
	)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, respond.CodeValidation, "Not found", nil)
	})

	register(r, deps)
	register(r.Group("/api"), deps)
	return r
}

func register(rg gin.IRoutes, deps RouterDeps) {
	rg.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"status": "ok"})
			return
		}
		respond.OK(c, deps.Health.Status())
	})
	rg.GET("/metrics", metrics.Handler())
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(rg)
	}
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.RegisterRoutes(rg)
	}
}

func rateLimitGroup(c *gin.Context) string {
	route := c.FullPath()
	switch {
	case strings.HasSuffix(route, "/parse-resume"):
		return GroupParse
	case strings.HasSuffix(route, "/submit-application"):
		return GroupSubmit
	default:
		return ""
	}
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
