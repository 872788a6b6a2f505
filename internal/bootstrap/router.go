package bootstrap

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/jrkim-kr/echarts-ai-studio/internal/api/http"
	"github.com/jrkim-kr/echarts-ai-studio/internal/api/http/middleware"
	authmw "github.com/jrkim-kr/echarts-ai-studio/internal/auth/middleware"
	genhttp "github.com/jrkim-kr/echarts-ai-studio/internal/generation/http"
	gensvc "github.com/jrkim-kr/echarts-ai-studio/internal/generation/service"
	projhttp "github.com/jrkim-kr/echarts-ai-studio/internal/projects/http"
	projsvc "github.com/jrkim-kr/echarts-ai-studio/internal/projects/service"
	sesshttp "github.com/jrkim-kr/echarts-ai-studio/internal/session/http"
	sesssvc "github.com/jrkim-kr/echarts-ai-studio/internal/session/service"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	CORSOrigins  []string
	Generator    *gensvc.Generator
	Projects     *projsvc.ProjectService
	Sessions     *sesssvc.SessionService
	Dependencies []httpapi.Dependency
	Gatherer     prometheus.Gatherer

	// Verifier enables Firebase ID token checks on /api/v1. With
	// AuthRequired unset, anonymous requests are still accepted.
	Verifier     authmw.TokenVerifier
	AuthRequired bool
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Generator.ModelConfigured(), dep.Dependencies...)
	healthHandler.RegisterRoutes(r)

	if dep.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(dep.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	if dep.Verifier != nil {
		if dep.AuthRequired {
			api.Use(authmw.FirebaseAuthMiddleware(dep.Verifier))
		} else {
			api.Use(authmw.OptionalFirebaseAuth(dep.Verifier))
		}
	}

	genhttp.New(dep.Generator).Register(api.Group("/charts"))
	sesshttp.New(dep.Sessions).Register(api.Group("/sessions"))
	projhttp.New(dep.Projects).Register(api.Group("/projects"))

	return r
}

// corsConfig allows the configured dashboard origins. An empty list or "*"
// opens the API to any origin without credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
