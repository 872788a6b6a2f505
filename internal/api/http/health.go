package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status       string            `json:"status"`
	Timestamp    time.Time         `json:"timestamp"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Model        string            `json:"model"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Dependency is a backing service reported on /health. A nil Ping means
// the dependency is not configured.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthHandler struct {
	serviceName     string
	version         string
	modelConfigured bool
	deps            []Dependency
}

func NewHealthHandler(serviceName, version string, modelConfigured bool, deps ...Dependency) *HealthHandler {
	return &HealthHandler{
		serviceName:     serviceName,
		version:         version,
		modelConfigured: modelConfigured,
		deps:            deps,
	}
}

// HealthCheck always answers 200; dependency state is informational.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	statuses := make(map[string]string, len(h.deps))
	for _, d := range h.deps {
		if d.Ping == nil {
			statuses[d.Name] = "disabled"
			continue
		}
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		if err := d.Ping(pingCtx); err != nil {
			statuses[d.Name] = "down"
		} else {
			statuses[d.Name] = "up"
		}
		cancel()
	}

	model := "heuristic-only"
	if h.modelConfigured {
		model = "configured"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().UTC(),
		Service:      h.serviceName,
		Version:      h.version,
		Model:        model,
		Dependencies: statuses,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
