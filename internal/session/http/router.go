package http

import "github.com/gin-gonic/gin"

// Register attaches session routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("/:sid", h.state)
	rg.POST("/:sid/generate", h.generate)
	rg.POST("/:sid/literal", h.literal)
	rg.POST("/:sid/new-project", h.newProject)
	rg.PUT("/:sid/project", h.selectProject)
}
