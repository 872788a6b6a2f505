package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:project_id", h.get)
	rg.PATCH("/:project_id", h.rename)
	rg.DELETE("/:project_id", h.delete)
	rg.DELETE("/:project_id/charts/:chart_id", h.deleteChart)
}
