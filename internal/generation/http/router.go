package http

import "github.com/gin-gonic/gin"

// Register attaches the stateless chart routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
	rg.POST("/literal", h.literal)
	rg.POST("/normalize", h.normalize)
}
