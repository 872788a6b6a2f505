package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrkim-kr/echarts-ai-studio/internal/logging"
	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
)

// WriteError maps project errors onto status codes.
func WriteError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrChartNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "chart not found"})
	case errors.Is(err, domain.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case domain.IsPermissionDenied(err):
		logging.New(c.Request.Context()).Error(op, err)
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "permission denied by project store"})
	default:
		logging.New(c.Request.Context()).Error(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
