package http

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/composer"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

// WriteBindError answers a submission that could not be read.
func WriteBindError(c *gin.Context, err error) {
	status := nethttp.StatusBadRequest
	if errors.Is(err, composer.ErrImageTooLarge) {
		status = nethttp.StatusRequestEntityTooLarge
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}

// WriteError maps generation failures onto HTTP responses.
func WriteError(c *gin.Context, err error) {
	if pe, ok := domain.AsParseError(err); ok {
		c.JSON(nethttp.StatusUnprocessableEntity, gin.H{
			"ok":     false,
			"error":  pe.Error(),
			"kind":   "parse",
			"line":   pe.Line,
			"column": pe.Column,
		})
		return
	}

	var noData *domain.NoDataError
	switch {
	case errors.Is(err, domain.ErrEmptySubmission):
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": err.Error(), "kind": "empty"})
	case errors.As(err, &noData):
		c.JSON(nethttp.StatusUnprocessableEntity, gin.H{"ok": false, "error": domain.ErrNoData.Error(), "kind": "no_data", "example": noData.Example})
	case domain.IsValidation(err):
		c.JSON(nethttp.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error(), "kind": "validation"})
	case domain.IsModelUnavailable(err):
		c.JSON(nethttp.StatusBadGateway, gin.H{"ok": false, "error": err.Error(), "kind": "model"})
	default:
		c.JSON(nethttp.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
