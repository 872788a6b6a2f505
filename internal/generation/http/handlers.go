package http

import (
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/response"
)

func (h *Handler) generate(c *gin.Context) {
	req, err := BindRequest(c)
	if err != nil {
		WriteBindError(c, err)
		return
	}

	res, err := h.gen.Generate(c.Request.Context(), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"ok": true, "result": NewResultView(res)})
}

func (h *Handler) literal(c *gin.Context) {
	var body literalBody
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Code) == "" {
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.gen.LoadLiteral(c.Request.Context(), body.Code)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"ok": true, "result": NewResultView(res)})
}

func (h *Handler) normalize(c *gin.Context) {
	var body normalizeBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Config == nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	c.JSON(nethttp.StatusOK, gin.H{"ok": true, "config": response.Normalize(body.Config)})
}
