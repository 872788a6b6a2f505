package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrkim-kr/echarts-ai-studio/internal/projects/service"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}

	p, err := h.svc.Create(c.Request.Context(), req.Name)
	if err != nil {
		WriteError(c, "create_project", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > service.MaxListLimit {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid limit"})
			return
		}
		limit = n
	}

	items, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		WriteError(c, "list_projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		WriteError(c, "get_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) rename(c *gin.Context) {
	var req renameReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Rename(c.Request.Context(), c.Param("project_id"), req.Name)
	if err != nil {
		WriteError(c, "rename_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("project_id")); err != nil {
		WriteError(c, "delete_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) deleteChart(c *gin.Context) {
	p, err := h.svc.DeleteChart(c.Request.Context(), c.Param("project_id"), c.Param("chart_id"))
	if err != nil {
		WriteError(c, "delete_chart", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
