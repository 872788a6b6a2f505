package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jrkim-kr/echarts-ai-studio/internal/auth"
	genhttp "github.com/jrkim-kr/echarts-ai-studio/internal/generation/http"
	"github.com/jrkim-kr/echarts-ai-studio/internal/logging"
	pdomain "github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
	projhttp "github.com/jrkim-kr/echarts-ai-studio/internal/projects/http"
	"github.com/jrkim-kr/echarts-ai-studio/internal/session/domain"
)

func (h *Handler) create(c *gin.Context) {
	v, err := h.svc.Create(c.Request.Context(), auth.UserFirebaseUID(c))
	if err != nil {
		writeError(c, "create_session", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": v})
}

func (h *Handler) state(c *gin.Context) {
	v, err := h.svc.State(c.Request.Context(), c.Param("sid"))
	if err != nil {
		writeError(c, "session_state", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": v})
}

func (h *Handler) generate(c *gin.Context) {
	req, err := genhttp.BindRequest(c)
	if err != nil {
		genhttp.WriteBindError(c, err)
		return
	}

	out, err := h.svc.Generate(c.Request.Context(), c.Param("sid"), req)
	if err != nil {
		writeError(c, "session_generate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "outcome": newOutcomeView(out)})
}

func (h *Handler) literal(c *gin.Context) {
	var req literalReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	out, err := h.svc.LoadLiteral(c.Request.Context(), c.Param("sid"), req.Code)
	if err != nil {
		writeError(c, "session_literal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "outcome": newOutcomeView(out)})
}

func (h *Handler) newProject(c *gin.Context) {
	v, err := h.svc.NewProject(c.Request.Context(), c.Param("sid"))
	if err != nil {
		writeError(c, "session_new_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": v})
}

func (h *Handler) selectProject(c *gin.Context) {
	var req selectProjectReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProjectID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	v, err := h.svc.SelectProject(c.Request.Context(), c.Param("sid"), req.ProjectID)
	if err != nil {
		writeError(c, "session_select_project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": v})
}

func writeError(c *gin.Context, op string, err error) {
	var pe *pdomain.PersistenceError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, pdomain.ErrProjectNotFound), errors.Is(err, pdomain.ErrChartNotFound), errors.As(err, &pe):
		projhttp.WriteError(c, op, err)
	default:
		logging.New(c.Request.Context()).Warnf(op, "request failed: %v", err)
		genhttp.WriteError(c, err)
	}
}
