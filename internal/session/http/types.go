package http

import (
	genhttp "github.com/jrkim-kr/echarts-ai-studio/internal/generation/http"
	pdomain "github.com/jrkim-kr/echarts-ai-studio/internal/projects/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/session/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/session/service"
)

// Handler bundles the dependencies for session endpoints.
type Handler struct {
	svc *service.SessionService
}

func New(svc *service.SessionService) *Handler {
	return &Handler{svc: svc}
}

type literalReq struct {
	Code string `json:"code"`
}

type selectProjectReq struct {
	ProjectID string `json:"project_id"`
}

// OutcomeView is the wire form of an accepted chart within a session.
type OutcomeView struct {
	Result        genhttp.ResultView `json:"result"`
	Chart         *pdomain.Chart     `json:"chart,omitempty"`
	Session       *domain.View       `json:"session"`
	PersistNotice string             `json:"persist_notice,omitempty"`
}

func newOutcomeView(o *service.Outcome) OutcomeView {
	return OutcomeView{
		Result:        genhttp.NewResultView(o.Result),
		Chart:         o.Chart,
		Session:       o.View,
		PersistNotice: o.PersistNotice,
	}
}
