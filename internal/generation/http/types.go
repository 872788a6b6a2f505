package http

import (
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/service"
)

// Handler bundles the dependencies for the stateless chart endpoints.
type Handler struct {
	gen *service.Generator
}

func New(gen *service.Generator) *Handler {
	return &Handler{gen: gen}
}

// GenerateBody is the JSON form of a prompt submission.
type GenerateBody struct {
	Requirement string      `json:"requirement"`
	Data        string      `json:"data"`
	ImageBase64 string      `json:"image_base64"`
	ImageMIME   string      `json:"image_mime"`
	Previous    domain.Spec `json:"previous"`
}

type literalBody struct {
	Code string `json:"code"`
}

type normalizeBody struct {
	Config domain.Spec `json:"config"`
}

// ResultView is the wire form of a generation result.
type ResultView struct {
	ChartConfig   domain.Spec   `json:"chart_config"`
	DisplayConfig domain.Spec   `json:"display_config"`
	Source        domain.Source `json:"source"`
	Archetype     string        `json:"archetype,omitempty"`
	Prompt        string        `json:"prompt"`
	Notice        string        `json:"notice,omitempty"`
	Usage         *domain.Usage `json:"usage,omitempty"`
}

func NewResultView(r *service.Result) ResultView {
	v := ResultView{
		ChartConfig:   r.Spec,
		DisplayConfig: r.Display,
		Source:        r.Source,
		Prompt:        r.Prompt,
		Notice:        r.Notice,
		Usage:         r.Usage,
	}
	if r.Archetype != domain.ArchetypeNone {
		v.Archetype = r.Archetype.String()
	}
	return v
}
