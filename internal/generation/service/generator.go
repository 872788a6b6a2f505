// Package service runs the generation pipeline: compose the prompt, ask the
// model, validate its answer, and fall back to the heuristic synthesizer
// when the model cannot be reached.
package service

import (
	"context"
	"errors"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/composer"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/contract"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/extract"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/literal"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/llm"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/response"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/synth"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/vocabulary"
	"github.com/jrkim-kr/echarts-ai-studio/internal/logging"
)

// User-facing notices attached to fallback results.
const (
	NoticeNotConfigured = "AI 모델 API 키가 설정되지 않아 기본 차트 생성 로직을 사용했습니다. 설정에서 API 키를 입력하면 AI 생성을 사용할 수 있습니다."
	NoticeQuota         = "AI 모델 예산/쿼터가 초과되어 기본 차트 생성 로직을 사용했습니다. 결제 설정에서 사용 한도를 확인해주세요."
	NoticeUnavailable   = "AI 모델 호출에 실패하여 기본 차트 생성 로직을 사용했습니다."
)

// UsageRecorder stores token usage for reporting. Failures are logged, never returned.
type UsageRecorder interface {
	Record(ctx context.Context, u domain.Usage) error
}

// Request is one submission from the prompt form.
type Request struct {
	Requirement string
	Data        string
	Image       *domain.Image
	// Previous is the working chart; it is only forwarded when the
	// requirement asks to refine it.
	Previous domain.Spec
}

// Result is an accepted chart specification and how it was produced.
type Result struct {
	Spec      domain.Spec
	Display   domain.Spec
	Source    domain.Source
	Archetype domain.Archetype
	Intent    domain.EditIntent
	Prompt    string
	Notice    string
	Usage     *domain.Usage
}

type Generator struct {
	client   llm.Client
	builder  *contract.Builder
	synth    *synth.Synthesizer
	vocab    *vocabulary.Vocabulary
	metrics  *Metrics
	usage    UsageRecorder
	keyField string
}

type Option func(*Generator)

// WithModel enables the model path. Without it every request takes the
// heuristic path with NoticeNotConfigured.
func WithModel(client llm.Client, builder *contract.Builder) Option {
	return func(g *Generator) {
		g.client = client
		g.builder = builder
	}
}

// WithMissingCredential names the credential whose absence disabled the model path.
func WithMissingCredential(field string) Option {
	return func(g *Generator) { g.keyField = field }
}

func WithMetrics(m *Metrics) Option {
	return func(g *Generator) { g.metrics = m }
}

func WithUsageRecorder(r UsageRecorder) Option {
	return func(g *Generator) { g.usage = r }
}

func WithVocabulary(v *vocabulary.Vocabulary) Option {
	return func(g *Generator) { g.vocab = v }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{keyField: "OPENAI_API_KEY"}
	for _, opt := range opts {
		opt(g)
	}
	if g.vocab == nil {
		g.vocab = vocabulary.Default()
	}
	if g.client != nil && g.builder == nil {
		g.builder = contract.NewBuilder(contract.OpenAIModels, g.vocab)
	}
	g.synth = synth.New(g.vocab)
	return g
}

// ModelConfigured reports whether the model path is available.
func (g *Generator) ModelConfigured() bool { return g.client != nil }

// Generate produces a chart for req. An empty submission fails before any
// network call. Model unavailability falls back to the heuristic path;
// parse and validation failures of the model answer are returned as is.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	logger := logging.New(ctx)

	prompt, err := composer.Compose(req.Requirement, req.Data, req.Image != nil)
	if err != nil {
		g.metrics.recordGeneration("none", "rejected")
		return nil, err
	}
	intent := composer.ClassifyIntent(req.Requirement, g.vocab)

	if g.client == nil {
		logger.Warn("generate", (&domain.ConfigurationError{Field: g.keyField}).Error())
		g.metrics.recordFallback("not_configured")
		return g.fallback(prompt, intent, NoticeNotConfigured)
	}

	creq := contract.Request{Prompt: prompt, Image: req.Image}
	if intent == domain.IntentRefine && len(req.Previous) > 0 {
		creq.Previous = req.Previous
	}
	payload := g.builder.Build(creq)

	completion, err := g.client.Complete(ctx, payload)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil, err
		}
		notice, reason := NoticeUnavailable, "unavailable"
		if domain.IsQuota(err) {
			notice, reason = NoticeQuota, "quota"
		}
		logger.Warnf("generate", "model=%s fallback=%s error=%v", payload.Model, reason, err)
		g.metrics.recordFallback(reason)
		return g.fallback(prompt, intent, notice)
	}

	usage := contract.Estimate(completion.Usage)
	if usage.Model == "" {
		usage.Model = payload.Model
	}
	usage.HasImage = req.Image != nil
	g.metrics.recordTokens(usage.Model, usage.PromptTokens, usage.CompletionTokens)
	if g.usage != nil {
		if err := g.usage.Record(ctx, usage); err != nil {
			logger.Error("record_usage", err)
		}
	}
	logger.Infof("generate", "model=%s prompt_tokens=%d completion_tokens=%d cost_usd=%.6f cost_krw=%.2f",
		usage.Model, usage.PromptTokens, usage.CompletionTokens, usage.TotalCostUSD, usage.TotalCostKRW)

	spec, err := response.Validate(completion.Content)
	if err != nil {
		g.metrics.recordGeneration(string(domain.SourceModel), "invalid")
		logger.Error("validate_response", err)
		return nil, err
	}
	g.metrics.recordGeneration(string(domain.SourceModel), "ok")
	return &Result{
		Spec:    spec,
		Display: response.Normalize(spec),
		Source:  domain.SourceModel,
		Intent:  intent,
		Prompt:  prompt,
		Usage:   &usage,
	}, nil
}

func (g *Generator) fallback(prompt string, intent domain.EditIntent, notice string) (*Result, error) {
	data := extract.Extract(prompt)
	spec, archetype, err := g.synth.Synthesize(prompt, data)
	if err != nil {
		g.metrics.recordGeneration(string(domain.SourceFallback), "no_data")
		return nil, err
	}
	g.metrics.recordGeneration(string(domain.SourceFallback), "ok")
	return &Result{
		Spec:      spec,
		Display:   response.Normalize(spec),
		Source:    domain.SourceFallback,
		Archetype: archetype,
		Intent:    intent,
		Prompt:    prompt,
		Notice:    notice,
	}, nil
}

// LoadLiteral accepts a pasted specification. It bypasses the model and
// produces a result with an empty prompt.
func (g *Generator) LoadLiteral(ctx context.Context, code string) (*Result, error) {
	spec, err := literal.Load(code)
	if err == nil {
		err = response.Accept(spec)
	}
	if err != nil {
		g.metrics.recordGeneration(string(domain.SourceLiteral), "invalid")
		logging.New(ctx).Error("load_literal", err)
		return nil, err
	}
	g.metrics.recordGeneration(string(domain.SourceLiteral), "ok")
	return &Result{
		Spec:    spec,
		Display: response.Normalize(spec),
		Source:  domain.SourceLiteral,
	}, nil
}
