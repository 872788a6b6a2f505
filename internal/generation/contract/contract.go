// Package contract builds the instruction payload sent to the chat model.
package contract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/composer"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/vocabulary"
)

const (
	Temperature = 0.3
	MaxTokens   = 2000
)

// Models names the text-only and vision-capable model variants of a provider.
type Models struct {
	Text   string
	Vision string
}

var OpenAIModels = Models{Text: "gpt-4o-mini", Vision: "gpt-4o"}

var GeminiModels = Models{Text: "gemini-2.5-flash-lite", Vision: "gemini-2.5-flash"}

// ImageMode says how an attached image should be used.
type ImageMode int

const (
	ImageNone ImageMode = iota
	ImageStyleReference
	ImageDataSource
)

// Request is everything the contract needs to know about one generation.
type Request struct {
	Prompt   string
	Image    *domain.Image
	Previous domain.Spec
}

// Payload is a provider-neutral chat request.
type Payload struct {
	Model       string
	System      string
	UserText    string
	Image       *domain.Image
	ImageText   string
	ImageMode   ImageMode
	Temperature float32
	MaxTokens   int
	JSONOnly    bool
}

// Builder assembles payloads from a vocabulary and a model table.
type Builder struct {
	vocab  *vocabulary.Vocabulary
	models Models
}

func NewBuilder(models Models, v *vocabulary.Vocabulary) *Builder {
	if v == nil {
		v = vocabulary.Default()
	}
	if models.Text == "" {
		models = OpenAIModels
	}
	if models.Vision == "" {
		models.Vision = models.Text
	}
	return &Builder{vocab: v, models: models}
}

func (b *Builder) Models() Models { return b.models }

// ImageModeFor decides whether an attached image is the data source or only a style hint.
func (b *Builder) ImageModeFor(prompt string, hasImage bool) ImageMode {
	if !hasImage {
		return ImageNone
	}
	if vocabulary.ContainsAny(prompt, b.vocab.ImageExtract) {
		return ImageDataSource
	}
	return ImageStyleReference
}

// WantsConnectedLines reports whether the prompt asks for points joined by lines.
func (b *Builder) WantsConnectedLines(prompt string) bool {
	return vocabulary.ContainsAny(prompt, b.vocab.ConnectLines)
}

// Build assembles the model request. Keyword rules only look at the
// requirement section so that pasted data cannot switch them on.
func (b *Builder) Build(req Request) Payload {
	requirement, _ := composer.Split(req.Prompt)
	mode := b.ImageModeFor(requirement, req.Image != nil)

	p := Payload{
		Model:       b.models.Text,
		System:      b.systemText(req, requirement, mode),
		UserText:    req.Prompt,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
		JSONOnly:    true,
		ImageMode:   mode,
	}
	if req.Image != nil {
		p.Model = b.models.Vision
		p.Image = req.Image
		p.ImageText = imageInstruction(mode)
	}
	return p
}

func (b *Builder) systemText(req Request, requirement string, mode ImageMode) string {
	var sb strings.Builder
	sb.WriteString(roleText)

	rules := []string{
		"Return exactly one JSON object. No markdown code fences, no prose before or after it.",
		"The object must be a valid Apache ECharts option with a non-empty \"series\" array.",
		"The user message may hold a \"" + composer.RequirementHeader + "\" section (chart type, style, features) and a \"" +
			composer.DataHeader + "\" section (the values to plot). Take chart type and styling from the requirement " +
			"section and take every label and value from the data section. Never invent values.",
	}
	switch mode {
	case ImageDataSource:
		rules = append(rules, "The user explicitly asked to read the data off the attached image. "+
			"Extract the numbers, labels and categories shown in the image and plot those.")
	case ImageStyleReference:
		rules = append(rules, "An image is attached as a style reference only. Use it for chart type, layout, "+
			"colors and axis configuration. Do not copy any data values from it; all values come from the text.")
	default:
		rules = append(rules, "Source all data values from the text of the user message.")
	}
	if b.WantsConnectedLines(requirement) {
		rules = append(rules, connectLinesRule)
	}
	rules = append(rules,
		"Pick the chart type that fits the data: bar for comparing categories, line for trends over time, "+
			"pie for shares of a total, scatter or bubble for relationships, slope for two values per item such as normal and sale price.",
		"Include axis labels, a tooltip and readable styling. Use Korean labels when the user writes in Korean.",
		"Set \"backgroundColor\" to \"transparent\".",
		"Use the palette #5470c6, #91cc75, #fac858, #ee6666, #73c0de, #3ba272.",
	)

	sb.WriteString("\n\nRules:\n")
	for i, r := range rules {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(r)
		sb.WriteString("\n")
	}

	sb.WriteString("\nReference shape:\n")
	sb.WriteString(exampleShape)

	if len(req.Previous) > 0 {
		if prev, err := json.Marshal(req.Previous); err == nil {
			sb.WriteString("\n\nThe user is refining an existing chart. Modify this configuration instead of starting over, ")
			sb.WriteString("keeping everything the request does not ask to change:\n")
			sb.Write(prev)
		}
	}

	sb.WriteString("\n\nReturn only the JSON object.")
	return sb.String()
}

func imageInstruction(mode ImageMode) string {
	if mode == ImageDataSource {
		return "이 이미지에 표시된 숫자, 라벨, 카테고리를 정확히 읽어 차트 데이터로 사용하세요. 차트 스타일과 레이아웃도 참고하세요."
	}
	return "이 이미지는 차트 유형, 스타일, 레이아웃 참고용입니다. 이미지의 데이터 값은 사용하지 말고 텍스트로 제공된 데이터만 사용하세요."
}

const roleText = "You are a data visualization assistant that writes Apache ECharts option objects. " +
	"Read the user's request and data and answer with a complete chart configuration in JSON."

const connectLinesRule = "The user wants points connected by lines. Group the points by their shared category " +
	"(for example the brand) and emit one series per group with \"type\": \"line\", not \"scatter\". " +
	"Show markers with \"symbol\", give \"symbolSize\" as an array with one entry per data point, " +
	"write each point as [x, y] and sort the points of every series by x."

const exampleShape = `{
  "backgroundColor": "transparent",
  "tooltip": {"trigger": "axis", "backgroundColor": "rgba(255, 255, 255, 0.95)", "borderColor": "#e5e7eb", "borderWidth": 1, "textStyle": {"color": "#1a1a1a"}},
  "xAxis": {"type": "category", "data": ["A", "B", "C"], "axisLine": {"lineStyle": {"color": "#d1d5db"}}, "axisLabel": {"color": "#6b7280", "fontSize": 12}},
  "yAxis": {"type": "value", "name": "값", "axisLabel": {"color": "#6b7280", "fontSize": 11}, "splitLine": {"lineStyle": {"color": "#e5e7eb", "type": "dashed"}}},
  "series": [{"type": "bar", "data": [120, 200, 150], "itemStyle": {"color": "#5470c6"}}]
}`
