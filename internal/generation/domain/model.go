package domain

import "fmt"

// ExtractedSeries is one row recovered by the heuristic extractor.
// Labels and Values line up positionally only when the row was delimited.
type ExtractedSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Archetype is a chart shape the fallback synthesizer can build.
type Archetype int

const (
	ArchetypeNone Archetype = iota
	ArchetypeBar
	ArchetypeLine
	ArchetypePie
	ArchetypeBubble
	ArchetypeSlope
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeBar:
		return "bar"
	case ArchetypeLine:
		return "line"
	case ArchetypePie:
		return "pie"
	case ArchetypeBubble:
		return "bubble"
	case ArchetypeSlope:
		return "slope"
	default:
		return "none"
	}
}

// EditIntent tells whether a prompt asks for a new chart or a change to the current one.
type EditIntent int

const (
	IntentNew EditIntent = iota
	IntentRefine
)

func (i EditIntent) String() string {
	if i == IntentRefine {
		return "refine"
	}
	return "new"
}

// Image is a reference image already encoded for transport.
type Image struct {
	MIMEType string
	Base64   string
}

// DataURL renders the image as an inline data URL.
func (i Image) DataURL() string {
	mime := i.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, i.Base64)
}

// Source tells which path produced a generation result.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
	SourceLiteral  Source = "literal"
)

// Usage is the token accounting reported by the model provider.
type Usage struct {
	Model            string  `json:"model"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	InputCostUSD     float64 `json:"input_cost_usd"`
	OutputCostUSD    float64 `json:"output_cost_usd"`
	TotalCostUSD     float64 `json:"total_cost_usd"`
	TotalCostKRW     float64 `json:"total_cost_krw"`
	HasImage         bool    `json:"has_image"`
}
