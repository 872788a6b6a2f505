// Package literal loads chart options that users paste in directly, either
// as JSON or as a JavaScript object literal.
package literal

import (
	"strings"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/response"
)

// Load reads text as a chart specification. Strict JSON is tried first; if
// that fails the object-literal reader takes over and its error, with line
// and column, is what the caller sees.
func Load(text string) (domain.Spec, error) {
	src := strings.TrimSpace(response.StripFences(text))
	if src == "" {
		return nil, &domain.ParseError{Msg: "empty input"}
	}

	v, err := response.Decode(src)
	if err != nil {
		if v, err = Parse(src); err != nil {
			return nil, err
		}
	}

	spec, err := response.AsSpec(v)
	if err != nil {
		return nil, &domain.ValidationError{Reason: "not a valid chart specification"}
	}
	return domain.Canonical(spec)
}
