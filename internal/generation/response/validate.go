// Package response turns raw model output into an accepted chart
// specification and prepares specifications for display.
package response

import (
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

var (
	// fencePattern matches opening and closing markdown code fences.
	fencePattern = regexp.MustCompile("```(?:json|JSON)?[ \\t]*\\r?\\n?")
	// objectPattern is the greedy fallback for an object surrounded by prose.
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// StripFences removes markdown code fences and surrounding whitespace.
func StripFences(s string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(s, ""))
}

// Parse reads model text as a chart document. It strips code fences, then
// falls back to the outermost {...} span when prose surrounds the object.
// Structural checks are limited to "object with series, xAxis or yAxis".
func Parse(raw string) (domain.Spec, error) {
	cleaned := StripFences(raw)
	v, err := Decode(cleaned)
	if err != nil {
		if m := objectPattern.FindString(cleaned); m != "" && m != cleaned {
			if inner, innerErr := Decode(m); innerErr == nil {
				v, err = inner, nil
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return AsSpec(v)
}

// Validate parses model text and applies the acceptance rule for generation
// results: the series list must not be empty.
func Validate(raw string) (domain.Spec, error) {
	spec, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := Accept(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// Accept rejects specifications that cannot be offered as a generation result.
func Accept(spec domain.Spec) error {
	if !spec.HasChartKeys() {
		return &domain.ValidationError{Reason: "none of series, xAxis or yAxis is present"}
	}
	if !spec.HasSeries() {
		return &domain.ValidationError{Reason: "series is empty"}
	}
	return nil
}

// AsSpec checks that a decoded value is a chart-shaped object.
func AsSpec(v any) (domain.Spec, error) {
	obj, ok := v.(map[string]any)
	if !ok || obj == nil {
		return nil, &domain.ValidationError{Reason: "top-level value is not an object"}
	}
	spec := domain.Spec(obj)
	if !spec.HasChartKeys() {
		return nil, &domain.ValidationError{Reason: "none of series, xAxis or yAxis is present"}
	}
	return spec, nil
}

// Decode parses exactly one JSON value and reports failures with a position.
func Decode(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, syntaxError(text, err, dec.InputOffset())
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		line, col := domain.PositionOf(text, int(dec.InputOffset()))
		return nil, &domain.ParseError{Line: line, Column: col, Msg: "unexpected content after JSON value"}
	}
	return v, nil
}

func syntaxError(text string, err error, offset int64) error {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		offset = se.Offset
	}
	if errors.Is(err, io.EOF) && strings.TrimSpace(text) == "" {
		return &domain.ParseError{Msg: "empty input"}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		offset = int64(len(text))
	}
	line, col := domain.PositionOf(text, int(offset))
	return &domain.ParseError{Line: line, Column: col, Msg: err.Error()}
}
