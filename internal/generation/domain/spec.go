package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Spec is a chart specification in the renderer's option format.
// The pipeline only inspects a handful of fields through the accessors
// below; every other key is carried through untouched.
type Spec map[string]any

// Canonical re-encodes v through JSON so that nested values use only
// map[string]any, []any, float64, string, bool and nil.
func Canonical(v any) (Spec, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode spec: %w", err)
	}
	var out Spec
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	return out, nil
}

// Series returns the series list, or nil when it is absent or not a list.
func (s Spec) Series() []any {
	if v, ok := s["series"].([]any); ok {
		return v
	}
	// a single series object is accepted by the renderer
	if m, ok := s["series"].(map[string]any); ok {
		return []any{m}
	}
	return nil
}

// HasSeries reports whether the spec carries at least one series.
func (s Spec) HasSeries() bool {
	return len(s.Series()) > 0
}

// HasChartKeys reports whether any of series, xAxis or yAxis is present.
func (s Spec) HasChartKeys() bool {
	for _, k := range []string{"series", "xAxis", "yAxis"} {
		if v, ok := s[k]; ok && v != nil {
			return true
		}
	}
	return false
}

func (s Spec) Version() (int, bool) {
	n, ok := Number(s["version"])
	if !ok || n < 1 || n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}

func (s Spec) SetVersion(v int) {
	s["version"] = v
}

// Title returns the first title object (title may be an object or a list).
func (s Spec) Title() (map[string]any, bool) { return FirstObject(s["title"]) }

// Legend returns the first legend object.
func (s Spec) Legend() (map[string]any, bool) { return FirstObject(s["legend"]) }

// YAxis returns the first y axis.
func (s Spec) YAxis() (map[string]any, bool) { return FirstObject(s["yAxis"]) }

// XAxis returns the first x axis.
func (s Spec) XAxis() (map[string]any, bool) { return FirstObject(s["xAxis"]) }

// Clone returns a deep copy. Values that are not JSON-shaped are copied by reference.
func (s Spec) Clone() Spec {
	if s == nil {
		return nil
	}
	return cloneValue(map[string]any(s)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Spec:
		return Spec(cloneValue(map[string]any(t)).(map[string]any))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// FirstObject returns v when it is an object, or its first object element when it is a list.
func FirstObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Spec:
		return t, true
	case []any:
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				return m, true
			}
		}
	}
	return nil, false
}

// Objects returns every object found at v (v itself or the objects in a list).
func Objects(v any) []map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}
	case []any:
		var out []map[string]any
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// Number converts the numeric kinds a decoded document may hold.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
