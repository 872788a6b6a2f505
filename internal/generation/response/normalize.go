package response

import "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"

const (
	titleTop         = 10.0
	legendBottom     = 10.0
	gridLeft         = 80.0
	gridLeftBase     = 60.0
	gridRight        = 60.0
	gridTop          = 40.0
	gridTopTitled    = 60.0
	gridBottom       = 40.0
	gridBottomLegend = 80.0
	axisNameGap      = 40.0
	axisNamePadding  = 20.0
	axisLabelPadding = 20.0
)

// Normalize returns a display-ready copy of spec. Titles are centered, the
// legend moves to the bottom unless a bottom offset was given, and grid
// margins grow to fit the title, legend and y-axis name. Applying it to its
// own output changes nothing.
func Normalize(spec domain.Spec) domain.Spec {
	s := spec.Clone()
	if s == nil {
		return nil
	}

	for _, t := range domain.Objects(s["title"]) {
		t["left"] = "center"
		t["textAlign"] = "center"
		if top, ok := domain.Number(t["top"]); !isSet(t["top"]) || (ok && top < titleTop) {
			t["top"] = titleTop
		}
	}

	for _, l := range domain.Objects(s["legend"]) {
		if !isSet(l["bottom"]) {
			l["bottom"] = legendBottom
			delete(l, "top")
		}
		if !isSet(l["left"]) && !isSet(l["right"]) {
			l["left"] = "center"
		}
	}

	grids := domain.Objects(s["grid"])
	if len(grids) == 0 {
		g := map[string]any{}
		s["grid"] = g
		grids = append(grids, g)
	}
	hasTitle, hasLegend := titled(s), legendEntries(s)
	yAxis, hasY := s.YAxis()
	for _, g := range grids {
		if hasY && isSet(yAxis["axisLabel"]) {
			need := leftMarginFor(yAxis)
			switch cur, ok := domain.Number(g["left"]); {
			case ok:
				g["left"] = max(cur, need)
			case !isSet(g["left"]):
				g["left"] = need
			}
		} else if !isSet(g["left"]) {
			g["left"] = gridLeft
		}
		if !isSet(g["top"]) {
			g["top"] = pick(hasTitle, gridTopTitled, gridTop)
		}
		if !isSet(g["bottom"]) {
			g["bottom"] = pick(hasLegend, gridBottomLegend, gridBottom)
		}
		if !isSet(g["right"]) {
			g["right"] = gridRight
		}
		g["containLabel"] = true
	}
	return s
}

// leftMarginFor is the room a y axis needs for its labels and optional name.
func leftMarginFor(y map[string]any) float64 {
	need := gridLeftBase + axisLabelPadding
	if name, _ := y["name"].(string); name != "" {
		gap, ok := domain.Number(y["nameGap"])
		if !ok {
			gap = axisNameGap
		}
		need += gap + axisNamePadding
	}
	return max(need, gridLeft)
}

func titled(s domain.Spec) bool {
	for _, t := range domain.Objects(s["title"]) {
		if text, _ := t["text"].(string); text != "" {
			return true
		}
	}
	return false
}

func legendEntries(s domain.Spec) bool {
	for _, l := range domain.Objects(s["legend"]) {
		if data, ok := l["data"].([]any); ok && len(data) > 0 {
			return true
		}
	}
	return false
}

func isSet(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
