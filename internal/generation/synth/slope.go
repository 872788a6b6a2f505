package synth

import (
	"fmt"
	"strings"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

// slopeCategories are the two x positions every slope series connects.
var slopeCategories = []string{"일반가", "행사가"}

var brandColors = map[string]string{
	"스타벅스":  "#ef4444",
	"네스프레소": "#22c55e",
	"카누":    "#f97316",
	"커피빈":   "#a855f7",
	"폴바셋":   "#0ea5e9",
	"할리스":   "#9ca3af",
}

const unknownBrandColor = "#6b7280"

type slopeRow struct {
	name         string
	normal, sale float64
}

var sampleSlopeRows = []slopeRow{
	{"스타벅스", 790, 590},
	{"네스프레소", 850, 690},
	{"카누", 450, 320},
	{"커피빈", 700, 560},
	{"폴바셋", 820, 640},
	{"할리스", 600, 480},
}

// brandColor matches a series name against the brand table, exact first and
// then by containment so "스타벅스 하우스" still picks the brand color.
func brandColor(name string) string {
	if c, ok := brandColors[name]; ok {
		return c
	}
	for brand, c := range brandColors {
		if strings.Contains(name, brand) {
			return c
		}
	}
	return unknownBrandColor
}

// slopeRows keeps the rows that carry at least a before and an after value.
func slopeRows(data []domain.ExtractedSeries, markers []string) []slopeRow {
	var rows []slopeRow
	for i, s := range data {
		if len(s.Values) < 2 {
			continue
		}
		name := ""
		for _, l := range s.Labels {
			if !containsAnyOf(l, markers) {
				name = l
				break
			}
		}
		if name == "" {
			name = fmt.Sprintf("항목 %d", i+1)
		}
		rows = append(rows, slopeRow{name: name, normal: s.Values[0], sale: s.Values[1]})
	}
	return rows
}

func buildSlope(data []domain.ExtractedSeries, markers []string) obj {
	rows := slopeRows(data, markers)
	if len(rows) == 0 {
		rows = sampleSlopeRows
	}

	names := make([]string, len(rows))
	series := make([]obj, len(rows))
	for i, r := range rows {
		color := brandColor(r.name)
		names[i] = r.name
		series[i] = obj{
			"name":       r.name,
			"type":       "line",
			"symbol":     "circle",
			"symbolSize": 8,
			"data": []obj{
				{"value": r.normal, "label": obj{"show": false}},
				{"value": r.sale, "label": obj{"show": true, "position": "right", "formatter": "{c}", "color": color}},
			},
			"lineStyle": obj{"color": color, "width": 2, "type": "dotted"},
			"itemStyle": obj{"color": color},
			"emphasis":  obj{"focus": "series"},
		}
	}

	xAxis := categoryAxis(slopeCategories)
	xAxis["boundaryGap"] = false
	yAxis := valueAxis("가격")
	yAxis["scale"] = true

	spec := baseSpec()
	spec["tooltip"] = tooltip("axis")
	spec["legend"] = obj{
		"type":      "scroll",
		"orient":    "vertical",
		"right":     10,
		"top":       20,
		"data":      names,
		"textStyle": obj{"color": axisLabelColor},
	}
	spec["grid"] = obj{"left": 60, "right": 150, "top": 40, "bottom": 40, "containLabel": true}
	spec["xAxis"] = xAxis
	spec["yAxis"] = yAxis
	spec["series"] = series
	return spec
}

func containsAnyOf(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}
