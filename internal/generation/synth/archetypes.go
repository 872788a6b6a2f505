package synth

import "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"

// Placeholder data used when an archetype was requested by keyword but the
// prompt carried nothing the extractor could read.
var (
	placeholderBar = domain.ExtractedSeries{
		Labels: []string{"제품 A", "제품 B", "제품 C", "제품 D", "제품 E"},
		Values: []float64{120, 200, 150, 80, 70},
	}
	placeholderPie = domain.ExtractedSeries{
		Labels: []string{"카테고리 A", "카테고리 B", "카테고리 C", "카테고리 D", "카테고리 E"},
		Values: []float64{1048, 735, 580, 484, 300},
	}
	placeholderLine = domain.ExtractedSeries{
		Labels: []string{"1월", "2월", "3월", "4월", "5월", "6월"},
		Values: []float64{120, 132, 101, 134, 90, 230},
	}
)

type bubblePoint struct {
	name    string
	x, y, z float64
}

var placeholderBubbles = []bubblePoint{
	{"제품 A", 28, 4.2, 24},
	{"제품 B", 35, 3.8, 18},
	{"제품 C", 42, 4.6, 30},
	{"제품 D", 22, 3.5, 12},
	{"제품 E", 50, 4.8, 27},
	{"제품 F", 31, 4.0, 15},
}

func buildBar(data []domain.ExtractedSeries) obj {
	if len(data) == 0 {
		data = []domain.ExtractedSeries{placeholderBar}
	}
	labels, values := categoryValues(data)

	spec := baseSpec()
	spec["tooltip"] = withPointer(tooltip("axis"), "shadow")
	spec["xAxis"] = categoryAxis(labels)
	spec["yAxis"] = valueAxis(valueAxisName)
	spec["series"] = []obj{{
		"name":        valueAxisName,
		"type":        "bar",
		"data":        values,
		"barMaxWidth": 48,
		"itemStyle": obj{
			"color":        linearGradient("#83bff6", "#188df0"),
			"borderRadius": []int{4, 4, 0, 0},
		},
		"emphasis": obj{"itemStyle": obj{"color": linearGradient("#2378f7", "#83bff6")}},
	}}
	return spec
}

func buildLine(data []domain.ExtractedSeries) obj {
	if len(data) == 0 {
		data = []domain.ExtractedSeries{placeholderLine}
	}
	labels, values := categoryValues(data)

	xAxis := categoryAxis(labels)
	xAxis["boundaryGap"] = false

	spec := baseSpec()
	spec["tooltip"] = tooltip("axis")
	spec["xAxis"] = xAxis
	spec["yAxis"] = valueAxis(valueAxisName)
	spec["series"] = []obj{{
		"name":       valueAxisName,
		"type":       "line",
		"smooth":     true,
		"data":       values,
		"symbol":     "circle",
		"symbolSize": 8,
		"itemStyle":  obj{"color": "#5470c6"},
		"lineStyle":  obj{"width": 3, "color": "#5470c6"},
		"areaStyle":  obj{"color": linearGradient("rgba(84, 112, 198, 0.3)", "rgba(84, 112, 198, 0.1)")},
	}}
	return spec
}

func buildPie(data []domain.ExtractedSeries) obj {
	if len(data) == 0 {
		data = []domain.ExtractedSeries{placeholderPie}
	}
	labels, values := shareValues(data)

	slices := make([]obj, len(labels))
	for i, label := range labels {
		slices[i] = obj{"name": label, "value": values[i]}
	}

	spec := baseSpec()
	tip := tooltip("item")
	tip["formatter"] = "{b}: {c} ({d}%)"
	spec["tooltip"] = tip
	spec["legend"] = obj{
		"orient":    "horizontal",
		"data":      labels,
		"textStyle": obj{"color": axisLabelColor},
	}
	spec["series"] = []obj{{
		"name":   valueAxisName,
		"type":   "pie",
		"radius": []string{"40%", "70%"},
		"center": []string{"50%", "50%"},
		"data":   slices,
		"itemStyle": obj{
			"borderRadius": 8,
			"borderColor":  "#fff",
			"borderWidth":  2,
		},
		"label": obj{"show": true, "formatter": "{b}\n{d}%", "color": "#374151"},
		"emphasis": obj{
			"label":     obj{"show": true, "fontSize": 14, "fontWeight": "bold"},
			"itemStyle": obj{"shadowBlur": 10, "shadowColor": "rgba(0, 0, 0, 0.2)"},
		},
	}}
	return spec
}

// buildBubble always uses placeholder points: one-dimensional label/value
// rows carry no third dimension to size the markers with.
func buildBubble() obj {
	points := make([]obj, len(placeholderBubbles))
	for i, p := range placeholderBubbles {
		points[i] = obj{
			"name":       p.name,
			"value":      []float64{p.x, p.y, p.z},
			"symbolSize": p.z * 2,
			"itemStyle":  obj{"color": paletteColor(i), "opacity": 0.8},
		}
	}

	xAxis := valueAxis("가격")
	xAxis["nameLocation"] = "middle"
	xAxis["nameGap"] = 30
	yAxis := valueAxis("만족도")
	yAxis["scale"] = true

	spec := baseSpec()
	tip := tooltip("item")
	tip["formatter"] = "{b}: {c}"
	spec["tooltip"] = tip
	spec["xAxis"] = xAxis
	spec["yAxis"] = yAxis
	spec["series"] = []obj{{
		"name":     "버블",
		"type":     "scatter",
		"data":     points,
		"label":    obj{"show": true, "formatter": "{b}", "position": "top", "color": "#374151"},
		"emphasis": obj{"focus": "self"},
	}}
	return spec
}

func withPointer(tip obj, kind string) obj {
	tip["axisPointer"] = obj{"type": kind}
	return tip
}
