package synth

// Palette is the fixed series palette shared with the model instructions.
var Palette = []string{"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de", "#3ba272"}

const (
	axisLineColor  = "#d1d5db"
	axisLabelColor = "#6b7280"
	splitLineColor = "#e5e7eb"
	valueAxisName  = "값"
	rotateAfter    = 5
)

type obj = map[string]any

func baseSpec() obj {
	return obj{
		"backgroundColor": "transparent",
		"color":           Palette,
	}
}

func tooltip(trigger string) obj {
	return obj{
		"trigger":         trigger,
		"backgroundColor": "rgba(255, 255, 255, 0.95)",
		"borderColor":     "#e5e7eb",
		"borderWidth":     1,
		"textStyle":       obj{"color": "#1a1a1a"},
	}
}

func categoryAxis(labels []string) obj {
	label := obj{"color": axisLabelColor, "fontSize": 12}
	if len(labels) > rotateAfter {
		label["rotate"] = 45
		label["interval"] = 0
	}
	return obj{
		"type":      "category",
		"data":      labels,
		"axisLine":  obj{"lineStyle": obj{"color": axisLineColor}},
		"axisTick":  obj{"alignWithLabel": true},
		"axisLabel": label,
	}
}

func valueAxis(name string) obj {
	return obj{
		"type":          "value",
		"name":          name,
		"nameGap":       40,
		"nameTextStyle": obj{"color": axisLabelColor},
		"axisLine":      obj{"show": true, "lineStyle": obj{"color": axisLineColor}},
		"axisLabel":     obj{"color": axisLabelColor, "fontSize": 11},
		"splitLine":     obj{"lineStyle": obj{"color": splitLineColor, "type": "dashed"}},
	}
}

// linearGradient is the plain-object form of a vertical two-stop gradient.
func linearGradient(top, bottom string) obj {
	return obj{
		"type": "linear",
		"x":    0,
		"y":    0,
		"x2":   0,
		"y2":   1,
		"colorStops": []obj{
			{"offset": 0, "color": top},
			{"offset": 1, "color": bottom},
		},
	}
}

func paletteColor(i int) string {
	return Palette[i%len(Palette)]
}
