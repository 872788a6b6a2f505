package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

const barJSON = `{"xAxis":{"type":"category","data":["A","B"]},"yAxis":{"type":"value"},"series":[{"type":"bar","data":[1,2]}]}`

func TestValidate_Recovery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "plain", raw: barJSON},
		{name: "json fence", raw: "```json\n" + barJSON + "\n```"},
		{name: "bare fence", raw: "```\n" + barJSON + "\n```"},
		{name: "leading prose", raw: "Here is your chart:\n" + barJSON},
		{name: "trailing prose", raw: barJSON + "\nHope this helps!"},
		{name: "fence and prose", raw: "Sure.\n```json\n" + barJSON + "\n```\nEnjoy."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := Validate(tt.raw)
			require.NoError(t, err)
			assert.Len(t, spec.Series(), 1)
		})
	}
}

func TestValidate_ParseErrorPosition(t *testing.T) {
	raw := "{\n  \"series\": [\n    1,,\n  ]\n}"
	_, err := Validate(raw)
	require.Error(t, err)

	pe, ok := domain.AsParseError(err)
	require.True(t, ok, "want ParseError, got %T", err)
	assert.Equal(t, 3, pe.Line)
	assert.Greater(t, pe.Column, 0)
}

func TestValidate_NoJSON(t *testing.T) {
	_, err := Validate("죄송하지만 차트를 만들 수 없습니다.")
	_, ok := domain.AsParseError(err)
	assert.True(t, ok)

	_, err = Validate("   ")
	_, ok = domain.AsParseError(err)
	assert.True(t, ok)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "array", raw: `[{"series":[]}]`},
		{name: "no chart keys", raw: `{"title":{"text":"x"}}`},
		{name: "empty series", raw: `{"xAxis":{},"yAxis":{},"series":[]}`},
		{name: "axes only", raw: `{"xAxis":{"type":"category"},"yAxis":{"type":"value"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.raw)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), "want ValidationError, got %v", err)
		})
	}
}

func TestParse_AllowsAxesOnly(t *testing.T) {
	spec, err := Parse(`{"xAxis":{"type":"category"}}`)
	require.NoError(t, err)
	assert.False(t, spec.HasSeries())
}

func mustSpec(t *testing.T, raw string) domain.Spec {
	t.Helper()
	spec, err := Parse(raw)
	require.NoError(t, err)
	return spec
}

func TestNormalize_TitleAndLegend(t *testing.T) {
	spec := mustSpec(t, `{
		"title": {"text": "매출", "left": "left", "top": 2},
		"legend": {"data": ["A"], "top": 5},
		"series": [{"type": "bar", "data": [1]}]
	}`)

	out := Normalize(spec)

	title, _ := out.Title()
	assert.Equal(t, "center", title["left"])
	assert.Equal(t, "center", title["textAlign"])
	assert.Equal(t, 10.0, title["top"])

	legend, _ := out.Legend()
	assert.Equal(t, 10.0, legend["bottom"])
	assert.NotContains(t, legend, "top")
	assert.Equal(t, "center", legend["left"])

	grid := out["grid"].(map[string]any)
	assert.Equal(t, 60.0, grid["top"])
	assert.Equal(t, 80.0, grid["bottom"])
	assert.Equal(t, 80.0, grid["left"])
	assert.Equal(t, 60.0, grid["right"])
	assert.Equal(t, true, grid["containLabel"])

	// input is not modified
	origTitle, _ := spec.Title()
	assert.Equal(t, "left", origTitle["left"])
}

func TestNormalize_KeepsExplicitPlacement(t *testing.T) {
	spec := mustSpec(t, `{
		"title": [{"text": "a", "top": 30}, {"subtext": "b"}],
		"legend": {"bottom": 0, "right": 20},
		"grid": {"top": 100, "bottom": 10, "right": 5, "left": "10%"},
		"yAxis": {"axisLabel": {}},
		"series": []
	}`)

	out := Normalize(spec)

	titles := domain.Objects(out["title"])
	require.Len(t, titles, 2)
	assert.Equal(t, 30.0, titles[0]["top"])
	assert.Equal(t, 10.0, titles[1]["top"])
	assert.Equal(t, "center", titles[1]["left"])

	legend, _ := out.Legend()
	assert.Equal(t, 0.0, legend["bottom"])
	assert.NotContains(t, legend, "left")

	grid := out["grid"].(map[string]any)
	assert.Equal(t, 100.0, grid["top"])
	assert.Equal(t, 10.0, grid["bottom"])
	assert.Equal(t, 5.0, grid["right"])
	assert.Equal(t, "10%", grid["left"])
}

func TestNormalize_YAxisNameMargin(t *testing.T) {
	tests := []struct {
		name     string
		yAxis    string
		grid     string
		wantLeft float64
	}{
		{name: "labels only", yAxis: `{"axisLabel":{}}`, wantLeft: 80},
		{name: "named axis default gap", yAxis: `{"axisLabel":{},"name":"원"}`, wantLeft: 140},
		{name: "named axis custom gap", yAxis: `{"axisLabel":{},"name":"원","nameGap":60}`, wantLeft: 160},
		{name: "wider grid wins", yAxis: `{"axisLabel":{},"name":"원"}`, grid: `{"left":200}`, wantLeft: 200},
		{name: "narrow grid grows", yAxis: `{"axisLabel":{},"name":"원"}`, grid: `{"left":20}`, wantLeft: 140},
		{name: "no axis label", yAxis: `{"name":"원"}`, wantLeft: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"yAxis":` + tt.yAxis + `,"series":[{"type":"line","data":[1]}]`
			if tt.grid != "" {
				raw += `,"grid":` + tt.grid
			}
			raw += "}"

			out := Normalize(mustSpec(t, raw))
			grid := out["grid"].(map[string]any)
			assert.Equal(t, tt.wantLeft, grid["left"])
		})
	}
}

func TestNormalize_GridList(t *testing.T) {
	out := Normalize(mustSpec(t, `{"grid":[{},{"top":5}],"series":[{"type":"bar","data":[1]}]}`))
	grids := domain.Objects(out["grid"])
	require.Len(t, grids, 2)
	assert.Equal(t, 40.0, grids[0]["top"])
	assert.Equal(t, 5.0, grids[1]["top"])
	assert.Equal(t, true, grids[1]["containLabel"])
}

func TestNormalize_Idempotent(t *testing.T) {
	docs := []string{
		barJSON,
		`{"title":{"text":"t"},"legend":{"data":["a","b"]},"yAxis":{"axisLabel":{},"name":"n","nameGap":30},"series":[{"type":"line","data":[1]}]}`,
		`{"title":[{"text":"t","top":0}],"legend":[{"top":40}],"grid":[{"left":10},{}],"yAxis":[{"axisLabel":{}}],"series":[{"type":"bar","data":[1]}]}`,
		`{"series":[{"type":"pie","data":[{"name":"a","value":1}]}]}`,
	}

	for _, raw := range docs {
		once := Normalize(mustSpec(t, raw))
		twice := Normalize(once)
		assert.Equal(t, once, twice, raw)
	}
}

func TestNormalize_Nil(t *testing.T) {
	assert.Nil(t, Normalize(nil))
}
