package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

func TestExtract_CommaDelimited(t *testing.T) {
	got := Extract("스타벅스: 100, 네스프레소: 200, 카누: 150")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"스타벅스", "네스프레소", "카누"}, got[0].Labels)
	assert.Equal(t, []float64{100, 200, 150}, got[0].Values)
}

func TestExtract_SkipsLinesWithoutDigitsOrLetters(t *testing.T) {
	text := "요구사항:\n제조사별 판매량을 바 차트로 만들어줘\n\n데이터:\n스타벅스: 100, 네스프레소: 200, 카누: 150\n12345\n"
	got := Extract(text)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"스타벅스", "네스프레소", "카누"}, got[0].Labels)
}

func TestExtract_Delimiters(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		labels []string
		values []float64
	}{
		{
			name:   "tab keeps thousands separator",
			line:   "스타벅스\t1,200\t900",
			labels: []string{"스타벅스"},
			values: []float64{1200, 900},
		},
		{
			name:   "pipe row",
			line:   "Coffee Bean | 5000 | 3500",
			labels: []string{"Coffee Bean"},
			values: []float64{5000, 3500},
		},
		{
			name:   "full width comma",
			line:   "사과 10，배 20",
			labels: []string{"사과", "배"},
			values: []float64{10, 20},
		},
		{
			name:   "decimal values",
			line:   "A: 1.5, B: 2.25",
			labels: []string{"A", "B"},
			values: []float64{1.5, 2.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.line)
			require.Len(t, got, 1)
			assert.Equal(t, tt.labels, got[0].Labels)
			assert.Equal(t, tt.values, got[0].Values)
		})
	}
}

func TestExtract_UndelimitedLine(t *testing.T) {
	got := Extract("1월 매출 300 2월 매출 450")
	require.Len(t, got, 1)
	assert.Equal(t, []float64{1, 300, 2, 450}, got[0].Values)
	assert.Equal(t, []string{"월", "매출", "월", "매출"}, got[0].Labels)
}

func TestExtract_MultipleRows(t *testing.T) {
	got := Extract("A: 10, B: 5\nA: 20, C: 7")
	assert.Equal(t, []domain.ExtractedSeries{
		{Labels: []string{"A", "B"}, Values: []float64{10, 5}},
		{Labels: []string{"A", "C"}, Values: []float64{20, 7}},
	}, got)
}

func TestExtract_NoData(t *testing.T) {
	assert.Nil(t, Extract(""))
	assert.Nil(t, Extract("차트를 그려줘"))
	assert.Nil(t, Extract("100, 200, 300"))
}

func TestExtract_StableOnRepeat(t *testing.T) {
	text := "스타벅스: 100, 네스프레소: 200, 카누: 150"
	assert.Equal(t, Extract(text), Extract(text))
}
