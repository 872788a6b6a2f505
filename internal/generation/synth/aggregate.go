package synth

import "github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"

// categoryValues flattens extracted rows into one category axis.
// A single row is used as is; several rows are averaged per label.
func categoryValues(data []domain.ExtractedSeries) ([]string, []float64) {
	if len(data) == 1 {
		return pairUp(data[0])
	}
	return aggregate(data, true)
}

// shareValues flattens extracted rows into slices, summing repeated labels.
func shareValues(data []domain.ExtractedSeries) ([]string, []float64) {
	return aggregate(data, false)
}

func pairUp(s domain.ExtractedSeries) ([]string, []float64) {
	n := min(len(s.Labels), len(s.Values))
	return append([]string(nil), s.Labels[:n]...), append([]float64(nil), s.Values[:n]...)
}

func aggregate(data []domain.ExtractedSeries, average bool) ([]string, []float64) {
	var order []string
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, row := range data {
		for i, label := range row.Labels {
			if i >= len(row.Values) {
				break
			}
			if _, seen := counts[label]; !seen {
				order = append(order, label)
			}
			sums[label] += row.Values[i]
			counts[label]++
		}
	}

	values := make([]float64, len(order))
	for i, label := range order {
		values[i] = sums[label]
		if average {
			values[i] /= float64(counts[label])
		}
	}
	return order, values
}
