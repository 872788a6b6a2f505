// Package extract recovers (label, value) rows from loosely structured text.
// It is a best-effort heuristic used only when the model path is not available;
// labels containing digits or punctuation may be split incorrectly.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
)

var (
	digitRe      = regexp.MustCompile(`\d`)
	letterRe     = regexp.MustCompile(`\p{L}`)
	numberRe     = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	labelRunRe   = regexp.MustCompile(`\p{L}[\p{L}\s]*`)
	wordRe       = regexp.MustCompile(`\p{L}+`)
	commaSplitRe = regexp.MustCompile(`[,，]`)
)

// Extract returns one ExtractedSeries per usable line, or nil when nothing was found.
func Extract(text string) []domain.ExtractedSeries {
	var out []domain.ExtractedSeries
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !digitRe.MatchString(line) || !letterRe.MatchString(line) {
			continue
		}
		s, ok := parseLine(line)
		if ok {
			out = append(out, s)
		}
	}
	return out
}

func parseLine(line string) (domain.ExtractedSeries, bool) {
	var s domain.ExtractedSeries
	if parts := splitDelimited(line); len(parts) >= 2 {
		for _, p := range parts {
			if m := numberRe.FindString(p); m != "" {
				if v, ok := parseNumber(m); ok {
					s.Values = append(s.Values, v)
				}
			}
			if m := labelRunRe.FindString(p); m != "" {
				if label := strings.TrimSpace(m); label != "" {
					s.Labels = append(s.Labels, label)
				}
			}
		}
	} else {
		for _, m := range numberRe.FindAllString(line, -1) {
			if v, ok := parseNumber(m); ok {
				s.Values = append(s.Values, v)
			}
		}
		s.Labels = wordRe.FindAllString(line, -1)
	}
	return s, len(s.Labels) > 0 && len(s.Values) > 0
}

// splitDelimited splits on the strongest delimiter present: tab, then pipe,
// then comma. Tab and pipe rows keep thousands separators inside numbers.
func splitDelimited(line string) []string {
	var raw []string
	switch {
	case strings.Contains(line, "\t"):
		raw = strings.Split(line, "\t")
	case strings.Contains(line, "|"):
		raw = strings.Split(line, "|")
	case strings.ContainsAny(line, ",，"):
		raw = commaSplitRe.Split(line, -1)
	default:
		return nil
	}
	parts := raw[:0]
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimRight(strings.ReplaceAll(s, ",", ""), ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
