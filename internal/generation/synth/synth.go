// Package synth builds self-contained chart specifications from extracted
// rows without any model involvement.
package synth

import (
	"fmt"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/vocabulary"
)

type Synthesizer struct {
	vocab *vocabulary.Vocabulary
}

func New(v *vocabulary.Vocabulary) *Synthesizer {
	if v == nil {
		v = vocabulary.Default()
	}
	return &Synthesizer{vocab: v}
}

// Classify picks the archetype for an instruction. The first matching rule
// wins; ArchetypeNone means no keyword matched and nothing was extracted.
func (s *Synthesizer) Classify(text string, data []domain.ExtractedSeries) domain.Archetype {
	a := s.vocab.Archetypes
	switch {
	case vocabulary.ContainsAny(text, a.Slope) || labelsMention(data, s.vocab.SlopeLabels):
		return domain.ArchetypeSlope
	case vocabulary.ContainsAny(text, a.Bubble):
		return domain.ArchetypeBubble
	case vocabulary.ContainsAny(text, a.Bar):
		return domain.ArchetypeBar
	case vocabulary.ContainsAny(text, a.Pie):
		return domain.ArchetypePie
	case vocabulary.ContainsAny(text, a.Line):
		return domain.ArchetypeLine
	case len(data) > 0:
		return domain.ArchetypeBar
	default:
		return domain.ArchetypeNone
	}
}

// Synthesize classifies the instruction and builds the matching chart.
func (s *Synthesizer) Synthesize(text string, data []domain.ExtractedSeries) (domain.Spec, domain.Archetype, error) {
	a := s.Classify(text, data)
	if a == domain.ArchetypeNone {
		return nil, a, &domain.NoDataError{Example: domain.NoDataExample}
	}
	spec, err := s.Build(a, data)
	return spec, a, err
}

// Build renders one archetype. The result is in canonical document form.
func (s *Synthesizer) Build(a domain.Archetype, data []domain.ExtractedSeries) (domain.Spec, error) {
	var raw obj
	switch a {
	case domain.ArchetypeBar:
		raw = buildBar(data)
	case domain.ArchetypeLine:
		raw = buildLine(data)
	case domain.ArchetypePie:
		raw = buildPie(data)
	case domain.ArchetypeBubble:
		raw = buildBubble()
	case domain.ArchetypeSlope:
		raw = buildSlope(data, s.slopeMarkers())
	default:
		return nil, fmt.Errorf("unknown archetype %q", a)
	}
	return domain.Canonical(raw)
}

// slopeMarkers are words that name a price column rather than an entity.
func (s *Synthesizer) slopeMarkers() []string {
	return append(append([]string(nil), s.vocab.SlopeLabels...), "가격", "price")
}

func labelsMention(data []domain.ExtractedSeries, words []string) bool {
	for _, s := range data {
		for _, l := range s.Labels {
			if containsAnyOf(l, words) {
				return true
			}
		}
	}
	return false
}
