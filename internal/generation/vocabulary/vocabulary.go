// Package vocabulary holds the keyword lists behind the intent classifiers.
// The lists live in keywords.yaml so they can be reviewed and tested as data.
package vocabulary

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var embedded []byte

type Archetypes struct {
	Slope  []string `yaml:"slope"`
	Bubble []string `yaml:"bubble"`
	Bar    []string `yaml:"bar"`
	Pie    []string `yaml:"pie"`
	Line   []string `yaml:"line"`
}

type Vocabulary struct {
	EditIntent   []string   `yaml:"edit_intent"`
	Archetypes   Archetypes `yaml:"archetypes"`
	SlopeLabels  []string   `yaml:"slope_labels"`
	ImageExtract []string   `yaml:"image_extract"`
	ConnectLines []string   `yaml:"connect_lines"`
}

// Parse reads a vocabulary document. Every list must be non-empty.
func Parse(b []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	lists := map[string][]string{
		"edit_intent":       v.EditIntent,
		"archetypes.slope":  v.Archetypes.Slope,
		"archetypes.bubble": v.Archetypes.Bubble,
		"archetypes.bar":    v.Archetypes.Bar,
		"archetypes.pie":    v.Archetypes.Pie,
		"archetypes.line":   v.Archetypes.Line,
		"image_extract":     v.ImageExtract,
		"connect_lines":     v.ConnectLines,
	}
	for name, words := range lists {
		if len(words) == 0 {
			return nil, fmt.Errorf("parse vocabulary: %s is empty", name)
		}
	}
	return &v, nil
}

var loadDefault = sync.OnceValue(func() *Vocabulary {
	v, err := Parse(embedded)
	if err != nil {
		panic(err)
	}
	return v
})

// Default returns the embedded vocabulary.
func Default() *Vocabulary {
	return loadDefault()
}

// ContainsAny reports whether text contains any of words, ignoring case.
func ContainsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if w == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
