// Package composer turns the requirement and data fields of a submission
// into the single instruction string the rest of the pipeline consumes.
package composer

import (
	"strings"

	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/domain"
	"github.com/jrkim-kr/echarts-ai-studio/internal/generation/vocabulary"
)

const (
	RequirementHeader = "요구사항:"
	DataHeader        = "데이터:"

	// sectionSeparator sits between the requirement and data sections.
	sectionSeparator = "\n\n"
)

// Compose merges requirement and data into one prompt.
// An image-only submission yields an empty prompt and no error.
func Compose(requirement, data string, hasImage bool) (string, error) {
	req := strings.TrimSpace(requirement)
	dat := strings.TrimSpace(data)

	switch {
	case req != "" && dat != "":
		return RequirementHeader + "\n" + req + sectionSeparator + DataHeader + "\n" + dat, nil
	case req != "":
		return req, nil
	case dat != "":
		return DataHeader + "\n" + dat, nil
	case hasImage:
		return "", nil
	default:
		return "", domain.ErrEmptySubmission
	}
}

// Split recovers the requirement and data sections from a composed prompt.
// A prompt without section headers is treated as a bare requirement.
func Split(prompt string) (requirement, data string) {
	if strings.HasPrefix(prompt, DataHeader+"\n") {
		return "", strings.TrimPrefix(prompt, DataHeader+"\n")
	}
	if !strings.HasPrefix(prompt, RequirementHeader+"\n") {
		return prompt, ""
	}
	body := strings.TrimPrefix(prompt, RequirementHeader+"\n")
	if i := strings.Index(body, sectionSeparator+DataHeader+"\n"); i >= 0 {
		return body[:i], body[i+len(sectionSeparator+DataHeader+"\n"):]
	}
	return body, ""
}

// ClassifyIntent decides whether the requirement asks to change an existing chart.
func ClassifyIntent(requirement string, v *vocabulary.Vocabulary) domain.EditIntent {
	if v == nil {
		v = vocabulary.Default()
	}
	if vocabulary.ContainsAny(requirement, v.EditIntent) {
		return domain.IntentRefine
	}
	return domain.IntentNew
}
