package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySubmission = errors.New("requirement, data or image is required")
	ErrNoData          = errors.New("no data could be extracted")
	ErrEmptyResponse   = errors.New("model returned an empty response")
)

// NoDataExample is shown to the user when the heuristic path finds nothing to plot.
const NoDataExample = "스타벅스: 100\n네스프레소: 200\n카누: 150"

// NoDataError carries an example of the input shape the extractor understands.
type NoDataError struct {
	Example string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("%s; expected input like:\n%s", ErrNoData, e.Example)
}

func (e *NoDataError) Is(target error) bool { return target == ErrNoData }

// ConfigurationError means a credential needed by the model path is missing.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s is not set", e.Field)
}

// ModelUnavailableError covers transport failures, non-2xx statuses and
// quota or billing rejections from the model provider.
type ModelUnavailableError struct {
	Provider   string
	StatusCode int
	Quota      bool
	Err        error
}

func (e *ModelUnavailableError) Error() string {
	if e.Quota {
		return fmt.Sprintf("%s: usage quota or billing limit exceeded: %v", e.Provider, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// ParseError is returned when text cannot be read as a chart specification.
// Line and Column are 1-based; zero means the position is unknown.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return "parse error: " + e.Msg
}

// ValidationError is returned for parsed documents that are not usable charts.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid chart specification: " + e.Reason
}

func IsModelUnavailable(err error) bool {
	var target *ModelUnavailableError
	return errors.As(err, &target)
}

func IsQuota(err error) bool {
	var target *ModelUnavailableError
	return errors.As(err, &target) && target.Quota
}

func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

func AsParseError(err error) (*ParseError, bool) {
	var target *ParseError
	ok := errors.As(err, &target)
	return target, ok
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// PositionOf converts a byte offset in text into a 1-based line and column.
func PositionOf(text string, offset int) (line, col int) {
	if offset > len(text) {
		offset = len(text)
	}
	line, col = 1, 1
	for _, r := range text[:offset] {
		if r == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
