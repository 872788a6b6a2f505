package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrChartNotFound   = errors.New("chart not found")
	ErrInvalidName     = errors.New("project name must not be blank")
)

// PersistenceError is a failed read or write against the project store.
type PersistenceError struct {
	Op               string
	PermissionDenied bool
	Err              error
}

func (e *PersistenceError) Error() string {
	if e.PermissionDenied {
		return fmt.Sprintf("%s: permission denied: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func IsPermissionDenied(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.PermissionDenied
}
