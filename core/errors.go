package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSubjectNotFound = errors.New("subject not found")
)

// ImportError reports a document that could not be read or decoded. The
// roster is never modified when an import fails.
type ImportError struct {
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("import failed: %s", e.Reason)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// ExportError reports a failure to encode or write an exchange document.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed: %v", e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func importErrorf(err error, format string, args ...interface{}) *ImportError {
	return &ImportError{Reason: fmt.Sprintf(format, args...), Err: err}
}
