// Package errors provides the structured error type and error collection
// used across the docsentry pipeline. Per-file failures are recoverable:
// they are recorded and the batch continues.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeIO       ErrorType = "io"
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypePattern  ErrorType = "pattern"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeReport   ErrorType = "report"
	ErrorTypeInternal ErrorType = "internal"
)

// DocsentryError is a structured error type with file context.
type DocsentryError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	FilePath    string
	Line        int
	Recoverable bool
}

// Error implements the error interface.
func (e *DocsentryError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.FilePath != "" {
		location := e.FilePath
		if e.Line > 0 {
			location += fmt.Sprintf(":%d", e.Line)
		}
		parts = append(parts, location)
	}

	parts = append(parts, e.Message)
	msg := strings.Join(parts, " ")

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *DocsentryError) Unwrap() error {
	return e.Cause
}

// IsRecoverable reports whether processing may continue after err.
func IsRecoverable(err error) bool {
	var de *DocsentryError
	if errors.As(err, &de) {
		return de.Recoverable
	}
	return false
}

// Wrap wraps an error with pipeline context. IO, parse, and pattern errors
// are recoverable by the taxonomy: the batch records them and moves on.
func Wrap(err error, errType ErrorType, code, message string) *DocsentryError {
	if err == nil {
		return nil
	}
	return &DocsentryError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeIO || errType == ErrorTypeParse || errType == ErrorTypePattern,
	}
}

// WrapFile wraps an error with the file it occurred on.
func WrapFile(err error, errType ErrorType, code, message, filePath string) *DocsentryError {
	de := Wrap(err, errType, code, message)
	if de != nil {
		de.FilePath = filePath
	}
	return de
}

// New creates a DocsentryError without a cause.
func New(errType ErrorType, code, message string) *DocsentryError {
	return &DocsentryError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// ErrorCollector accumulates recovered per-file errors during a batch run.
// It is safe for concurrent use, though the batch pipeline is single-writer.
type ErrorCollector struct {
	errors []error
	mutex  sync.RWMutex
}

// NewErrorCollector creates a new error collector
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{
		errors: make([]error, 0),
	}
}

// Add adds an error to the collector. Nil errors are ignored.
func (ec *ErrorCollector) Add(err error) {
	if err == nil {
		return
	}
	ec.mutex.Lock()
	defer ec.mutex.Unlock()
	ec.errors = append(ec.errors, err)
}

// Errors returns a copy of all collected errors.
func (ec *ErrorCollector) Errors() []error {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	result := make([]error, len(ec.errors))
	copy(result, ec.errors)
	return result
}

// HasErrors returns true if there are any errors
func (ec *ErrorCollector) HasErrors() bool {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.errors) > 0
}

// Count returns the number of collected errors.
func (ec *ErrorCollector) Count() int {
	ec.mutex.RLock()
	defer ec.mutex.RUnlock()
	return len(ec.errors)
}
