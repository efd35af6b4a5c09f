package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain layer operations.
var (
	// ErrInvalidInput indicates that the provided input is invalid.
	// No completion call is made when this is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCompletionService indicates that the external completion service failed.
	ErrCompletionService = errors.New("completion service failed")
)

// InvalidInputError reports which field of a request was rejected.
type InvalidInputError struct {
	Field  string
	Reason string
}

// NewInvalidInput builds an *InvalidInputError.
func NewInvalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) true.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Completion stages reported by CompletionServiceError.
const (
	StageSingle   = "single"
	StageMap      = "map"
	StageReduce   = "reduce"
	StageForensic = "forensic"
)

// CompletionServiceError wraps a failure from the completion service.
// ChunkIndex is -1 outside the map stage.
type CompletionServiceError struct {
	Provider   string
	Stage      string
	ChunkIndex int
	Err        error
}

func (e *CompletionServiceError) Error() string {
	var b strings.Builder
	b.WriteString("completion service")
	if e.Provider != "" {
		b.WriteString(" (" + e.Provider + ")")
	}
	b.WriteString(" failed during " + e.Stage)
	if e.ChunkIndex >= 0 {
		fmt.Fprintf(&b, " of chunk %d", e.ChunkIndex)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the provider error.
func (e *CompletionServiceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCompletionService) true.
func (e *CompletionServiceError) Is(target error) bool {
	return target == ErrCompletionService
}

// ParseWarning is a non-fatal report that forensic sections were missing.
// It is logged, never returned from the pipeline.
type ParseWarning struct {
	Missing []string
}

func (w *ParseWarning) Error() string {
	return "forensic response missing sections: " + strings.Join(w.Missing, ", ")
}
