package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidInputError_Is(t *testing.T) {
	err := NewInvalidInput("content", "is required")

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrCompletionService))
	assert.Equal(t, "invalid input: content is required", err.Error())

	wrapped := fmt.Errorf("summarize: %w", err)
	var target *InvalidInputError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "content", target.Field)
}

func TestCompletionServiceError(t *testing.T) {
	cause := errors.New("HTTP 503: unavailable")

	tests := []struct {
		name     string
		err      *CompletionServiceError
		expected string
	}{
		{
			name:     "map stage with chunk index",
			err:      &CompletionServiceError{Provider: "gemini", Stage: StageMap, ChunkIndex: 2, Err: cause},
			expected: "completion service (gemini) failed during map of chunk 2: HTTP 503: unavailable",
		},
		{
			name:     "reduce stage",
			err:      &CompletionServiceError{Stage: StageReduce, ChunkIndex: -1, Err: cause},
			expected: "completion service failed during reduce: HTTP 503: unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrCompletionService))
			assert.True(t, errors.Is(tt.err, cause))
			assert.False(t, errors.Is(tt.err, ErrInvalidInput))
		})
	}
}

func TestParseWarning_Error(t *testing.T) {
	w := &ParseWarning{Missing: []string{"tldr", "linkBreakdown"}}
	assert.Equal(t, "forensic response missing sections: tldr, linkBreakdown", w.Error())
}
