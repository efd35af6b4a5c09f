package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid https URL", url: "https://example.com/post", wantErr: false},
		{name: "valid http URL", url: "http://example.com/post", wantErr: false},
		{name: "valid URL with port", url: "https://example.com:8080/post", wantErr: false},
		{name: "valid URL with query", url: "https://youtube.com/watch?v=1", wantErr: false},
		{name: "empty URL", url: "", wantErr: true},
		{name: "ftp scheme", url: "ftp://example.com/file", wantErr: true},
		{name: "file scheme", url: "file:///etc/passwd", wantErr: true},
		{name: "no host", url: "https://", wantErr: true},
		{name: "too long", url: "https://example.com/" + strings.Repeat("a", maxURLLength), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateInput(t *testing.T) {
	valid := SummarizeInput{Content: ContentUnit{Text: "A perfectly reasonable sentence."}}

	tests := []struct {
		name      string
		in        SummarizeInput
		wantField string
	}{
		{name: "valid with defaults", in: valid},
		{name: "empty content", in: SummarizeInput{}, wantField: "content"},
		{name: "whitespace content", in: SummarizeInput{Content: ContentUnit{Text: "   \n\t"}}, wantField: "content"},
		{name: "too short", in: SummarizeInput{Content: ContentUnit{Text: "hi"}}, wantField: "content"},
		{name: "binary payload accepted", in: SummarizeInput{Content: ContentUnit{Raw: []byte("%PDF-1.4")}}},
		{
			name:      "unsupported type",
			in:        SummarizeInput{Content: valid.Content, Type: "hologram"},
			wantField: "type",
		},
		{
			name: "auto type accepted",
			in:   SummarizeInput{Content: valid.Content, Type: ContentTypeAuto},
		},
		{
			name:      "bad length",
			in:        SummarizeInput{Content: valid.Content, Options: SummaryOptions{Length: "epic"}},
			wantField: "length",
		},
		{
			name:      "bad focus",
			in:        SummarizeInput{Content: valid.Content, Options: SummaryOptions{Focus: "vibes"}},
			wantField: "focus",
		},
		{
			name:      "bad source url",
			in:        SummarizeInput{Content: ContentUnit{Text: valid.Content.Text, SourceRef: "https://"}},
			wantField: "url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.in, DefaultMinContentLength)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var invalid *InvalidInputError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.wantField, invalid.Field)
		})
	}
}

func TestSummaryOptions_WithDefaults(t *testing.T) {
	got := SummaryOptions{Format: FormatBullet}.WithDefaults()
	assert.Equal(t, SummaryOptions{Length: LengthMedium, Format: FormatBullet, Focus: FocusGeneral}, got)
	assert.NoError(t, got.Validate())
}

func TestContentType_IsSupported(t *testing.T) {
	for _, ct := range SupportedContentTypes {
		assert.True(t, ct.IsSupported(), ct)
	}
	assert.True(t, ContentTypeAuto.IsSupported())
	assert.False(t, ContentTypeTutorial.IsSupported())
	assert.False(t, ContentType("").IsSupported())
}

func TestCompletionRequest_Prompt(t *testing.T) {
	assert.Equal(t, "do it\n\nbody", CompletionRequest{Instruction: "do it", Content: "body"}.Prompt())
	assert.Equal(t, "body", CompletionRequest{Content: "body"}.Prompt())
	assert.Equal(t, "do it", CompletionRequest{Instruction: "do it"}.Prompt())
}
