package summarize_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytldr/internal/domain/entity"
	"ytldr/internal/observability/requestid"
	"ytldr/internal/usecase/forensic"
	"ytldr/internal/usecase/summarize"
)

const forensicResponse = `1. **Structured Outline of Content Title**
   - Open settings

2. **Bullet Summary (w/ Emojis):**
   - 🛠️ Docker

3. **TL;DR (3-15 Sentences):**
Docker gets installed.

4. **Full Link Breakdown:**
   - https://docs.docker.com (Docs)
`

func newEngine(t *testing.T, svc summarize.CompletionService, cfg summarize.Config, opts ...summarize.Option) *summarize.Engine {
	t.Helper()
	e, err := summarize.NewEngine(svc, cfg, opts...)
	require.NoError(t, err)
	return e
}

func TestNewEngine(t *testing.T) {
	_, err := summarize.NewEngine(nil, summarize.DefaultConfig())
	assert.Error(t, err)

	_, err = summarize.NewEngine(&mockCompletion{}, summarize.Config{OverlapSize: -1})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = summarize.NewEngine(&mockCompletion{}, summarize.Config{})
	assert.NoError(t, err)
}

func TestEngine_Summarize_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   entity.SummarizeInput
	}{
		{name: "empty", in: entity.SummarizeInput{}},
		{name: "too short", in: entity.SummarizeInput{Content: entity.ContentUnit{Text: "tiny"}}},
		{name: "unsupported type", in: entity.SummarizeInput{Content: entity.ContentUnit{Text: "long enough text here"}, Type: "hologram"}},
		{name: "bad format", in: entity.SummarizeInput{
			Content: entity.ContentUnit{Text: "long enough text here"},
			Options: entity.SummaryOptions{Format: "table"},
		}},
		{name: "forensic too short", in: entity.SummarizeInput{Content: entity.ContentUnit{Text: "x"}, Forensic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCompletion{}
			e := newEngine(t, svc, summarize.DefaultConfig())

			result, err := e.Summarize(context.Background(), tt.in)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)
			assert.Zero(t, svc.calls())
		})
	}
}

func TestEngine_Summarize_DetectsAndSummarizes(t *testing.T) {
	svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) { return "A summary.", nil }}
	e := newEngine(t, svc, summarize.DefaultConfig())
	text := "# Release notes\nThe new version ships faster builds."

	result, err := e.Summarize(context.Background(), entity.SummarizeInput{
		Content: entity.ContentUnit{Text: text},
		Type:    entity.ContentTypeAuto,
	})

	require.NoError(t, err)
	assert.Equal(t, "A summary.", result.SummaryText)
	assert.Equal(t, entity.ContentTypeMarkdown, result.Metadata.ContentType)
	assert.Equal(t, len([]rune(text)), result.Metadata.OriginalLength)
	assert.Equal(t, 1, result.Metadata.ChunksProcessed)
	assert.Equal(t, entity.DefaultSummaryOptions(), result.Metadata.OptionsUsed)
	assert.Equal(t, 9, result.Metadata.Stats.EstimatedWords)
	assert.Equal(t, 1, svc.calls())
	assert.Equal(t, 0.3, svc.snapshot()[0].Temperature)
}

func TestEngine_Summarize_ExplicitTypeShapesPrompt(t *testing.T) {
	svc := &mockCompletion{}
	e := newEngine(t, svc, summarize.DefaultConfig())

	_, err := e.Summarize(context.Background(), entity.SummarizeInput{
		Content: entity.ContentUnit{Text: "SPEAKER 1: welcome to the show everyone"},
		Type:    entity.ContentTypeYouTube,
	})

	require.NoError(t, err)
	assert.Contains(t, svc.snapshot()[0].Instruction, "This is a video transcript.")
}

func TestEngine_Summarize_LongContentUsesMapReduce(t *testing.T) {
	svc := &mockCompletion{}
	cfg := summarize.DefaultConfig()
	cfg.MaxChunkSize = 100
	cfg.OverlapSize = 10
	e := newEngine(t, svc, cfg)
	text := strings.Repeat("word ", 60) // 300 runes

	result, err := e.Summarize(context.Background(), entity.SummarizeInput{Content: entity.ContentUnit{Text: text}})

	require.NoError(t, err)
	assert.Equal(t, 4, result.Metadata.ChunksProcessed)
	assert.Equal(t, 5, svc.calls())
	assert.Equal(t, 300, result.Metadata.OriginalLength)
}

func TestEngine_Summarize_UsesExtractor(t *testing.T) {
	svc := &mockCompletion{}
	x := &mockExtractor{text: "Extracted article body with enough words."}
	e := newEngine(t, svc, summarize.DefaultConfig(), summarize.WithExtractor(x))

	result, err := e.Summarize(context.Background(), entity.SummarizeInput{
		Content: entity.ContentUnit{Text: "https://www.nytimes.com/2025/01/01/story.html", SourceRef: "https://www.nytimes.com/2025/01/01/story.html"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, x.calls)
	assert.Equal(t, entity.ContentTypeArticle, x.gotCT)
	assert.Contains(t, svc.snapshot()[0].Content, "Extracted article body")
	assert.Equal(t, len([]rune(x.text)), result.Metadata.OriginalLength)
}

func TestEngine_Summarize_ExtractorErrors(t *testing.T) {
	t.Run("failure is wrapped", func(t *testing.T) {
		svc := &mockCompletion{}
		x := &mockExtractor{err: errors.New("dial tcp: refused")}
		e := newEngine(t, svc, summarize.DefaultConfig(), summarize.WithExtractor(x))

		result, err := e.Summarize(context.Background(), entity.SummarizeInput{Content: entity.ContentUnit{Text: "some content to summarize"}})

		assert.Nil(t, result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dial tcp: refused")
		assert.Zero(t, svc.calls())
	})

	t.Run("empty extraction is invalid input", func(t *testing.T) {
		svc := &mockCompletion{}
		e := newEngine(t, svc, summarize.DefaultConfig(), summarize.WithExtractor(&mockExtractor{text: "  "}))

		_, err := e.Summarize(context.Background(), entity.SummarizeInput{Content: entity.ContentUnit{Text: "some content to summarize"}})

		assert.ErrorIs(t, err, entity.ErrInvalidInput)
		assert.Zero(t, svc.calls())
	})
}

func TestEngine_ShortRawPayloadRejected(t *testing.T) {
	tests := []struct {
		name      string
		unit      entity.ContentUnit
		extracted string
	}{
		{name: "text file", unit: entity.ContentUnit{Raw: []byte("hi"), FileName: "note.txt"}},
		{name: "padded upload", unit: entity.ContentUnit{Raw: []byte("  hi  \n"), MIMEType: "text/plain"}},
		{name: "pdf with little text", unit: entity.ContentUnit{Raw: []byte("%PDF-1.4 ...")}, extracted: "Page 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) { return forensicResponse, nil }}
			var opts []summarize.Option
			if tt.extracted != "" {
				opts = append(opts, summarize.WithExtractor(&mockExtractor{text: tt.extracted}))
			}
			e := newEngine(t, svc, summarize.DefaultConfig(), opts...)

			result, err := e.Summarize(context.Background(), entity.SummarizeInput{Content: tt.unit})
			assert.Nil(t, result)
			require.ErrorIs(t, err, entity.ErrInvalidInput)
			assert.Contains(t, err.Error(), "too short")

			report, err := e.SummarizeForensic(context.Background(), entity.SummarizeInput{Content: tt.unit, Forensic: true})
			assert.Nil(t, report)
			assert.ErrorIs(t, err, entity.ErrInvalidInput)

			assert.Zero(t, svc.calls())
		})
	}
}

func TestEngine_Summarize_CompletionFailureReturnsNil(t *testing.T) {
	svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) { return "", errors.New("quota") }}
	e := newEngine(t, svc, summarize.DefaultConfig())

	result, err := e.Summarize(context.Background(), entity.SummarizeInput{Content: entity.ContentUnit{Text: "some content to summarize"}})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, entity.ErrCompletionService)
}

func TestEngine_SummarizeForensic(t *testing.T) {
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	page := &entity.PageMetadata{URL: "https://example.com/setup-video", Title: "Docker setup", Thumbnail: "https://example.com/t.jpg"}
	meta := &mockMetadata{page: page}
	svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) { return forensicResponse, nil }}
	cfg := summarize.DefaultConfig()
	cfg.Model = "gemini-2.5-flash"
	e := newEngine(t, svc, cfg, summarize.WithMetadataFetcher(meta), summarize.WithClock(func() time.Time { return at }))

	ctx := requestid.WithRequestID(context.Background(), "req-1")
	result, err := e.SummarizeForensic(ctx, entity.SummarizeInput{
		Content: entity.ContentUnit{
			Text:      "In this video we walk through the docker setup step by step.",
			SourceRef: "https://example.com/setup-video",
		},
		IncludeMetadata: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, svc.calls())
	assert.Equal(t, []string{"https://example.com/setup-video"}, meta.urls)

	req := svc.snapshot()[0]
	assert.Equal(t, 0.1, req.Temperature)
	assert.Contains(t, req.Content, "- URL: https://example.com/setup-video\n")
	assert.Contains(t, req.Content, "- Content Type: configuration\n")

	assert.Equal(t, "Docker gets installed.", result.Sections.TLDR)
	assert.Empty(t, result.Metadata.MissingSections)
	assert.Equal(t, entity.ContentTypeConfiguration, result.Metadata.DetectedSubtype)
	assert.Equal(t, page, result.Metadata.Page)
	assert.True(t, strings.HasPrefix(result.SummaryText, "📸 **Site Thumbnail:** https://example.com/t.jpg\n"))
	assert.Contains(t, result.SummaryText, "**Analysis completed at:** 2025-06-01T08:00:00Z\n")
	assert.Contains(t, result.SummaryText, "**AI Model:** gemini-2.5-flash\n")
}

func TestEngine_SummarizeForensic_Degrades(t *testing.T) {
	meta := &mockMetadata{err: errors.New("404")}
	svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) { return "I could not follow the format.", nil }}
	e := newEngine(t, svc, summarize.DefaultConfig(), summarize.WithMetadataFetcher(meta))

	result, err := e.SummarizeForensic(context.Background(), entity.SummarizeInput{
		Content:         entity.ContentUnit{Text: "Plain content without keywords.", SourceRef: "https://example.com/p"},
		IncludeMetadata: true,
	})

	require.NoError(t, err)
	assert.Nil(t, result.Metadata.Page)
	assert.Equal(t, []string{
		forensic.SectionStructuredOutline, forensic.SectionBulletSummary,
		forensic.SectionTLDR, forensic.SectionLinkBreakdown,
	}, result.Metadata.MissingSections)
	assert.Equal(t, "I could not follow the format.", result.Sections.RawText)
	assert.NotContains(t, result.SummaryText, "###")
	assert.Contains(t, result.SummaryText, "**AI Model:** mock\n")
}

func TestEngine_SummarizeForensic_Failure(t *testing.T) {
	svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) { return "", errors.New("503") }}
	e := newEngine(t, svc, summarize.DefaultConfig())

	result, err := e.SummarizeForensic(context.Background(), entity.SummarizeInput{Content: entity.ContentUnit{Text: "some content to analyze"}})

	assert.Nil(t, result)
	var cse *entity.CompletionServiceError
	require.True(t, errors.As(err, &cse))
	assert.Equal(t, entity.StageForensic, cse.Stage)
	assert.Equal(t, -1, cse.ChunkIndex)
}

func TestEngine_Summarize_ForensicFocusDelegates(t *testing.T) {
	svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) { return forensicResponse, nil }}
	e := newEngine(t, svc, summarize.DefaultConfig())

	result, err := e.Summarize(context.Background(), entity.SummarizeInput{
		Content: entity.ContentUnit{Text: strings.Repeat("A long transcript sentence. ", 3000)},
		Options: entity.SummaryOptions{Focus: entity.FocusForensic},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, svc.calls())
	assert.Equal(t, 1, result.Metadata.ChunksProcessed)
	assert.Equal(t, entity.FocusForensic, result.Metadata.OptionsUsed.Focus)
	assert.Contains(t, result.SummaryText, "## 🔍 FORENSIC ANALYSIS REPORT")
}

func TestEngine_Introspection(t *testing.T) {
	e := newEngine(t, &mockCompletion{}, summarize.DefaultConfig())

	types := e.SupportedTypes()
	assert.Len(t, types, len(entity.SupportedContentTypes))
	types[0] = "mutated"
	assert.Equal(t, entity.ContentTypeText, e.SupportedTypes()[0])

	opts := e.Options()
	assert.Contains(t, opts.Focuses, entity.FocusForensic)
	assert.Len(t, opts.Lengths, 4)
	assert.Len(t, opts.Formats, 3)

	assert.True(t, summarize.IsForensic(entity.SummarizeInput{Forensic: true}))
	assert.True(t, summarize.IsForensic(entity.SummarizeInput{Options: entity.SummaryOptions{Focus: entity.FocusForensic}}))
	assert.False(t, summarize.IsForensic(entity.SummarizeInput{}))
}
