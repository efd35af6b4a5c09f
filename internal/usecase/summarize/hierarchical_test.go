package summarize_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytldr/internal/domain/entity"
	"ytldr/internal/usecase/chunk"
	"ytldr/internal/usecase/prompt"
	"ytldr/internal/usecase/summarize"
)

func threeChunks() []entity.Chunk {
	return []entity.Chunk{
		{Index: 0, Text: "alpha", StartOffset: 0, EndOffset: 5},
		{Index: 1, Text: "bravo", StartOffset: 5, EndOffset: 10},
		{Index: 2, Text: "charlie", StartOffset: 10, EndOffset: 17},
	}
}

func TestHierarchical_SingleChunk(t *testing.T) {
	svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) { return "• short", nil }}
	h := &summarize.Hierarchical{Temperature: 0.3, MaxOutputTokens: 2048}
	opts := entity.SummaryOptions{Length: entity.LengthShort, Format: entity.FormatBullet, Focus: entity.FocusGeneral}
	chunks := chunk.Split("The only chunk of text.", 100, 10)

	result, err := h.Summarize(context.Background(), chunks, opts, entity.ContentTypeText, svc)

	require.NoError(t, err)
	assert.Equal(t, 1, svc.calls())
	assert.Equal(t, "• short", result.SummaryText)
	assert.Equal(t, 1, result.Metadata.ChunksProcessed)
	assert.Equal(t, 23, result.Metadata.OriginalLength)
	assert.Equal(t, opts, result.Metadata.OptionsUsed)
	assert.Equal(t, "mock", result.Metadata.Provider)

	req := svc.snapshot()[0]
	assert.Equal(t, prompt.Build(opts, entity.ContentTypeText)+"\n\nContent:\nThe only chunk of text.", req.Prompt())
	assert.Equal(t, 0.3, req.Temperature)
	assert.Equal(t, 2048, req.MaxOutputTokens)
}

func TestHierarchical_MapReduce(t *testing.T) {
	svc := &mockCompletion{respond: func(req entity.CompletionRequest) (string, error) {
		if isSectionRequest(req) {
			return "S:" + req.Content, nil
		}
		return "final", nil
	}}
	h := &summarize.Hierarchical{}
	opts := entity.DefaultSummaryOptions()

	result, err := h.Summarize(context.Background(), threeChunks(), opts, entity.ContentTypeArticle, svc)

	require.NoError(t, err)
	assert.Equal(t, 4, svc.calls())
	assert.Equal(t, 3, result.Metadata.ChunksProcessed)
	assert.Equal(t, 17, result.Metadata.OriginalLength)
	assert.Equal(t, "final", result.SummaryText)

	reqs := svc.snapshot()
	assert.Equal(t, "Summarize this section (part 1/3):\n\nalpha", reqs[0].Prompt())
	assert.Equal(t, "Summarize this section (part 2/3):\n\nbravo", reqs[1].Prompt())
	assert.Equal(t, "Summarize this section (part 3/3):\n\ncharlie", reqs[2].Prompt())
	assert.Equal(t,
		prompt.Build(opts, entity.ContentTypeArticle)+"\n\nCombined sections:\nS:alpha\n\n---\n\nS:bravo\n\n---\n\nS:charlie",
		reqs[3].Prompt())
}

func TestHierarchical_ConcurrentMapPreservesOrder(t *testing.T) {
	chunks := make([]entity.Chunk, 6)
	for i := range chunks {
		chunks[i] = entity.Chunk{Index: i, Text: fmt.Sprintf("c%d", i), StartOffset: i * 2, EndOffset: i*2 + 2}
	}

	var inFlight, peak atomic.Int32
	var reduce atomic.Value
	svc := &mockCompletion{respond: func(req entity.CompletionRequest) (string, error) {
		if !isSectionRequest(req) {
			reduce.Store(req.Content)
			return "final", nil
		}
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		// Earlier chunks finish last.
		var idx int
		_, _ = fmt.Sscanf(req.Content, "c%d", &idx)
		time.Sleep(time.Duration(len(chunks)-idx) * 5 * time.Millisecond)
		return "S" + req.Content[1:], nil
	}}

	h := &summarize.Hierarchical{MapConcurrency: 3}
	result, err := h.Summarize(context.Background(), chunks, entity.DefaultSummaryOptions(), entity.ContentTypeText, svc)

	require.NoError(t, err)
	assert.Equal(t, 7, svc.calls())
	assert.Equal(t, 6, result.Metadata.ChunksProcessed)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.Equal(t, "Combined sections:\n"+strings.Join([]string{"S0", "S1", "S2", "S3", "S4", "S5"}, prompt.SectionSeparator), reduce.Load())
}

func TestHierarchical_Failures(t *testing.T) {
	boom := errors.New("HTTP 503")

	tests := []struct {
		name        string
		concurrency int
		failOn      func(req entity.CompletionRequest) bool
		wantStage   string
		wantChunk   int
		maxCalls    int
	}{
		{
			name:      "map failure aborts before reduce",
			failOn:    func(req entity.CompletionRequest) bool { return req.Content == "bravo" },
			wantStage: entity.StageMap,
			wantChunk: 1,
			maxCalls:  2,
		},
		{
			name:        "concurrent map failure",
			concurrency: 4,
			failOn:      func(req entity.CompletionRequest) bool { return req.Content == "charlie" },
			wantStage:   entity.StageMap,
			wantChunk:   2,
			maxCalls:    3,
		},
		{
			name:      "reduce failure",
			failOn:    func(req entity.CompletionRequest) bool { return !isSectionRequest(req) },
			wantStage: entity.StageReduce,
			wantChunk: -1,
			maxCalls:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCompletion{respond: func(req entity.CompletionRequest) (string, error) {
				if tt.failOn(req) {
					return "", boom
				}
				return "ok", nil
			}}
			h := &summarize.Hierarchical{MapConcurrency: tt.concurrency}

			result, err := h.Summarize(context.Background(), threeChunks(), entity.DefaultSummaryOptions(), entity.ContentTypeText, svc)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrCompletionService)
			assert.ErrorIs(t, err, boom)

			var cse *entity.CompletionServiceError
			require.True(t, errors.As(err, &cse))
			assert.Equal(t, tt.wantStage, cse.Stage)
			assert.Equal(t, tt.wantChunk, cse.ChunkIndex)
			assert.Equal(t, "mock", cse.Provider)
			assert.LessOrEqual(t, svc.calls(), tt.maxCalls)
		})
	}
}

func TestHierarchical_SingleChunkFailure(t *testing.T) {
	svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) { return "", errors.New("timeout") }}
	h := &summarize.Hierarchical{}

	result, err := h.Summarize(context.Background(), threeChunks()[:1], entity.DefaultSummaryOptions(), entity.ContentTypeText, svc)

	assert.Nil(t, result)
	var cse *entity.CompletionServiceError
	require.True(t, errors.As(err, &cse))
	assert.Equal(t, entity.StageSingle, cse.Stage)
}

func TestHierarchical_CanceledBetweenCalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &mockCompletion{respond: func(entity.CompletionRequest) (string, error) {
		cancel()
		return "ok", nil
	}}
	h := &summarize.Hierarchical{}

	result, err := h.Summarize(ctx, threeChunks(), entity.DefaultSummaryOptions(), entity.ContentTypeText, svc)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, svc.calls())
}

func TestHierarchical_InvalidArguments(t *testing.T) {
	h := &summarize.Hierarchical{}

	_, err := h.Summarize(context.Background(), nil, entity.DefaultSummaryOptions(), entity.ContentTypeText, &mockCompletion{})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = h.Summarize(context.Background(), threeChunks(), entity.DefaultSummaryOptions(), entity.ContentTypeText, nil)
	assert.Error(t, err)
}

func TestCompletionFunc(t *testing.T) {
	var svc summarize.CompletionService = summarize.CompletionFunc(func(ctx context.Context, req entity.CompletionRequest) (string, error) {
		return strings.ToUpper(req.Content), nil
	})
	got, err := svc.Complete(context.Background(), entity.CompletionRequest{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "HI", got)
}
