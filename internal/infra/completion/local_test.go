package completion_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytldr/internal/domain/entity"
	"ytldr/internal/infra/completion"
)

func TestExtractive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "first three long sentences",
			in:   "The build is now twice as fast. Caching was rewritten from scratch! Is the API stable? Yes it is stable now.",
			want: "• The build is now twice as fast\n• Caching was rewritten from scratch\n• Is the API stable",
		},
		{
			name: "short sentences skipped",
			in:   "Hi. Ok! This sentence is long enough.",
			want: "• This sentence is long enough",
		},
		{
			name: "exactly ten runes is too short",
			in:   "abcdefghij. ",
			want: "• Text is too short to summarize effectively.",
		},
		{
			name: "empty",
			in:   "",
			want: "• Text is too short to summarize effectively.",
		},
		{
			name: "existing bullets are not doubled",
			in:   "• First summary line here.\n\n---\n\n• Second summary line here.",
			want: "• First summary line here\n• Second summary line here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, completion.Extractive(tt.in))
		})
	}
}

func TestLocal_Complete(t *testing.T) {
	l := completion.NewLocal()
	assert.Equal(t, completion.ProviderLocal, l.Name())

	out, err := l.Complete(context.Background(), entity.CompletionRequest{
		Instruction: "Summarize briefly.",
		Content:     "Content:\nGo modules replaced GOPATH. Workspaces came later.",
	})
	require.NoError(t, err)
	assert.Equal(t, "• Go modules replaced GOPATH\n• Workspaces came later", out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Complete(ctx, entity.CompletionRequest{Content: "anything at all here."})
	assert.ErrorIs(t, err, context.Canceled)
}
