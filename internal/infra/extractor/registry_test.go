package extractor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytldr/internal/domain/entity"
	"ytldr/internal/infra/extractor"
)

func TestRegistry_Extract(t *testing.T) {
	tests := []struct {
		name    string
		unit    entity.ContentUnit
		ct      entity.ContentType
		want    string
		wantErr error
	}{
		{
			name: "plain text passes through",
			unit: entity.ContentUnit{Text: "<b>kept</b> as is"},
			ct:   entity.ContentTypeText,
			want: "<b>kept</b> as is",
		},
		{
			name: "pdf markers stripped",
			unit: entity.ContentUnit{Text: "[PDF] Annual results"},
			ct:   entity.ContentTypePDF,
			want: "Annual results",
		},
		{
			name:    "unreadable pdf payload",
			unit:    entity.ContentUnit{Raw: []byte("%PDF-1.4 broken")},
			ct:      entity.ContentTypePDF,
			wantErr: extractor.ErrPDFUnreadable,
		},
		{
			name:    "transcript url without transcript",
			unit:    entity.ContentUnit{Text: "https://www.youtube.com/watch?v=abc123"},
			ct:      entity.ContentTypeYouTube,
			wantErr: extractor.ErrTranscriptUnavailable,
		},
		{
			name: "transcript text passes through",
			unit: entity.ContentUnit{Text: "Welcome back to the channel. Today we look at routers."},
			ct:   entity.ContentTypeYouTube,
			want: "Welcome back to the channel. Today we look at routers.",
		},
		{
			name: "inline html stripped",
			unit: entity.ContentUnit{Text: "<div><p>Hello</p><script>x()</script><p>World</p></div>"},
			ct:   entity.ContentTypeHTML,
			want: "Hello\n\nWorld",
		},
		{
			name: "article without markup passes through",
			unit: entity.ContentUnit{Text: "Just a pasted article body."},
			ct:   entity.ContentTypeArticle,
			want: "Just a pasted article body.",
		},
	}

	r := extractor.NewRegistry(newTestFetcher(testConfig(), 1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Extract(context.Background(), tt.unit, tt.ct)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Extract_ArticleURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(articleHTML()))
	}))
	defer srv.Close()

	r := extractor.NewRegistry(newTestFetcher(testConfig(), 1))
	got, err := r.Extract(context.Background(), entity.ContentUnit{Text: srv.URL + "/story"}, entity.ContentTypeArticle)
	require.NoError(t, err)
	assert.Contains(t, got, "phased rollout")
}
