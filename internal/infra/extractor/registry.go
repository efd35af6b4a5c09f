package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"ytldr/internal/domain/entity"
	"ytldr/internal/observability/metrics"
)

// Registry picks an extraction strategy per content type.
//
//   - pdf: binary PDF payloads are parsed; pasted PDF text loses its markers.
//   - article, html: a bare URL is fetched and run through Readability;
//     inline HTML is stripped; plain text passes through.
//   - youtube, video, podcast, audio: transcript text passes through; a bare
//     URL fails with ErrTranscriptUnavailable.
//   - everything else passes through.
type Registry struct {
	articles *ArticleExtractor
}

// NewRegistry creates a Registry that fetches pages with fetcher.
func NewRegistry(fetcher *Fetcher) *Registry {
	return &Registry{articles: NewArticleExtractor(fetcher)}
}

// Extract implements summarize.Extractor.
func (r *Registry) Extract(ctx context.Context, unit entity.ContentUnit, ct entity.ContentType) (string, error) {
	start := time.Now()
	text, extracted, err := r.extract(ctx, unit, ct)
	switch {
	case err != nil:
		metrics.RecordExtractionFailed(string(ct), time.Since(start))
	case extracted:
		metrics.RecordExtractionSuccess(string(ct), time.Since(start), utf8.RuneCountInString(text))
	default:
		metrics.RecordExtractionPassthrough(string(ct))
	}
	return text, err
}

// extract reports whether any transformation was applied.
func (r *Registry) extract(ctx context.Context, unit entity.ContentUnit, ct entity.ContentType) (string, bool, error) {
	body := unit.Body()

	switch {
	case ct == entity.ContentTypePDF:
		if IsPDF(unit.Raw) {
			text, err := PDFText(unit.Raw)
			return text, true, err
		}
		if IsPDF([]byte(body)) {
			text, err := PDFText([]byte(body))
			return text, true, err
		}
		return StripPDFMarkers(body), true, nil

	case ct.IsTranscript():
		if isBareURL(body) {
			return "", false, fmt.Errorf("%s %s: %w", ct, strings.TrimSpace(body), ErrTranscriptUnavailable)
		}
		return body, false, nil

	case ct == entity.ContentTypeArticle || ct == entity.ContentTypeHTML:
		if isBareURL(body) {
			article, err := r.articles.FromURL(ctx, strings.TrimSpace(body))
			if err != nil {
				return "", false, err
			}
			return article.Text, true, nil
		}
		if !looksLikeHTML(body) {
			return body, false, nil
		}
		if ct == entity.ContentTypeArticle {
			article, err := FromHTML([]byte(body), nil)
			if err != nil {
				return "", false, err
			}
			return article.Text, true, nil
		}
		text, err := StripHTML(body)
		return text, true, err
	}

	return body, false, nil
}

func isBareURL(s string) bool {
	s = strings.TrimSpace(s)
	return entity.IsWebURL(s) && !strings.ContainsAny(s, " \t\n")
}

func looksLikeHTML(s string) bool {
	i := strings.IndexByte(s, '<')
	return i >= 0 && strings.IndexByte(s[i:], '>') > 0
}
