package extractor

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Article is readable text extracted from a page.
type Article struct {
	Title string
	Text  string
	URL   string
}

// ArticleExtractor extracts main article text with the Mozilla Readability
// algorithm. Remote pages are fetched through a Fetcher.
type ArticleExtractor struct {
	fetcher *Fetcher
}

// NewArticleExtractor creates an ArticleExtractor.
func NewArticleExtractor(fetcher *Fetcher) *ArticleExtractor {
	return &ArticleExtractor{fetcher: fetcher}
}

// FromURL fetches rawURL and extracts its article.
func (a *ArticleExtractor) FromURL(ctx context.Context, rawURL string) (*Article, error) {
	page, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return FromHTML(page.Body, page.URL)
}

// FromHTML extracts the article from an HTML document. When Readability
// finds nothing, the stripped page text is used instead.
func FromHTML(html []byte, pageURL *url.URL) (*Article, error) {
	article, err := readability.FromReader(bytes.NewReader(html), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return &Article{
			Title: strings.TrimSpace(article.Title),
			Text:  CleanText(article.TextContent),
			URL:   urlString(pageURL),
		}, nil
	}

	text, stripErr := StripHTML(string(html))
	if stripErr != nil || text == "" {
		if err == nil {
			err = fmt.Errorf("no readable content found")
		}
		return nil, fmt.Errorf("%w: %v", ErrReadabilityFailed, err)
	}

	slog.Debug("readability found no article, using stripped page text",
		slog.String("url", urlString(pageURL)),
		slog.Int("content_length", len(text)))
	return &Article{Title: HTMLTitle(string(html)), Text: text, URL: urlString(pageURL)}, nil
}

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}
