package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"

	"ytldr/internal/domain/entity"
)

// metadataCacheSize bounds how many pages' metadata is kept in memory.
const metadataCacheSize = 256

// MetadataFetcher loads OpenGraph, meta-tag and JSON-LD metadata for a page.
// Results are cached by URL; failures are not.
type MetadataFetcher struct {
	fetcher *Fetcher
	cache   *lru.Cache[string, entity.PageMetadata]
	now     func() time.Time
}

// NewMetadataFetcher creates a MetadataFetcher.
func NewMetadataFetcher(fetcher *Fetcher) *MetadataFetcher {
	cache, err := lru.New[string, entity.PageMetadata](metadataCacheSize)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &MetadataFetcher{fetcher: fetcher, cache: cache, now: time.Now}
}

// FetchMetadata fetches rawURL and parses its metadata.
func (m *MetadataFetcher) FetchMetadata(ctx context.Context, rawURL string) (*entity.PageMetadata, error) {
	if cached, ok := m.cache.Get(rawURL); ok {
		return clonePageMetadata(cached), nil
	}

	page, err := m.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	meta, err := ParseMetadata(page.Body, page.URL)
	if err != nil {
		return nil, err
	}
	meta.ExtractedAt = m.now().UTC()
	m.cache.Add(rawURL, *clonePageMetadata(*meta))
	return meta, nil
}

func clonePageMetadata(meta entity.PageMetadata) *entity.PageMetadata {
	meta.Keywords = slices.Clone(meta.Keywords)
	return &meta
}

// ParseMetadata reads page metadata from an HTML document.
// Relative image and icon URLs are resolved against pageURL, and the favicon
// falls back to scheme://host/favicon.ico.
func ParseMetadata(html []byte, pageURL *url.URL) (*entity.PageMetadata, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	ld := jsonLD(doc)
	meta := &entity.PageMetadata{
		URL: urlString(pageURL),
		Title: first(
			metaContent(doc, "property", "og:title"),
			metaContent(doc, "name", "twitter:title"),
			strings.TrimSpace(doc.Find("title").First().Text()),
			ld.Headline,
		),
		Description: first(
			metaContent(doc, "property", "og:description"),
			metaContent(doc, "name", "description"),
			metaContent(doc, "name", "twitter:description"),
			ld.Description,
		),
		Thumbnail: resolve(pageURL, first(
			metaContent(doc, "property", "og:image"),
			metaContent(doc, "name", "twitter:image"),
			ld.image(),
		)),
		SiteName: first(
			metaContent(doc, "property", "og:site_name"),
			metaContent(doc, "name", "application-name"),
		),
		Author: first(
			metaContent(doc, "name", "author"),
			metaContent(doc, "property", "article:author"),
			ld.author(),
		),
		Published: first(
			metaContent(doc, "property", "article:published_time"),
			ld.DatePublished,
		),
		Keywords: keywords(metaContent(doc, "name", "keywords")),
	}

	icon := ""
	doc.Find("link[rel]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		rel := strings.ToLower(s.AttrOr("rel", ""))
		if strings.Contains(rel, "icon") {
			icon = strings.TrimSpace(s.AttrOr("href", ""))
		}
		return icon == ""
	})
	meta.Favicon = resolve(pageURL, icon)
	if meta.Favicon == "" && pageURL != nil && pageURL.Host != "" {
		meta.Favicon = pageURL.Scheme + "://" + pageURL.Host + "/favicon.ico"
	}

	return meta, nil
}

func metaContent(doc *goquery.Document, attr, key string) string {
	sel := doc.Find(fmt.Sprintf(`meta[%s=%q]`, attr, key)).First()
	return strings.TrimSpace(sel.AttrOr("content", ""))
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolve(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if base == nil {
		return u.String()
	}
	return base.ResolveReference(u).String()
}

func keywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// linkedData holds the JSON-LD fields used as metadata fallbacks.
type linkedData struct {
	Headline      string          `json:"headline"`
	Description   string          `json:"description"`
	DatePublished string          `json:"datePublished"`
	Author        json.RawMessage `json:"author"`
	Image         json.RawMessage `json:"image"`
}

// jsonLD returns the first JSON-LD object on the page that decodes.
func jsonLD(doc *goquery.Document) linkedData {
	var found linkedData
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if strings.HasPrefix(raw, "[") {
			var list []linkedData
			if json.Unmarshal([]byte(raw), &list) == nil && len(list) > 0 {
				found = list[0]
				return false
			}
			return true
		}
		return json.Unmarshal([]byte(raw), &found) != nil
	})
	return found
}

// author accepts "name", {"name": ...} or a list of either.
func (l linkedData) author() string {
	return nameOf(l.Author)
}

// image accepts "url", {"url": ...} or a list of either.
func (l linkedData) image() string {
	var s string
	if json.Unmarshal(l.Image, &s) == nil {
		return s
	}
	var obj struct {
		URL string `json:"url"`
	}
	if json.Unmarshal(l.Image, &obj) == nil && obj.URL != "" {
		return obj.URL
	}
	var list []json.RawMessage
	if json.Unmarshal(l.Image, &list) == nil && len(list) > 0 {
		return linkedData{Image: list[0]}.image()
	}
	return ""
}

func nameOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil && obj.Name != "" {
		return obj.Name
	}
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
		return nameOf(list[0])
	}
	return ""
}
