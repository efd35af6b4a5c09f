package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nonContentSelector matches elements that never carry article text.
const nonContentSelector = "script, style, noscript, template, nav, header, footer, aside, iframe, form, svg"

// adSelector matches common advertising containers.
const adSelector = `[class*="advert"], [id*="advert"], [class*="banner"], [id*="banner"], [class*="popup"], [id*="popup"], [class~="ad"], [id="ad"]`

// blockSelector matches elements rendered on their own lines.
const blockSelector = "p, div, section, article, li, h1, h2, h3, h4, h5, h6, blockquote, pre, tr"

var (
	spaceRun        = regexp.MustCompile(`[ \t\f\v\r]+`)
	spaceBeforePunc = regexp.MustCompile(` +([.!?,;:])`)
	newlineRun      = regexp.MustCompile(`\n\s*\n(\s*\n)+`)
	lineEdges       = regexp.MustCompile(` *\n *`)
)

// StripHTML returns the visible text of an HTML fragment or document with
// navigation, ads and scripts removed. Block elements become line breaks and
// entities are decoded.
func StripHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find(nonContentSelector).Remove()
	doc.Find(adSelector).Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return CleanText(root.Text()), nil
}

// HTMLTitle returns the <title> text, falling back to the first <h1>.
func HTMLTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// CleanText normalizes whitespace while keeping paragraph breaks.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRun.ReplaceAllString(s, " ")
	s = lineEdges.ReplaceAllString(s, "\n")
	s = spaceBeforePunc.ReplaceAllString(s, "$1")
	s = newlineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
