// Package detect classifies content into a content-type tag.
//
// Detection is a pure function of its inputs. The priority order is an
// explicit MIME type, then the source URL, then heuristics over the body,
// and finally "text".
package detect

import (
	"encoding/json"
	"regexp"
	"strings"

	"ytldr/internal/domain/entity"
	"ytldr/internal/utils/text"
)

// Hints carries optional out-of-band information about the content.
type Hints struct {
	URL      string
	MIMEType string
}

// longTextThreshold is the character count above which plain content is long-text.
const longTextThreshold = 50000

var mimeTypes = map[string]entity.ContentType{
	"application/pdf":  entity.ContentTypePDF,
	"video/mp4":        entity.ContentTypeVideo,
	"video/avi":        entity.ContentTypeVideo,
	"video/mov":        entity.ContentTypeVideo,
	"video/quicktime":  entity.ContentTypeVideo,
	"audio/mp3":        entity.ContentTypeAudio,
	"audio/wav":        entity.ContentTypeAudio,
	"audio/mpeg":       entity.ContentTypeAudio,
	"audio/m4a":        entity.ContentTypeAudio,
	"text/plain":       entity.ContentTypeText,
	"text/html":        entity.ContentTypeArticle,
	"application/json": entity.ContentTypeData,
}

type urlPattern struct {
	re  *regexp.Regexp
	tag entity.ContentType
}

// urlPatterns is ordered; the first match wins. Host patterns only match a
// whole host label, so dropbox.com is not x.com.
var urlPatterns = []urlPattern{
	{regexp.MustCompile(`(^|[/.])(youtube\.com|youtu\.be)([/:?#]|$)`), entity.ContentTypeYouTube},
	{regexp.MustCompile(`spotify\.com.*podcast`), entity.ContentTypePodcast},
	{regexp.MustCompile(`apple\.com.*podcast`), entity.ContentTypePodcast},
	{regexp.MustCompile(`(^|[/.])soundcloud\.com([/:?#]|$)`), entity.ContentTypeAudio},
	{regexp.MustCompile(`\.pdf(\?|$)`), entity.ContentTypePDF},
	{regexp.MustCompile(`(^|[/.])(medium\.com|nytimes\.com|bbc\.com|wikipedia\.org)([/:?#]|$)`), entity.ContentTypeArticle},
	{regexp.MustCompile(`(^|[/.])(twitter\.com|x\.com)([/:?#]|$)`), entity.ContentTypeSocial},
	{regexp.MustCompile(`\.mp4$|\.avi$|\.mov$|\.mkv$`), entity.ContentTypeVideo},
	{regexp.MustCompile(`\.mp3$|\.wav$|\.m4a$|\.aac$`), entity.ContentTypeAudio},
}

// Detect returns the content-type tag for content.
func Detect(content string, hints Hints) entity.ContentType {
	if hints.MIMEType != "" {
		return FromMIME(hints.MIMEType)
	}
	if hints.URL != "" {
		return FromURL(hints.URL)
	}
	return FromContent(content)
}

// DetectUnit classifies a ContentUnit using its own MIME type, file name and
// source reference as hints. Binary payloads without a MIME type are sniffed.
func DetectUnit(u entity.ContentUnit) entity.ContentType {
	if u.Text == "" && len(u.Raw) > 0 && u.MIMEType == "" {
		return FromFile(u.FileName, u.Raw)
	}
	hints := Hints{MIMEType: u.MIMEType}
	if entity.IsWebURL(u.SourceRef) {
		hints.URL = u.SourceRef
	}
	return Detect(u.Body(), hints)
}

// FromMIME maps a MIME type to a tag. Parameters such as charset are ignored
// and unknown types map to text.
func FromMIME(mimeType string) entity.ContentType {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if ct, ok := mimeTypes[mt]; ok {
		return ct
	}
	return entity.ContentTypeText
}

// FromURL matches url against the ordered pattern table. Unmatched web URLs
// are treated as articles.
func FromURL(url string) entity.ContentType {
	for _, p := range urlPatterns {
		if p.re.MatchString(url) {
			return p.tag
		}
	}
	return entity.ContentTypeArticle
}

// FromContent applies body heuristics in a fixed order.
func FromContent(content string) entity.ContentType {
	if strings.Contains(content, "%PDF-") || strings.Contains(content, "[PDF]") {
		return entity.ContentTypePDF
	}

	if strings.Contains(content, "[VIDEO") || strings.Contains(content, "TRANSCRIPT") {
		if strings.Contains(content, "SPEAKER") || strings.Contains(content, "[00:") {
			if strings.Contains(content, "VIDEO") {
				return entity.ContentTypeVideo
			}
			return entity.ContentTypeAudio
		}
	}

	if strings.Contains(content, "# ") || strings.Contains(content, "## ") {
		return entity.ContentTypeMarkdown
	}

	if json.Valid([]byte(content)) {
		return entity.ContentTypeData
	}

	if strings.Contains(content, "<html") || strings.Contains(content, "<body") {
		return entity.ContentTypeHTML
	}

	if text.CountRunes(content) > longTextThreshold {
		return entity.ContentTypeLongText
	}

	if text.CountSentences(content) > 20 && text.CountWords(content) > 300 {
		return entity.ContentTypeArticle
	}

	return entity.ContentTypeText
}
