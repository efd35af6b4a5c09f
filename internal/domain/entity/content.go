// Package entity defines the core domain types of the summarization pipeline.
// It contains content units, chunks, summary options and results, forensic
// sections, and the domain-specific errors shared by every layer.
package entity

// ContentType is a classification label that drives extraction and prompt phrasing.
type ContentType string

const (
	ContentTypeAuto     ContentType = "auto"
	ContentTypeText     ContentType = "text"
	ContentTypeMarkdown ContentType = "markdown"
	ContentTypeHTML     ContentType = "html"
	ContentTypePDF      ContentType = "pdf"
	ContentTypeArticle  ContentType = "article"
	ContentTypeYouTube  ContentType = "youtube"
	ContentTypeVideo    ContentType = "video"
	ContentTypePodcast  ContentType = "podcast"
	ContentTypeAudio    ContentType = "audio"
	ContentTypeSocial   ContentType = "social"
	ContentTypeData     ContentType = "data"
	ContentTypeLongText ContentType = "long-text"

	// Forensic refinements. They only appear in the forensic prompt context.
	ContentTypeTutorial      ContentType = "tutorial"
	ContentTypeDemo          ContentType = "demo"
	ContentTypeReview        ContentType = "review"
	ContentTypeConfiguration ContentType = "configuration"
)

// SupportedContentTypes lists every tag a caller may pass explicitly.
var SupportedContentTypes = []ContentType{
	ContentTypeText,
	ContentTypeMarkdown,
	ContentTypeHTML,
	ContentTypePDF,
	ContentTypeArticle,
	ContentTypeYouTube,
	ContentTypeVideo,
	ContentTypePodcast,
	ContentTypeAudio,
	ContentTypeSocial,
	ContentTypeData,
	ContentTypeLongText,
}

// IsSupported reports whether ct may be requested explicitly.
// ContentTypeAuto is accepted as "detect for me".
func (ct ContentType) IsSupported() bool {
	if ct == ContentTypeAuto {
		return true
	}
	for _, s := range SupportedContentTypes {
		if s == ct {
			return true
		}
	}
	return false
}

// IsTranscript reports whether ct is spoken media whose text is a transcript.
func (ct ContentType) IsTranscript() bool {
	switch ct {
	case ContentTypeYouTube, ContentTypeVideo, ContentTypePodcast, ContentTypeAudio:
		return true
	}
	return false
}

// ContentUnit is one summarization request's input.
// Raw holds binary payloads (uploaded files); Text holds textual content.
// It is created per request and never mutated.
type ContentUnit struct {
	Text       string
	Raw        []byte
	SourceType ContentType
	SourceRef  string
	MIMEType   string
	FileName   string
}

// Body returns the textual form of the unit, falling back to Raw.
func (u ContentUnit) Body() string {
	if u.Text != "" {
		return u.Text
	}
	return string(u.Raw)
}

// Chunk is a bounded, possibly overlapping substring of the original text.
// Offsets count runes from the start of the original text; EndOffset is exclusive.
type Chunk struct {
	Index       int
	Text        string
	StartOffset int
	EndOffset   int
}

// Len returns the chunk length in runes.
func (c Chunk) Len() int {
	return c.EndOffset - c.StartOffset
}
