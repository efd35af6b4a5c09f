package detect

import (
	"regexp"
	"strings"
	"unicode"

	"ytldr/internal/domain/entity"
	"ytldr/internal/utils/text"
)

// Complexity labels reported in ContentStats.
const (
	ComplexitySimple  = "simple"
	ComplexityLong    = "long"
	ComplexityComplex = "complex"
)

const wordsPerMinute = 200

var (
	mediaMarker = regexp.MustCompile(`\[VIDEO\]|\[AUDIO\]|\[IMAGE\]|\[PDF\]`)
	longWord    = regexp.MustCompile(`\b\w{8,}\b`)
)

// Analyze computes size, reading-time, token and complexity estimates for
// content. A nil counter uses text.HeuristicCounter.
func Analyze(content string, counter text.TokenCounter) entity.ContentStats {
	if counter == nil {
		counter = text.HeuristicCounter{}
	}

	words := text.CountWords(content)
	stats := entity.ContentStats{
		Size:                    text.CountRunes(content),
		EstimatedWords:          words,
		EstimatedReadingMinutes: (words + wordsPerMinute - 1) / wordsPerMinute,
		EstimatedTokens:         counter.CountTokens(content),
		HasMedia:                mediaMarker.MatchString(content),
		Complexity:              ComplexitySimple,
	}
	if words == 0 {
		return stats
	}

	letters := text.CountRunes(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, content))
	avgWordLength := float64(letters) / float64(words)
	longWords := len(longWord.FindAllStringIndex(content, -1))

	switch {
	case avgWordLength > 6 || float64(longWords) > float64(words)*0.1:
		stats.Complexity = ComplexityComplex
	case words > 1000:
		stats.Complexity = ComplexityLong
	}
	return stats
}

// TypeCapabilities describes what the pipeline can do with a content type.
type TypeCapabilities struct {
	Extractable  bool `json:"extractable"`
	Summarizable bool `json:"summarizable"`
	Translatable bool `json:"translatable"`
}

var capabilities = map[entity.ContentType]TypeCapabilities{
	entity.ContentTypeText:     {true, true, true},
	entity.ContentTypeMarkdown: {true, true, true},
	entity.ContentTypeHTML:     {true, true, true},
	entity.ContentTypePDF:      {true, true, false},
	entity.ContentTypeArticle:  {true, true, true},
	entity.ContentTypeYouTube:  {false, true, true},
	entity.ContentTypeVideo:    {false, true, true},
	entity.ContentTypePodcast:  {false, true, true},
	entity.ContentTypeAudio:    {false, true, true},
	entity.ContentTypeSocial:   {true, true, true},
	entity.ContentTypeData:     {true, false, false},
	entity.ContentTypeLongText: {true, true, true},
}

// Capabilities returns the capability row for ct. Unknown types are
// extractable and summarizable but not translatable.
func Capabilities(ct entity.ContentType) TypeCapabilities {
	if c, ok := capabilities[ct]; ok {
		return c
	}
	return TypeCapabilities{Extractable: true, Summarizable: true}
}

// ForensicSubtype refines base with keyword cues used only in the forensic
// prompt context. The first matching cue wins; otherwise base is returned.
func ForensicSubtype(content string, base entity.ContentType) entity.ContentType {
	switch {
	case strings.Contains(content, "tutorial") || strings.Contains(content, "guide"):
		return entity.ContentTypeTutorial
	case strings.Contains(content, "demo") || strings.Contains(content, "demonstration"):
		return entity.ContentTypeDemo
	case strings.Contains(content, "review") || strings.Contains(content, "comparison"):
		return entity.ContentTypeReview
	case strings.Contains(content, "configuration") || strings.Contains(content, "setup"):
		return entity.ContentTypeConfiguration
	}
	return base
}
