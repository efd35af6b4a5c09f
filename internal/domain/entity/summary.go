package entity

import "strings"

// Length controls how long the final summary should be.
type Length string

const (
	LengthShort    Length = "short"
	LengthMedium   Length = "medium"
	LengthLong     Length = "long"
	LengthDetailed Length = "detailed"
)

// Format controls the layout of the final summary.
type Format string

const (
	FormatMarkdown  Format = "markdown"
	FormatBullet    Format = "bullet"
	FormatParagraph Format = "paragraph"
)

// Focus controls what the summary emphasises.
type Focus string

const (
	FocusGeneral   Focus = "general"
	FocusKeyPoints Focus = "key-points"
	FocusAnalysis  Focus = "analysis"
	FocusExecutive Focus = "executive"
	FocusForensic  Focus = "forensic"
)

var (
	// Lengths lists the accepted Length values.
	Lengths = []Length{LengthShort, LengthMedium, LengthLong, LengthDetailed}
	// Formats lists the accepted Format values.
	Formats = []Format{FormatMarkdown, FormatBullet, FormatParagraph}
	// Focuses lists the accepted Focus values.
	Focuses = []Focus{FocusGeneral, FocusKeyPoints, FocusAnalysis, FocusExecutive, FocusForensic}
)

// SummaryOptions is supplied by the caller and read-only through the pipeline.
type SummaryOptions struct {
	Length Length `json:"length" yaml:"length"`
	Format Format `json:"format" yaml:"format"`
	Focus  Focus  `json:"focus" yaml:"focus"`
}

// DefaultSummaryOptions returns medium / markdown / general.
func DefaultSummaryOptions() SummaryOptions {
	return SummaryOptions{
		Length: LengthMedium,
		Format: FormatMarkdown,
		Focus:  FocusGeneral,
	}
}

// WithDefaults fills zero-valued fields from DefaultSummaryOptions.
func (o SummaryOptions) WithDefaults() SummaryOptions {
	d := DefaultSummaryOptions()
	if o.Length == "" {
		o.Length = d.Length
	}
	if o.Format == "" {
		o.Format = d.Format
	}
	if o.Focus == "" {
		o.Focus = d.Focus
	}
	return o
}

// Validate checks every field against its accepted values.
func (o SummaryOptions) Validate() error {
	if !contains(Lengths, o.Length) {
		return NewInvalidInput("length", "must be one of "+join(Lengths))
	}
	if !contains(Formats, o.Format) {
		return NewInvalidInput("format", "must be one of "+join(Formats))
	}
	if !contains(Focuses, o.Focus) {
		return NewInvalidInput("focus", "must be one of "+join(Focuses))
	}
	return nil
}

// SummarizeInput is what a caller hands to the engine.
type SummarizeInput struct {
	Content  ContentUnit
	Type     ContentType
	Options  SummaryOptions
	Forensic bool
	// IncludeMetadata asks forensic mode to fetch page metadata for SourceRef.
	IncludeMetadata bool
}

// ChunkSummary is the map-phase output for one chunk.
type ChunkSummary struct {
	ChunkIndex int
	Text       string
}

// ContentStats describes the analysed input.
type ContentStats struct {
	Size                    int    `json:"size"`
	EstimatedWords          int    `json:"estimated_words"`
	EstimatedReadingMinutes int    `json:"estimated_reading_minutes"`
	EstimatedTokens         int    `json:"estimated_tokens"`
	HasMedia                bool   `json:"has_media"`
	Complexity              string `json:"complexity"`
}

// SummaryMetadata accompanies every SummaryResult.
type SummaryMetadata struct {
	ContentType      ContentType    `json:"content_type"`
	OriginalLength   int            `json:"original_length"`
	ChunksProcessed  int            `json:"chunks_processed"`
	ProcessingTimeMs int64          `json:"processing_time_ms"`
	OptionsUsed      SummaryOptions `json:"options_used"`
	Provider         string         `json:"provider,omitempty"`
	Stats            ContentStats   `json:"stats"`
}

// SummaryResult is the final artifact returned to the caller.
type SummaryResult struct {
	SummaryText string          `json:"summary"`
	Metadata    SummaryMetadata `json:"metadata"`
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func join[T ~string](set []T) string {
	parts := make([]string, len(set))
	for i, s := range set {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
