package entity

import "time"

// ForensicSections holds the four named sections of a forensic response.
// Every field is a plain string so a missing section is "" and never nil.
type ForensicSections struct {
	StructuredOutline string `json:"structured_outline"`
	BulletSummary     string `json:"bullet_summary"`
	TLDR              string `json:"tldr"`
	LinkBreakdown     string `json:"link_breakdown"`
	RawText           string `json:"raw_text"`
}

// PageMetadata is the site information shown above a forensic report.
type PageMetadata struct {
	URL         string    `json:"url"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Favicon     string    `json:"favicon,omitempty"`
	SiteName    string    `json:"site_name,omitempty"`
	Author      string    `json:"author,omitempty"`
	Published   string    `json:"published,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	ExtractedAt time.Time `json:"extracted_at"`
}

// ForensicMetadata accompanies a ForensicResult.
type ForensicMetadata struct {
	ContentType      ContentType   `json:"content_type"`
	DetectedSubtype  ContentType   `json:"detected_subtype"`
	OriginalLength   int           `json:"original_length"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	MissingSections  []string      `json:"missing_sections,omitempty"`
	Page             *PageMetadata `json:"page,omitempty"`
	Provider         string        `json:"provider,omitempty"`
}

// ForensicResult is the output of forensic-mode summarization.
type ForensicResult struct {
	SummaryText string           `json:"summary"`
	Sections    ForensicSections `json:"sections"`
	Metadata    ForensicMetadata `json:"metadata"`
}

// CompletionRequest is what the pipeline sends to a completion service.
// Temperature and MaxOutputTokens are tuning knobs; adapters may ignore them.
type CompletionRequest struct {
	Instruction     string
	Content         string
	Temperature     float64
	MaxOutputTokens int
}

// Prompt joins instruction and content into one prompt string.
func (r CompletionRequest) Prompt() string {
	switch {
	case r.Instruction == "":
		return r.Content
	case r.Content == "":
		return r.Instruction
	}
	return r.Instruction + "\n\n" + r.Content
}
