// Package prompt assembles completion instructions from summary options.
//
// Every clause comes from a fixed table keyed by an enum value, so option
// values are never interpolated into the instruction text.
package prompt

import (
	"fmt"
	"strings"

	"ytldr/internal/domain/entity"
)

// SectionSeparator joins chunk summaries before the reduce call.
const SectionSeparator = "\n\n---\n\n"

var lengthClauses = map[entity.Length]string{
	entity.LengthShort:    "Create a brief summary (2-3 sentences).",
	entity.LengthMedium:   "Create a concise summary (4-6 sentences).",
	entity.LengthLong:     "Create a detailed summary (8-12 sentences).",
	entity.LengthDetailed: "Create a comprehensive summary with key details.",
}

var focusClauses = map[entity.Focus]string{
	entity.FocusKeyPoints: "Focus on the most important points and takeaways.",
	entity.FocusAnalysis:  "Include analysis of the main arguments and implications.",
	entity.FocusExecutive: "Format as an executive summary with key decisions and actions.",
}

const defaultFocusClause = "Provide a balanced overview of the content."

var contentTypeClauses = map[entity.ContentType]string{
	entity.ContentTypeVideo:   "This is a video transcript. Focus on the main discussion points and conclusions.",
	entity.ContentTypeYouTube: "This is a video transcript. Focus on the main discussion points and conclusions.",
	entity.ContentTypePodcast: "This is a podcast transcript. Highlight key topics, guest insights, and main takeaways.",
	entity.ContentTypeAudio:   "This is a podcast transcript. Highlight key topics, guest insights, and main takeaways.",
	entity.ContentTypePDF:     "This is document content. Focus on the core information and key findings.",
	entity.ContentTypeArticle: "This is an article. Summarize the main thesis, supporting points, and conclusions.",
}

var formatClauses = map[entity.Format]string{
	entity.FormatBullet:    "Format the summary as bullet points.",
	entity.FormatParagraph: "Format the summary as coherent paragraphs.",
}

const defaultFormatClause = "Format the summary in markdown with appropriate headings and structure."

// Build returns the instruction for opts and ct: a length clause, a focus
// clause, an optional content-type clause, and a format clause, separated by
// single spaces. Unknown lengths contribute no clause; unknown focuses and
// formats use the general defaults.
func Build(opts entity.SummaryOptions, ct entity.ContentType) string {
	clauses := make([]string, 0, 4)
	if c, ok := lengthClauses[opts.Length]; ok {
		clauses = append(clauses, c)
	}
	if c, ok := focusClauses[opts.Focus]; ok {
		clauses = append(clauses, c)
	} else {
		clauses = append(clauses, defaultFocusClause)
	}
	if c, ok := contentTypeClauses[ct]; ok {
		clauses = append(clauses, c)
	}
	if c, ok := formatClauses[opts.Format]; ok {
		clauses = append(clauses, c)
	} else {
		clauses = append(clauses, defaultFormatClause)
	}
	return strings.Join(clauses, " ")
}

// Single is the request for a text that fits in one chunk.
func Single(instruction, text string) entity.CompletionRequest {
	return entity.CompletionRequest{
		Instruction: instruction,
		Content:     "Content:\n" + text,
	}
}

// Section is the map-phase request for chunk index (0-based) of total.
func Section(index, total int, text string) entity.CompletionRequest {
	return entity.CompletionRequest{
		Instruction: fmt.Sprintf("Summarize this section (part %d/%d):", index+1, total),
		Content:     text,
	}
}

// Combine is the reduce-phase request over ordered chunk summaries.
func Combine(instruction string, summaries []entity.ChunkSummary) entity.CompletionRequest {
	parts := make([]string, len(summaries))
	for i, s := range summaries {
		parts[i] = s.Text
	}
	return entity.CompletionRequest{
		Instruction: instruction,
		Content:     "Combined sections:\n" + strings.Join(parts, SectionSeparator),
	}
}
