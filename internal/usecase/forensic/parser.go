// Package forensic extracts and renders the four-section forensic report.
//
// Parsing is best-effort text matching over a free-form model response. A
// section is the text after its numbered bold heading up to the next
// section's marker or the end of the response. Missing sections come back as
// empty strings and are reported separately by Validate.
package forensic

import (
	"regexp"
	"strings"

	"ytldr/internal/domain/entity"
)

// Section names reported by Validate.
const (
	SectionStructuredOutline = "structuredOutline"
	SectionBulletSummary     = "bulletSummary"
	SectionTLDR              = "tldr"
	SectionLinkBreakdown     = "linkBreakdown"
)

type sectionPattern struct {
	name  string
	start *regexp.Regexp
	// end is nil for the last section, which runs to the end of the text.
	end *regexp.Regexp
}

var sectionPatterns = []sectionPattern{
	{
		name:  SectionStructuredOutline,
		start: regexp.MustCompile(`(?i)1\.\s*\*\*Structured Outline[^}]*?\*\*`),
		end:   regexp.MustCompile(`(?i)2\.|\*\*Bullet`),
	},
	{
		name:  SectionBulletSummary,
		start: regexp.MustCompile(`(?i)2\.\s*\*\*Bullet Summary[^}]*?\*\*`),
		end:   regexp.MustCompile(`(?i)3\.|\*\*TL;DR`),
	},
	{
		name:  SectionTLDR,
		start: regexp.MustCompile(`(?i)3\.\s*\*\*TL;DR[^}]*?\*\*`),
		end:   regexp.MustCompile(`(?i)4\.|\*\*Full`),
	},
	{
		name:  SectionLinkBreakdown,
		start: regexp.MustCompile(`(?i)4\.\s*\*\*Full Link Breakdown[^}]*?\*\*`),
	},
}

// Parse splits raw into sections. It never fails.
func Parse(raw string) entity.ForensicSections {
	found := make(map[string]string, len(sectionPatterns))
	for _, p := range sectionPatterns {
		found[p.name] = extract(raw, p)
	}
	return entity.ForensicSections{
		StructuredOutline: found[SectionStructuredOutline],
		BulletSummary:     found[SectionBulletSummary],
		TLDR:              found[SectionTLDR],
		LinkBreakdown:     found[SectionLinkBreakdown],
		RawText:           raw,
	}
}

func extract(raw string, p sectionPattern) string {
	loc := p.start.FindStringIndex(raw)
	if loc == nil {
		return ""
	}
	body := raw[loc[1]:]
	if p.end != nil {
		if end := p.end.FindStringIndex(body); end != nil {
			body = body[:end[0]]
		}
	}
	return strings.TrimSpace(body)
}

// Missing lists the names of empty sections in report order.
func Missing(s entity.ForensicSections) []string {
	var missing []string
	for _, sec := range []struct {
		name, text string
	}{
		{SectionStructuredOutline, s.StructuredOutline},
		{SectionBulletSummary, s.BulletSummary},
		{SectionTLDR, s.TLDR},
		{SectionLinkBreakdown, s.LinkBreakdown},
	} {
		if strings.TrimSpace(sec.text) == "" {
			missing = append(missing, sec.name)
		}
	}
	return missing
}

// Validate returns a *entity.ParseWarning naming every empty section, or nil
// when all four are present. The warning is meant for logs only.
func Validate(s entity.ForensicSections) error {
	missing := Missing(s)
	if len(missing) == 0 {
		return nil
	}
	return &entity.ParseWarning{Missing: missing}
}
