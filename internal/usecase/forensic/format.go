package forensic

import (
	"strings"
	"time"

	"ytldr/internal/domain/entity"
)

// Format renders the report as markdown. The site header appears only when
// meta is non-nil, and empty sections are skipped.
func Format(s entity.ForensicSections, meta *entity.PageMetadata, model string, at time.Time) string {
	var b strings.Builder

	if meta != nil {
		b.WriteString("📸 **Site Thumbnail:** " + orDefault(meta.Thumbnail, "Not available") + "\n")
		b.WriteString("🔗 **URL:** " + meta.URL + "\n")
		b.WriteString("📄 **Title:** " + orDefault(meta.Title, "Not extracted") + "\n")
		b.WriteString("📝 **Description:** " + orDefault(meta.Description, "Not available") + "\n\n")
		b.WriteString("---\n\n")
	}

	b.WriteString("## 🔍 FORENSIC ANALYSIS REPORT\n\n")

	for _, sec := range []struct {
		heading, body string
	}{
		{"### 1. Structured Outline", s.StructuredOutline},
		{"### 2. Bullet Summary (w/ Emojis)", s.BulletSummary},
		{"### 3. TL;DR", s.TLDR},
		{"### 4. Full Link Breakdown", s.LinkBreakdown},
	} {
		if sec.body == "" {
			continue
		}
		b.WriteString(sec.heading + "\n\n")
		b.WriteString(sec.body + "\n\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("**Analysis completed at:** " + at.UTC().Format(time.RFC3339) + "\n")
	b.WriteString("**Analysis method:** Ultra-detailed forensic extraction\n")
	b.WriteString("**AI Model:** " + orDefault(model, "unknown") + "\n")

	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
