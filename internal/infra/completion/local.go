package completion

import (
	"context"
	"regexp"
	"strings"

	"ytldr/internal/domain/entity"
)

const (
	localMaxSentences     = 3
	localMinSentenceRunes = 10
	localTooShort         = "• Text is too short to summarize effectively."
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Local is an extractive completion service that needs no network.
// It returns the first three sentences longer than ten characters as bullets
// and ignores the instruction.
type Local struct{}

// NewLocal creates a Local service.
func NewLocal() *Local {
	return &Local{}
}

// Name implements summarize.Named.
func (l *Local) Name() string { return ProviderLocal }

// Complete implements the completion service. It never fails except on a
// canceled context.
func (l *Local) Complete(ctx context.Context, req entity.CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return Extractive(stripLabel(req.Content)), nil
}

var promptLabels = []string{"Content:\n", "Combined sections:\n"}

// stripLabel drops the prompt label that precedes the text.
func stripLabel(content string) string {
	for _, l := range promptLabels {
		if strings.HasPrefix(content, l) {
			return content[len(l):]
		}
	}
	return content
}

// Extractive returns up to three leading sentences formatted as bullets.
// Existing bullet markers and separator lines are not repeated.
func Extractive(text string) string {
	bullets := make([]string, 0, localMaxSentences)
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(strings.TrimLeft(s, "•-* \t\r\n"))
		if len([]rune(s)) <= localMinSentenceRunes {
			continue
		}
		bullets = append(bullets, "• "+s)
		if len(bullets) == localMaxSentences {
			break
		}
	}
	if len(bullets) == 0 {
		return localTooShort
	}
	return strings.Join(bullets, "\n")
}
