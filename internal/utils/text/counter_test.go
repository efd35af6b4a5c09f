package text_test

import (
	"testing"

	"ytldr/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "ASCII text", input: "hello", expected: 5},
		{name: "ASCII with spaces", input: "hello world", expected: 11},
		{name: "Japanese kanji", input: "日本語", expected: 3},
		{name: "mixed", input: "hello世界", expected: 7},
		{name: "emoji", input: "Hello👋", expected: 6},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	if got := text.CountWords("  one two\tthree\nfour  "); got != 4 {
		t.Errorf("CountWords = %d, want 4", got)
	}
	if got := text.CountWords(""); got != 0 {
		t.Errorf("CountWords(empty) = %d, want 0", got)
	}
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"no terminator", 1},
		{"One. Two!", 3},
		{"Wait... what?! Really.", 4},
		{"", 1},
	}
	for _, tt := range tests {
		if got := text.CountSentences(tt.input); got != tt.expected {
			t.Errorf("CountSentences(%q) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestSentences(t *testing.T) {
	got := text.Sentences("Short. This sentence is long enough! Tiny? Another sentence that qualifies.", 10)
	want := []string{"This sentence is long enough", "Another sentence that qualifies"}
	if len(got) != len(want) {
		t.Fatalf("Sentences = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sentences[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := text.Truncate("こんにちは世界", 5, "..."); got != "こんにちは..." {
		t.Errorf("Truncate = %q", got)
	}
	if got := text.Truncate("short", 10, "..."); got != "short" {
		t.Errorf("Truncate should not cut short text, got %q", got)
	}
}

func TestHeuristicCounter(t *testing.T) {
	c := text.HeuristicCounter{}
	tests := map[string]int{
		"":         0,
		"abc":      1,
		"abcd":     1,
		"abcde":    2,
		"日本語日本語日本": 2,
	}
	for in, want := range tests {
		if got := c.CountTokens(in); got != want {
			t.Errorf("CountTokens(%q) = %d, want %d", in, got, want)
		}
	}
}
