// Package text provides utilities for text processing and analysis.
// This package includes reusable functions for character, word, sentence and
// token counting shared by the detector, the chunker metadata and the
// completion adapters.
package text

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including Japanese, Chinese,
// emoji, and other Unicode characters by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")     // returns 5 (ASCII text)
//	CountRunes("hello世界")  // returns 7 (mixed text)
//	CountRunes("")          // returns 0 (empty string)
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountSentences returns the number of segments produced by splitting on runs
// of sentence terminators (.!?). A trailing segment after the last terminator
// is counted even when empty, so "a. b." yields 3.
func CountSentences(text string) int {
	return len(sentenceSplit.Split(text, -1))
}

// Sentences returns the trimmed sentences of text longer than minLen runes.
func Sentences(text string, minLen int) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		s = strings.TrimSpace(s)
		if CountRunes(s) > minLen {
			out = append(out, s)
		}
	}
	return out
}

// Truncate shortens text to at most max runes, appending suffix when cut.
func Truncate(text string, max int, suffix string) string {
	if max <= 0 || CountRunes(text) <= max {
		return text
	}
	r := []rune(text)
	return string(r[:max]) + suffix
}
