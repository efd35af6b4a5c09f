package text

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates how many model tokens a text costs.
type TokenCounter interface {
	CountTokens(text string) int
}

// HeuristicCounter approximates tokens as one per four runes, rounded up.
type HeuristicCounter struct{}

// CountTokens implements TokenCounter.
func (HeuristicCounter) CountTokens(text string) int {
	n := CountRunes(text)
	return (n + 3) / 4
}

// TiktokenCounter counts tokens with a BPE encoding such as cl100k_base.
// Loading the encoding may download its ranks on first use, so construct it
// once at startup.
type TiktokenCounter struct {
	mu  sync.Mutex
	tke *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the named encoding, or the encoding of a model name.
func NewTiktokenCounter(encodingOrModel string) (*TiktokenCounter, error) {
	if encodingOrModel == "" {
		encodingOrModel = "cl100k_base"
	}
	tke, err := tiktoken.GetEncoding(encodingOrModel)
	if err != nil {
		tke, err = tiktoken.EncodingForModel(encodingOrModel)
		if err != nil {
			return nil, fmt.Errorf("load tiktoken encoding %q: %w", encodingOrModel, err)
		}
	}
	return &TiktokenCounter{tke: tke}, nil
}

// CountTokens implements TokenCounter.
func (c *TiktokenCounter) CountTokens(text string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tke.Encode(text, nil, nil))
}
