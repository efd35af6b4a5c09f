// Package chunk splits long text into bounded, overlapping windows that fit a
// single completion call. Windows prefer to end on a sentence terminator or a
// newline, but only when that boundary is deep enough into the window to avoid
// degenerate tiny chunks.
package chunk

import (
	"fmt"

	"ytldr/internal/domain/entity"
)

const (
	// DefaultMaxChunkSize is the window size in characters.
	DefaultMaxChunkSize = 30000
	// DefaultOverlapSize is how many characters consecutive chunks share.
	DefaultOverlapSize = 1000
	// DefaultBoundaryRatio is how far into the window a boundary must fall
	// before the window is shortened to end there.
	DefaultBoundaryRatio = 0.7
)

// Chunker holds the window configuration. The zero value is not usable; use New.
type Chunker struct {
	MaxChunkSize  int
	OverlapSize   int
	BoundaryRatio float64
}

// New returns a Chunker with the default boundary ratio.
func New(maxChunkSize, overlapSize int) (*Chunker, error) {
	c := &Chunker{
		MaxChunkSize:  maxChunkSize,
		OverlapSize:   overlapSize,
		BoundaryRatio: DefaultBoundaryRatio,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the window configuration.
func (c *Chunker) Validate() error {
	if c.MaxChunkSize <= 0 {
		return entity.NewInvalidInput("max_chunk_size", fmt.Sprintf("must be positive, got %d", c.MaxChunkSize))
	}
	if c.OverlapSize < 0 {
		return entity.NewInvalidInput("overlap_size", fmt.Sprintf("must not be negative, got %d", c.OverlapSize))
	}
	if c.BoundaryRatio <= 0 || c.BoundaryRatio >= 1 {
		return entity.NewInvalidInput("boundary_ratio", fmt.Sprintf("must be between 0 and 1, got %g", c.BoundaryRatio))
	}
	return nil
}

// Split is shorthand for a Chunker with the default boundary ratio.
// A non-positive maxChunkSize yields the whole text as one chunk.
func Split(text string, maxChunkSize, overlapSize int) []entity.Chunk {
	c := Chunker{MaxChunkSize: maxChunkSize, OverlapSize: overlapSize, BoundaryRatio: DefaultBoundaryRatio}
	return c.Split(text)
}

// Split cuts text into ordered chunks.
//
// Text no longer than MaxChunkSize comes back as a single chunk equal to the
// input. Otherwise each window starts at start and ends at start+MaxChunkSize,
// pulled back to just after the last '.' (or to the last '\n') inside the
// window when that position lies beyond BoundaryRatio*MaxChunkSize. With no
// such boundary the window is cut hard, possibly mid-sentence. The next window
// begins at max(start+1, end-OverlapSize), so progress is guaranteed even when
// the overlap is not smaller than the window. Splitting stops once a window
// reaches the end of the text.
//
// Sizes and offsets are in runes.
func (c *Chunker) Split(text string) []entity.Chunk {
	runes := []rune(text)
	n := len(runes)
	if c.MaxChunkSize <= 0 || n <= c.MaxChunkSize {
		return []entity.Chunk{{Index: 0, Text: text, StartOffset: 0, EndOffset: n}}
	}

	overlap := max(c.OverlapSize, 0)
	ratio := c.BoundaryRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = DefaultBoundaryRatio
	}

	chunks := make([]entity.Chunk, 0, EstimateCount(n, c.MaxChunkSize, overlap))
	start := 0
	for start < n {
		end := start + c.MaxChunkSize
		if end < n {
			end = c.boundary(runes, start, end, ratio)
		} else {
			end = n
		}

		chunks = append(chunks, entity.Chunk{
			Index:       len(chunks),
			Text:        string(runes[start:end]),
			StartOffset: start,
			EndOffset:   end,
		})

		if end >= n {
			break
		}
		start = max(start+1, end-overlap)
	}
	return chunks
}

// boundary returns where the window [start, end) should be cut.
func (c *Chunker) boundary(runes []rune, start, end int, ratio float64) int {
	threshold := float64(start) + float64(c.MaxChunkSize)*ratio

	lastSentence, lastNewline := -1, -1
	for i := end - 1; i >= start; i-- {
		switch runes[i] {
		case '.':
			if lastSentence < 0 {
				lastSentence = i
			}
		case '\n':
			if lastNewline < 0 {
				lastNewline = i
			}
		}
		if lastSentence >= 0 && lastNewline >= 0 {
			break
		}
		if float64(i) <= threshold {
			break
		}
	}

	switch {
	case lastSentence >= 0 && float64(lastSentence) > threshold:
		return lastSentence + 1
	case lastNewline >= 0 && float64(lastNewline) > threshold:
		return lastNewline
	}
	return end
}

// EstimateCount returns ceil(n / (maxChunkSize - overlapSize)), the chunk
// count for a text of n runes when every window is cut hard. Boundary cuts
// shorten windows, so it is a sizing hint rather than a limit.
func EstimateCount(n, maxChunkSize, overlapSize int) int {
	if n == 0 || maxChunkSize <= 0 || n <= maxChunkSize {
		return 1
	}
	step := max(maxChunkSize-overlapSize, 1)
	return (n + step - 1) / step
}
