// Package highlight holds word-index-addressed highlights and answers
// coverage queries for the renderer.
package highlight

import (
	"github.com/google/uuid"
)

// Highlight is a span of the canonical document, optionally illustrated.
type Highlight struct {
	ID             string
	StartWordIndex int
	EndWordIndex   int
	Text           string
	ImageURL       string // empty until an illustration arrives
	Generating     bool
}

// New creates a highlight with a fresh time-ordered identifier.
func New(start, end int, text string) Highlight {
	return Highlight{
		ID:             newID(),
		StartWordIndex: start,
		EndWordIndex:   end,
		Text:           text,
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// HasImage reports whether an illustration URL is attached.
func (h Highlight) HasImage() bool {
	return h.ImageURL != ""
}

// Covers reports whether wordIndex lies within the highlight.
func (h Highlight) Covers(wordIndex int) bool {
	return wordIndex >= h.StartWordIndex && wordIndex <= h.EndWordIndex
}

// Valid reports whether the highlight addresses words of a document with
// wordCount words.
func (h Highlight) Valid(wordCount int) bool {
	return h.StartWordIndex >= 0 && h.StartWordIndex <= h.EndWordIndex && h.EndWordIndex < wordCount
}
