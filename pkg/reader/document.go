// Package reader ties the tokenizer, resolver, highlight store and renderer
// together into a reading session over one canonical document.
package reader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kerem-kaynak/visual-reader/pkg/resolver"
	"github.com/kerem-kaynak/visual-reader/pkg/tokenizer"
)

// Error types for session operations.
var (
	ErrUnsupportedInput = errors.New("unsupported input")
	ErrCrossBoundary    = errors.New("selection crosses a container boundary")
	ErrOutOfRange       = errors.New("word range outside document")
)

// DefaultContextRadius is the number of words on each side of a highlight
// sent to the illustration backend.
const DefaultContextRadius = 200

// Document is an immutable canonical text together with everything derived
// from it.
type Document struct {
	ID        string // blake3 digest of Text
	Title     string
	Text      string
	Tokens    []tokenizer.Token
	WordCount int

	vocab    *tokenizer.Vocabulary
	resolver *resolver.Resolver
}

func newDocument(title, text string, tok *tokenizer.Tokenizer, norm *tokenizer.Normalizer) (*Document, error) {
	tokens := tok.Tokenize(text)

	vocab, err := tokenizer.NewVocabulary(tokens, norm)
	if err != nil {
		return nil, fmt.Errorf("building vocabulary: %w", err)
	}

	return &Document{
		ID:        tokenizer.Digest(text),
		Title:     title,
		Text:      text,
		Tokens:    tokens,
		WordCount: tokenizer.WordCount(tokens),
		vocab:     vocab,
		resolver:  resolver.New(tokens, resolver.WithNormalizer(norm), resolver.WithVocabulary(vocab)),
	}, nil
}

// Empty reports whether the document has no words.
func (d *Document) Empty() bool {
	return d.WordCount == 0
}

// Resolve maps a selected string onto a word range of the document.
func (d *Document) Resolve(selected string) (resolver.Match, bool) {
	return d.resolver.Resolve(selected)
}

// RangeText returns the words start..end joined by single spaces.
func (d *Document) RangeText(start, end int) string {
	return d.resolver.Text(start, end)
}

// Vocabulary returns the distinct words of the document.
func (d *Document) Vocabulary() *tokenizer.Vocabulary {
	return d.vocab
}

// ContextWindow returns the words from start-radius up to, but not
// including, end+radius, clamped to the document and joined by single spaces.
func ContextWindow(tokens []tokenizer.Token, start, end, radius int) string {
	words := tokenizer.Words(tokens)
	if len(words) == 0 || start > end {
		return ""
	}

	lo := max(start-radius, 0)
	hi := min(end+radius, len(words)) - 1
	if lo > hi {
		return ""
	}

	parts := make([]string, 0, hi-lo+1)
	for _, w := range words[lo : hi+1] {
		parts = append(parts, w.Text)
	}
	return strings.Join(parts, " ")
}
