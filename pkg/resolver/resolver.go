// Package resolver maps a selected string, as serialized by a platform
// selection API, back onto a contiguous range of word indices of the
// canonical document.
package resolver

import (
	"sort"
	"strings"

	"github.com/kerem-kaynak/visual-reader/pkg/tokenizer"
)

// Strategy identifies which matching pass produced a Match.
type Strategy int

const (
	StrategyExact Strategy = iota
	StrategyPhrase
)

func (s Strategy) String() string {
	switch s {
	case StrategyExact:
		return "exact"
	case StrategyPhrase:
		return "phrase"
	default:
		return "unknown"
	}
}

// Match is a resolved selection.
type Match struct {
	StartWordIndex int
	EndWordIndex   int
	// Text is rebuilt from the matched words, not copied from the selection,
	// so it can always be reproduced from the indices.
	Text     string
	Strategy Strategy
}

// span is a word's [start, end) byte range in the normalized text.
type span struct {
	start     int
	end       int
	wordIndex int
}

// Resolver resolves selections against one token sequence.
// It is immutable after New and safe for concurrent use.
type Resolver struct {
	words      []tokenizer.Token
	spans      []span
	normalized string
	norm       *tokenizer.Normalizer
	vocab      *tokenizer.Vocabulary
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNormalizer replaces the default whitespace-collapsing normalizer.
func WithNormalizer(n *tokenizer.Normalizer) Option {
	return func(r *Resolver) {
		r.norm = n
	}
}

// WithVocabulary lets the exact pass reject selections containing a whole
// word the document does not have. The vocabulary must have been built with
// the same normalizer.
func WithVocabulary(v *tokenizer.Vocabulary) Option {
	return func(r *Resolver) {
		r.vocab = v
	}
}

// New precomputes the normalized view of tokens. Each word contributes its
// normalized text followed by one synthetic space, mirroring what the
// normalizer does to the whole document.
func New(tokens []tokenizer.Token, opts ...Option) *Resolver {
	r := &Resolver{norm: tokenizer.NewNormalizer()}
	for _, opt := range opts {
		opt(r)
	}

	r.words = tokenizer.Words(tokens)
	r.spans = make([]span, 0, len(r.words))

	var b strings.Builder
	cursor := 0
	for _, w := range r.words {
		nw := r.norm.Normalize(w.Text)
		if nw == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(nw)
		r.spans = append(r.spans, span{start: cursor, end: cursor + len(nw), wordIndex: w.WordIndex})
		cursor += len(nw) + 1
	}
	r.normalized = b.String()

	return r
}

// Normalized returns the whitespace-collapsed view of the document.
func (r *Resolver) Normalized() string {
	return r.normalized
}

// Resolve finds the word range the selection refers to. The second result is
// false when nothing in the document matches.
func (r *Resolver) Resolve(selected string) (Match, bool) {
	if strings.TrimSpace(selected) == "" {
		return Match{}, false
	}

	sel := r.norm.Normalize(selected)
	if sel == "" {
		return Match{}, false
	}

	if start := r.exact(sel); start >= 0 {
		return r.mapSpan(start, len(sel), StrategyExact)
	}

	if start, length, ok := r.phrase(sel); ok {
		return r.mapSpan(start, length, StrategyPhrase)
	}

	return Match{}, false
}

// exact returns the leftmost offset of sel in the normalized document, or -1.
func (r *Resolver) exact(sel string) int {
	if r.vocab != nil {
		// Interior words are space-bounded on both sides, so a verbatim
		// occurrence needs each of them to be a whole document word.
		fields := strings.Split(sel, " ")
		for i := 1; i < len(fields)-1; i++ {
			if !r.vocab.Contains(fields[i]) {
				return -1
			}
		}
	}
	return strings.Index(r.normalized, sel)
}

// mapSpan converts a normalized [start, start+length) range into word indices.
func (r *Resolver) mapSpan(start, length int, strategy Strategy) (Match, bool) {
	end := start + length

	first := sort.Search(len(r.spans), func(i int) bool {
		return r.spans[i].end > start
	})
	if first == len(r.spans) || r.spans[first].start >= end {
		return Match{}, false
	}

	last := first
	for last+1 < len(r.spans) && r.spans[last+1].start < end {
		last++
	}

	m := Match{
		StartWordIndex: r.spans[first].wordIndex,
		EndWordIndex:   r.spans[last].wordIndex,
		Strategy:       strategy,
	}
	m.Text = r.Text(m.StartWordIndex, m.EndWordIndex)

	return m, true
}

// Text joins the words in [start, end] with single spaces.
func (r *Resolver) Text(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end >= len(r.words) {
		end = len(r.words) - 1
	}
	if start > end {
		return ""
	}

	parts := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		parts = append(parts, strings.TrimSpace(r.words[i].Text))
	}
	return strings.Join(parts, " ")
}

// WordCount returns the number of words the resolver addresses.
func (r *Resolver) WordCount() int {
	return len(r.words)
}
