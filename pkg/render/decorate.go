package render

import (
	"slices"

	"github.com/kerem-kaynak/visual-reader/pkg/tokenizer"
)

// Coverage answers which highlights cover a word, in the order they were added.
type Coverage interface {
	Coverage(wordIndex int) []string
}

// Decorate walks tokens in order and wraps highlighted words in open/close
// markers.
//
// Decorations are kept as a stack. When a word drops a highlight that is not
// innermost, everything above it is closed too and re-opened, so markers
// always nest even when highlights only partially overlap.
//
// Whitespace is emitted when nothing is open, when the words on both sides
// are highlighted, or when the next word is not highlighted (the open
// decorations are closed before it). Any other whitespace would sit at a
// decoration boundary and is dropped.
func Decorate(tokens []tokenizer.Token, cov Coverage) []Node {
	nodes := make([]Node, 0, len(tokens))
	var open []string

	closeFrom := func(k int) {
		for j := len(open) - 1; j >= k; j-- {
			nodes = append(nodes, closeNode(open[j]))
		}
		open = open[:k]
	}

	for i, tok := range tokens {
		if tok.Whitespace {
			var prev, next []string
			if i > 0 && tokens[i-1].IsWord() {
				prev = cov.Coverage(tokens[i-1].WordIndex)
			}
			if i+1 < len(tokens) && tokens[i+1].IsWord() {
				next = cov.Coverage(tokens[i+1].WordIndex)
			}

			switch {
			case len(open) == 0:
				nodes = append(nodes, textNode(tok.Text))
			case len(prev) > 0 && len(next) > 0:
				nodes = append(nodes, textNode(tok.Text))
			case len(next) == 0:
				closeFrom(0)
				nodes = append(nodes, textNode(tok.Text))
			}
			continue
		}

		covering := cov.Coverage(tok.WordIndex)

		k := slices.IndexFunc(open, func(id string) bool {
			return !slices.Contains(covering, id)
		})
		if k >= 0 {
			closeFrom(k)
		}

		for _, id := range covering {
			if !slices.Contains(open, id) {
				nodes = append(nodes, openNode(id))
				open = append(open, id)
			}
		}

		nodes = append(nodes, textNode(tok.Text))
	}

	closeFrom(0)

	return nodes
}
