package resolver

import (
	"strings"
)

const (
	// PhraseWords is the length of the start and end phrases of the fallback pass.
	PhraseWords = 3
	// MinPhraseSelectionWords is the shortest selection the fallback pass will try.
	// Shorter selections produce too many false positives.
	MinPhraseSelectionWords = 6
)

// phrase brackets the selection between the first occurrence of its first
// words and the last occurrence of its last words. It recovers selections
// whose interior spacing was serialized differently, at the cost of widening
// the match when either phrase repeats elsewhere in the document.
func (r *Resolver) phrase(sel string) (start, length int, ok bool) {
	words := strings.Split(sel, " ")
	if len(words) < MinPhraseSelectionWords {
		return 0, 0, false
	}

	startPhrase := strings.Join(words[:PhraseWords], " ")
	endPhrase := strings.Join(words[len(words)-PhraseWords:], " ")

	startPos := strings.Index(r.normalized, startPhrase)
	endPos := strings.LastIndex(r.normalized, endPhrase)

	if startPos == -1 || endPos == -1 || endPos <= startPos {
		return 0, 0, false
	}

	return startPos, endPos + len(endPhrase) - startPos, true
}
