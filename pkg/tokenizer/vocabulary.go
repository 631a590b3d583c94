package tokenizer

import (
	"bytes"
	"sort"
	"sync"

	"github.com/blevesearch/vellum"
)

// Vocabulary holds the distinct normalized words of a document in an FST,
// with each word's occurrence count as its value.
type Vocabulary struct {
	fst *vellum.FST
	mu  sync.RWMutex
}

// NewVocabulary builds the vocabulary of the word tokens, normalizing each
// word with norm. Words that normalize to nothing are skipped.
func NewVocabulary(tokens []Token, norm *Normalizer) (*Vocabulary, error) {
	counts := make(map[string]uint64)
	for _, tok := range tokens {
		if !tok.IsWord() {
			continue
		}
		if w := norm.Normalize(tok.Text); w != "" {
			counts[w]++
		}
	}

	v := &Vocabulary{}
	if len(counts) == 0 {
		return v, nil
	}

	sortedWords := make([]string, 0, len(counts))
	for word := range counts {
		sortedWords = append(sortedWords, word)
	}
	sort.Strings(sortedWords)

	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}

	for _, word := range sortedWords {
		if err := builder.Insert([]byte(word), counts[word]); err != nil {
			builder.Close()
			return nil, err
		}
	}

	if err := builder.Close(); err != nil {
		return nil, err
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, err
	}
	v.fst = fst

	return v, nil
}

// Contains reports whether word (already normalized) occurs in the document.
func (v *Vocabulary) Contains(word string) bool {
	return v.Count(word) > 0
}

// Count returns how many times word (already normalized) occurs.
func (v *Vocabulary) Count(word string) uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.fst == nil {
		return 0
	}
	count, exists, _ := v.fst.Get([]byte(word))
	if !exists {
		return 0
	}
	return count
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.fst == nil {
		return 0
	}
	return v.fst.Len()
}

// Close releases FST resources.
func (v *Vocabulary) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.fst != nil {
		err := v.fst.Close()
		v.fst = nil
		return err
	}
	return nil
}
