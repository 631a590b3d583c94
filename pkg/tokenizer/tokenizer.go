package tokenizer

import (
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/blake3"
)

// CacheSize is the maximum number of token sequences kept by a Tokenizer.
// A reader rarely holds more than a handful of documents, and each entry
// can be as large as the book itself.
const CacheSize = 16

// Tokenizer splits canonical texts into token sequences and remembers the
// result for texts it has already seen.
type Tokenizer struct {
	cache *lru.Cache[string, []Token]
}

// NewTokenizer creates a tokenizer with the LRU cache enabled.
func NewTokenizer() *Tokenizer {
	cache, _ := lru.New[string, []Token](CacheSize)
	return &Tokenizer{cache: cache}
}

// NewTokenizerNoCache creates a tokenizer with caching disabled.
func NewTokenizerNoCache() *Tokenizer {
	return &Tokenizer{}
}

// Digest returns the hex BLAKE3 digest identifying a canonical text.
func Digest(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Tokenize returns the token sequence for text.
// The returned slice may be shared with other callers and must not be modified.
func (t *Tokenizer) Tokenize(text string) []Token {
	if t.cache == nil {
		return Split(text)
	}

	key := Digest(text)
	if tokens, ok := t.cache.Get(key); ok {
		return tokens
	}

	tokens := Split(text)
	t.cache.Add(key, tokens)

	return tokens
}

// CacheSize returns the number of cached sequences (0 if cache is disabled).
func (t *Tokenizer) CacheSize() int {
	if t.cache == nil {
		return 0
	}
	return t.cache.Len()
}

// ClearCache drops every cached sequence.
func (t *Tokenizer) ClearCache() {
	if t.cache != nil {
		t.cache.Purge()
	}
}

// CacheEnabled returns true if caching is enabled.
func (t *Tokenizer) CacheEnabled() bool {
	return t.cache != nil
}
