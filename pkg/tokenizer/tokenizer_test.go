package tokenizer

import (
	"testing"
)

func TestTokenizer_Tokenize(t *testing.T) {
	tok := NewTokenizer()

	text := "It was the best of times,\nit was the worst of times."
	tokens := tok.Tokenize(text)

	if got := Join(tokens); got != text {
		t.Errorf("Join(Tokenize(%q)) = %q", text, got)
	}
	if got := WordCount(tokens); got != 12 {
		t.Errorf("WordCount = %d, want 12", got)
	}
}

func TestTokenizer_Cache(t *testing.T) {
	tok := NewTokenizer()

	if !tok.CacheEnabled() {
		t.Fatal("expected cache to be enabled")
	}

	first := tok.Tokenize("alpha beta")
	second := tok.Tokenize("alpha beta")

	if tok.CacheSize() != 1 {
		t.Errorf("CacheSize = %d, want 1", tok.CacheSize())
	}
	if &first[0] != &second[0] {
		t.Error("expected the cached sequence to be returned for identical text")
	}

	tok.Tokenize("gamma")
	if tok.CacheSize() != 2 {
		t.Errorf("CacheSize = %d, want 2", tok.CacheSize())
	}

	tok.ClearCache()
	if tok.CacheSize() != 0 {
		t.Errorf("CacheSize after ClearCache = %d, want 0", tok.CacheSize())
	}
}

func TestTokenizer_CacheEviction(t *testing.T) {
	tok := NewTokenizer()

	for i := 0; i < CacheSize+5; i++ {
		tok.Tokenize(string(rune('a'+i%26)) + string(rune('0'+i/26)))
	}

	if tok.CacheSize() != CacheSize {
		t.Errorf("CacheSize = %d, want %d", tok.CacheSize(), CacheSize)
	}
}

func TestTokenizer_NoCache(t *testing.T) {
	tok := NewTokenizerNoCache()

	if tok.CacheEnabled() {
		t.Fatal("expected cache to be disabled")
	}

	tokens := tok.Tokenize("alpha beta")
	if len(tokens) != 3 {
		t.Errorf("Tokenize returned %d tokens, want 3", len(tokens))
	}
	if tok.CacheSize() != 0 {
		t.Errorf("CacheSize = %d, want 0", tok.CacheSize())
	}
	tok.ClearCache()
}

func TestDigest(t *testing.T) {
	a := Digest("alpha")
	b := Digest("alpha")
	c := Digest("alpha ")

	if a != b {
		t.Errorf("Digest is not deterministic: %s != %s", a, b)
	}
	if a == c {
		t.Error("different texts produced the same digest")
	}
	if len(a) != 64 {
		t.Errorf("len(Digest) = %d, want 64", len(a))
	}
}
