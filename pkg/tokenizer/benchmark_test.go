package tokenizer

import (
	"strings"
	"testing"
)

var benchText = strings.Repeat("The fog came in low over the harbor that evening,\nand the lamps along the quay burned.\n\n", 200)

func BenchmarkSplit(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Split(benchText)
	}
}

func BenchmarkTokenize_CacheHit(b *testing.B) {
	tok := NewTokenizer()
	tok.Tokenize(benchText)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.Tokenize(benchText)
	}
}

func BenchmarkTokenize_NoCache(b *testing.B) {
	tok := NewTokenizerNoCache()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.Tokenize(benchText)
	}
}

func BenchmarkNormalizer_FullPipeline(b *testing.B) {
	norm := NewNormalizerWithSteps(RemoveControlChars, NFC, NormalizeQuotes)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		norm.Normalize(benchText)
	}
}

func BenchmarkNewVocabulary(b *testing.B) {
	tokens := Split(benchText)
	norm := NewNormalizer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v, err := NewVocabulary(tokens, norm)
		if err != nil {
			b.Fatalf("Failed to build vocabulary: %v", err)
		}
		v.Close()
	}
}

func BenchmarkVocabulary_Contains(b *testing.B) {
	v, err := NewVocabulary(Split(benchText), NewNormalizer())
	if err != nil {
		b.Fatalf("Failed to build vocabulary: %v", err)
	}
	defer v.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v.Contains("harbor")
	}
}
