package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NoWord is the WordIndex carried by whitespace tokens.
const NoWord = -1

// Token is one run of the canonical text: either a word (maximal run of
// non-whitespace runes) or a whitespace run.
type Token struct {
	Text       string `json:"text"`
	WordIndex  int    `json:"word_index"`
	Whitespace bool   `json:"whitespace"`
	Start      int    `json:"start"` // byte offset into the canonical text
	End        int    `json:"end"`
}

// IsWord reports whether the token carries a word index.
func (t Token) IsWord() bool {
	return !t.Whitespace
}

// Split splits text into alternating word and whitespace tokens.
// Concatenating the Text of every token reproduces text exactly.
func Split(text string) []Token {
	var tokens []Token

	if text == "" {
		return tokens
	}

	wordIndex := 0
	start := 0
	r, _ := utf8.DecodeRuneInString(text)
	inSpace := unicode.IsSpace(r)

	flush := func(end int) {
		tok := Token{
			Text:       text[start:end],
			WordIndex:  NoWord,
			Whitespace: inSpace,
			Start:      start,
			End:        end,
		}
		if !inSpace {
			tok.WordIndex = wordIndex
			wordIndex++
		}
		tokens = append(tokens, tok)
	}

	for i, r := range text {
		if unicode.IsSpace(r) != inSpace {
			flush(i)
			start = i
			inSpace = !inSpace
		}
	}
	flush(len(text))

	return tokens
}

// WordCount returns the number of word tokens.
func WordCount(tokens []Token) int {
	// Word indices are dense, so the last word carries the count.
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].IsWord() {
			return tokens[i].WordIndex + 1
		}
	}
	return 0
}

// Words returns the word tokens in document order.
func Words(tokens []Token) []Token {
	words := make([]Token, 0, len(tokens)/2+1)
	for _, tok := range tokens {
		if tok.IsWord() {
			words = append(words, tok)
		}
	}
	return words
}

// Join concatenates token texts, reconstituting the source text.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Text)
	}
	return b.String()
}
