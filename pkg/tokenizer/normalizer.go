package tokenizer

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizerFunc defines a single normalization step.
// Steps must be idempotent and must not merge or split words. Steps that
// delete runes (RemoveControlChars) belong before NFC.
type NormalizerFunc func(string) string

// Normalizer applies a configurable pipeline of normalization steps and
// always finishes by collapsing whitespace.
type Normalizer struct {
	steps []NormalizerFunc
}

// NewNormalizer creates a normalizer that only collapses whitespace.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NewNormalizerWithSteps creates a normalizer with extra steps run before
// the whitespace collapse.
func NewNormalizerWithSteps(steps ...NormalizerFunc) *Normalizer {
	return &Normalizer{steps: steps}
}

// Normalize applies all configured steps in order, then CollapseWhitespace.
func (n *Normalizer) Normalize(s string) string {
	for _, step := range n.steps {
		s = step(s)
	}
	return CollapseWhitespace(s)
}

// CollapseWhitespace replaces every maximal whitespace run with a single
// space and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NFC applies Unicode canonical composition, so "e" + U+0301 and "é" compare equal.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// RemoveControlChars removes control characters other than whitespace.
func RemoveControlChars(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// quoteReplacements maps typographic quotes to ASCII.
var quoteReplacements = map[rune]rune{
	'„': '"',  // „ low double quote
	'“': '"',  // " left double quote
	'”': '"',  // " right double quote
	'«': '"',  // « left-pointing double angle
	'»': '"',  // » right-pointing double angle
	'‘': '\'', // ' left single quote
	'’': '\'', // ' right single quote
	'‚': '\'', // ‚ single low-9 quote
	'‹': '\'', // ‹ single left-pointing angle
	'›': '\'', // › single right-pointing angle
}

// NormalizeQuotes converts typographic quotes to ASCII. Browsers and e-book
// sources disagree on quote style more often than on anything else.
func NormalizeQuotes(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if replacement, ok := quoteReplacements[r]; ok {
			result.WriteRune(replacement)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// namedSteps lists the configurable steps in the order they must run.
var namedSteps = []struct {
	name string
	fn   NormalizerFunc
}{
	{"controls", RemoveControlChars},
	{"nfc", NFC},
	{"quotes", NormalizeQuotes},
}

// StepNames returns the names accepted by NewNormalizerFromNames.
func StepNames() []string {
	names := make([]string, len(namedSteps))
	for i, s := range namedSteps {
		names[i] = s.name
	}
	return names
}

// NewNormalizerFromNames creates a normalizer from step names such as
// "nfc" or "quotes". Steps always run in StepNames order, whatever the order
// of names, and duplicates are ignored.
func NewNormalizerFromNames(names ...string) (*Normalizer, error) {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if !slices.Contains(StepNames(), key) {
			return nil, fmt.Errorf("unknown normalizer step %q (want one of %s)", name, strings.Join(StepNames(), ", "))
		}
		want[key] = true
	}

	var steps []NormalizerFunc
	for _, s := range namedSteps {
		if want[s.name] {
			steps = append(steps, s.fn)
		}
	}
	return NewNormalizerWithSteps(steps...), nil
}
