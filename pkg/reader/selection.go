package reader

import (
	"strings"
	"unicode/utf8"
)

// MinSelectionLength is the shortest trimmed selection, in runes, that
// SelectFrom acts on.
const MinSelectionLength = 4

// SelectionSource is a platform text selection.
//
// ContainerBoundary identifies the paragraph-level container the selection
// starts and ends in. It returns "" when the selection spans more than one
// container.
type SelectionSource interface {
	SelectedText() string
	ContainerBoundary() string
}

// StaticSelection is a SelectionSource with fixed values.
type StaticSelection struct {
	Text     string
	Boundary string
}

func (s StaticSelection) SelectedText() string      { return s.Text }
func (s StaticSelection) ContainerBoundary() string { return s.Boundary }

func tooShort(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < MinSelectionLength
}
