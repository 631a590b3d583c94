// Package render turns a token sequence and a set of highlights into
// decorated block markup.
//
// Rendering happens in three passes over a typed intermediate form:
// Decorate produces a flat node sequence with decoration open/close markers,
// Segment splits it into paragraph and heading blocks, and HTML serializes
// the blocks. Keeping markers as nodes until the last pass lets
// CheckBalanced verify nesting without parsing markup.
package render

import (
	"errors"
	"fmt"
)

// NodeKind identifies the type of node.
type NodeKind int

const (
	NodeText NodeKind = iota
	NodeOpen
	NodeClose
	NodeBreak
)

func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "text"
	case NodeOpen:
		return "open"
	case NodeClose:
		return "close"
	case NodeBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Node is one element of the decorated sequence. Text is set for NodeText,
// ID for NodeOpen and NodeClose.
type Node struct {
	Kind NodeKind
	Text string
	ID   string
}

func textNode(s string) Node   { return Node{Kind: NodeText, Text: s} }
func openNode(id string) Node  { return Node{Kind: NodeOpen, ID: id} }
func closeNode(id string) Node { return Node{Kind: NodeClose, ID: id} }

// BlockKind identifies the type of block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
)

// Block is a paragraph or heading. Level is set for headings only.
type Block struct {
	Kind  BlockKind
	Level int
	Nodes []Node
}

// ErrUnbalanced is returned by CheckBalanced for ill-formed decoration markers.
var ErrUnbalanced = errors.New("unbalanced decoration markers")

// CheckBalanced verifies that every block closes each decoration it opens,
// in reverse order, and closes nothing it did not open.
func CheckBalanced(blocks []Block) error {
	for bi, b := range blocks {
		var stack []string
		for ni, n := range b.Nodes {
			switch n.Kind {
			case NodeOpen:
				stack = append(stack, n.ID)
			case NodeClose:
				if len(stack) == 0 {
					return fmt.Errorf("%w: block %d node %d closes %q with nothing open", ErrUnbalanced, bi, ni, n.ID)
				}
				if top := stack[len(stack)-1]; top != n.ID {
					return fmt.Errorf("%w: block %d node %d closes %q while %q is innermost", ErrUnbalanced, bi, ni, n.ID, top)
				}
				stack = stack[:len(stack)-1]
			}
		}
		if len(stack) > 0 {
			return fmt.Errorf("%w: block %d ends with %d open", ErrUnbalanced, bi, len(stack))
		}
	}
	return nil
}
