package render

import (
	"slices"
	"strings"
	"unicode"
)

// Segment splits decorated nodes into blocks on blank lines (a newline, a
// line holding only whitespace, and another newline).
//
// Each block is trimmed. A block whose text starts with '#' becomes a heading
// with one level per leading '#'; the marker and the blanks after it are
// removed. Every other block is a paragraph whose remaining newlines become
// NodeBreak. Decorations open at a blank line are closed at the end of the
// block and re-opened at the start of the next one.
func Segment(nodes []Node) []Block {
	var (
		blocks []Block
		cur    []Node
		open   []string
	)

	flush := func() {
		for j := len(open) - 1; j >= 0; j-- {
			cur = append(cur, closeNode(open[j]))
		}
		if b, ok := makeBlock(cur); ok {
			blocks = append(blocks, b)
		}
		cur = nil
		for _, id := range open {
			cur = append(cur, openNode(id))
		}
	}

	for _, n := range nodes {
		switch n.Kind {
		case NodeOpen:
			open = append(open, n.ID)
		case NodeClose:
			if i := slices.Index(open, n.ID); i >= 0 {
				open = slices.Delete(open, i, i+1)
			}
		case NodeText:
			if before, after, ok := cutBlankLine(n.Text); ok {
				if before != "" {
					cur = append(cur, textNode(before))
				}
				flush()
				if after != "" {
					cur = append(cur, textNode(after))
				}
				continue
			}
		}
		cur = append(cur, n)
	}

	for j := len(open) - 1; j >= 0; j-- {
		cur = append(cur, closeNode(open[j]))
	}
	if b, ok := makeBlock(cur); ok {
		blocks = append(blocks, b)
	}

	return blocks
}

// cutBlankLine splits a whitespace run around its blank-line boundary, which
// spans from its first to its last newline.
func cutBlankLine(s string) (before, after string, ok bool) {
	if strings.TrimSpace(s) != "" || strings.Count(s, "\n") < 2 {
		return "", "", false
	}
	first := strings.IndexByte(s, '\n')
	last := strings.LastIndexByte(s, '\n')
	return s[:first], s[last+1:], true
}

// makeBlock trims the block and classifies it. Blocks without any text are dropped.
func makeBlock(nodes []Node) (Block, bool) {
	nodes = trimText(nodes, true, unicode.IsSpace)
	nodes = trimText(nodes, false, unicode.IsSpace)
	if !hasText(nodes) {
		return Block{}, false
	}

	if first := firstText(nodes); first >= 0 && strings.HasPrefix(nodes[first].Text, "#") {
		text := nodes[first].Text
		level := len(text) - len(strings.TrimLeft(text, "#"))
		nodes[first].Text = text[level:]
		nodes = trimText(nodes, true, unicode.IsSpace)
		return Block{Kind: BlockHeading, Level: max(level, 1), Nodes: dropEmptyMarks(nodes)}, true
	}

	return Block{Kind: BlockParagraph, Nodes: dropEmptyMarks(breakLines(nodes))}, true
}

// dropEmptyMarks removes decorations that enclose nothing, such as those
// re-opened at a block start and closed before its first word, or one
// around a stripped heading marker.
func dropEmptyMarks(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == NodeClose && len(out) > 0 {
			if last := out[len(out)-1]; last.Kind == NodeOpen && last.ID == n.ID {
				out = out[:len(out)-1]
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

// trimText removes runes matching f from the leading (or trailing) text of
// nodes, looking through markers and dropping text nodes left empty.
func trimText(nodes []Node, leading bool, f func(rune) bool) []Node {
	out := slices.Clone(nodes)

	i := 0
	if !leading {
		i = len(out) - 1
	}
	for i >= 0 && i < len(out) {
		n := &out[i]
		if n.Kind == NodeText {
			if leading {
				n.Text = strings.TrimLeftFunc(n.Text, f)
			} else {
				n.Text = strings.TrimRightFunc(n.Text, f)
			}
			if n.Text != "" {
				break
			}
		}
		if leading {
			i++
		} else {
			i--
		}
	}

	return slices.DeleteFunc(out, func(n Node) bool {
		return n.Kind == NodeText && n.Text == ""
	})
}

func firstText(nodes []Node) int {
	return slices.IndexFunc(nodes, func(n Node) bool { return n.Kind == NodeText })
}

func hasText(nodes []Node) bool {
	return firstText(nodes) >= 0
}

// breakLines turns the newlines of paragraph text into NodeBreak.
func breakLines(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind != NodeText || !strings.Contains(n.Text, "\n") {
			out = append(out, n)
			continue
		}
		for i, line := range strings.Split(n.Text, "\n") {
			if i > 0 {
				out = append(out, Node{Kind: NodeBreak})
			}
			if line != "" {
				out = append(out, textNode(line))
			}
		}
	}
	return out
}
