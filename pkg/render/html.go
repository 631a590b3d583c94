package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/kerem-kaynak/visual-reader/pkg/tokenizer"
)

// DefaultMarkStyle is the inline style of highlight marks.
const DefaultMarkStyle = "background-color: #d4c5a9 !important; color: inherit !important; border-radius: 2px; padding: 1px 2px;"

// maxHeadingLevel is the deepest heading element HTML has.
const maxHeadingLevel = 6

// HTML serializes blocks as paragraphs, headings and <mark> elements
// carrying a data-highlight-id attribute.
type HTML struct {
	// MarkStyle is written as the style attribute of every mark; empty omits it.
	MarkStyle string
}

// NewHTML creates a serializer using DefaultMarkStyle.
func NewHTML() *HTML {
	return &HTML{MarkStyle: DefaultMarkStyle}
}

// Render serializes blocks. Text and attribute values are escaped.
func (h *HTML) Render(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		tag := "p"
		if block.Kind == BlockHeading {
			tag = "h" + strconv.Itoa(min(max(block.Level, 1), maxHeadingLevel))
		}

		b.WriteString("<" + tag + ">")
		for _, n := range block.Nodes {
			h.writeNode(&b, n)
		}
		b.WriteString("</" + tag + ">")
	}
	return b.String()
}

func (h *HTML) writeNode(b *strings.Builder, n Node) {
	switch n.Kind {
	case NodeText:
		b.WriteString(html.EscapeString(n.Text))
	case NodeOpen:
		b.WriteString(`<mark data-highlight-id="`)
		b.WriteString(html.EscapeString(n.ID))
		b.WriteString(`"`)
		if h.MarkStyle != "" {
			b.WriteString(` style="`)
			b.WriteString(html.EscapeString(h.MarkStyle))
			b.WriteString(`"`)
		}
		b.WriteString(">")
	case NodeClose:
		b.WriteString("</mark>")
	case NodeBreak:
		b.WriteString("<br>")
	}
}

// Markup runs Decorate, Segment and Render with the default style.
func Markup(tokens []tokenizer.Token, cov Coverage) string {
	return NewHTML().Render(Segment(Decorate(tokens, cov)))
}
