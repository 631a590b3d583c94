package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kerem-kaynak/visual-reader/pkg/highlight"
	"github.com/kerem-kaynak/visual-reader/pkg/reader"
	"github.com/kerem-kaynak/visual-reader/pkg/render"
	"github.com/kerem-kaynak/visual-reader/pkg/resolver"
	"github.com/kerem-kaynak/visual-reader/pkg/tokenizer"
)

const (
	iterations = 10000
	warmup     = 100
	boxWidth   = 62

	// ANSI color codes
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

var line = strings.Repeat("─", boxWidth)

const samplePassage = `# The Harbor

The fog came in low over the harbor that evening, and the lamps along the quay
burned with a soft yellow light.

Nobody on the boats said much. The fishermen coiled their ropes, the gulls
settled on the pilings, and somewhere beyond the breakwater a bell rang twice.

`

func main() {
	text := strings.Repeat(samplePassage, 50)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		_, text, err = reader.ReadText(os.Args[1], f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Print("Preparing document... ")
	start := time.Now()
	tok := tokenizer.NewTokenizer()
	tokens := tok.Tokenize(text)
	norm := tokenizer.NewNormalizer()
	vocab, err := tokenizer.NewVocabulary(tokens, norm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer vocab.Close()
	res := resolver.New(tokens, resolver.WithVocabulary(vocab))
	plainRes := resolver.New(tokens)
	fmt.Printf("done (%d words, %d distinct, in %v)\n",
		tokenizer.WordCount(tokens), vocab.Len(), time.Since(start).Round(time.Millisecond))
	fmt.Printf("Iterations: %d (warmup: %d)\n", iterations, warmup)
	fmt.Println("Reference: 1 second = 1,000,000,000 ns")
	fmt.Println()

	// Test data
	shortSelection := "yellow light"
	sentence := "The fishermen coiled their ropes, the gulls settled on the pilings,"
	reflowed := "The fishermen coiled their ropes, the gulls\n settled on the  pilings,"
	missing := "a sentence that is nowhere in the text"

	printHeader("TOKENIZER")
	bench("Split (uncached)", func() { tokenizer.Split(text) })
	tok.ClearCache()
	tok.Tokenize(text)
	bench("Tokenize (cache hit)", func() { tok.Tokenize(text) })
	bench("Digest", func() { tokenizer.Digest(text) })
	bench("Vocabulary lookup", func() { vocab.Contains("harbor") })
	printFooter()
	fmt.Println()

	printHeader("NORMALIZER STEPS BREAKDOWN")
	bench("Collapse whitespace", func() { tokenizer.CollapseWhitespace(reflowed) })
	bench("NFC", func() { tokenizer.NFC("Cafe\u0301 au lait") })
	bench("Remove control chars", func() { tokenizer.RemoveControlChars(reflowed) })
	bench("Normalize quotes", func() { tokenizer.NormalizeQuotes("\u201CQuoted\u201D and \u2018single\u2019") })
	printFooter()
	fmt.Println()

	printHeader("SELECTION RESOLVER")
	bench("Exact (short)", func() { res.Resolve(shortSelection) })
	bench("Exact (sentence)", func() { res.Resolve(sentence) })
	bench("Exact (reflowed)", func() { res.Resolve(reflowed) })
	bench("No match", func() { res.Resolve(missing) })
	bench("No match (no vocabulary)", func() { plainRes.Resolve(missing) })
	bench("Exact (no vocabulary)", func() { plainRes.Resolve(sentence) })
	printFooter()
	fmt.Println()

	store := highlight.NewStore()
	if m, ok := res.Resolve(sentence); ok {
		store.Add(highlight.New(m.StartWordIndex, m.EndWordIndex, m.Text))
	}
	if m, ok := res.Resolve("harbor that evening, and the lamps"); ok {
		store.Add(highlight.New(m.StartWordIndex, m.EndWordIndex, m.Text))
	}
	html := render.NewHTML()

	printHeader("RENDERER")
	bench("Decorate", func() { render.Decorate(tokens, store.Snapshot()) })
	nodes := render.Decorate(tokens, store.Snapshot())
	bench("Segment", func() { render.Segment(nodes) })
	blocks := render.Segment(nodes)
	bench("HTML", func() { html.Render(blocks) })
	bench("Full render", func() { render.Markup(tokens, store) })
	printFooter()
}

func bench(name string, fn func()) {
	for i := 0; i < warmup; i++ {
		fn()
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	elapsed := time.Since(start)

	opsPerSec := float64(iterations) / elapsed.Seconds()
	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)

	// Truncate name if too long
	displayName := name
	if len(displayName) > 26 {
		displayName = displayName[:26]
	}

	// Format with colors - build plain string for padding, colored for display
	plain := fmt.Sprintf("  %-26s %10.0f ops/sec %8.0f ns", displayName, opsPerSec, nsPerOp)
	padded := padLine(plain)

	// Now colorize the padded string
	colored := fmt.Sprintf("  %-26s %s%10.0f%s ops/sec %s%8.0f%s ns",
		displayName,
		colorGreen, opsPerSec, colorReset,
		colorYellow, nsPerOp, colorReset)

	// Calculate how much padding we added
	extraPad := len(padded) - len(plain)
	if extraPad > 0 {
		colored += strings.Repeat(" ", extraPad)
	}

	fmt.Println(colorDim + "│" + colorReset + colored + colorDim + "│" + colorReset)
}

func padLine(content string) string {
	if len(content) >= boxWidth {
		return content[:boxWidth]
	}
	return content + strings.Repeat(" ", boxWidth-len(content))
}

func printHeader(title string) {
	fmt.Println(colorDim + "┌" + line + "┐" + colorReset)
	printTitleRow("  " + title)
	fmt.Println(colorDim + "├" + line + "┤" + colorReset)
}

func printFooter() {
	fmt.Println(colorDim + "└" + line + "┘" + colorReset)
}

func printTitleRow(content string) {
	fmt.Println(colorDim + "│" + colorReset + colorCyan + padLine(content) + colorReset + colorDim + "│" + colorReset)
}
