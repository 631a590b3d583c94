package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kerem-kaynak/visual-reader/pkg/tokenizer"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		fmt.Println("Usage: tokenize [text]")
		fmt.Println("       tokenize          (interactive mode)")
		os.Exit(1)
	}

	tok := tokenizer.NewTokenizer()

	// If text provided as argument, tokenize and exit
	if len(os.Args) > 1 {
		text := strings.Join(os.Args[1:], " ")
		output, _ := json.Marshal(tok.Tokenize(text))
		fmt.Println(string(output))
		return
	}

	// Interactive mode
	fmt.Println("Reader tokenizer (interactive mode)")
	fmt.Println("Type a line of text, press Enter to tokenize. Ctrl+C to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := scanner.Text()
		if text == "" {
			continue
		}

		tokens := tok.Tokenize(text)
		output, _ := json.Marshal(tokens)
		fmt.Printf("  %s\n", output)
		fmt.Printf("  words: %d  normalized: %q\n\n", tokenizer.WordCount(tokens), tokenizer.NewNormalizer().Normalize(text))
	}
}
