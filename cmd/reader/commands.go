package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kerem-kaynak/visual-reader/pkg/highlight"
)

// highlightJSON is the printed form of a highlight.
type highlightJSON struct {
	ID             string `json:"id"`
	StartWordIndex int    `json:"start_word_index"`
	EndWordIndex   int    `json:"end_word_index"`
	Text           string `json:"text"`
	ImageURL       string `json:"image_url,omitempty"`
	Generating     bool   `json:"generating"`
}

func toJSON(h highlight.Highlight) highlightJSON {
	return highlightJSON{
		ID:             h.ID,
		StartWordIndex: h.StartWordIndex,
		EndWordIndex:   h.EndWordIndex,
		Text:           h.Text,
		ImageURL:       h.ImageURL,
		Generating:     h.Generating,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseRange parses "start:end" word indices.
func parseRange(s string) (int, int, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("range %q: want start:end", s)
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("range %q: %w", s, err)
	}
	return start, end, nil
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		selections []string
		ranges     []string
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a document with highlights as HTML",
		Long: `Render a text document as HTML paragraphs and headings.

Each --select is resolved against the document and highlighted; selections
that match nothing are skipped. Use --policy multi to keep every highlight.

Examples:
  reader render story.txt
  reader render story.txt --select "the harbor that evening"
  reader render story.txt --policy multi --select "fog came" --range 10:14`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := a.load(s, args[0]); err != nil {
				return err
			}

			for _, sel := range selections {
				if _, ok := s.Select(sel); !ok {
					a.logger.Warn("selection not found", "selection", sel)
				}
			}
			for _, r := range ranges {
				start, end, err := parseRange(r)
				if err != nil {
					return err
				}
				if _, err := s.AddRange(start, end); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.Render())
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&selections, "select", "s", nil, "text to highlight (repeatable)")
	cmd.Flags().StringArrayVarP(&ranges, "range", "r", nil, "word range start:end to highlight (repeatable)")

	return cmd
}

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve FILE SELECTION",
		Short: "Resolve a selection to a word range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := a.load(s, args[0]); err != nil {
				return err
			}

			m, ok := s.Document().Resolve(args[1])
			if !ok {
				return fmt.Errorf("no match for %q", args[1])
			}

			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"start_word_index": m.StartWordIndex,
				"end_word_index":   m.EndWordIndex,
				"text":             m.Text,
				"strategy":         m.Strategy.String(),
			})
		},
	}
}

func newEnvisionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "envision FILE SELECTION",
		Short: "Highlight a selection and request its illustration",
		Long: `Highlight a selection and ask the illustration backend for an image of it.

The passage is sent with the words around it as context. The command waits
for the backend and prints the resulting highlight; a failed request leaves
the highlight without an image.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession(true)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := a.load(s, args[0]); err != nil {
				return err
			}

			h, ok := s.Select(args[1])
			if !ok {
				return fmt.Errorf("no match for %q", args[1])
			}
			s.Wait()

			h, _ = s.Highlight(h.ID)
			return writeJSON(cmd.OutOrStdout(), toJSON(h))
		},
	}
}

func newTokensCmd(a *app) *cobra.Command {
	var wordsOnly bool

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token sequence of a document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newSession(false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := a.load(s, args[0]); err != nil {
				return err
			}

			tokens := s.Document().Tokens
			if wordsOnly {
				words := make([]string, 0, s.Document().WordCount)
				for _, t := range tokens {
					if t.IsWord() {
						words = append(words, t.Text)
					}
				}
				return writeJSON(cmd.OutOrStdout(), words)
			}
			return writeJSON(cmd.OutOrStdout(), tokens)
		},
	}

	cmd.Flags().BoolVarP(&wordsOnly, "words", "w", false, "print only the words")

	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", used)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
