package reader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadText reads an uploaded file into a title and canonical text. Only
// plain text files are accepted; a UTF-8 or UTF-16 byte order mark selects
// the encoding and is stripped, otherwise UTF-8 is assumed.
func ReadText(name string, r io.Reader) (title, text string, err error) {
	ext := filepath.Ext(name)
	title = strings.TrimSuffix(filepath.Base(name), ext)

	switch strings.ToLower(ext) {
	case ".txt":
	case ".pdf":
		return "", "", fmt.Errorf("%w: PDF support coming soon", ErrUnsupportedInput)
	default:
		return "", "", fmt.Errorf("%w: unsupported file type %q, please upload a .txt file", ErrUnsupportedInput, ext)
	}

	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", name, err)
	}

	return title, string(data), nil
}
