package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCmd(t *testing.T) {
	path := writeDoc(t, "story.txt", "# Title\n\nThe quick brown fox jumps.")

	out, err := run(t, "render", path, "--select", "quick brown")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "<h1>Title</h1><p>The <mark data-highlight-id="), out)
	require.Contains(t, out, ">quick brown</mark> fox jumps.</p>")
}

func TestRenderCmd_Ranges(t *testing.T) {
	path := writeDoc(t, "story.txt", "a b c d")

	out, err := run(t, "render", path, "--policy", "multi", "--range", "0:1", "--range", "3:3")
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(out, "<mark "))

	_, err = run(t, "render", path, "--range", "2:9")
	require.Error(t, err)

	_, err = run(t, "render", path, "--range", "oops")
	require.Error(t, err)
}

func TestRenderCmd_UnsupportedFile(t *testing.T) {
	path := writeDoc(t, "book.pdf", "%PDF")

	_, err := run(t, "render", path)
	require.ErrorContains(t, err, "PDF support coming soon")
}

func TestResolveCmd(t *testing.T) {
	path := writeDoc(t, "story.txt", "The quick brown fox jumps.")

	out, err := run(t, "resolve", path, "quick   brown")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, float64(1), got["start_word_index"])
	require.Equal(t, float64(2), got["end_word_index"])
	require.Equal(t, "quick brown", got["text"])
	require.Equal(t, "exact", got["strategy"])

	_, err = run(t, "resolve", path, "purple")
	require.Error(t, err)
}

func TestResolveCmd_NormalizeQuotes(t *testing.T) {
	path := writeDoc(t, "story.txt", "She said “quick brown fox” twice.")
	selection := `"quick brown fox"`

	_, err := run(t, "resolve", path, selection)
	require.Error(t, err)

	cfg := writeDoc(t, "reader.yaml", "reader:\n  normalize: [quotes]\n")
	out, err := run(t, "resolve", path, selection, "--config", cfg)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, float64(2), got["start_word_index"])
	require.Equal(t, float64(4), got["end_word_index"])
	require.Equal(t, "“quick brown fox”", got["text"])
}

func TestResolveCmd_UnknownNormalizeStep(t *testing.T) {
	path := writeDoc(t, "story.txt", "The quick brown fox jumps.")
	cfg := writeDoc(t, "reader.yaml", "reader:\n  normalize: [stem]\n")

	_, err := run(t, "resolve", path, "quick", "--config", cfg)
	require.ErrorContains(t, err, "unknown normalizer step")
}

func TestEnvisionCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"image_id":"img-7","imggen_prompt":"fox","status":"success"}`))
	}))
	defer server.Close()

	t.Setenv("READER_BACKEND_BASE_URL", server.URL)
	t.Setenv("READER_BACKEND_IMAGE_URL_TEMPLATE", server.URL+"/api/images/{image_id}")
	path := writeDoc(t, "story.txt", "The quick brown fox jumps.")

	out, err := run(t, "envision", path, "brown fox")
	require.NoError(t, err)

	var got highlightJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "brown fox", got.Text)
	require.Equal(t, server.URL+"/api/images/img-7", got.ImageURL)
	require.False(t, got.Generating)
}

func TestEnvisionCmd_BackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	t.Setenv("READER_BACKEND_BASE_URL", server.URL)
	path := writeDoc(t, "story.txt", "The quick brown fox jumps.")

	out, err := run(t, "envision", path, "brown fox")
	require.NoError(t, err)

	var got highlightJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Empty(t, got.ImageURL)
	require.False(t, got.Generating)
}

func TestTokensCmd(t *testing.T) {
	path := writeDoc(t, "story.txt", "one  two\nthree")

	out, err := run(t, "tokens", path, "--words")
	require.NoError(t, err)

	var words []string
	require.NoError(t, json.Unmarshal([]byte(out), &words))
	require.Equal(t, []string{"one", "two", "three"}, words)
}

func TestConfigCmd(t *testing.T) {
	out, err := run(t, "config", "--policy", "multi")
	require.NoError(t, err)
	require.Contains(t, out, "policy: multi")

	_, err = run(t, "config", "--policy", "many")
	require.Error(t, err)
}

func TestParseRange(t *testing.T) {
	start, end, err := parseRange("3:7")
	require.NoError(t, err)
	require.Equal(t, 3, start)
	require.Equal(t, 7, end)

	for _, bad := range []string{"3", "a:1", "1:b"} {
		_, _, err := parseRange(bad)
		require.Error(t, err, bad)
	}
}
