package tokenizer

import (
	"testing"

	"pgregory.net/rapid"
)

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{"alpha", "alpha"},
		{"  alpha beta  ", "alpha beta"},
		{"alpha\n\n  beta\tgamma", "alpha beta gamma"},
		{"alpha beta", "alpha beta"},
	}

	for _, tt := range tests {
		result := CollapseWhitespace(tt.input)
		if result != tt.expected {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNFC(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"é", "é"},
		{"é", "é"},
		{"hello", "hello"},
	}

	for _, tt := range tests {
		result := NFC(tt.input)
		if result != tt.expected {
			t.Errorf("NFC(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestRemoveControlChars(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello\x00world", "helloworld"},
		{"test\x1fstring", "teststring"},
		{"keep\nnewlines\tand tabs", "keep\nnewlines\tand tabs"},
		{"normal", "normal"},
	}

	for _, tt := range tests {
		result := RemoveControlChars(tt.input)
		if result != tt.expected {
			t.Errorf("RemoveControlChars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNormalizeQuotes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"“Hello”", "\"Hello\""},
		{"„Hallo“", "\"Hallo\""},
		{"«Bonjour»", "\"Bonjour\""},
		{"it’s", "it's"},
		{"normal", "normal"},
	}

	for _, tt := range tests {
		result := NormalizeQuotes(tt.input)
		if result != tt.expected {
			t.Errorf("NormalizeQuotes(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNormalizer_Pipeline(t *testing.T) {
	n := NewNormalizerWithSteps(NFC, NormalizeQuotes)

	got := n.Normalize("  “Café” \n\n said  she ")
	want := "\"Café\" said she"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizer_Default(t *testing.T) {
	n := NewNormalizer()

	got := n.Normalize("“quoted”  text")
	want := "“quoted” text"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNewNormalizerFromNames(t *testing.T) {
	tests := []struct {
		names []string
		input string
		want  string
	}{
		{nil, "“a”\x07 b", "“a”\x07 b"},
		{[]string{"quotes"}, "“a”  b", "\"a\" b"},
		{[]string{"quotes", "controls"}, "“a\x07” b", "\"a\" b"},
		{[]string{" NFC ", "nfc"}, "e\u0301", "é"},
	}

	for _, tt := range tests {
		n, err := NewNormalizerFromNames(tt.names...)
		if err != nil {
			t.Fatalf("NewNormalizerFromNames(%q) error: %v", tt.names, err)
		}
		if got := n.Normalize(tt.input); got != tt.want {
			t.Errorf("NewNormalizerFromNames(%q).Normalize(%q) = %q, want %q", tt.names, tt.input, got, tt.want)
		}
	}
}

func TestNewNormalizerFromNames_Unknown(t *testing.T) {
	if _, err := NewNormalizerFromNames("nfc", "stem"); err == nil {
		t.Error("expected error for unknown step")
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	normalizers := map[string]*Normalizer{
		"default": NewNormalizer(),
		"full":    NewNormalizerWithSteps(RemoveControlChars, NFC, NormalizeQuotes),
	}

	for name, n := range normalizers {
		t.Run(name, func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				s := rapid.String().Draw(t, "s")
				once := n.Normalize(s)
				if twice := n.Normalize(once); twice != once {
					t.Fatalf("Normalize(Normalize(%q)) = %q, want %q", s, twice, once)
				}
			})
		})
	}
}
