package searchserver

import (
	"errors"
	"slices"
	"testing"
)

func TestSplitIntoWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "simple sentence",
			input:    "white cat and collar",
			expected: []string{"white", "cat", "and", "collar"},
		},
		{
			name:     "runs of spaces",
			input:    "  cat   cat ",
			expected: []string{"cat", "cat"},
		},
		{
			name:     "empty",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only spaces",
			input:    "     ",
			expected: []string{},
		},
		{
			name:     "case and punctuation kept",
			input:    "Cat cat, -dog",
			expected: []string{"Cat", "cat,", "-dog"},
		},
		{
			name:     "tab is not a delimiter",
			input:    "cat\tdog bird",
			expected: []string{"cat\tdog", "bird"},
		},
		{
			name:     "multibyte words",
			input:    "пушистый кот",
			expected: []string{"пушистый", "кот"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitIntoWords(tt.input)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("SplitIntoWords(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateWords(t *testing.T) {
	tests := []struct {
		words []string
		want  bool
	}{
		{[]string{"cat", "dog"}, true},
		{[]string{}, true},
		{[]string{"café", "naïve"}, true},
		{[]string{"cat", "d\x00g"}, false},
		{[]string{"\x1f"}, false},
		{[]string{"cat\n"}, false},
		{[]string{"space is fine"}, true},
	}

	for _, tt := range tests {
		if got := ValidateWords(tt.words); got != tt.want {
			t.Errorf("ValidateWords(%q) = %v, want %v", tt.words, got, tt.want)
		}
	}
}

func TestSplitIntoValidWords(t *testing.T) {
	words, err := splitIntoValidWords("curly dog")
	if err != nil {
		t.Fatalf("splitIntoValidWords() error = %v", err)
	}
	if !slices.Equal(words, []string{"curly", "dog"}) {
		t.Errorf("splitIntoValidWords() = %v, want [curly dog]", words)
	}

	if _, err := splitIntoValidWords("curly d\x02og"); !errors.Is(err, ErrInvalidCharacters) {
		t.Errorf("splitIntoValidWords() error = %v, want ErrInvalidCharacters", err)
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// STOP WORD TESTS
// ═══════════════════════════════════════════════════════════════════════════════

func TestParseStopWords(t *testing.T) {
	stopWords, err := ParseStopWords("  and in  at in ")
	if err != nil {
		t.Fatalf("ParseStopWords() error = %v", err)
	}

	if got, want := stopWords.Words(), []string{"and", "at", "in"}; !slices.Equal(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
	if !stopWords.Contains("and") {
		t.Error("Contains(\"and\") = false, want true")
	}
	if stopWords.Contains("And") {
		t.Error("Contains(\"And\") = true, want false (matching is case sensitive)")
	}
}

func TestNewStopWords(t *testing.T) {
	stopWords, err := NewStopWords([]string{"the", "", "of", "the"})
	if err != nil {
		t.Fatalf("NewStopWords() error = %v", err)
	}
	if len(stopWords) != 2 {
		t.Errorf("len(stopWords) = %d, want 2", len(stopWords))
	}
	if stopWords.Contains("") {
		t.Error("empty string must not be a stop word")
	}

	_, err = NewStopWords([]string{"the", "o\x10f"})
	if !errors.Is(err, ErrInvalidStopWords) || !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewStopWords() error = %v, want ErrInvalidStopWords", err)
	}
}

func TestStopWords_Filter(t *testing.T) {
	stopWords, _ := ParseStopWords("and in at")

	got := stopWords.stopwordFilter([]string{"curly", "dog", "and", "collar", "at", "curly"})
	if want := []string{"curly", "dog", "collar", "curly"}; !slices.Equal(got, want) {
		t.Errorf("stopwordFilter() = %v, want %v", got, want)
	}

	var none StopWords
	if got := none.stopwordFilter([]string{"and"}); !slices.Equal(got, []string{"and"}) {
		t.Errorf("nil stopwordFilter() = %v, want [and]", got)
	}
}
