// ═══════════════════════════════════════════════════════════════════════════════
// TEXT ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Documents and queries are plain space separated words. Analysis is kept
// deliberately literal: no lowercasing, no stemming, no punctuation handling.
// "Cat" and "cat" are different words, and so are "cat," and "cat".
//
// ANALYSIS PIPELINE:
// ------------------
//  1. Splitting        → Split text on ASCII spaces
//  2. Validation       → Reject words holding control characters (0x00-0x1F)
//  3. Stop word removal → Drop words listed in the server's stop word set
//
// EXAMPLE TRANSFORMATION (stop words: "and in at"):
// -------------------------------------------------
// Input:  "  curly dog and   fancy collar "
// Step 1: ["curly", "dog", "and", "fancy", "collar"]   (split)
// Step 2: ok                                           (no control characters)
// Step 3: ["curly", "dog", "fancy", "collar"]          (remove stop words)
// ═══════════════════════════════════════════════════════════════════════════════

package searchserver

import (
	"slices"
)

// SplitIntoWords splits text into words separated by ASCII spaces
//
// Runs of spaces collapse, empty words are discarded, order and duplicates
// are preserved. Only ' ' is a delimiter: tabs and newlines stay inside the
// word (and make it fail ValidateWords).
//
// Examples:
//
//	"white cat"        → ["white", "cat"]
//	"  cat   cat "     → ["cat", "cat"]
//	""                 → []
func SplitIntoWords(text string) []string {
	words := make([]string, 0)
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			if start >= 0 {
				words = append(words, text[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, text[start:])
	}
	return words
}

// ValidateWords reports whether none of the words contain a control character
//
// Control characters are the code points 0 through 31. In UTF-8 those only
// ever appear as single bytes, so a byte scan is exact.
func ValidateWords(words []string) bool {
	for _, word := range words {
		if !isValidWord(word) {
			return false
		}
	}
	return true
}

func isValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < 0x20 {
			return false
		}
	}
	return true
}

// splitIntoValidWords splits text and rejects it when any word is invalid
func splitIntoValidWords(text string) ([]string, error) {
	words := SplitIntoWords(text)
	if !ValidateWords(words) {
		return nil, ErrInvalidCharacters
	}
	return words, nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// STOP WORDS
// ═══════════════════════════════════════════════════════════════════════════════
// Stop words are ignored everywhere: they are never indexed and query words
// equal to a stop word (with or without a leading '-') are dropped.
//
// MEMORY NOTE:
// ------------
// Uses struct{} as the value type (0 bytes per entry), same as any Go set.
// ═══════════════════════════════════════════════════════════════════════════════

// StopWords is a set of words excluded from indexing and querying
type StopWords map[string]struct{}

// NewStopWords builds a stop word set from an explicit collection
//
// Empty strings are ignored. Returns ErrInvalidArgument if any word contains
// a control character.
func NewStopWords(words []string) (StopWords, error) {
	if !ValidateWords(words) {
		return nil, ErrInvalidStopWords
	}

	stopWords := make(StopWords, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		stopWords[word] = struct{}{}
	}
	return stopWords, nil
}

// ParseStopWords builds a stop word set from space separated text
func ParseStopWords(text string) (StopWords, error) {
	return NewStopWords(SplitIntoWords(text))
}

// Contains reports whether word is a stop word
func (sw StopWords) Contains(word string) bool {
	_, exists := sw[word]
	return exists
}

// Words returns the stop words in lexical order
func (sw StopWords) Words() []string {
	words := make([]string, 0, len(sw))
	for word := range sw {
		words = append(words, word)
	}
	slices.Sort(words)
	return words
}

// stopwordFilter removes stop words from a word list
//
// Example (stop words "and in at"):
//
//	["curly", "dog", "and", "collar"] → ["curly", "dog", "collar"]
func (sw StopWords) stopwordFilter(words []string) []string {
	r := make([]string, 0, len(words))
	for _, word := range words {
		if !sw.Contains(word) {
			r = append(r, word)
		}
	}
	return r
}
