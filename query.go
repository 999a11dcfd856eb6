package searchserver

import (
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PARSING: Plus, Minus and Stop Words
// ═══════════════════════════════════════════════════════════════════════════════
// A raw query is a space separated list of words:
//
//	"curly dog -collar"
//
// Each word is classified:
//   - "curly", "dog"  → PLUS  (documents are scored by these)
//   - "-collar"       → MINUS (documents containing "collar" are excluded)
//   - stop words      → STOP  (ignored, with or without a leading '-')
//   - "-", "--cat"    → INVALID (the whole query is rejected)
//
// Words are collected into sets, so "cat cat -dog -dog" holds one plus word
// and one minus word.
// ═══════════════════════════════════════════════════════════════════════════════

// WordType classifies a query word
type WordType int

const (
	WordPlus WordType = iota
	WordMinus
	WordStop
	WordInvalid
)

func (t WordType) String() string {
	switch t {
	case WordPlus:
		return "plus"
	case WordMinus:
		return "minus"
	case WordStop:
		return "stop"
	default:
		return "invalid"
	}
}

// Query is a parsed query: word sets keyed by word type
//
// Minus words are stored without their leading '-'. The Invalid set is never
// populated because an invalid word fails the whole parse.
type Query struct {
	WordsByType map[WordType]map[string]struct{}
}

// ParseQuery parses a raw query using the given stop words
//
// EXAMPLE:
// --------
//
//	q, err := ParseQuery("curly -collar and", stopWords) // stop words: "and"
//	q.Words(WordPlus)  // ["curly"]
//	q.Words(WordMinus) // ["collar"]
//	q.Words(WordStop)  // ["and"]
//
// Fails with ErrInvalidCharacters if a word contains a control character and
// with ErrInvalidMinusWord for "-" alone or a word starting with "--".
func ParseQuery(text string, stopWords StopWords) (Query, error) {
	words, err := splitIntoValidWords(text)
	if err != nil {
		return Query{}, err
	}

	query := Query{WordsByType: make(map[WordType]map[string]struct{})}
	for _, word := range words {
		wordType, content := classifyWord(word, stopWords)
		if wordType == WordInvalid {
			return Query{}, ErrInvalidMinusWord
		}
		query.add(wordType, content)
	}
	return query, nil
}

// classifyWord returns the type of a query word and the word to store
func classifyWord(word string, stopWords StopWords) (WordType, string) {
	if word == "-" || strings.HasPrefix(word, "--") {
		return WordInvalid, word
	}

	content, isMinus := strings.CutPrefix(word, "-")
	switch {
	case stopWords.Contains(content):
		return WordStop, content
	case isMinus:
		return WordMinus, content
	default:
		return WordPlus, content
	}
}

func (q Query) add(wordType WordType, word string) {
	set, exists := q.WordsByType[wordType]
	if !exists {
		set = make(map[string]struct{})
		q.WordsByType[wordType] = set
	}
	set[word] = struct{}{}
}

// Words returns the words of the given type in lexical order
//
// Sorted output keeps scoring deterministic: relevance sums are accumulated
// in the same order on every run.
func (q Query) Words(wordType WordType) []string {
	set := q.WordsByType[wordType]
	words := make([]string, 0, len(set))
	for word := range set {
		words = append(words, word)
	}
	slices.Sort(words)
	return words
}

// Has reports whether word is in the set of the given type
func (q Query) Has(wordType WordType, word string) bool {
	_, exists := q.WordsByType[wordType][word]
	return exists
}

// HasPlusWords reports whether the query can match anything
func (q Query) HasPlusWords() bool {
	return len(q.WordsByType[WordPlus]) > 0
}

// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENT SETS WITH ROARING BITMAPS
// ═══════════════════════════════════════════════════════════════════════════════
// Minus words are resolved to a single bitmap up front:
//
//	excluded = bitmap("collar") ∪ bitmap("leash") ∪ ...
//
// Scoring then drops every document in that bitmap, whatever the filter says.
// ═══════════════════════════════════════════════════════════════════════════════

// excludedDocuments returns the union of the minus word bitmaps. Caller holds idx.mu.
func (q Query) excludedDocuments(idx *InvertedIndex) *roaring.Bitmap {
	bitmaps := make([]*roaring.Bitmap, 0, len(q.WordsByType[WordMinus]))
	for word := range q.WordsByType[WordMinus] {
		if bitmap, exists := idx.DocBitmaps[word]; exists {
			bitmaps = append(bitmaps, bitmap)
		}
	}
	if len(bitmaps) == 0 {
		return roaring.NewBitmap()
	}
	return roaring.FastOr(bitmaps...)
}
