// Package searchserver implements an in-memory TF-IDF search server
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS AN INVERTED INDEX?
// ═══════════════════════════════════════════════════════════════════════════════
// An inverted index maps each word to the documents that contain it, like the
// index at the back of a book.
//
// Example: Given these documents (stop words: "and in at"):
//   Doc 1: "curly cat curly tail"
//   Doc 2: "curly dog and fancy collar"
//
// The index records, for each word, the documents holding it and the word's
// term frequency (share of the document's words equal to it):
//   "curly"  → {Doc1: 0.50, Doc2: 0.25}
//   "cat"    → {Doc1: 0.25}
//   "tail"   → {Doc1: 0.25}
//   "dog"    → {Doc2: 0.25}
//   "fancy"  → {Doc2: 0.25}
//   "collar" → {Doc2: 0.25}
//
// This allows us to:
// 1. Find documents containing a word without scanning every document
// 2. Weigh each word by how rare it is across the corpus (IDF)
// 3. Exclude documents holding a minus word with a single set operation
//
// ═══════════════════════════════════════════════════════════════════════════════

package searchserver

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// MaxDocumentID is the largest accepted document id
//
// Ids are stored in 32-bit roaring bitmaps and must be non-negative.
const MaxDocumentID = math.MaxInt32

// ═══════════════════════════════════════════════════════════════════════════════
// CORE DATA STRUCTURE: InvertedIndex with HYBRID STORAGE
// ═══════════════════════════════════════════════════════════════════════════════
// Architecture:
//
//	InvertedIndex
//	├── DocBitmaps: map[string]*roaring.Bitmap    (DOCUMENT SETS)
//	│   ├── "curly" → Bitmap of document IDs [1, 2]
//	│   └── "cat"   → Bitmap of document IDs [1]
//	├── TermFreqs: map[string]map[int]float64     (TF WEIGHTS)
//	│   ├── "curly" → {1: 0.5, 2: 0.25}
//	│   └── "cat"   → {1: 0.25}
//	├── documents: map[int]documentInfo           (STATUS, RATING)
//	├── documentIDs: []int                        (INSERTION ORDER)
//	└── mu: RWMutex (writers: AddDocument, SetStopWords)
//
// Why both?
//   - Roaring bitmaps give document frequency in O(1) (cardinality), ordered
//     iteration by id, and cheap unions for minus word exclusion
//   - The TF maps hold the per (word, document) weight used for scoring
// ═══════════════════════════════════════════════════════════════════════════════
type InvertedIndex struct {
	mu sync.RWMutex // Exclusive for ingestion, shared for lookups and search

	DocBitmaps  map[string]*roaring.Bitmap // Word → Bitmap of document IDs
	TermFreqs   map[string]map[int]float64 // Word → DocID → term frequency
	stopWords   StopWords                  // Words ignored everywhere
	documents   map[int]documentInfo       // DocID → metadata
	documentIDs []int                      // DocIDs in insertion order
}

// NewInvertedIndex creates an empty index using the given stop words
func NewInvertedIndex(stopWords StopWords) *InvertedIndex {
	if stopWords == nil {
		stopWords = make(StopWords)
	}
	return &InvertedIndex{
		DocBitmaps:  make(map[string]*roaring.Bitmap),
		TermFreqs:   make(map[string]map[int]float64),
		stopWords:   stopWords,
		documents:   make(map[int]documentInfo),
		documentIDs: make([]int, 0),
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// STOP WORD CONFIGURATION
// ═══════════════════════════════════════════════════════════════════════════════

// SetStopWords replaces the stop words with the space separated words in text
//
// Stop words must apply to every document the same way, so they can only be
// replaced while the index is empty. Returns ErrStopWordsFrozen otherwise.
func (idx *InvertedIndex) SetStopWords(text string) error {
	stopWords, err := ParseStopWords(text)
	if err != nil {
		return err
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if len(idx.documents) > 0 {
		return ErrStopWordsFrozen
	}
	idx.stopWords = stopWords
	return nil
}

// StopWords returns the configured stop words in lexical order
func (idx *InvertedIndex) StopWords() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.stopWords.Words()
}

// ═══════════════════════════════════════════════════════════════════════════════
// INDEXING: Building the Search Index
// ═══════════════════════════════════════════════════════════════════════════════

// AddDocument adds a document to the index
//
// STEP-BY-STEP EXAMPLE:
// ----------------------
// Input: id=2, text="curly dog and fancy collar", ratings=[1, 2, 3]
//
// Step 1: Validation (before anything is mutated)
//
//	id >= 0, id not yet indexed, no control characters in text
//
// Step 2: Tokenization (stop words "and in at")
//
//	["curly", "dog", "fancy", "collar"]
//
// Step 3: Each occurrence adds 1/len(words) to the word's frequency
//
//	TermFreqs["curly"][2] = 0.25, ... (sum over the document = 1.0)
//	DocBitmaps["curly"].Add(2), ...
//
// Step 4: Metadata
//
//	rating = (1 + 2 + 3) / 3 = 2, status stored, id appended to insertion order
//
// Failures leave the index untouched:
//   - ErrInvalidDocumentID for a negative id or one above MaxDocumentID
//   - ErrDuplicateDocument for an id already indexed
//   - ErrInvalidCharacters for text holding control characters
func (idx *InvertedIndex) AddDocument(id int, text string, status DocumentStatus, ratings []int) error {
	if id < 0 || id > MaxDocumentID {
		slog.Warn("rejecting document", slog.Int("docID", id), slog.String("reason", "invalid id"))
		return fmt.Errorf("document %d: %w", id, ErrInvalidDocumentID)
	}

	words, err := splitIntoValidWords(text)
	if err != nil {
		slog.Warn("rejecting document", slog.Int("docID", id), slog.String("reason", "invalid characters"))
		return fmt.Errorf("document %d: %w", id, err)
	}

	idx.mu.Lock() // Only one goroutine can index at a time
	defer idx.mu.Unlock()

	if _, exists := idx.documents[id]; exists {
		slog.Warn("rejecting document", slog.Int("docID", id), slog.String("reason", "duplicate id"))
		return fmt.Errorf("document %d: %w", id, ErrDuplicateDocument)
	}

	slog.Debug("indexing document", slog.Int("docID", id))

	words = idx.stopWords.stopwordFilter(words)
	if len(words) > 0 {
		wordFrequency := 1.0 / float64(len(words))
		for _, word := range words {
			idx.indexWord(word, id, wordFrequency)
		}
	}

	idx.documents[id] = documentInfo{
		status: status,
		rating: ComputeAverageRating(ratings),
	}
	idx.documentIDs = append(idx.documentIDs, id)
	return nil
}

// indexWord records one occurrence of word in document id
//
// Every occurrence adds wordFrequency (1/len), so a word seen twice in a four
// word document ends up with tf = 0.5.
func (idx *InvertedIndex) indexWord(word string, id int, wordFrequency float64) {
	// Create bitmap if this is the first time seeing this word
	if idx.DocBitmaps[word] == nil {
		idx.DocBitmaps[word] = roaring.NewBitmap()
		idx.TermFreqs[word] = make(map[int]float64)
	}
	idx.DocBitmaps[word].Add(uint32(id))
	idx.TermFreqs[word][id] += wordFrequency
}

// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENT LOOKUPS
// ═══════════════════════════════════════════════════════════════════════════════

// GetDocumentCount returns the number of indexed documents
func (idx *InvertedIndex) GetDocumentCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.documents)
}

// GetDocumentID returns the id of the document added at the given position
//
// Positions are zero-based in insertion order. Returns ErrIndexOutOfRange
// outside [0, GetDocumentCount()).
func (idx *InvertedIndex) GetDocumentID(position int) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if position < 0 || position >= len(idx.documentIDs) {
		return 0, fmt.Errorf("position %d: %w", position, ErrIndexOutOfRange)
	}
	return idx.documentIDs[position], nil
}

// DocumentIDs returns all document ids in insertion order
func (idx *InvertedIndex) DocumentIDs() []int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]int(nil), idx.documentIDs...)
}

// GetStatus returns the status stored for document id
func (idx *InvertedIndex) GetStatus(id int) (DocumentStatus, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	info, exists := idx.documents[id]
	if !exists {
		return 0, fmt.Errorf("document %d: %w", id, ErrNotFound)
	}
	return info.status, nil
}

// GetRating returns the average rating stored for document id
func (idx *InvertedIndex) GetRating(id int) (int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	info, exists := idx.documents[id]
	if !exists {
		return 0, fmt.Errorf("document %d: %w", id, ErrNotFound)
	}
	return info.rating, nil
}

// WordFrequencies returns a copy of the word → term frequency map of document id
//
// The values of a non-empty document sum to 1.0. A document whose words were
// all stop words has an empty map.
func (idx *InvertedIndex) WordFrequencies(id int) (map[string]float64, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if _, exists := idx.documents[id]; !exists {
		return nil, fmt.Errorf("document %d: %w", id, ErrNotFound)
	}

	freqs := make(map[string]float64)
	for word, docFreqs := range idx.TermFreqs {
		if tf, ok := docFreqs[id]; ok {
			freqs[word] = tf
		}
	}
	return freqs, nil
}

// ═══════════════════════════════════════════════════════════════════════════════
// TF-IDF STATISTICS
// ═══════════════════════════════════════════════════════════════════════════════
// TF(word, doc) = occurrences of word in doc / number of words in doc
// IDF(word)     = ln(total documents / documents containing word)
//
// EXAMPLE:
// --------
// 4 documents, "curly" appears in 2 of them:
//
//	IDF("curly") = ln(4 / 2) ≈ 0.693
//
// A word present in every document has IDF = ln(1) = 0 and never moves the
// ranking. There is no smoothing, so IDF is never negative.
// ═══════════════════════════════════════════════════════════════════════════════

// DocumentFrequency returns the number of documents containing word
func (idx *InvertedIndex) DocumentFrequency(word string) int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.documentFrequency(word)
}

// TermFrequency returns the term frequency of word in document id (0 if absent)
func (idx *InvertedIndex) TermFrequency(word string, id int) float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.TermFreqs[word][id]
}

// IDF returns the inverse document frequency of word (0 if never indexed)
func (idx *InvertedIndex) IDF(word string) float64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.calculateIDF(word)
}

// documentFrequency reads the bitmap cardinality. Caller holds mu.
func (idx *InvertedIndex) documentFrequency(word string) int {
	bitmap, exists := idx.DocBitmaps[word]
	if !exists {
		return 0
	}
	return int(bitmap.GetCardinality())
}

// calculateIDF computes ln(N / df). Caller holds mu.
func (idx *InvertedIndex) calculateIDF(word string) float64 {
	df := idx.documentFrequency(word)
	if df == 0 {
		return 0.0
	}
	return math.Log(float64(len(idx.documents)) / float64(df))
}

// containsWord reports whether document id holds word. Caller holds mu.
func (idx *InvertedIndex) containsWord(word string, id int) bool {
	bitmap, exists := idx.DocBitmaps[word]
	return exists && bitmap.Contains(uint32(id))
}
