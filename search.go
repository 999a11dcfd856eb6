package searchserver

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// RANKING: Scoring Search Results by Relevance
// ═══════════════════════════════════════════════════════════════════════════════
// Documents are scored with TF-IDF over the plus words of the query:
//
//	relevance(doc) = Σ over plus words w: TF(w, doc) * IDF(w)
//
// EXAMPLE:
// --------
// Corpus (stop words "and in at"):
//
//	Doc 1: "curly cat curly tail"       rating 5
//	Doc 2: "curly dog and fancy collar" rating 2
//
// Query: "curly dog -collar"
//
//	IDF("curly") = ln(2/2) = 0       IDF("dog") = ln(2/1) ≈ 0.693
//	Doc 1: 0.5*0 = 0                 (still a match: it contains "curly")
//	Doc 2: 0.25*0 + 0.25*0.693       excluded anyway: it contains "collar"
//
// Result: [{ document_id = 1, relevance = 0, rating = 5 }]
//
// ORDERING:
// ---------
// Higher relevance first. Relevances closer than RelevanceDelta are a tie and
// the higher rating wins. At most MaxResultDocumentCount results are returned.
// ═══════════════════════════════════════════════════════════════════════════════

const (
	// MaxResultDocumentCount caps the length of every result list
	MaxResultDocumentCount = 5

	// RelevanceDelta is the tolerance under which two relevances are equal
	RelevanceDelta = 1e-6
)

// SearchServer answers ranked queries over an InvertedIndex
//
// All index methods (AddDocument, GetDocumentCount, ...) are promoted from the
// embedded index.
type SearchServer struct {
	*InvertedIndex

	maxResults     int
	relevanceDelta float64
}

// NewSearchServer creates a server whose stop words are the space separated
// words of text
//
// Returns ErrInvalidStopWords if a stop word contains a control character.
func NewSearchServer(stopWords string) (*SearchServer, error) {
	return NewSearchServerFromWords(SplitIntoWords(stopWords))
}

// NewSearchServerFromWords creates a server from an explicit stop word list
func NewSearchServerFromWords(stopWords []string) (*SearchServer, error) {
	sw, err := NewStopWords(stopWords)
	if err != nil {
		return nil, err
	}
	return &SearchServer{
		InvertedIndex:  NewInvertedIndex(sw),
		maxResults:     MaxResultDocumentCount,
		relevanceDelta: RelevanceDelta,
	}, nil
}

// FindTopDocuments returns the best matches among ACTUAL documents
func (s *SearchServer) FindTopDocuments(rawQuery string) ([]Document, error) {
	return s.FindTopDocumentsWithStatus(rawQuery, StatusActual)
}

// FindTopDocumentsWithStatus returns the best matches among documents with the given status
func (s *SearchServer) FindTopDocumentsWithStatus(rawQuery string, status DocumentStatus) ([]Document, error) {
	return s.FindTopDocumentsWithFilter(rawQuery, StatusFilter(status))
}

// FindTopDocumentsWithFilter returns the best matches among documents accepted by filter
//
// ALGORITHM:
// ----------
// 1. Parse the query (fails with ErrInvalidQuery kinds)
// 2. Accumulate TF-IDF per document for every plus word, filter applied
// 3. Drop documents containing any minus word (filter not consulted)
// 4. Sort by relevance, ties by rating, and keep the top MaxResultDocumentCount
//
// A nil filter accepts every document. Calling it twice on the same index
// with the same query returns the same list in the same order.
func (s *SearchServer) FindTopDocumentsWithFilter(rawQuery string, filter DocumentFilter) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, err := ParseQuery(rawQuery, s.stopWords)
	if err != nil {
		slog.Warn("rejecting query", slog.String("query", rawQuery), slog.String("error", err.Error()))
		return nil, fmt.Errorf("query %q: %w", rawQuery, err)
	}

	documents := s.findAllDocuments(query, filter)
	s.sortDocuments(documents)
	documents = limitResults(documents, s.maxResults)

	slog.Debug("ranked query", slog.String("query", rawQuery), slog.Int("results", len(documents)))
	return documents, nil
}

// findAllDocuments scores every matching document. Caller holds s.mu.
//
// Documents are returned in ascending id order; sortDocuments is stable, so
// equal results keep that order.
func (s *SearchServer) findAllDocuments(query Query, filter DocumentFilter) []Document {
	relevance := s.computeDocumentsRelevance(query, filter)

	documents := make([]Document, 0, relevance.scored.GetCardinality())
	iter := relevance.scored.Iterator()
	for iter.HasNext() {
		docID := int(iter.Next())
		documents = append(documents, Document{
			ID:        docID,
			Relevance: relevance.scores[docID],
			Rating:    s.documents[docID].rating,
		})
	}
	return documents
}

// documentsRelevance holds accumulated scores and the set of scored ids
type documentsRelevance struct {
	scores map[int]float64
	scored *roaring.Bitmap
}

// computeDocumentsRelevance accumulates TF-IDF per document
//
// HOW IT WORKS:
// -------------
// For each plus word (sorted) present in the index:
//   - compute IDF once
//   - walk the word's bitmap in id order, and for each document the filter
//     accepts add TF * IDF to its score
//
// A document enters the result as soon as one plus word passes the filter,
// even when IDF is 0 (a word present everywhere still matches).
//
// Finally every document in the minus word union is removed.
func (s *SearchServer) computeDocumentsRelevance(query Query, filter DocumentFilter) documentsRelevance {
	relevance := documentsRelevance{
		scores: make(map[int]float64),
		scored: roaring.NewBitmap(),
	}
	if !query.HasPlusWords() {
		return relevance
	}

	for _, word := range query.Words(WordPlus) {
		bitmap, exists := s.DocBitmaps[word]
		if !exists {
			continue
		}

		idf := s.calculateIDF(word)
		freqs := s.TermFreqs[word]

		iter := bitmap.Iterator()
		for iter.HasNext() {
			docID := int(iter.Next())
			info := s.documents[docID]
			if filter != nil && !filter(docID, info.status, info.rating) {
				continue
			}
			relevance.scores[docID] += freqs[docID] * idf
			relevance.scored.Add(uint32(docID))
		}
	}

	excluded := query.excludedDocuments(s.InvertedIndex)
	if !excluded.IsEmpty() {
		relevance.scored.AndNot(excluded)
		iter := excluded.Iterator()
		for iter.HasNext() {
			delete(relevance.scores, int(iter.Next()))
		}
	}
	return relevance
}

// sortDocuments orders by relevance (descending), ties by rating (descending)
//
// Two relevances closer than relevanceDelta are treated as equal. Floating
// point scores are never compared for exact equality.
func (s *SearchServer) sortDocuments(documents []Document) {
	sort.SliceStable(documents, func(i, j int) bool {
		lhs, rhs := documents[i], documents[j]
		if math.Abs(lhs.Relevance-rhs.Relevance) < s.relevanceDelta {
			return lhs.Rating > rhs.Rating
		}
		return lhs.Relevance > rhs.Relevance
	})
}

// limitResults returns at most maxResults items
//
// Example:
//
//	documents = [D1, D2, D3, D4, D5, D6, D7]
//	maxResults = 5
//	Returns: [D1, D2, D3, D4, D5]
func limitResults(documents []Document, maxResults int) []Document {
	return documents[:min(maxResults, len(documents))]
}

// ═══════════════════════════════════════════════════════════════════════════════
// MATCHING: Which Query Words Does a Document Contain?
// ═══════════════════════════════════════════════════════════════════════════════

// MatchDocument returns the plus words of rawQuery found in document id, with
// the document's status
//
// EXAMPLE:
// --------
// Doc 2: "curly dog and fancy collar"
//
//	MatchDocument("curly dog", 2)         → ["curly", "dog"], ACTUAL
//	MatchDocument("curly dog -collar", 2) → [], ACTUAL
//	MatchDocument("-collar", 2)           → [], ACTUAL
//
// The matched words are in lexical order. When a minus word hits, the word
// list is empty but the real status is still reported. Returns ErrNotFound
// for an unknown id and an ErrInvalidQuery kind for a malformed query.
func (s *SearchServer) MatchDocument(rawQuery string, id int) ([]string, DocumentStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, err := ParseQuery(rawQuery, s.stopWords)
	if err != nil {
		return nil, 0, fmt.Errorf("query %q: %w", rawQuery, err)
	}

	info, exists := s.documents[id]
	if !exists {
		return nil, 0, fmt.Errorf("document %d: %w", id, ErrNotFound)
	}

	matched := make([]string, 0)
	for _, word := range query.Words(WordMinus) {
		if s.containsWord(word, id) {
			return matched, info.status, nil
		}
	}

	for _, word := range query.Words(WordPlus) {
		if s.containsWord(word, id) {
			matched = append(matched, word)
		}
	}
	return matched, info.status, nil
}
