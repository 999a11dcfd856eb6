package searchserver

// ═══════════════════════════════════════════════════════════════════════════════
// REQUEST HISTORY: Empty Results in a Sliding Window
// ═══════════════════════════════════════════════════════════════════════════════
// The history keeps one entry per search, stamped with a logical clock that
// ticks once per recorded request. Entries whose age reaches the window are
// dropped from the front.
//
// EXAMPLE (window = 3):
// ---------------------
//
//	Record(true)  → time 1, entries [1:empty]                    CountEmpty = 1
//	Record(true)  → time 2, entries [1:empty 2:empty]            CountEmpty = 2
//	Record(false) → time 3, entries [1:empty 2:empty 3:found]    CountEmpty = 2
//	Record(false) → time 4, entry 1 has age 3 → evicted
//	                entries [2:empty 3:found 4:found]            CountEmpty = 1
//
// The window never holds more than RequestWindow entries.
// ═══════════════════════════════════════════════════════════════════════════════

// RequestWindow is the number of ticks a request stays in the history
//
// One tick per request; 1440 is one day of requests made once a minute.
const RequestWindow = 1440

// requestRecord is one search in the history
type requestRecord struct {
	time    uint64
	isEmpty bool
}

// RequestHistory counts empty-result searches within the last RequestWindow requests
//
// It is not safe for concurrent use.
type RequestHistory struct {
	requests   []requestRecord
	window     uint64
	time       uint64
	emptyCount int
}

// NewRequestHistory creates an empty history
func NewRequestHistory() *RequestHistory {
	return &RequestHistory{
		requests: make([]requestRecord, 0),
		window:   RequestWindow,
	}
}

// Record adds a request, advancing the clock and evicting expired entries
func (h *RequestHistory) Record(wasEmpty bool) {
	h.time++
	h.requests = append(h.requests, requestRecord{time: h.time, isEmpty: wasEmpty})
	if wasEmpty {
		h.emptyCount++
	}
	h.removeOldRequests()
}

// removeOldRequests drops entries whose age is at least the window
func (h *RequestHistory) removeOldRequests() {
	expired := 0
	for expired < len(h.requests) && h.time-h.requests[expired].time >= h.window {
		if h.requests[expired].isEmpty {
			h.emptyCount--
		}
		expired++
	}
	if expired > 0 {
		h.requests = h.requests[expired:]
	}
}

// CountEmpty returns the number of retained requests that found nothing
func (h *RequestHistory) CountEmpty() int {
	return h.emptyCount
}

// Len returns the number of retained requests
func (h *RequestHistory) Len() int {
	return len(h.requests)
}

// ═══════════════════════════════════════════════════════════════════════════════
// REQUEST QUEUE: Searching Through the History
// ═══════════════════════════════════════════════════════════════════════════════

// Searcher is anything that can answer a filtered top documents query
//
// *SearchServer implements it.
type Searcher interface {
	FindTopDocumentsWithFilter(rawQuery string, filter DocumentFilter) ([]Document, error)
}

// RequestQueue forwards searches to a Searcher and records whether each one
// came back empty
//
// Searches that fail (for example a malformed query) are not recorded.
type RequestQueue struct {
	searcher Searcher
	history  *RequestHistory
}

// NewRequestQueue creates a queue over searcher with an empty history
func NewRequestQueue(searcher Searcher) *RequestQueue {
	return &RequestQueue{
		searcher: searcher,
		history:  NewRequestHistory(),
	}
}

// AddFindRequest searches ACTUAL documents and records the outcome
func (q *RequestQueue) AddFindRequest(rawQuery string) ([]Document, error) {
	return q.AddFindRequestWithStatus(rawQuery, StatusActual)
}

// AddFindRequestWithStatus searches documents with the given status and records the outcome
func (q *RequestQueue) AddFindRequestWithStatus(rawQuery string, status DocumentStatus) ([]Document, error) {
	return q.AddFindRequestWithFilter(rawQuery, StatusFilter(status))
}

// AddFindRequestWithFilter searches documents accepted by filter and records the outcome
func (q *RequestQueue) AddFindRequestWithFilter(rawQuery string, filter DocumentFilter) ([]Document, error) {
	documents, err := q.searcher.FindTopDocumentsWithFilter(rawQuery, filter)
	if err != nil {
		return nil, err
	}
	q.history.Record(len(documents) == 0)
	return documents, nil
}

// NoResultRequests returns the number of empty searches in the current window
func (q *RequestQueue) NoResultRequests() int {
	return q.history.CountEmpty()
}

// History exposes the underlying request history
func (q *RequestQueue) History() *RequestHistory {
	return q.history
}
