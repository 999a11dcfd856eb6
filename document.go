package searchserver

import (
	"fmt"
	"strconv"
)

// DocumentStatus is the moderation state of an indexed document
type DocumentStatus int

const (
	StatusActual DocumentStatus = iota
	StatusIrrelevant
	StatusBanned
	StatusRemoved
)

var statusNames = [...]string{
	StatusActual:     "ACTUAL",
	StatusIrrelevant: "IRRELEVANT",
	StatusBanned:     "BANNED",
	StatusRemoved:    "REMOVED",
}

func (s DocumentStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "DocumentStatus(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// ParseDocumentStatus converts a status name such as "ACTUAL" back to a DocumentStatus
func ParseDocumentStatus(name string) (DocumentStatus, error) {
	for status, statusName := range statusNames {
		if statusName == name {
			return DocumentStatus(status), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown document status %q", ErrInvalidArgument, name)
}

// Document is a single ranked search result
type Document struct {
	ID        int     // Document identifier
	Relevance float64 // TF-IDF relevance to the query
	Rating    int     // Average rating stored at ingestion
}

func (d Document) String() string {
	return fmt.Sprintf("{ document_id = %d, relevance = %g, rating = %d }", d.ID, d.Relevance, d.Rating)
}

// documentInfo is the metadata kept per document
type documentInfo struct {
	status DocumentStatus
	rating int
}

// ComputeAverageRating returns the truncated integer mean of ratings
//
// Example:
//
//	ComputeAverageRating([]int{7, 2, 7}) // 16 / 3 = 5
//	ComputeAverageRating(nil)            // 0
func ComputeAverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, rating := range ratings {
		sum += rating
	}
	return sum / len(ratings)
}
