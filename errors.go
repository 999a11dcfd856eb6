package searchserver

import (
	"errors"
	"fmt"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ERROR DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════
// Errors are package-level variables compared with errors.Is. The specific
// errors wrap one of the three kinds, so callers can test either:
//
//	errors.Is(err, ErrDuplicateDocument) // exact cause
//	errors.Is(err, ErrInvalidArgument)   // kind
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidQuery    = errors.New("invalid query")
	ErrNotFound        = errors.New("document not found")
	ErrIndexOutOfRange = errors.New("document index out of range")

	ErrInvalidDocumentID = fmt.Errorf("%w: document id is invalid", ErrInvalidArgument)
	ErrDuplicateDocument = fmt.Errorf("%w: document with this id has already been added", ErrInvalidArgument)
	ErrInvalidStopWords  = fmt.Errorf("%w: stop words have invalid characters", ErrInvalidArgument)
	ErrStopWordsFrozen   = fmt.Errorf("%w: stop words cannot change after documents are added", ErrInvalidArgument)
	ErrInvalidFilter     = fmt.Errorf("%w: filter expression is invalid", ErrInvalidArgument)

	ErrInvalidCharacters = fmt.Errorf("%w: text has words with invalid characters", ErrInvalidQuery)
	ErrInvalidMinusWord  = fmt.Errorf("%w: malformed minus word", ErrInvalidQuery)
)
