package searchserver

import (
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"
)

// DocumentFilter decides whether a document may appear in search results
//
// It is consulted while relevance is accumulated. It cannot bring back a
// document excluded by a minus word.
type DocumentFilter func(id int, status DocumentStatus, rating int) bool

// StatusFilter accepts exactly the documents with the given status
func StatusFilter(status DocumentStatus) DocumentFilter {
	return func(_ int, documentStatus DocumentStatus, _ int) bool {
		return documentStatus == status
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// EXPRESSION FILTERS
// ═══════════════════════════════════════════════════════════════════════════════
// A filter can also be written as a CEL expression, compiled once and then
// evaluated per document. The expression sees three variables:
//
//	id     int     document id
//	status string  "ACTUAL", "IRRELEVANT", "BANNED" or "REMOVED"
//	rating int     average rating
//
// EXAMPLES:
// ---------
//
//	id % 2 == 0
//	status == "ACTUAL" && rating > 2
//	status in ["ACTUAL", "IRRELEVANT"]
// ═══════════════════════════════════════════════════════════════════════════════

// ExpressionFilter is a compiled CEL document filter
type ExpressionFilter struct {
	Expression string
	program    cel.Program
}

// NewExpressionFilter compiles expression into a filter
//
// Returns ErrInvalidFilter if the expression is empty, does not compile, or
// does not evaluate to a bool.
func NewExpressionFilter(expression string) (*ExpressionFilter, error) {
	if expression == "" {
		return nil, fmt.Errorf("%w: expression can't be empty", ErrInvalidFilter)
	}

	env, err := cel.NewEnv(
		cel.Variable("id", cel.IntType),
		cel.Variable("status", cel.StringType),
		cel.Variable("rating", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: creating CEL environment: %v", ErrInvalidFilter, err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: expression yields %v, want bool", ErrInvalidFilter, ast.OutputType())
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: creating program: %v", ErrInvalidFilter, err)
	}

	return &ExpressionFilter{
		Expression: expression,
		program:    program,
	}, nil
}

// Match evaluates the expression for one document
//
// Evaluation errors (for example a division by zero) reject the document.
func (f *ExpressionFilter) Match(id int, status DocumentStatus, rating int) bool {
	out, _, err := f.program.Eval(map[string]any{
		"id":     int64(id),
		"status": status.String(),
		"rating": int64(rating),
	})
	if err != nil {
		slog.Warn("filter evaluation failed",
			slog.String("expression", f.Expression),
			slog.Int("docID", id),
			slog.String("error", err.Error()))
		return false
	}

	matched, ok := out.Value().(bool)
	return ok && matched
}

// Filter returns the expression as a DocumentFilter
func (f *ExpressionFilter) Filter() DocumentFilter {
	return f.Match
}
