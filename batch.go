package searchserver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ═══════════════════════════════════════════════════════════════════════════════
// BATCH QUERIES
// ═══════════════════════════════════════════════════════════════════════════════
// Once every document is indexed, searches only read the index and can run in
// parallel. ProcessQueries fans a batch out over GOMAXPROCS workers; result i
// always belongs to query i.
//
// Indexing while a batch runs is safe (AddDocument waits for the read locks)
// but each query then sees whichever index state it locked.
// ═══════════════════════════════════════════════════════════════════════════════

// ProcessQueries runs FindTopDocuments for every query concurrently
//
// The first failing query cancels the rest and its error is returned.
func ProcessQueries(ctx context.Context, server *SearchServer, queries []string) ([][]Document, error) {
	results := make([][]Document, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, query := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			documents, err := server.FindTopDocuments(query)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = documents
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessQueriesJoined runs ProcessQueries and concatenates the results in query order
func ProcessQueriesJoined(ctx context.Context, server *SearchServer, queries []string) ([]Document, error) {
	results, err := ProcessQueries(ctx, server, queries)
	if err != nil {
		return nil, err
	}

	joined := make([]Document, 0)
	for _, documents := range results {
		joined = append(joined, documents...)
	}
	return joined, nil
}
