package searchserver

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestProcessQueries(t *testing.T) {
	server := setupTestServer(t)
	queries := []string{
		"fluffy groomed cat",
		"parrot",
		"groomed -eugene",
		"cat -collar",
	}

	results, err := ProcessQueries(context.Background(), server, queries)
	if err != nil {
		t.Fatalf("ProcessQueries() error = %v", err)
	}
	if len(results) != len(queries) {
		t.Fatalf("Got %d results, want %d", len(results), len(queries))
	}

	for i, query := range queries {
		want, _ := server.FindTopDocuments(query)
		if !reflect.DeepEqual(results[i], want) {
			t.Errorf("Result %d (%q) = %v, want %v", i, query, results[i], want)
		}
	}
}

func TestProcessQueries_InvalidQuery(t *testing.T) {
	server := setupTestServer(t)

	_, err := ProcessQueries(context.Background(), server, []string{"cat", "cat --dog", "dog"})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Errorf("ProcessQueries() error = %v, want ErrInvalidQuery", err)
	}
}

func TestProcessQueries_Cancelled(t *testing.T) {
	server := setupTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessQueries(ctx, server, []string{"cat", "dog"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ProcessQueries() error = %v, want context.Canceled", err)
	}
}

func TestProcessQueries_Empty(t *testing.T) {
	server := setupTestServer(t)

	results, err := ProcessQueries(context.Background(), server, nil)
	if err != nil {
		t.Fatalf("ProcessQueries() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Got %d results, want 0", len(results))
	}
}

func TestProcessQueriesJoined(t *testing.T) {
	server := setupTestServer(t)
	queries := []string{"fluffy groomed cat", "parrot", "groomed"}

	joined, err := ProcessQueriesJoined(context.Background(), server, queries)
	if err != nil {
		t.Fatalf("ProcessQueriesJoined() error = %v", err)
	}

	// [1 0 2] + [] + [2]
	if got, want := documentIDs(joined), []int{1, 0, 2, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Joined ids = %v, want %v", got, want)
	}
}
