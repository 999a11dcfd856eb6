// Command searchserver indexes documents read from stdin and answers queries.
//
// Input format:
//
//	line 1:      stop words, space separated
//	line 2:      number of documents N
//	next N:      one document per line, ids 0..N-1
//	remaining:   one query per line
//
// With -meta each document line is "STATUS|r1 r2 r3|text", for example
// "ACTUAL|7 2 7|curly cat curly tail".
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/wizenheimer/searchserver"
)

func main() {
	pageSize := flag.Int("page", 2, "results per printed page")
	meta := flag.Bool("meta", false, "document lines carry status and ratings")
	filterExpr := flag.String("filter", "", `CEL filter over id, status and rating, e.g. 'rating > 2'`)
	flag.Parse()

	configureLogging()

	if err := run(os.Stdin, os.Stdout, *pageSize, *meta, *filterExpr); err != nil {
		fmt.Fprintf(os.Stderr, "searchserver: %v\n", err)
		os.Exit(1)
	}
}

// configureLogging installs a text handler on stderr, level from SEARCHSERVER_LOG_LEVEL
func configureLogging() {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)

	switch os.Getenv("SEARCHSERVER_LOG_LEVEL") {
	case "DEBUG":
		level.Set(slog.LevelDebug)
	case "INFO":
		level.Set(slog.LevelInfo)
	case "ERROR":
		level.Set(slog.LevelError)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func run(in io.Reader, out io.Writer, pageSize int, meta bool, filterExpr string) error {
	if pageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	scanner := bufio.NewScanner(in)
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return scanner.Text(), true
	}

	stopWords, _ := readLine()
	server, err := searchserver.NewSearchServer(stopWords)
	if err != nil {
		return err
	}

	countLine, _ := readLine()
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil {
		return fmt.Errorf("document count: %w", err)
	}

	for id := 0; id < count; id++ {
		line, ok := readLine()
		if !ok {
			return fmt.Errorf("expected %d documents, got %d", count, id)
		}
		if err := addDocument(server, id, line, meta); err != nil {
			return err
		}
	}

	var filter searchserver.DocumentFilter = searchserver.StatusFilter(searchserver.StatusActual)
	if filterExpr != "" {
		expr, err := searchserver.NewExpressionFilter(filterExpr)
		if err != nil {
			return err
		}
		filter = expr.Filter()
	}

	queue := searchserver.NewRequestQueue(server)
	for {
		query, ok := readLine()
		if !ok {
			break
		}

		documents, err := queue.AddFindRequestWithFilter(query, filter)
		if err != nil {
			fmt.Fprintf(out, "Search error: %v\n", err)
			continue
		}

		fmt.Fprintf(out, "Results for %q:\n", query)
		for i, page := range paginate(documents, pageSize) {
			fmt.Fprintf(out, "Page %d\n", i+1)
			for _, document := range page {
				fmt.Fprintln(out, document)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Total empty requests: %d\n", queue.NoResultRequests())
	return nil
}

func addDocument(server *searchserver.SearchServer, id int, line string, meta bool) error {
	if !meta {
		return server.AddDocument(id, line, searchserver.StatusActual, nil)
	}

	parts := strings.SplitN(line, "|", 3)
	if len(parts) != 3 {
		return fmt.Errorf("document %d: want STATUS|ratings|text, got %q", id, line)
	}

	status, err := searchserver.ParseDocumentStatus(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("document %d: %w", id, err)
	}

	var ratings []int
	for _, field := range strings.Fields(parts[1]) {
		rating, err := strconv.Atoi(field)
		if err != nil {
			return fmt.Errorf("document %d: rating %q: %w", id, field, err)
		}
		ratings = append(ratings, rating)
	}

	return server.AddDocument(id, parts[2], status, ratings)
}

// paginate splits items into consecutive pages of at most size items
func paginate[T any](items []T, size int) [][]T {
	pages := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		pages = append(pages, items[start:end])
	}
	return pages
}
