package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wizenheimer/searchserver"
)

func TestRun(t *testing.T) {
	input := strings.Join([]string{
		"and in at",
		"3",
		"curly cat curly tail",
		"curly dog and fancy collar",
		"big cat fancy collar",
		"curly dog -collar",
		"sparrow",
	}, "\n")

	var out bytes.Buffer
	if err := run(strings.NewReader(input), &out, 2, false, ""); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		`Results for "curly dog -collar":`,
		"Page 1",
		"document_id = 0",
		"Total empty requests: 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "document_id = 1") {
		t.Errorf("Document 1 holds minus word 'collar' but was printed:\n%s", got)
	}
}

func TestRun_MetaAndFilter(t *testing.T) {
	input := strings.Join([]string{
		"and in at",
		"3",
		"ACTUAL|7 2 7|curly cat curly tail",
		"BANNED|9|curly dog",
		"ACTUAL|1|curly bird",
		"curly",
		"cat --dog",
	}, "\n")

	var out bytes.Buffer
	if err := run(strings.NewReader(input), &out, 5, true, "rating > 2"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"document_id = 0",
		"document_id = 1",
		"Search error:",
		"Total empty requests: 0",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "document_id = 2") {
		t.Errorf("Document 2 has rating 1 but was printed:\n%s", got)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		page   int
		meta   bool
		filter string
		target error
	}{
		{"invalid stop words", "a\x01b\n0\n", 2, false, "", searchserver.ErrInvalidArgument},
		{"invalid filter", "\n0\n", 2, false, "rating +", searchserver.ErrInvalidFilter},
		{"unknown status", "\n1\nGONE|1|cat\n", 2, true, "", searchserver.ErrInvalidArgument},
		{"invalid document", "\n1\ncat\x02\n", 2, false, "", searchserver.ErrInvalidQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(strings.NewReader(tt.input), &out, tt.page, tt.meta, tt.filter)
			if !errors.Is(err, tt.target) {
				t.Errorf("run() error = %v, want %v", err, tt.target)
			}
		})
	}

	var out bytes.Buffer
	if err := run(strings.NewReader("\nthree\n"), &out, 2, false, ""); err == nil {
		t.Error("run() with a bad document count succeeded")
	}
	if err := run(strings.NewReader("\n2\ncat\n"), &out, 2, false, ""); err == nil {
		t.Error("run() with missing documents succeeded")
	}
	if err := run(strings.NewReader(""), &out, 0, false, ""); err == nil {
		t.Error("run() with page size 0 succeeded")
	}
}

func TestPaginate(t *testing.T) {
	pages := paginate([]int{1, 2, 3, 4, 5}, 2)

	if len(pages) != 3 {
		t.Fatalf("Got %d pages, want 3", len(pages))
	}
	for i, want := range []int{2, 2, 1} {
		if len(pages[i]) != want {
			t.Errorf("Page %d has %d items, want %d", i, len(pages[i]), want)
		}
	}

	if got := paginate([]string{}, 3); len(got) != 0 {
		t.Errorf("Got %d pages for no items, want 0", len(got))
	}
}
