// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"strings"
	"testing"

	"github.com/herrkrueger/epo.patlib2025-sub001/internal/patstat/patstattest"
)

func TestKeywordQueryPlaceholderDiscipline(t *testing.T) {
	def := Default()
	def.YearTo = 2024
	def.Authorities = []string{"EP", "us", "CN"}
	def.MaxResults = 500

	query, args := keywordQuery(def)
	patstattest.AssertPlaceholders(t, query, len(args))

	// Each keyword binds twice (title, abstract), then both year
	// bounds, the authorities, and the cap.
	want := 2*len(def.Keywords) + 2 + len(def.Authorities) + 1
	if len(args) != want {
		t.Fatalf("len(args) = %d, want %d", len(args), want)
	}
	if args[0] != "%rare earth%" || args[1] != "%rare earth%" {
		t.Errorf("first keyword args = %v, %v, want lowercased patterns", args[0], args[1])
	}
	if args[len(args)-2] != "US" {
		t.Errorf("authority arg = %v, want normalized US", args[len(args)-2])
	}
	if args[len(args)-1] != 500 {
		t.Errorf("cap arg = %v, want 500", args[len(args)-1])
	}
	if !strings.Contains(query, "ORDER BY a.appln_id") {
		t.Error("query missing deterministic order")
	}
	if !strings.Contains(query, "LIMIT $") {
		t.Error("query missing bound cap")
	}
}

func TestClassificationQueryPlaceholderDiscipline(t *testing.T) {
	def := Default()

	query, args := classificationQuery(def)
	patstattest.AssertPlaceholders(t, query, len(args))

	want := len(def.CPCPrefixes) + 1 // prefixes, then year-from
	if len(args) != want {
		t.Fatalf("len(args) = %d, want %d", len(args), want)
	}
	if args[0] != "C22B59%" {
		t.Errorf("args[0] = %v, want normalized prefix pattern", args[0])
	}
	if !strings.Contains(query, "SELECT DISTINCT appln_id") {
		t.Error("classification subquery must deduplicate symbol matches")
	}
}

func TestCPCSymbolsQueryPlaceholderDiscipline(t *testing.T) {
	query, args := cpcSymbolsQuery([]int64{3001, 3002, 3003})
	patstattest.AssertPlaceholders(t, query, len(args))
	if len(args) != 3 {
		t.Fatalf("len(args) = %d, want 3", len(args))
	}
}

func TestCPCPattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"C22B 59", "C22B59%"},
		{"c22b  59/00", "C22B59/00%"},
		{" Y02W 30/52 ", "Y02W30/52%"},
		{"H01F", "H01F%"},
	}
	for _, c := range cases {
		if got := cpcPattern(c.in); got != c.want {
			t.Errorf("cpcPattern(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
