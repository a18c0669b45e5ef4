package handler

import (
	"net/url"
	"testing"
)

func TestParsePagination(t *testing.T) {
	p, err := parsePagination(url.Values{})
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if p.Page != 1 || p.PerPage != defaultPerPage {
		t.Fatalf("defaults: %+v", p)
	}

	p, err = parsePagination(url.Values{"page": {"3"}, "per_page": {"50"}})
	if err != nil {
		t.Fatalf("explicit: %v", err)
	}
	if p.Page != 3 || p.PerPage != 50 {
		t.Fatalf("explicit: %+v", p)
	}

	for _, bad := range []url.Values{
		{"page": {"0"}},
		{"page": {"-1"}},
		{"page": {"abc"}},
		{"per_page": {"0"}},
		{"per_page": {"101"}},
	} {
		if _, err := parsePagination(bad); err == nil {
			t.Fatalf("%v accepted", bad)
		}
	}
}

func TestPaginationSlice(t *testing.T) {
	p := pagination{Page: 2, PerPage: 10}
	lo, hi := p.slice(25)
	if lo != 10 || hi != 20 {
		t.Fatalf("got [%d, %d)", lo, hi)
	}

	lo, hi = p.slice(12)
	if lo != 10 || hi != 12 {
		t.Fatalf("short tail: [%d, %d)", lo, hi)
	}

	lo, hi = p.slice(5)
	if lo != 5 || hi != 5 {
		t.Fatalf("past the end: [%d, %d)", lo, hi)
	}
}

func TestParseSorting(t *testing.T) {
	s, err := parseSorting(url.Values{"sort": {"name"}, "order": {"desc"}}, []string{"name", "path"})
	if err != nil {
		t.Fatalf("valid: %v", err)
	}
	if s.Field != "name" || !s.Desc {
		t.Fatalf("valid: %+v", s)
	}

	if _, err := parseSorting(url.Values{"sort": {"bogus"}}, []string{"name"}); err == nil {
		t.Fatalf("invalid field accepted")
	}
	if _, err := parseSorting(url.Values{"order": {"up"}}, []string{"name"}); err == nil {
		t.Fatalf("invalid order accepted")
	}
}

func TestParseEnumFilter(t *testing.T) {
	valid := []string{"todo", "done"}

	got, err := parseEnumFilter(url.Values{}, "status", valid)
	if err != nil || got != "" {
		t.Fatalf("absent: %q %v", got, err)
	}

	got, err = parseEnumFilter(url.Values{"status": {"DONE"}}, "status", valid)
	if err != nil || got != "done" {
		t.Fatalf("case folding: %q %v", got, err)
	}

	if _, err := parseEnumFilter(url.Values{"status": {"bogus"}}, "status", valid); err == nil {
		t.Fatalf("invalid value accepted")
	}
}
