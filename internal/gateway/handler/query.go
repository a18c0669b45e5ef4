package handler

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// QueryError marks invalid query parameters; handlers turn it into a 400.
type QueryError struct {
	msg string
}

func (e *QueryError) Error() string { return e.msg }

func queryErrorf(format string, args ...any) *QueryError {
	return &QueryError{msg: fmt.Sprintf(format, args...)}
}

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type pagination struct {
	Page    int
	PerPage int
}

func parsePagination(q url.Values) (pagination, error) {
	p := pagination{Page: 1, PerPage: defaultPerPage}
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, queryErrorf("page must be an integer >= 1")
		}
		p.Page = n
	}
	if raw := strings.TrimSpace(q.Get("per_page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, queryErrorf("per_page must be an integer >= 1")
		}
		if n > maxPerPage {
			return p, queryErrorf("per_page cannot exceed %d", maxPerPage)
		}
		p.PerPage = n
	}
	return p, nil
}

// slice applies pagination to a slice length, returning [lo, hi).
func (p pagination) slice(n int) (int, int) {
	lo := (p.Page - 1) * p.PerPage
	if lo > n {
		lo = n
	}
	hi := lo + p.PerPage
	if hi > n {
		hi = n
	}
	return lo, hi
}

type sorting struct {
	Field string
	Desc  bool
}

func parseSorting(q url.Values, validFields []string) (sorting, error) {
	var s sorting
	s.Field = strings.TrimSpace(q.Get("sort"))
	if s.Field != "" && !contains(validFields, s.Field) {
		return s, queryErrorf("invalid sort field %q, valid fields: %s", s.Field, strings.Join(validFields, ", "))
	}
	switch order := strings.TrimSpace(q.Get("order")); order {
	case "", "asc":
	case "desc":
		s.Desc = true
	default:
		return s, queryErrorf(`sort order must be "asc" or "desc"`)
	}
	return s, nil
}

// parseEnumFilter validates an optional enum-valued filter parameter.
func parseEnumFilter(q url.Values, name string, valid []string) (string, error) {
	raw := strings.ToLower(strings.TrimSpace(q.Get(name)))
	if raw == "" {
		return "", nil
	}
	if !contains(valid, raw) {
		return "", queryErrorf("invalid %s %q, valid values: %s", name, raw, strings.Join(valid, ", "))
	}
	return raw, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func sortStable[T any](items []T, less func(a, b T) bool, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}
