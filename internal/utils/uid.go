package utils

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// IDGen creates stable entity IDs of the shape "<slug>-<hash>" (or
// "<slug>-<hash>-N" on collision within one generator). Identical source
// text yields identical IDs across re-parses, which keeps manual link
// tables valid after a rescan.
type IDGen struct {
	used    map[string]struct{}
	counter map[string]int
}

func NewIDGen() *IDGen {
	return &IDGen{
		used:    make(map[string]struct{}, 16),
		counter: make(map[string]int, 16),
	}
}

// ID returns a unique ID derived from source.
func (g *IDGen) ID(source string) string {
	if g == nil {
		g = NewIDGen()
	}
	base := baseID(source)
	if _, ok := g.used[base]; !ok {
		g.used[base] = struct{}{}
		g.counter[base] = 1
		return base
	}
	n := g.counter[base]
	if n < 1 {
		n = 1
	}
	for {
		n++
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, exists := g.used[candidate]; exists {
			continue
		}
		g.used[candidate] = struct{}{}
		g.counter[base] = n
		return candidate
	}
}

func baseID(source string) string {
	slug := slugify(source)
	if slug == "" {
		slug = "item"
	}
	if len(slug) > 40 {
		slug = strings.Trim(slug[:40], "-")
	}
	return fmt.Sprintf("%s-%s", slug, shortHash(source))
}

func shortHash(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%08x", uint32(h.Sum64()&0xffffffff))
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
