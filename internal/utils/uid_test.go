package utils

import (
	"strings"
	"testing"
)

func TestIDGen_Stable(t *testing.T) {
	a := NewIDGen().ID("Implement user login")
	b := NewIDGen().ID("Implement user login")
	if a != b {
		t.Fatalf("same source, different IDs: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "implement-user-login-") {
		t.Fatalf("unexpected slug: %q", a)
	}
}

func TestIDGen_CollisionSuffix(t *testing.T) {
	g := NewIDGen()
	first := g.ID("same text")
	second := g.ID("same text")
	third := g.ID("same text")
	if first == second || second == third {
		t.Fatalf("collisions not disambiguated: %q %q %q", first, second, third)
	}
	if !strings.HasPrefix(second, first+"-") {
		t.Fatalf("suffix scheme changed: %q after %q", second, first)
	}
}

func TestIDGen_EmptyAndSymbols(t *testing.T) {
	g := NewIDGen()
	id := g.ID("")
	if !strings.HasPrefix(id, "item-") {
		t.Fatalf("empty source id: %q", id)
	}
	id = g.ID("!!! ???")
	if !strings.HasPrefix(id, "item-") {
		t.Fatalf("symbol-only source id: %q", id)
	}
}

func TestIDGen_LongSourceTruncated(t *testing.T) {
	long := strings.Repeat("verylongword ", 20)
	id := NewIDGen().ID(long)
	slug := id[:strings.LastIndexByte(id, '-')]
	if len(slug) > 40 {
		t.Fatalf("slug too long (%d): %q", len(slug), slug)
	}
}

func TestIDGen_NilReceiver(t *testing.T) {
	var g *IDGen
	if id := g.ID("x"); id == "" {
		t.Fatalf("nil generator returned empty id")
	}
}
