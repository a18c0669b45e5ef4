package utils

import (
	"strings"
	"testing"
)

func TestMarkdownExcerpt_StripsNoise(t *testing.T) {
	in := "# Title\n\n![logo](logo.png)\n<img src=\"x.png\">\n<!-- internal note -->\n\n\n\nBody.\n"
	got := MarkdownExcerpt(in, 0)
	for _, banned := range []string{"![", "<img", "<!--"} {
		if strings.Contains(got, banned) {
			t.Fatalf("%q not stripped: %q", banned, got)
		}
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("newlines not compressed: %q", got)
	}
	if !strings.Contains(got, "Body.") {
		t.Fatalf("body text lost: %q", got)
	}
}

func TestMarkdownExcerpt_Truncation(t *testing.T) {
	in := strings.Repeat("line of text\n", 100)
	got := MarkdownExcerpt(in, 50)
	if len([]rune(got)) > 50 {
		t.Fatalf("excerpt too long: %d runes", len([]rune(got)))
	}
	// Cut on a line boundary, not mid-word.
	if strings.HasSuffix(got, "li") || strings.HasSuffix(got, "te") {
		t.Fatalf("cut mid-word: %q", got)
	}
}

func TestMarkdownExcerpt_ShortInputUntouched(t *testing.T) {
	if got := MarkdownExcerpt("short", 100); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := MarkdownExcerpt("no limit applied", 0); got != "no limit applied" {
		t.Fatalf("got %q", got)
	}
}
