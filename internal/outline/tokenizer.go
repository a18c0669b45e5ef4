// Package outline classifies the constrained heading + list-item dialect used
// by task and requirements documents into typed lines, and tracks the current
// heading context during a linear walk.
package outline

import (
	"regexp"
	"strings"
)

type Kind string

const (
	Heading  Kind = "heading"
	ListItem Kind = "list_item"
	Text     Kind = "text"
	Blank    Kind = "blank"
)

// Line is one physical input line. Number is 1-based and contiguous with the
// input; no line is dropped. For headings, Raw is the trimmed remainder after
// the '#' run. For list items, Raw keeps the marker and any checkbox token so
// that dialect-specific meaning stays out of this layer.
type Line struct {
	Number int
	Kind   Kind
	Level  int
	Raw    string
}

var (
	// reHeading requires a space after the '#' run; "#foo" degrades to Text.
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	// reListItem matches "- text", "* text" and checkbox forms like "- [x] text".
	reListItem = regexp.MustCompile(`^(\s*)[-*]\s+\S.*$`)
	reCheckbox = regexp.MustCompile(`^(\s*)[-*]\s*\[(.)\]\s*\S.*$`)
)

// Tokenize classifies every line of text. Single pass, read-only; the result
// length always equals the number of input lines.
func Tokenize(text string) []Line {
	raw := strings.Split(text, "\n")
	// A trailing newline produces one empty trailing element, not a line.
	if n := len(raw); n > 0 && raw[n-1] == "" && strings.HasSuffix(text, "\n") {
		raw = raw[:n-1]
	}

	lines := make([]Line, 0, len(raw))
	for i, s := range raw {
		lines = append(lines, classify(i+1, s))
	}
	return lines
}

func classify(num int, s string) Line {
	if strings.TrimSpace(s) == "" {
		return Line{Number: num, Kind: Blank}
	}
	if m := reHeading.FindStringSubmatch(s); m != nil {
		return Line{
			Number: num,
			Kind:   Heading,
			Level:  len(m[1]),
			Raw:    strings.TrimSpace(m[2]),
		}
	}
	if reCheckbox.MatchString(s) || reListItem.MatchString(s) {
		indent := len(s) - len(strings.TrimLeft(s, " \t"))
		return Line{
			Number: num,
			Kind:   ListItem,
			Level:  indent/2 + 1,
			Raw:    strings.TrimSpace(s),
		}
	}
	// Anything unclassifiable degrades to Text rather than failing.
	return Line{Number: num, Kind: Text, Raw: strings.TrimSpace(s)}
}
