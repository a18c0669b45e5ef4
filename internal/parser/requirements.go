package parser

import (
	"regexp"
	"strings"

	"docpulse/internal/outline"
	t "docpulse/internal/types"
	"docpulse/internal/utils"
)

var (
	// reNumbered matches the numbered-list requirement carrier: "1. text".
	reNumbered = regexp.MustCompile(`^\s*\d+\.\s+(.+)$`)
	// reBullet strips the marker from bulleted requirement lines.
	reBullet = regexp.MustCompile(`^[-*]\s+(.+)$`)
	// reReqPriority captures a leading MoSCoW token (synonyms included).
	reReqPriority = regexp.MustCompile(`(?i)^(must|shall|required|critical|should|high|could|may|medium|won'?t|low):\s*(.*)$`)
)

// ExtractRequirements parses a requirements outline. Both numbered items and
// plain bullets carry requirements; the category is the nearest enclosing
// level-2 heading, or empty when the document has none (uncategorized is a
// valid, meaningful state and is not defaulted away).
func ExtractRequirements(text string) []t.Requirement {
	var reqs []t.Requirement
	ids := utils.NewIDGen()

	outline.Walk(outline.Tokenize(text), func(ln outline.Line, ctx outline.Context) {
		var body string
		switch ln.Kind {
		case outline.ListItem:
			m := reBullet.FindStringSubmatch(ln.Raw)
			if m == nil {
				return
			}
			body = m[1]
		case outline.Text:
			m := reNumbered.FindStringSubmatch(ln.Raw)
			if m == nil {
				return
			}
			body = m[1]
		default:
			return
		}

		priority, body := splitReqPriority(body)
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}

		reqs = append(reqs, t.Requirement{
			ID:         ids.ID(body),
			Text:       body,
			Priority:   priority,
			Category:   ctx.Stage,
			LineNumber: ln.Number,
		})
	})
	return reqs
}

// splitReqPriority maps a leading token to its MoSCoW bucket. The first
// matching bucket wins. An omitted priority reads as Should: in a
// requirements document "no priority" conventionally means important but not
// mandatory, unlike the task dialect's Unknown.
func splitReqPriority(body string) (t.ReqPriority, string) {
	m := reReqPriority.FindStringSubmatch(strings.TrimSpace(body))
	if m == nil {
		return t.ReqShould, body
	}
	switch strings.ToLower(m[1]) {
	case "must", "shall", "required", "critical":
		return t.ReqMust, m[2]
	case "should", "high":
		return t.ReqShould, m[2]
	case "could", "may", "medium":
		return t.ReqCould, m[2]
	default:
		return t.ReqWont, m[2]
	}
}
