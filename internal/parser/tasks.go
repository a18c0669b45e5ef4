package parser

import (
	"regexp"
	"strings"

	"docpulse/internal/outline"
	t "docpulse/internal/types"
	"docpulse/internal/utils"
)

const (
	defaultStage   = "Stage 1"
	defaultSection = "General"
)

var (
	// reTaskBox captures the checkbox token of a list item: "- [x] text".
	reTaskBox = regexp.MustCompile(`^[-*]\s*\[(.)\]\s*(.*)$`)
	// reTaskPlain matches a bullet with no box token: "- text".
	reTaskPlain = regexp.MustCompile(`^[-*]\s+(.*)$`)
	// reTaskPriority captures a leading "Priority:" prefix.
	reTaskPriority = regexp.MustCompile(`(?i)^(critical|high|medium|low):\s*(.*)$`)
	// reEffort captures a trailing effort annotation like "(est: 2 hours)".
	reEffort = regexp.MustCompile(`(?i)\s*\(est:\s*([^)]+)\)\s*$`)
)

// ExtractTasks parses a task outline into tasks. List items whose content is
// empty after marker stripping are skipped; everything else is classified
// best-effort and never raises.
func ExtractTasks(text string) []t.Task {
	var tasks []t.Task
	ids := utils.NewIDGen()

	outline.Walk(outline.Tokenize(text), func(ln outline.Line, ctx outline.Context) {
		if ln.Kind != outline.ListItem {
			return
		}
		status, body, ok := splitStatus(ln.Raw, ctx)
		if !ok {
			return
		}
		priority, body := splitTaskPriority(body)
		body, effort := splitEffort(body)
		body = strings.TrimSpace(body)
		if body == "" {
			return
		}

		stage := ctx.Stage
		if stage == "" {
			stage = defaultStage
		}
		section := ctx.Section
		if section == "" {
			section = defaultSection
		}

		tasks = append(tasks, t.Task{
			ID:              ids.ID(body),
			Description:     body,
			Status:          status,
			Priority:        priority,
			Stage:           stage,
			Section:         section,
			LineNumber:      ln.Number,
			EstimatedEffort: effort,
		})
	})
	return tasks
}

// splitStatus resolves the checkbox token to a status and returns the
// remaining content. A plain bullet with no box token defaults to Todo,
// except inside a "Completed ..." section where the dialect's own convention
// omits the box on finished items.
func splitStatus(raw string, ctx outline.Context) (t.TaskStatus, string, bool) {
	if m := reTaskBox.FindStringSubmatch(raw); m != nil {
		return statusForMarker(m[1]), m[2], true
	}
	if m := reTaskPlain.FindStringSubmatch(raw); m != nil {
		status := t.TaskTodo
		if strings.Contains(strings.ToLower(ctx.Section), "completed") {
			status = t.TaskDone
		}
		return status, m[1], true
	}
	return t.TaskTodo, "", false
}

func statusForMarker(marker string) t.TaskStatus {
	switch strings.ToLower(strings.TrimSpace(marker)) {
	case "x":
		return t.TaskDone
	case "~":
		return t.TaskInProgress
	case "!":
		return t.TaskBlocked
	default:
		return t.TaskTodo
	}
}

// splitTaskPriority strips a leading priority token. Only the first token is
// honored; any further "High:"-like text is left untouched so legitimate
// description text is not corrupted.
func splitTaskPriority(body string) (t.TaskPriority, string) {
	m := reTaskPriority.FindStringSubmatch(strings.TrimSpace(body))
	if m == nil {
		return t.PriorityUnknown, body
	}
	switch strings.ToLower(m[1]) {
	case "critical":
		return t.PriorityCritical, m[2]
	case "high":
		return t.PriorityHigh, m[2]
	case "medium":
		return t.PriorityMedium, m[2]
	default:
		return t.PriorityLow, m[2]
	}
}

func splitEffort(body string) (string, string) {
	m := reEffort.FindStringSubmatchIndex(body)
	if m == nil {
		return body, ""
	}
	effort := strings.TrimSpace(body[m[2]:m[3]])
	return body[:m[0]], effort
}
