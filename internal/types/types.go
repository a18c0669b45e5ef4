package types

import "time"

// Entity enums --------------------------------------------------------------------

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskBlocked    TaskStatus = "blocked"
)

// TaskStatuses lists every status in a stable order, used for zero-filled tallies.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskDone, TaskBlocked}

type TaskPriority string

const (
	PriorityCritical TaskPriority = "critical"
	PriorityHigh     TaskPriority = "high"
	PriorityMedium   TaskPriority = "medium"
	PriorityLow      TaskPriority = "low"
	PriorityUnknown  TaskPriority = "unknown"
)

// ReqPriority is a MoSCoW bucket.
type ReqPriority string

const (
	ReqMust   ReqPriority = "must"
	ReqShould ReqPriority = "should"
	ReqCould  ReqPriority = "could"
	ReqWont   ReqPriority = "wont"
)

// Entities ------------------------------------------------------------------------

// Task is one list item extracted from a task outline. Description never
// contains the raw status marker or the priority token; both are stripped
// during extraction. The set is rebuilt wholesale on every re-parse.
type Task struct {
	ID                    string       `json:"id"`
	Description           string       `json:"description"`
	Status                TaskStatus   `json:"status"`
	Priority              TaskPriority `json:"priority"`
	Stage                 string       `json:"stage"`
	Section               string       `json:"section"`
	LineNumber            int          `json:"line_number"`
	RelatedRequirementIDs []string     `json:"related_requirement_ids,omitempty"`
	EstimatedEffort       string       `json:"estimated_effort,omitempty"`
}

// Requirement is one extracted requirement. Category is the nearest enclosing
// level-2 heading; empty means uncategorized (no placeholder is substituted).
type Requirement struct {
	ID             string      `json:"id"`
	Text           string      `json:"text"`
	Priority       ReqPriority `json:"priority"`
	Category       string      `json:"category"`
	LineNumber     int         `json:"line_number"`
	RelatedTaskIDs []string    `json:"related_task_ids,omitempty"`
}

// Derived data --------------------------------------------------------------------

// MetricsSnapshot is an immutable value computed from one project's task and
// requirement sets. A new snapshot is appended to history on every
// computation; the engine itself holds none.
type MetricsSnapshot struct {
	CompletionPercentage   float64            `json:"completion_percentage"`
	HealthScore            float64            `json:"health_score"`
	TaskCountsByStatus     map[TaskStatus]int `json:"task_counts_by_status"`
	OrphanedRequirementIDs []string           `json:"orphaned_requirement_ids"`
	OrphanedTaskIDs        []string           `json:"orphaned_task_ids"`
	TotalTasks             int                `json:"total_tasks"`
	TotalRequirements      int                `json:"total_requirements"`
	ComputedAt             time.Time          `json:"computed_at"`
}

// Project aggregates one discovered project directory with its parsed entity
// sets. Tasks and Requirements are owned by the project and replaced as a
// whole when the source documents are re-parsed.
type Project struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Path             string        `json:"path"`
	TodoPath         string        `json:"todo_path,omitempty"`
	RequirementsPath string        `json:"requirements_path,omitempty"`
	ReadmePath       string        `json:"readme_path,omitempty"`
	ReadmeExcerpt    string        `json:"readme_excerpt,omitempty"`
	Tasks            []Task        `json:"tasks"`
	Requirements     []Requirement `json:"requirements"`
	LastScanned      time.Time     `json:"last_scanned"`
}
