// Package metrics derives completion, health and gap metrics from one
// project's task and requirement sets. Computation is pure and
// order-independent over its inputs; the only failure mode is a similarity
// threshold outside [0, 1], which indicates caller misuse rather than bad
// input data.
package metrics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	t "docpulse/internal/types"
	"docpulse/internal/utils"
)

// DefaultThreshold is the similarity cutoff for gap analysis.
const DefaultThreshold = 0.6

var ErrInvalidThreshold = errors.New("similarity threshold must be within [0, 1]")

// Health score weights.
const (
	weightCompletion = 0.4
	weightActivity   = 0.3
	weightCoverage   = 0.2
	weightUnblocked  = 0.1
)

// Config tunes one computation. The zero value is not usable directly; start
// from DefaultConfig.
type Config struct {
	// SimilarityThreshold is the gap-analysis cutoff in [0, 1].
	SimilarityThreshold float64
	// RecentActivityFactor is supplied by the caller from externally tracked
	// completion timestamps; 0 when unavailable. Clamped into [0, 1].
	RecentActivityFactor float64
	// Now overrides the snapshot timestamp, mainly for tests.
	Now func() time.Time
}

func DefaultConfig() Config {
	return Config{SimilarityThreshold: DefaultThreshold}
}

// Compute produces a snapshot for the given sets. Empty or nil inputs are
// valid and degrade every metric to its neutral value.
func Compute(tasks []t.Task, reqs []t.Requirement, cfg Config) (t.MetricsSnapshot, error) {
	if cfg.SimilarityThreshold < 0 || cfg.SimilarityThreshold > 1 {
		return t.MetricsSnapshot{}, fmt.Errorf("%w: got %v", ErrInvalidThreshold, cfg.SimilarityThreshold)
	}

	counts := make(map[t.TaskStatus]int, len(t.TaskStatuses))
	for _, status := range t.TaskStatuses {
		counts[status] = 0
	}
	for _, task := range tasks {
		counts[task.Status]++
	}

	completion := 0.0
	if len(tasks) > 0 {
		completion = 100.0 * float64(counts[t.TaskDone]) / float64(len(tasks))
	}

	orphanReqs, orphanTasks := gapAnalysis(tasks, reqs, cfg.SimilarityThreshold)

	coverage := 1.0 - float64(len(orphanReqs))/float64(maxInt(1, len(reqs)))
	blockedFraction := float64(counts[t.TaskBlocked]) / float64(maxInt(1, len(tasks)))
	activity := utils.Clamp01(cfg.RecentActivityFactor)

	health := weightCompletion*(completion/100.0) +
		weightActivity*activity +
		weightCoverage*coverage +
		weightUnblocked*(1.0-blockedFraction)

	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}

	return t.MetricsSnapshot{
		CompletionPercentage:   completion,
		HealthScore:            utils.Clamp01(health),
		TaskCountsByStatus:     counts,
		OrphanedRequirementIDs: orphanReqs,
		OrphanedTaskIDs:        orphanTasks,
		TotalTasks:             len(tasks),
		TotalRequirements:      len(reqs),
		ComputedAt:             now(),
	}, nil
}

// gapAnalysis finds requirements with no matching task and tasks with no
// matching requirement. An explicit link always counts as a match; otherwise
// the best pairwise similarity must reach the threshold. Raising the
// threshold can only grow the orphan sets.
func gapAnalysis(tasks []t.Task, reqs []t.Requirement, threshold float64) (orphanReqs, orphanTasks []string) {
	orphanReqs = []string{}
	orphanTasks = []string{}

	linkedReq := make(map[string]bool, len(reqs))
	linkedTask := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		for _, reqID := range task.RelatedRequirementIDs {
			linkedReq[reqID] = true
			linkedTask[task.ID] = true
		}
	}
	for _, req := range reqs {
		for _, taskID := range req.RelatedTaskIDs {
			linkedTask[taskID] = true
			linkedReq[req.ID] = true
		}
	}

	// Pairwise scores are symmetric, so one pass covers both directions.
	matchedReq := make(map[string]bool, len(reqs))
	matchedTask := make(map[string]bool, len(tasks))
	for _, req := range reqs {
		for _, task := range tasks {
			if matchedReq[req.ID] && matchedTask[task.ID] {
				continue
			}
			if Similarity(task.Description, req.Text) >= threshold {
				matchedReq[req.ID] = true
				matchedTask[task.ID] = true
			}
		}
	}

	for _, req := range reqs {
		if !linkedReq[req.ID] && !matchedReq[req.ID] {
			orphanReqs = append(orphanReqs, req.ID)
		}
	}
	for _, task := range tasks {
		if !linkedTask[task.ID] && !matchedTask[task.ID] {
			orphanTasks = append(orphanTasks, task.ID)
		}
	}
	sort.Strings(orphanReqs)
	sort.Strings(orphanTasks)
	return orphanReqs, orphanTasks
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
