// Package parser turns outline documents into typed task and requirement
// sets. Extraction is read-only and never fails: malformed lines are
// absorbed as plain text, and an empty result is a valid result.
package parser

import t "docpulse/internal/types"

// Document holds the output of one extraction pass. A task-outline document
// fills Tasks; a requirements document fills Requirements.
type Document struct {
	Tasks        []t.Task
	Requirements []t.Requirement
}

// Extractor is a parsing strategy over one outline dialect. The caller picks
// the concrete extractor based on which file it read; no runtime type
// inspection is involved.
type Extractor interface {
	Extract(text string) Document
}

// TaskExtractor parses the task-outline dialect.
type TaskExtractor struct{}

func (TaskExtractor) Extract(text string) Document {
	return Document{Tasks: ExtractTasks(text)}
}

// RequirementExtractor parses the MoSCoW requirements dialect.
type RequirementExtractor struct{}

func (RequirementExtractor) Extract(text string) Document {
	return Document{Requirements: ExtractRequirements(text)}
}
