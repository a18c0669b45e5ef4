package scan

import (
	"os"

	"docpulse/internal/utils"
)

// Docs holds the raw text bodies handed to the parsing core. Absent files
// yield empty strings; the parser treats an empty document as a valid,
// empty result.
type Docs struct {
	TodoText         string
	RequirementsText string
	ReadmeExcerpt    string
}

// LoadDocs reads the documentation files of one project. Read failures are
// treated the same as absent files.
func LoadDocs(p ProjectDir, opts Options) Docs {
	var docs Docs
	if p.TodoPath != "" {
		docs.TodoText = readAll(p.TodoPath)
	}
	if p.RequirementsPath != "" {
		docs.RequirementsText = readAll(p.RequirementsPath)
	}
	if p.ReadmePath != "" {
		docs.ReadmeExcerpt = utils.MarkdownExcerpt(readAll(p.ReadmePath), opts.ReadmeExcerptLimit)
	}
	return docs
}

func readAll(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(b)
}
