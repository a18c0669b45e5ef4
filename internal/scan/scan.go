// Package scan discovers project directories under a root by indicator files
// and probes each one for its documentation files. Discovery policy is an
// explicit immutable Options value per call; there is no process-wide state.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Options controls one discovery pass. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// IgnoreDirs are directory base names skipped during the walk.
	IgnoreDirs []string
	// Indicators are file or directory names whose presence marks a project.
	Indicators []string
	// MaxDepth bounds recursion below root; 0 means unlimited.
	MaxDepth int
	// ReadmeExcerptLimit caps the cleaned README excerpt length in runes.
	ReadmeExcerptLimit int
}

func DefaultOptions() Options {
	return Options{
		IgnoreDirs: []string{
			"node_modules", "venv", ".venv", "env", "__pycache__",
			".git", ".svn", ".hg", "dist", "build", "target",
			".idea", ".vscode", ".pytest_cache", ".mypy_cache", "coverage",
		},
		Indicators: []string{
			"README.md", "TODO.md", "REQUIREMENTS.md",
			"package.json", "pyproject.toml", "Cargo.toml", "composer.json",
			"go.mod", "pom.xml", "build.gradle", ".git",
		},
		ReadmeExcerptLimit: 2000,
	}
}

// ProjectDir is one discovered project with its resolved doc file paths.
// Empty path fields mean the file is absent.
type ProjectDir struct {
	Path             string
	Name             string
	TodoPath         string
	RequirementsPath string
	ReadmePath       string
}

// VisitFunc is an optional callback invoked for every scanned directory.
type VisitFunc func(dir string)

// Discover walks root and returns every directory that carries at least one
// indicator, sorted by path. Permission errors below root are skipped, not
// surfaced; a missing or non-directory root is an error.
func Discover(root string, opts Options) ([]ProjectDir, error) {
	return DiscoverWithCallback(root, opts, nil)
}

// DiscoverWithCallback is Discover plus a per-directory callback, allowing
// callers to track scan progress.
func DiscoverWithCallback(root string, opts Options, cb VisitFunc) ([]ProjectDir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	ignored := make(map[string]bool, len(opts.IgnoreDirs))
	for _, name := range opts.IgnoreDirs {
		ignored[name] = true
	}

	var projects []ProjectDir
	rootClean := filepath.Clean(root)
	err = filepath.WalkDir(rootClean, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != rootClean && ignored[d.Name()] {
			return filepath.SkipDir
		}
		if opts.MaxDepth > 0 && depthBelow(rootClean, path) > opts.MaxDepth {
			return filepath.SkipDir
		}
		if cb != nil {
			cb(path)
		}
		if p, ok := probe(path, opts.Indicators); ok {
			projects = append(projects, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].Path < projects[j].Path })
	return projects, nil
}

func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

// probe checks dir for indicators and, when it is a project, resolves its
// documentation files. Both checks are case-insensitive over one directory
// listing (TODO.md vs todo.md both count, as indicator and as doc file).
func probe(dir string, indicators []string) (ProjectDir, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ProjectDir{}, false
	}

	found := false
	p := ProjectDir{Path: dir}
	for _, e := range entries {
		name := e.Name()
		if !found {
			for _, ind := range indicators {
				if strings.EqualFold(name, ind) {
					found = true
					break
				}
			}
		}
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(name) {
		case "todo.md":
			p.TodoPath = filepath.Join(dir, name)
		case "requirements.md":
			p.RequirementsPath = filepath.Join(dir, name)
		case "readme.md":
			p.ReadmePath = filepath.Join(dir, name)
		}
	}
	if !found {
		return ProjectDir{}, false
	}
	p.Name = ProjectName(dir)
	return p, true
}
