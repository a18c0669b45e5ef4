package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscover_FindsIndicatedDirs(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "alpha", "TODO.md"), "- [ ] a\n")
	write(t, filepath.Join(root, "beta", "package.json"), `{"name":"beta-app"}`)
	write(t, filepath.Join(root, "plain", "notes.txt"), "nothing here\n")

	projects, err := Discover(root, DefaultOptions())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2: %+v", len(projects), projects)
	}
	// Sorted by path.
	if projects[0].Name != "alpha" {
		t.Fatalf("first project name=%q want alpha", projects[0].Name)
	}
	if projects[0].TodoPath == "" {
		t.Fatalf("alpha TodoPath not resolved")
	}
	if projects[1].Name != "beta-app" {
		t.Fatalf("second project name=%q want beta-app (from package.json)", projects[1].Name)
	}
}

func TestDiscover_SkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "node_modules", "dep", "package.json"), `{"name":"dep"}`)
	write(t, filepath.Join(root, ".git", "config"), "")
	write(t, filepath.Join(root, "real", "go.mod"), "module real\n")

	projects, err := Discover(root, DefaultOptions())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	// root itself carries a .git indicator entry and counts as a project too.
	for _, p := range projects {
		if filepath.Base(p.Path) == "dep" {
			t.Fatalf("descended into node_modules: %+v", p)
		}
	}
	found := false
	for _, p := range projects {
		if filepath.Base(p.Path) == "real" {
			found = true
		}
	}
	if !found {
		t.Fatalf("real project not discovered: %+v", projects)
	}
}

func TestDiscover_MaxDepth(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "a", "TODO.md"), "")
	write(t, filepath.Join(root, "a", "b", "c", "TODO.md"), "")

	opts := DefaultOptions()
	opts.MaxDepth = 1
	projects, err := Discover(root, opts)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1 (depth-limited): %+v", len(projects), projects)
	}
	if filepath.Base(projects[0].Path) != "a" {
		t.Fatalf("wrong project survived the depth limit: %+v", projects[0])
	}
}

func TestDiscover_BadRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "missing"), DefaultOptions()); err == nil {
		t.Fatalf("missing root did not error")
	}
	file := filepath.Join(t.TempDir(), "file")
	write(t, file, "x")
	if _, err := Discover(file, DefaultOptions()); err == nil {
		t.Fatalf("non-directory root did not error")
	}
}

func TestDiscover_Callback(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "p", "TODO.md"), "")

	var visited []string
	_, err := DiscoverWithCallback(root, DefaultOptions(), func(dir string) {
		visited = append(visited, dir)
	})
	if err != nil {
		t.Fatalf("DiscoverWithCallback: %v", err)
	}
	if len(visited) < 2 {
		t.Fatalf("callback saw %d dirs, want root and child", len(visited))
	}
}

func TestDiscover_CaseInsensitiveIndicators(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "rusty", "cargo.toml"), "[package]\nname = \"rusty\"\n")
	write(t, filepath.Join(root, "shouty", "readme.MD"), "# Shouty\n")
	write(t, filepath.Join(root, "bare", "notes.txt"), "no indicator\n")

	projects, err := Discover(root, DefaultOptions())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2: %+v", len(projects), projects)
	}
	if projects[0].Name != "rusty" || filepath.Base(projects[1].Path) != "shouty" {
		t.Fatalf("wrong projects discovered: %+v", projects)
	}
	if filepath.Base(projects[1].ReadmePath) != "readme.MD" {
		t.Fatalf("readme not resolved from mixed-case name: %+v", projects[1])
	}
}

func TestProbe_CaseInsensitiveDocs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "proj")
	write(t, filepath.Join(dir, "todo.md"), "- [ ] x\n")
	write(t, filepath.Join(dir, "Readme.md"), "# Proj\n")

	projects, err := Discover(root, DefaultOptions())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}
	p := projects[0]
	if filepath.Base(p.TodoPath) != "todo.md" {
		t.Fatalf("lowercase todo not resolved: %+v", p)
	}
	if filepath.Base(p.ReadmePath) != "Readme.md" {
		t.Fatalf("mixed-case readme not resolved: %+v", p)
	}
}

func TestProjectName_Sources(t *testing.T) {
	dir := t.TempDir()
	if got := ProjectName(dir); got != filepath.Base(dir) {
		t.Fatalf("fallback name=%q want dir base", got)
	}

	write(t, filepath.Join(dir, "pyproject.toml"), "[project]\nname = \"py-proj\"\n")
	if got := ProjectName(dir); got != "py-proj" {
		t.Fatalf("pyproject name=%q want py-proj", got)
	}

	// package.json wins over pyproject.toml.
	write(t, filepath.Join(dir, "package.json"), `{"name":"js-proj"}`)
	if got := ProjectName(dir); got != "js-proj" {
		t.Fatalf("package.json name=%q want js-proj", got)
	}

	// Malformed package.json falls through.
	write(t, filepath.Join(dir, "package.json"), `{not json`)
	if got := ProjectName(dir); got != "py-proj" {
		t.Fatalf("malformed package.json: name=%q want py-proj", got)
	}
}

func TestLoadDocs(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "proj")
	write(t, filepath.Join(dir, "TODO.md"), "- [ ] task\n")
	write(t, filepath.Join(dir, "README.md"), "# Title\n\nBody text.\n")

	projects, err := Discover(root, DefaultOptions())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}

	docs := LoadDocs(projects[0], DefaultOptions())
	if docs.TodoText != "- [ ] task\n" {
		t.Fatalf("TodoText=%q", docs.TodoText)
	}
	if docs.RequirementsText != "" {
		t.Fatalf("RequirementsText should be empty for absent file")
	}
	if docs.ReadmeExcerpt == "" {
		t.Fatalf("ReadmeExcerpt empty")
	}
}
