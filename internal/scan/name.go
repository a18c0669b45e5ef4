package scan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
)

var (
	// reTOMLName matches `name = "x"` in pyproject.toml / Cargo.toml.
	reTOMLName = regexp.MustCompile(`(?m)^\s*name\s*=\s*"([^"]+)"`)
)

// ProjectName resolves a display name for a project directory: package.json,
// then pyproject.toml, then Cargo.toml, then the directory base name.
func ProjectName(dir string) string {
	if name := nameFromPackageJSON(filepath.Join(dir, "package.json")); name != "" {
		return name
	}
	for _, f := range []string{"pyproject.toml", "Cargo.toml"} {
		if name := nameFromTOML(filepath.Join(dir, f)); name != "" {
			return name
		}
	}
	return filepath.Base(dir)
}

func nameFromPackageJSON(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &pkg); err != nil {
		return ""
	}
	return pkg.Name
}

func nameFromTOML(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	m := reTOMLName.FindSubmatch(b)
	if m == nil {
		return ""
	}
	return string(m[1])
}
