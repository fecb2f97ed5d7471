// Package batch iterates the triage work list: for each security alert it
// builds a CWE-specific prompt from a template plus the alert's code context,
// dispatches it to the configured model, extracts a verdict, and collects the
// results for reporting.
package batch

import (
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	projectsFileName = "Projects_info.csv"
	templatesSubdir  = "prompt_templates/optimized"
	contextsSubdir   = "code-context/optimized"

	// contextPlaceholder in a template is replaced by the alert's code context.
	contextPlaceholder = "{code_context}"
)

// Project is one row of the projects list.
type Project struct {
	Slug string
	CVE  string
	CWE  string
}

// LoadProjects reads the projects CSV under baseDir. The header row must
// contain project_slug, cve_id and cwe_id columns; order is not significant.
// A header-only file yields an empty list.
func LoadProjects(baseDir string) ([]Project, error) {
	path := filepath.Join(baseDir, projectsFileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open projects list: %w", err)
	}
	defer f.Close()

	// Every row must be as wide as the header; csv.Reader enforces that and
	// turns ragged rows into errors instead of out-of-range panics below.
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse projects list %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("projects list %s is empty", path)
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"project_slug", "cve_id", "cwe_id"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("projects list %s missing column %q", path, required)
		}
	}

	projects := make([]Project, 0, len(records)-1)
	for _, row := range records[1:] {
		projects = append(projects, Project{
			Slug: strings.TrimSpace(row[col["project_slug"]]),
			CVE:  strings.TrimSpace(row[col["cve_id"]]),
			CWE:  strings.TrimSpace(row[col["cwe_id"]]),
		})
	}
	return projects, nil
}

// LoadTemplates discovers the CWE prompt templates under baseDir, keyed by
// CWE identifier (the file stem, e.g. "CWE-022").
func LoadTemplates(baseDir string) (map[string]string, error) {
	dir := filepath.Join(baseDir, templatesSubdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template dir: %w", err)
	}

	templates := make(map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "CWE-") || !strings.HasSuffix(name, ".txt") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		templates[strings.TrimSuffix(name, ".txt")] = string(b)
	}
	return templates, nil
}

// ContextFiles lists the code-context files for one project, sorted. A
// missing project directory is not an error; the caller skips with a warning.
func ContextFiles(baseDir, slug string) ([]string, error) {
	dir := filepath.Join(baseDir, contextsSubdir, slug)
	matches, err := fs.Glob(os.DirFS(dir), "*.txt")
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(dir, m))
	}
	return paths, nil
}

// BuildPrompt substitutes the code context into the CWE template.
func BuildPrompt(template, codeContext string) string {
	return strings.ReplaceAll(template, contextPlaceholder, codeContext)
}
