package batch

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vulntriage/internal/verdict"
)

const (
	resultsFileName = "triage_results.csv"
	summaryFileName = "triage_summary.txt"
)

var csvHeader = append(
	[]string{"project_slug", "cve_id", "cwe_id", "alert_name", "context_file"},
	append(append([]string{}, verdict.RequiredFields...),
		"model_used", "ai_provider", "timestamp")...,
)

// WriteResults writes all results as CSV into outputDir, creating the
// directory if needed, and returns the file path.
func WriteResults(results []Result, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(outputDir, resultsFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write results header: %w", err)
	}
	for _, r := range results {
		row := []string{r.ProjectSlug, r.CVE, r.CWE, r.AlertName, r.ContextPath}
		for _, field := range verdict.RequiredFields {
			row = append(row, r.Field(field))
		}
		row = append(row, r.ModelUsed, r.Provider, r.Timestamp)
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write result row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush results: %w", err)
	}
	return path, nil
}

// WriteSummary writes a human-readable run summary next to the results CSV
// and returns the file path.
func WriteSummary(results []Result, model, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(outputDir, summaryFileName)

	var b strings.Builder
	b.WriteString("Triage Run Summary\n")
	b.WriteString("==================\n\n")
	fmt.Fprintf(&b, "Model used: %s\n", model)
	fmt.Fprintf(&b, "Alerts processed: %d\n", len(results))
	fmt.Fprintf(&b, "Unique projects: %d\n", len(distinct(results, func(r Result) string { return r.ProjectSlug })))
	fmt.Fprintf(&b, "Unique CWEs: %d\n", len(distinct(results, func(r Result) string { return r.CWE })))
	fmt.Fprintf(&b, "Unique CVEs: %d\n\n", len(distinct(results, func(r Result) string { return r.CVE })))

	b.WriteString("CWE distribution:\n")
	writeCounts(&b, results, func(r Result) string { return r.CWE }, 0)

	b.WriteString("\nProject distribution:\n")
	writeCounts(&b, results, func(r Result) string { return r.ProjectSlug }, 10)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

func distinct(results []Result, key func(Result) string) map[string]int {
	counts := make(map[string]int)
	for _, r := range results {
		counts[key(r)]++
	}
	return counts
}

// writeCounts prints "  key: N alerts" lines sorted by descending count,
// ties broken by name. limit 0 prints all.
func writeCounts(b *strings.Builder, results []Result, key func(Result) string, limit int) {
	counts := distinct(results, key)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	for _, name := range names {
		fmt.Fprintf(b, "  %s: %d alerts\n", name, counts[name])
	}
}
