package batch

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vulntriage/internal/verdict"
)

func sampleResults() []Result {
	v := verdict.Verdict{
		FalsePositive:     "Yes",
		SanitizationFound: "Yes",
		AttackFeasible:    "No",
		Confidence:        "High",
		ModelUsed:         "gpt-4o",
	}
	return []Result{
		{Verdict: v, ProjectSlug: "juice-shop", CVE: "CVE-2023-0001", CWE: "CWE-079",
			AlertName: "alert-1", ContextPath: "ctx/alert-1.txt", Provider: "openai",
			Timestamp: "2026-08-26T10:00:00Z"},
		{Verdict: verdict.SentinelVerdict("gpt-4o"), ProjectSlug: "juice-shop",
			CVE: "CVE-2023-0001", CWE: "CWE-079", AlertName: "alert-2",
			ContextPath: "ctx/alert-2.txt", Provider: "openai",
			Timestamp: "2026-08-26T10:00:05Z"},
		{Verdict: v, ProjectSlug: "webgoat", CVE: "CVE-2022-1234", CWE: "CWE-022",
			AlertName: "alert-3", ContextPath: "ctx/alert-3.txt", Provider: "openai",
			Timestamp: "2026-08-26T10:00:10Z"},
	}
}

func TestWriteResults(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "results")
	path, err := WriteResults(sampleResults(), out)
	if err != nil {
		t.Fatalf("WriteResults: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open results: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(records))
	}

	header := records[0]
	for _, want := range append([]string{"project_slug", "cve_id", "cwe_id", "alert_name",
		"context_file", "model_used", "ai_provider", "timestamp"}, verdict.RequiredFields...) {
		found := false
		for _, h := range header {
			if h == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("header missing column %q: %v", want, header)
		}
	}

	if records[1][0] != "juice-shop" || records[3][0] != "webgoat" {
		t.Errorf("row order not preserved: %v", records)
	}
	// The sentinel row carries ERROR in every verdict column.
	col := map[string]int{}
	for i, h := range header {
		col[h] = i
	}
	for _, field := range verdict.RequiredFields {
		if got := records[2][col[field]]; got != verdict.Sentinel {
			t.Errorf("sentinel row field %q = %q", field, got)
		}
	}
	if records[2][col["model_used"]] != "gpt-4o" {
		t.Errorf("sentinel row model_used = %q", records[2][col["model_used"]])
	}
}

func TestWriteSummary(t *testing.T) {
	out := t.TempDir()
	path, err := WriteSummary(sampleResults(), "gpt-4o", out)
	if err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	text := string(b)

	for _, want := range []string{
		"Model used: gpt-4o",
		"Alerts processed: 3",
		"Unique projects: 2",
		"Unique CWEs: 2",
		"Unique CVEs: 2",
		"CWE-079: 2 alerts",
		"CWE-022: 1 alerts",
		"juice-shop: 2 alerts",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestWriteSummary_DistributionOrder(t *testing.T) {
	text, err := os.ReadFile(mustSummary(t))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	// Higher counts come first.
	if i, j := strings.Index(string(text), "CWE-079"), strings.Index(string(text), "CWE-022"); i < 0 || j < 0 || i > j {
		t.Fatalf("CWE distribution not sorted by count:\n%s", text)
	}
}

func mustSummary(t *testing.T) string {
	t.Helper()
	path, err := WriteSummary(sampleResults(), "gpt-4o", t.TempDir())
	if err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	return path
}
