package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	run := Default()
	if run.BaseDir != "." {
		t.Errorf("BaseDir = %q, want .", run.BaseDir)
	}
	if run.Model != "gpt-4o" {
		t.Errorf("Model = %q", run.Model)
	}
	if run.Delay != Duration(time.Second) {
		t.Errorf("Delay = %v", run.Delay)
	}
	if !run.CountTokens {
		t.Error("CountTokens should default to true")
	}
	if run.Temperature != nil || run.MaxTokens != nil {
		t.Error("Temperature and MaxTokens should default to unset")
	}
	if err := run.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_LayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
model: o3-pro
baseDir: /data/triage
delay: 2s
maxProjects: 5
`)
	run, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if run.Model != "o3-pro" || run.BaseDir != "/data/triage" {
		t.Fatalf("overrides not applied: %+v", run)
	}
	if run.Delay != Duration(2*time.Second) {
		t.Errorf("Delay = %v", run.Delay)
	}
	if run.MaxProjects != 5 {
		t.Errorf("MaxProjects = %d", run.MaxProjects)
	}
	// Untouched keys keep their defaults.
	if !run.CountTokens {
		t.Error("CountTokens default lost")
	}
}

func TestLoad_OptionalNumbers(t *testing.T) {
	path := writeConfig(t, `
model: gpt-4
temperature: 0.2
maxTokens: 1024
countTokens: false
`)
	run, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if run.Temperature == nil || *run.Temperature != 0.2 {
		t.Errorf("Temperature = %v", run.Temperature)
	}
	if run.MaxTokens == nil || *run.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %v", run.MaxTokens)
	}
	if run.CountTokens {
		t.Error("countTokens: false not applied")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "model: [unclosed")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	neg := -1
	cases := []struct {
		name    string
		mutate  func(*Run)
		wantErr bool
	}{
		{"defaults", func(*Run) {}, false},
		{"empty model", func(r *Run) { r.Model = "" }, true},
		{"negative delay", func(r *Run) { r.Delay = Duration(-time.Second) }, true},
		{"negative max projects", func(r *Run) { r.MaxProjects = -1 }, true},
		{"zero max tokens unset", func(r *Run) { r.MaxTokens = nil }, false},
		{"nonpositive max tokens", func(r *Run) { r.MaxTokens = &neg }, true},
	}
	for _, c := range cases {
		run := Default()
		c.mutate(&run)
		if err := run.Validate(); (err != nil) != c.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", c.name, err, c.wantErr)
		}
	}
}
