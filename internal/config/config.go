// Package config holds the run configuration for a triage batch: where the
// project list, templates, and code contexts live, which model to use, and
// the pacing of calls. Values come from an optional YAML file with CLI flags
// layered on top by the command layer.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML duration strings
// such as "500ms" or "2s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Run is the effective configuration for one batch run.
type Run struct {
	// BaseDir anchors the input layout: Projects_info.csv,
	// prompt_templates/optimized, code-context/optimized.
	BaseDir string `yaml:"baseDir"`
	// OutputDir receives the results CSV and summary. Defaults under BaseDir.
	OutputDir string `yaml:"outputDir"`

	Model       string   `yaml:"model" validate:"required"`
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"maxTokens" validate:"omitempty,gt=0"`

	// Delay between consecutive model calls, the only pacing this tool does.
	Delay Duration `yaml:"delay" validate:"gte=0"`
	// MaxProjects caps how many projects are processed; 0 means all.
	MaxProjects int `yaml:"maxProjects" validate:"gte=0"`
	// CountTokens enables token accounting per call.
	CountTokens bool `yaml:"countTokens"`
}

// Default returns the configuration used when no file and no flags override
// anything.
func Default() Run {
	return Run{
		BaseDir:     ".",
		Model:       "gpt-4o",
		Delay:       Duration(time.Second),
		CountTokens: true,
	}
}

// Load reads a YAML run configuration, layering it over the defaults.
func Load(path string) (Run, error) {
	run := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("read run config: %w", err)
	}
	if err := yaml.Unmarshal(b, &run); err != nil {
		return Run{}, fmt.Errorf("parse run config %s: %w", path, err)
	}
	return run, nil
}

// Validate checks the configuration before a run starts.
func (r Run) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(r); err != nil {
		return fmt.Errorf("invalid run configuration: %w", err)
	}
	return nil
}
