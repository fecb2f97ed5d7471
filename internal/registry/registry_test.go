package registry

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("catalog self-check failed: %v", err)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("not-a-real-model")
	if !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
}

func TestLookup_CombinesTables(t *testing.T) {
	entry, err := Lookup("gpt-4")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if entry.Provider != ProviderOpenAI {
		t.Fatalf("expected openai provider, got %q", entry.Provider)
	}
	if entry.InputPer1K != 0.03 || entry.OutputPer1K != 0.06 {
		t.Fatalf("unexpected gpt-4 pricing: %+v", entry.Pricing)
	}
	if !entry.Supports(ParamTemperature) {
		t.Fatalf("gpt-4 should support temperature")
	}
}

func TestIsOpenAIProvider(t *testing.T) {
	cases := []struct {
		model string
		want  bool
	}{
		{"gpt-4", true},
		{"gpt-4o", true},
		{"o3-pro", true}, // routing override, whatever the catalog says
		{"o3", false},    // chat via openrouter
		{"deepseek/deepseek-r1", false},
		{"anthropic/claude-sonnet-4", false},
		{"not-a-real-model", false},
	}
	for _, tc := range cases {
		if got := IsOpenAIProvider(tc.model); got != tc.want {
			t.Errorf("IsOpenAIProvider(%q) = %v, want %v", tc.model, got, tc.want)
		}
	}
}

func TestModels_SortedAndComplete(t *testing.T) {
	names := Models()
	if len(names) != len(capabilities) {
		t.Fatalf("Models() returned %d names, catalog has %d", len(names), len(capabilities))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Models() not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}

func TestTemperatureDefaultWithinBound(t *testing.T) {
	for model, c := range capabilities {
		if !c.Supports(ParamTemperature) {
			continue
		}
		if c.DefaultTemperature < 0 || c.DefaultTemperature > c.MaxTemperature {
			t.Errorf("model %q: default temperature %g outside [0, %g]",
				model, c.DefaultTemperature, c.MaxTemperature)
		}
	}
}

func TestReasoningModelsRejectTemperature(t *testing.T) {
	for _, model := range []string{"o3", "o3-mini", "o3-pro", "o1", "o1-pro", "o1-mini", "o4-mini"} {
		entry, err := Lookup(model)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", model, err)
		}
		if entry.Supports(ParamTemperature) {
			t.Errorf("model %q should not support temperature", model)
		}
		if !entry.Supports(ParamMaxCompletionTokens) {
			t.Errorf("model %q should support max_completion_tokens", model)
		}
	}
}

func TestValidate_DetectsBrokenEntries(t *testing.T) {
	// Mutate a copy of the tables through the package vars, restoring after.
	orig := capabilities["gpt-4"]
	broken := orig
	broken.DefaultTemperature = broken.MaxTemperature + 1
	capabilities["gpt-4"] = broken
	defer func() { capabilities["gpt-4"] = orig }()

	if err := Validate(); err == nil {
		t.Fatalf("expected validation error for out-of-range default temperature")
	}
}
