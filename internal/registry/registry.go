// Package registry holds the static catalog of models this tool can talk to:
// which provider hosts each model, which request parameters it accepts, its
// temperature domain, its tokenizer family, and its per-1K-token pricing.
// The catalog is fixed at process start; nothing mutates it at runtime.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Provider identifies the remote service hosting a model's inference endpoint.
type Provider string

const (
	ProviderOpenAI         Provider = "openai"
	ProviderOpenRouter     Provider = "openrouter"
	ProviderOpenAIResponse Provider = "openai_response_api"
)

// Request parameter names as they appear on the wire.
const (
	ParamTemperature         = "temperature"
	ParamMaxTokens           = "max_tokens"
	ParamMaxCompletionTokens = "max_completion_tokens"
	ParamTopP                = "top_p"
	ParamFrequencyPenalty    = "frequency_penalty"
	ParamPresencePenalty     = "presence_penalty"
	ParamReasoning           = "reasoning"
)

// ResponseAPIModel is hard-routed to the OpenAI responses endpoint regardless
// of its catalog provider value.
const ResponseAPIModel = "o3-pro"

// ErrUnknownModel indicates the requested model is not in the catalog.
var ErrUnknownModel = errors.New("unknown model")

// Capability describes the request shape a model accepts.
type Capability struct {
	Provider           Provider `validate:"required,oneof=openai openrouter openai_response_api"`
	SupportedParams    []string `validate:"required,min=1,dive,oneof=temperature max_tokens max_completion_tokens top_p frequency_penalty presence_penalty reasoning"`
	MaxTemperature     float64  `validate:"gte=0"`
	DefaultTemperature float64  `validate:"gte=0"`
	Tokenizer          string   `validate:"required"`
	Description        string
}

// Pricing is the cost per 1000 tokens, in dollars.
type Pricing struct {
	InputPer1K  float64 `validate:"gte=0"`
	OutputPer1K float64 `validate:"gte=0"`
}

// Entry is the combined catalog record for a single model.
type Entry struct {
	Capability
	Pricing
}

// Supports reports whether the model accepts the named request parameter.
func (c Capability) Supports(param string) bool {
	return slices.Contains(c.SupportedParams, param)
}

// Lookup returns the catalog entry for the given model identifier.
func Lookup(model string) (Entry, error) {
	c, ok := capabilities[model]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return Entry{Capability: c, Pricing: pricing[model]}, nil
}

// PricingFor returns the pricing record for a model, reporting whether one
// exists. Callers that need a number regardless should fall back themselves.
func PricingFor(model string) (Pricing, bool) {
	p, ok := pricing[model]
	return p, ok
}

// Models returns all catalog model identifiers in sorted order.
func Models() []string {
	names := make([]string, 0, len(capabilities))
	for name := range capabilities {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsOpenAIProvider reports whether calls for the model go to the OpenAI host.
// The responses-API override model always does, whatever its catalog entry says.
func IsOpenAIProvider(model string) bool {
	if model == ResponseAPIModel {
		return true
	}
	c, ok := capabilities[model]
	if !ok {
		return false
	}
	return c.Provider == ProviderOpenAI
}

// Validate runs the startup self-check over both tables: structural checks on
// every capability and pricing record, the shared key domain between the two,
// and the cross-field invariant that a model supporting temperature defaults
// within its own legal range.
func Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	for model, c := range capabilities {
		if err := v.Struct(c); err != nil {
			return fmt.Errorf("catalog entry %q: %w", model, err)
		}
		if c.Supports(ParamTemperature) && (c.DefaultTemperature < 0 || c.DefaultTemperature > c.MaxTemperature) {
			return fmt.Errorf("catalog entry %q: default temperature %g outside [0, %g]",
				model, c.DefaultTemperature, c.MaxTemperature)
		}
		if _, ok := pricing[model]; !ok {
			return fmt.Errorf("catalog entry %q: no pricing record", model)
		}
	}
	for model, p := range pricing {
		if err := v.Struct(p); err != nil {
			return fmt.Errorf("pricing entry %q: %w", model, err)
		}
		if _, ok := capabilities[model]; !ok {
			return fmt.Errorf("pricing entry %q: no capability record", model)
		}
	}
	if _, ok := capabilities[ResponseAPIModel]; !ok {
		return fmt.Errorf("routing override model %q missing from catalog", ResponseAPIModel)
	}
	return nil
}
