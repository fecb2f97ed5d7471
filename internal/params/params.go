// Package params adapts a uniform caller-supplied parameter bag to the exact
// parameter set a given model accepts. The catalog is the authority on legal
// shape: unsupported parameters are dropped with a warning rather than
// rejected, since callers routinely over-specify across a catalog of
// dissimilar models.
package params

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"vulntriage/internal/registry"
)

// ErrInvalidParameter indicates a caller-supplied value outside the model's
// legal domain.
var ErrInvalidParameter = errors.New("invalid parameter")

// Normalize validates and reshapes the request parameters for model.
//
// temperature is the caller's explicit choice, nil when omitted. extra holds
// any further wire parameters by name (max_tokens, top_p, ...). The returned
// bag contains only keys the model supports, with max_tokens renamed to
// max_completion_tokens when the model wants that name, and temperature
// always present when supported (caller's value if legal, else the model's
// default). Dropped parameters are logged, never fatal.
func Normalize(logger *slog.Logger, model string, temperature *float64, extra map[string]any) (map[string]any, error) {
	entry, err := registry.Lookup(model)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)

	if entry.Supports(registry.ParamTemperature) {
		if temperature != nil {
			if *temperature < 0 || *temperature > entry.MaxTemperature {
				return nil, fmt.Errorf("%w: temperature must be between 0 and %g for model %s, got %g",
					ErrInvalidParameter, entry.MaxTemperature, model, *temperature)
			}
			out[registry.ParamTemperature] = *temperature
		} else {
			out[registry.ParamTemperature] = entry.DefaultTemperature
		}
	} else if temperature != nil {
		// The catalog says this model has no temperature knob; drop silently,
		// the registry owns the legal shape.
		logger.Debug("model does not support temperature, ignoring", "model", model)
	}

	// Deterministic iteration keeps warnings stable across runs.
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := extra[key]
		switch {
		case key == registry.ParamTemperature:
			// Temperature travels through the dedicated argument so it cannot
			// bypass range validation.
			logger.Warn("temperature must be passed explicitly, ignoring bag entry", "model", model)
		case key == registry.ParamMaxTokens && entry.Supports(registry.ParamMaxCompletionTokens):
			out[registry.ParamMaxCompletionTokens] = value
		case entry.Supports(key):
			out[key] = value
		default:
			logger.Warn("dropping unsupported parameter",
				"parameter", key,
				"model", model,
				"supported", entry.SupportedParams)
		}
	}

	return out, nil
}
