// Package tokens counts prompt and completion tokens and turns token counts
// into dollar estimates using catalog pricing. Counting and pricing never
// fail: they degrade through fallback tiers and report an estimate, because a
// call whose text already arrived should not abort over bookkeeping.
package tokens

import (
	"log/slog"

	"github.com/pkoukk/tiktoken-go"

	"vulntriage/internal/registry"
)

// ReferenceModel anchors the fallback tiers: its tokenizer when a model's own
// family cannot be resolved, its pricing when a model has no pricing record.
const ReferenceModel = "gpt-4"

// encoder is the slice of tiktoken's API counting needs; *tiktoken.Tiktoken
// satisfies it, and tests substitute fakes to force the fallback tiers.
type encoder interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
}

// Counter counts tokens for catalog models.
type Counter struct {
	logger *slog.Logger

	encodingForModel func(model string) (encoder, error)
}

func NewCounter(logger *slog.Logger) *Counter {
	return &Counter{
		logger: logger,
		encodingForModel: func(model string) (encoder, error) {
			return tiktoken.EncodingForModel(model)
		},
	}
}

// Count returns the number of tokens in text for the model's tokenizer
// family. Resolution failures degrade: first to the reference tokenizer, then
// to a character-count estimate (roughly 4 characters per token for
// English-like text). Always returns a non-negative integer.
func (c *Counter) Count(text, model string) int {
	family := ReferenceModel
	entry, err := registry.Lookup(model)
	if err != nil {
		c.logger.Warn("model not in catalog, counting with reference tokenizer",
			"model", model, "fallback", ReferenceModel)
	} else {
		family = entry.Tokenizer
	}

	enc, err := c.encodingForModel(family)
	if err != nil {
		c.logger.Warn("tokenizer unavailable, falling back to reference tokenizer",
			"model", model, "tokenizer", family, "fallback", ReferenceModel, "error", err)
		enc, err = c.encodingForModel(ReferenceModel)
	}
	if err != nil {
		estimated := len(text) / 4
		c.logger.Warn("reference tokenizer unavailable, using character estimate",
			"model", model, "estimated_tokens", estimated, "error", err)
		return estimated
	}

	return len(enc.Encode(text, nil, nil))
}

// EstimateCost converts token counts into a dollar estimate using the model's
// per-1K pricing, or the reference model's pricing when the model has none.
// Pure arithmetic; no failure path.
func EstimateCost(logger *slog.Logger, inputTokens, outputTokens int, model string) float64 {
	p, ok := registry.PricingFor(model)
	if !ok {
		logger.Warn("no pricing for model, using reference pricing",
			"model", model, "fallback", ReferenceModel)
		p, _ = registry.PricingFor(ReferenceModel)
	}
	inputCost := float64(inputTokens) / 1000 * p.InputPer1K
	outputCost := float64(outputTokens) / 1000 * p.OutputPer1K
	return inputCost + outputCost
}
