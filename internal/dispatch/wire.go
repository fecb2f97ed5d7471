package dispatch

import (
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"

	"vulntriage/internal/registry"
)

// applyChatParams copies the normalized parameter bag onto the typed chat
// completion request. The bag only ever holds keys the catalog allowed, so
// anything unrecognized here is a catalog/SDK mismatch worth surfacing during
// development rather than silently sending.
func applyChatParams(p *openai.ChatCompletionNewParams, normalized map[string]any) {
	for key, value := range normalized {
		switch key {
		case registry.ParamTemperature:
			if f, ok := asFloat(value); ok {
				p.Temperature = openai.Float(f)
			}
		case registry.ParamMaxTokens:
			if n, ok := asInt(value); ok {
				p.MaxTokens = openai.Int(n)
			}
		case registry.ParamMaxCompletionTokens:
			if n, ok := asInt(value); ok {
				p.MaxCompletionTokens = openai.Int(n)
			}
		case registry.ParamTopP:
			if f, ok := asFloat(value); ok {
				p.TopP = openai.Float(f)
			}
		case registry.ParamFrequencyPenalty:
			if f, ok := asFloat(value); ok {
				p.FrequencyPenalty = openai.Float(f)
			}
		case registry.ParamPresencePenalty:
			if f, ok := asFloat(value); ok {
				p.PresencePenalty = openai.Float(f)
			}
		}
	}
}

// applyResponseParams copies the normalized bag onto the responses-API
// request. The responses endpoint has no penalty knobs; those are dropped
// with a warning rather than sent to be rejected.
func applyResponseParams(logger *slog.Logger, p *responses.ResponseNewParams, model string, normalized map[string]any) {
	for key, value := range normalized {
		switch key {
		case registry.ParamTemperature:
			if f, ok := asFloat(value); ok {
				p.Temperature = openai.Float(f)
			}
		case registry.ParamMaxCompletionTokens, registry.ParamMaxTokens:
			if n, ok := asInt(value); ok {
				p.MaxOutputTokens = openai.Int(n)
			}
		case registry.ParamTopP:
			if f, ok := asFloat(value); ok {
				p.TopP = openai.Float(f)
			}
		case registry.ParamReasoning:
			// Fixed high-effort reasoning is set on the request already.
		default:
			logger.Warn("parameter not representable on responses API, dropping",
				"parameter", key, "model", model)
		}
	}
}

func asFloat(value any) (float64, bool) {
	switch t := value.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func asInt(value any) (int64, bool) {
	switch t := value.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return int64(t), true
	}
	return 0, false
}
