// Package dispatch routes a prompt to the correct provider endpoint and call
// shape, sends it, and returns the raw model text with a usage record. Three
// shapes exist: a standard chat completion against the OpenAI host, the same
// chat shape against the OpenRouter host, and the OpenAI responses call used
// by reasoning models.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"

	"vulntriage/internal/params"
	"vulntriage/internal/registry"
	"vulntriage/internal/tokens"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"

	chatTimeout     = 30 * time.Second
	responseTimeout = 60 * time.Second
	maxRetries      = 2

	chatSystemPrompt     = "You are a security assistant."
	responseSystemPrompt = "You are a security assistant specialized in vulnerability analysis."
)

// Environment variables carrying the per-host credentials.
const (
	OpenAIKeyEnv     = "OPENAI_API_KEY"
	OpenRouterKeyEnv = "OPENROUTER_API_KEY"
)

var (
	// ErrClientInit indicates the provider client could not be constructed,
	// typically a missing credential. No request was attempted.
	ErrClientInit = errors.New("provider client init failed")
	// ErrRemoteCall indicates the provider call failed after the client's
	// built-in retry budget. Wraps the provider's error detail.
	ErrRemoteCall = errors.New("provider call failed")
)

// Route names one of the three terminal call shapes.
type Route int

const (
	RouteOpenAIChat Route = iota
	RouteOpenRouterChat
	RouteResponseAPI
)

func (r Route) String() string {
	switch r {
	case RouteOpenAIChat:
		return "openai_chat"
	case RouteOpenRouterChat:
		return "openrouter_chat"
	case RouteResponseAPI:
		return "openai_response"
	}
	return "unknown"
}

// Resolve selects the call shape for a model. The responses-API override in
// the catalog wins over the model's nominal provider value.
func Resolve(model string) Route {
	switch {
	case model == registry.ResponseAPIModel:
		return RouteResponseAPI
	case registry.IsOpenAIProvider(model):
		return RouteOpenAIChat
	default:
		return RouteOpenRouterChat
	}
}

// Usage carries per-call token accounting. A nil component means the count or
// estimate is unknown (disabled or failed), which downstream reporting must
// render distinctly from zero.
type Usage struct {
	InputTokens  *int
	OutputTokens *int
	Cost         *float64
}

// Options are the caller's request parameters, uniform across models; the
// normalizer reshapes them per model.
type Options struct {
	// Temperature, when non-nil, is the caller's explicit choice.
	Temperature *float64
	// CountTokens enables token counting and cost estimation for the call.
	CountTokens bool
	// Extra holds further wire parameters by name (max_tokens, top_p, ...).
	Extra map[string]any
}

// Dispatcher sends prompts to providers. Safe for concurrent use: it holds no
// cross-call state beyond its collaborators.
type Dispatcher struct {
	logger  *slog.Logger
	counter *tokens.Counter

	// getenv is swappable in tests for credential scenarios.
	getenv func(string) string
}

func New(logger *slog.Logger, counter *tokens.Counter) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		counter: counter,
		getenv:  os.Getenv,
	}
}

// Dispatch sends prompt to model and returns the raw response text plus a
// usage record. Parameter problems and client/remote failures surface as
// ErrInvalidParameter, ErrUnknownModel, ErrClientInit or ErrRemoteCall;
// token accounting failures never do.
func (d *Dispatcher) Dispatch(ctx context.Context, prompt, model string, opts Options) (string, Usage, error) {
	route := Resolve(model)

	client, err := d.newClient(route)
	if err != nil {
		return "", Usage{}, err
	}

	normalized, err := params.Normalize(d.logger, model, opts.Temperature, opts.Extra)
	if err != nil {
		return "", Usage{}, err
	}

	var usage Usage
	if opts.CountTokens {
		n := d.counter.Count(prompt, model)
		usage.InputTokens = &n
	}

	var text string
	switch route {
	case RouteResponseAPI:
		text, err = d.callResponses(ctx, client, model, prompt, normalized)
	default:
		text, err = d.callChat(ctx, client, route, model, prompt, normalized)
	}
	if err != nil {
		return "", usage, err
	}

	if opts.CountTokens {
		n := d.counter.Count(text, model)
		usage.OutputTokens = &n
		if usage.InputTokens != nil {
			cost := tokens.EstimateCost(d.logger, *usage.InputTokens, *usage.OutputTokens, model)
			usage.Cost = &cost
		}
	}

	d.logUsage(route, model, normalized, usage)
	return text, usage, nil
}

// newClient builds the provider client for the route, with the route's
// timeout and the fixed transport retry budget. A missing credential is an
// init failure: no request can be attempted without it.
func (d *Dispatcher) newClient(route Route) (openai.Client, error) {
	timeout := chatTimeout
	if route == RouteResponseAPI {
		timeout = responseTimeout
	}
	opts := []option.RequestOption{
		option.WithMaxRetries(maxRetries),
		option.WithRequestTimeout(timeout),
	}

	switch route {
	case RouteOpenRouterChat:
		key := d.getenv(OpenRouterKeyEnv)
		if key == "" {
			return openai.Client{}, fmt.Errorf("%w: %s is not set", ErrClientInit, OpenRouterKeyEnv)
		}
		opts = append(opts, option.WithAPIKey(key), option.WithBaseURL(openRouterBaseURL))
	default:
		key := d.getenv(OpenAIKeyEnv)
		if key == "" {
			return openai.Client{}, fmt.Errorf("%w: %s is not set", ErrClientInit, OpenAIKeyEnv)
		}
		opts = append(opts, option.WithAPIKey(key))
	}

	return openai.NewClient(opts...), nil
}

func (d *Dispatcher) callChat(ctx context.Context, client openai.Client, route Route, model, prompt string, normalized map[string]any) (string, error) {
	p := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(chatSystemPrompt),
			openai.UserMessage(prompt),
		},
	}
	applyChatParams(&p, normalized)

	resp, err := client.Chat.Completions.New(ctx, p)
	if err != nil {
		return "", fmt.Errorf("%s call for model %s: %w", route, model, errors.Join(ErrRemoteCall, err))
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s call for model %s returned no choices: %w", route, model, ErrRemoteCall)
	}
	return resp.Choices[0].Message.Content, nil
}

func (d *Dispatcher) callResponses(ctx context.Context, client openai.Client, model, prompt string, normalized map[string]any) (string, error) {
	p := responses.ResponseNewParams{
		Model: shared.ResponsesModel(model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				inputMessage(responses.EasyInputMessageRoleSystem, responseSystemPrompt),
				inputMessage(responses.EasyInputMessageRoleUser, prompt),
			},
		},
		// High effort for best reasoning performance on triage judgments.
		Reasoning: shared.ReasoningParam{Effort: shared.ReasoningEffortHigh},
	}
	applyResponseParams(d.logger, &p, model, normalized)

	resp, err := client.Responses.New(ctx, p)
	if err != nil {
		return "", fmt.Errorf("responses call for model %s: %w", model, errors.Join(ErrRemoteCall, err))
	}
	return resp.OutputText(), nil
}

func inputMessage(role responses.EasyInputMessageRole, content string) responses.ResponseInputItemUnionParam {
	return responses.ResponseInputItemUnionParam{
		OfMessage: &responses.EasyInputMessageParam{
			Role:    role,
			Content: responses.EasyInputMessageContentUnionParam{OfString: openai.String(content)},
		},
	}
}

func (d *Dispatcher) logUsage(route Route, model string, normalized map[string]any, usage Usage) {
	attrs := []any{
		"route", route.String(),
		"model", model,
		"parameters", normalized,
		"input_tokens", renderCount(usage.InputTokens),
		"output_tokens", renderCount(usage.OutputTokens),
	}
	if usage.Cost != nil {
		attrs = append(attrs, "estimated_cost_usd", fmt.Sprintf("%.4f", *usage.Cost))
	} else {
		attrs = append(attrs, "estimated_cost_usd", "unknown")
	}
	d.logger.Info("model call completed", attrs...)
}

func renderCount(n *int) string {
	if n == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *n)
}
