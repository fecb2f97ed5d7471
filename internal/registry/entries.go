package registry

// Parameter sets shared across catalog entries. Chat-tuned models take the
// full set; the o-series reasoning models reject temperature and want
// max_completion_tokens instead of max_tokens.
var (
	fullParams = []string{
		ParamTemperature, ParamMaxTokens, ParamTopP, ParamFrequencyPenalty, ParamPresencePenalty,
	}
	reasoningParams = []string{
		ParamMaxCompletionTokens, ParamTopP, ParamFrequencyPenalty, ParamPresencePenalty,
	}
	responseAPIParams = []string{
		ParamMaxCompletionTokens, ParamTopP, ParamFrequencyPenalty, ParamPresencePenalty, ParamReasoning,
	}
)

func chat(provider Provider, tokenizer, description string) Capability {
	return Capability{
		Provider:           provider,
		SupportedParams:    fullParams,
		MaxTemperature:     2.0,
		DefaultTemperature: 0.0,
		Tokenizer:          tokenizer,
		Description:        description,
	}
}

func reasoning(provider Provider, description string) Capability {
	return Capability{
		Provider:           provider,
		SupportedParams:    reasoningParams,
		MaxTemperature:     1.0,
		DefaultTemperature: 0.0,
		Tokenizer:          "gpt-4",
		Description:        description,
	}
}

var capabilities = map[string]Capability{
	// OpenAI models
	"gpt-5":                  chat(ProviderOpenAI, "gpt-4", "GPT-5 with full parameter support"),
	"gpt-4":                  chat(ProviderOpenAI, "gpt-4", "GPT-4 with full parameter support"),
	"gpt-4-turbo":            chat(ProviderOpenAI, "gpt-4", "GPT-4 Turbo with full parameter support"),
	"gpt-4o":                 chat(ProviderOpenAI, "gpt-4o", "GPT-4o with full parameter support"),
	"gpt-4-turbo-preview":    chat(ProviderOpenAI, "gpt-4", "GPT-4 Turbo Preview with full parameter support"),
	"gpt-3.5-turbo":          chat(ProviderOpenAI, "gpt-3.5-turbo", "GPT-3.5 Turbo with full parameter support"),
	"gpt-3.5-turbo-instruct": chat(ProviderOpenAI, "gpt-3.5-turbo", "GPT-3.5 Turbo Instruct with full parameter support"),

	// OpenAI o-series reasoning models (chat completions via OpenRouter,
	// except o3-pro which talks to the OpenAI responses endpoint)
	"o3":      reasoning(ProviderOpenRouter, "o3: no temperature, uses max_completion_tokens"),
	"o3-mini": reasoning(ProviderOpenRouter, "o3-mini: no temperature, uses max_completion_tokens"),
	"o3-pro": {
		Provider:           ProviderOpenAI,
		SupportedParams:    responseAPIParams,
		MaxTemperature:     1.0,
		DefaultTemperature: 0.0,
		Tokenizer:          "gpt-4",
		Description:        "o3-pro: no temperature, uses max_completion_tokens and the OpenAI responses API",
	},
	"o1":      reasoning(ProviderOpenRouter, "o1: no temperature, uses max_completion_tokens"),
	"o1-pro":  reasoning(ProviderOpenRouter, "o1-pro: no temperature, uses max_completion_tokens"),
	"o1-mini": reasoning(ProviderOpenRouter, "o1-mini: no temperature, uses max_completion_tokens"),
	"o4-mini": reasoning(ProviderOpenRouter, "o4-mini: no temperature, uses max_completion_tokens"),

	// GPT-5 via OpenRouter
	"openai/gpt-5": chat(ProviderOpenRouter, "gpt-4", "GPT-5 via OpenRouter"),

	// DeepSeek via OpenRouter
	"deepseek/deepseek-coder":                 chat(ProviderOpenRouter, "gpt-4", "DeepSeek Coder"),
	"deepseek/deepseek-coder-33b-instruct":    chat(ProviderOpenRouter, "gpt-4", "DeepSeek Coder 33B Instruct"),
	"deepseek/deepseek-coder-6.7b-instruct":   chat(ProviderOpenRouter, "gpt-4", "DeepSeek Coder 6.7B Instruct"),
	"deepseek/deepseek-llm-67b-chat":          chat(ProviderOpenRouter, "gpt-4", "DeepSeek LLM 67B Chat"),
	"deepseek/deepseek-llm-7b-chat":           chat(ProviderOpenRouter, "gpt-4", "DeepSeek LLM 7B Chat"),
	"deepseek/deepseek-math-7b-instruct":      chat(ProviderOpenRouter, "gpt-4", "DeepSeek Math 7B Instruct"),
	"deepseek/deepseek-reasoner-7b-instruct":  chat(ProviderOpenRouter, "gpt-4", "DeepSeek Reasoner 7B Instruct"),
	"deepseek/deepseek-reasoner-34b-instruct": chat(ProviderOpenRouter, "gpt-4", "DeepSeek Reasoner 34B Instruct"),
	"deepseek/deepseek-r1":                    chat(ProviderOpenRouter, "gpt-4", "DeepSeek R1"),
	"deepseek/deepseek-r1-distill-llama-70b":  chat(ProviderOpenRouter, "gpt-4", "DeepSeek R1 Distill Llama 70B"),
	"deepseek/deepseek-chat-v3.1":             chat(ProviderOpenRouter, "gpt-4", "DeepSeek Chat v3.1"),

	// Google via OpenRouter
	"google/gemini-1.5-flash":     chat(ProviderOpenRouter, "gpt-4", "Gemini 1.5 Flash"),
	"google/gemini-1.5-pro":       chat(ProviderOpenRouter, "gpt-4", "Gemini 1.5 Pro"),
	"google/gemini-2.0-flash-exp": chat(ProviderOpenRouter, "gpt-4", "Gemini 2.0 Flash Experimental"),
	"google/gemini-2.0-pro-exp":   chat(ProviderOpenRouter, "gpt-4", "Gemini 2.0 Pro Experimental"),
	"google/gemini-2.0-flash-001": chat(ProviderOpenRouter, "gpt-4", "Gemini 2.0 Flash"),
	"google/gemini-2.5-flash":     chat(ProviderOpenRouter, "gpt-4", "Gemini 2.5 Flash"),
	"google/gemini-2.5-pro":       chat(ProviderOpenRouter, "gpt-4", "Gemini 2.5 Pro"),

	// Meta Llama via OpenRouter
	"meta-llama/llama-4-maverick":       chat(ProviderOpenRouter, "gpt-4", "Llama 4 Maverick"),
	"meta-llama/llama-4-scout":          chat(ProviderOpenRouter, "gpt-4", "Llama 4 Scout"),
	"meta-llama/llama-4-scout:free":     chat(ProviderOpenRouter, "gpt-4", "Llama 4 Scout (free tier)"),
	"meta-llama/llama-3.1-70b-instruct": chat(ProviderOpenRouter, "gpt-4", "Llama 3.1 70B Instruct"),
	"meta-llama/llama-guard-4-12b":      chat(ProviderOpenRouter, "gpt-4", "Llama Guard 4 12B"),

	// Qwen via OpenRouter
	"qwen/qwen3-235b-a22b":             chat(ProviderOpenRouter, "gpt-4", "Qwen3 235B A22B MoE"),
	"qwen/qwen3-coder":                 chat(ProviderOpenRouter, "gpt-4", "Qwen3 Coder 480B MoE, coding-tuned"),
	"qwen/qwen-2.5-coder-32b-instruct": chat(ProviderOpenRouter, "gpt-4", "Qwen2.5 Coder 32B Instruct, coding-tuned"),

	// Mistral via OpenRouter
	"mistralai/mistral-small-3.2-24b-instruct:free": chat(ProviderOpenRouter, "gpt-4", "Mistral Small 3.2 24B Instruct (free tier)"),
	"mistralai/codestral-2508":                      chat(ProviderOpenRouter, "gpt-4", "Codestral 2508, coding-tuned"),
	"mistralai/mixtral-8x22b-instruct":              chat(ProviderOpenRouter, "gpt-4", "Mixtral 8x22B Instruct"),
	"mistralai/mixtral-8x7b-instruct":               chat(ProviderOpenRouter, "gpt-4", "Mixtral 8x7B Instruct"),

	// Anthropic via OpenRouter
	"anthropic/claude-sonnet-4": chat(ProviderOpenRouter, "gpt-4", "Claude Sonnet 4"),
	"anthropic/claude-opus-4":   chat(ProviderOpenRouter, "gpt-4", "Claude Opus 4"),

	// X.AI via OpenRouter
	"x-ai/grok-4": chat(ProviderOpenRouter, "gpt-4", "Grok 4"),

	// OpenAI OSS via OpenRouter
	"openai/gpt-oss-120b": chat(ProviderOpenRouter, "gpt-4", "GPT-OSS 120B"),
	"openai/gpt-oss-20b":  chat(ProviderOpenRouter, "gpt-4", "GPT-OSS 20B"),

	// BigCode via OpenRouter
	"bigcode/starcoder2-15b-instruct": chat(ProviderOpenRouter, "gpt-4", "StarCoder2 15B Instruct, coding-tuned"),
}

// pricing is dollars per 1000 tokens, input and output. Shares the exact key
// domain of capabilities; Validate enforces that.
var pricing = map[string]Pricing{
	// OpenAI models
	"gpt-5":                  {InputPer1K: 0.00125, OutputPer1K: 0.01},
	"gpt-4":                  {InputPer1K: 0.03, OutputPer1K: 0.06},
	"gpt-4-turbo":            {InputPer1K: 0.01, OutputPer1K: 0.03},
	"gpt-4o":                 {InputPer1K: 0.005, OutputPer1K: 0.015},
	"gpt-4-turbo-preview":    {InputPer1K: 0.01, OutputPer1K: 0.03},
	"gpt-3.5-turbo":          {InputPer1K: 0.001, OutputPer1K: 0.002},
	"gpt-3.5-turbo-instruct": {InputPer1K: 0.0015, OutputPer1K: 0.002},

	// o-series
	"o3":      {InputPer1K: 0.015, OutputPer1K: 0.06},
	"o3-mini": {InputPer1K: 0.003, OutputPer1K: 0.015},
	"o3-pro":  {InputPer1K: 0.015, OutputPer1K: 0.06},
	"o1":      {InputPer1K: 0.015, OutputPer1K: 0.06},
	"o1-pro":  {InputPer1K: 0.015, OutputPer1K: 0.06},
	"o1-mini": {InputPer1K: 0.003, OutputPer1K: 0.015},
	"o4-mini": {InputPer1K: 0.003, OutputPer1K: 0.015},

	// GPT-5 via OpenRouter
	"openai/gpt-5": {InputPer1K: 0.00125, OutputPer1K: 0.01},

	// DeepSeek
	"deepseek/deepseek-coder":                 {InputPer1K: 0.00014, OutputPer1K: 0.00028},
	"deepseek/deepseek-coder-33b-instruct":    {InputPer1K: 0.00014, OutputPer1K: 0.00028},
	"deepseek/deepseek-coder-6.7b-instruct":   {InputPer1K: 0.00014, OutputPer1K: 0.00028},
	"deepseek/deepseek-llm-67b-chat":          {InputPer1K: 0.00014, OutputPer1K: 0.00028},
	"deepseek/deepseek-llm-7b-chat":           {InputPer1K: 0.00014, OutputPer1K: 0.00028},
	"deepseek/deepseek-math-7b-instruct":      {InputPer1K: 0.00014, OutputPer1K: 0.00028},
	"deepseek/deepseek-reasoner-7b-instruct":  {InputPer1K: 0.00014, OutputPer1K: 0.00028},
	"deepseek/deepseek-reasoner-34b-instruct": {InputPer1K: 0.00014, OutputPer1K: 0.00028},
	"deepseek/deepseek-r1":                    {InputPer1K: 0.00014, OutputPer1K: 0.00028},
	"deepseek/deepseek-r1-distill-llama-70b":  {InputPer1K: 0.000026, OutputPer1K: 0.000104},
	"deepseek/deepseek-chat-v3.1":             {InputPer1K: 0.00014, OutputPer1K: 0.00028},

	// Google
	"google/gemini-1.5-flash":     {InputPer1K: 0.000075, OutputPer1K: 0.0003},
	"google/gemini-1.5-pro":       {InputPer1K: 0.00375, OutputPer1K: 0.015},
	"google/gemini-2.0-flash-exp": {InputPer1K: 0.000075, OutputPer1K: 0.0003},
	"google/gemini-2.0-pro-exp":   {InputPer1K: 0.00375, OutputPer1K: 0.015},
	"google/gemini-2.0-flash-001": {InputPer1K: 0.0001, OutputPer1K: 0.0004},
	"google/gemini-2.5-flash":     {InputPer1K: 0.0001, OutputPer1K: 0.0004},
	"google/gemini-2.5-pro":       {InputPer1K: 0.00375, OutputPer1K: 0.015},

	// Meta Llama
	"meta-llama/llama-4-maverick":       {InputPer1K: 0.00015, OutputPer1K: 0.0006},
	"meta-llama/llama-4-scout":          {InputPer1K: 0.0001, OutputPer1K: 0.00028},
	"meta-llama/llama-4-scout:free":     {InputPer1K: 0, OutputPer1K: 0},
	"meta-llama/llama-3.1-70b-instruct": {InputPer1K: 0.0001, OutputPer1K: 0.00028},
	"meta-llama/llama-guard-4-12b":      {InputPer1K: 0.0001, OutputPer1K: 0.0002},

	// Qwen
	"qwen/qwen3-235b-a22b":             {InputPer1K: 0.00013, OutputPer1K: 0.0006},
	"qwen/qwen3-coder":                 {InputPer1K: 0.0002, OutputPer1K: 0.0008},
	"qwen/qwen-2.5-coder-32b-instruct": {InputPer1K: 0.00005, OutputPer1K: 0.0002},

	// Mistral
	"mistralai/mistral-small-3.2-24b-instruct:free": {InputPer1K: 0, OutputPer1K: 0},
	"mistralai/codestral-2508":                      {InputPer1K: 0.0003, OutputPer1K: 0.0009},
	"mistralai/mixtral-8x22b-instruct":              {InputPer1K: 0.0009, OutputPer1K: 0.0009},
	"mistralai/mixtral-8x7b-instruct":               {InputPer1K: 0.0009, OutputPer1K: 0.0009},

	// Anthropic
	"anthropic/claude-sonnet-4": {InputPer1K: 0.003, OutputPer1K: 0.015},
	"anthropic/claude-opus-4":   {InputPer1K: 0.015, OutputPer1K: 0.075},

	// X.AI
	"x-ai/grok-4": {InputPer1K: 0.0001, OutputPer1K: 0.0004},

	// OpenAI OSS
	"openai/gpt-oss-120b": {InputPer1K: 0.0005, OutputPer1K: 0.0015},
	"openai/gpt-oss-20b":  {InputPer1K: 0.0002, OutputPer1K: 0.0006},

	// BigCode
	"bigcode/starcoder2-15b-instruct": {InputPer1K: 0.00014, OutputPer1K: 0.00028},
}
