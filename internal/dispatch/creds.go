package dispatch

import "fmt"

// CheckCredentials verifies the per-host secrets before a run. A missing
// OpenAI key is a hard precondition failure, since OpenAI-routed calls cannot
// proceed without it. A missing OpenRouter key only narrows the usable
// catalog to OpenAI-hosted models, so it is reported as a warning.
func (d *Dispatcher) CheckCredentials() error {
	if d.getenv(OpenAIKeyEnv) == "" {
		return fmt.Errorf("%w: %s is not set", ErrClientInit, OpenAIKeyEnv)
	}
	if d.getenv(OpenRouterKeyEnv) == "" {
		d.logger.Warn("credential not set, only OpenAI-hosted models are usable",
			"env", OpenRouterKeyEnv)
	}
	return nil
}

// CredentialFor reports whether the credential needed by the model's route is
// present.
func (d *Dispatcher) CredentialFor(model string) bool {
	if Resolve(model) == RouteOpenRouterChat {
		return d.getenv(OpenRouterKeyEnv) != ""
	}
	return d.getenv(OpenAIKeyEnv) != ""
}
