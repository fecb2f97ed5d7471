package dispatch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"vulntriage/internal/registry"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDispatcher(env map[string]string) *Dispatcher {
	d := New(discard(), nil)
	d.getenv = func(key string) string { return env[key] }
	return d
}

func TestResolve(t *testing.T) {
	cases := []struct {
		model string
		want  Route
	}{
		{"gpt-4", RouteOpenAIChat},
		{"gpt-4o", RouteOpenAIChat},
		{"o3", RouteOpenRouterChat},
		{"o3-pro", RouteResponseAPI},
		{"meta-llama/llama-3.1-70b-instruct", RouteOpenRouterChat},
		{"x-ai/grok-4", RouteOpenRouterChat},
		{"meta-llama/llama-4-scout:free", RouteOpenRouterChat},
	}
	for _, c := range cases {
		if got := Resolve(c.model); got != c.want {
			t.Errorf("Resolve(%q) = %v, want %v", c.model, got, c.want)
		}
	}
}

func TestResolve_CoversWholeCatalog(t *testing.T) {
	for _, model := range registry.Models() {
		route := Resolve(model)
		if route.String() == "unknown" {
			t.Errorf("model %q resolves to no route", model)
		}
		if route == RouteResponseAPI && model != registry.ResponseAPIModel {
			t.Errorf("model %q unexpectedly routed to responses API", model)
		}
	}
}

func TestRouteString(t *testing.T) {
	cases := map[Route]string{
		RouteOpenAIChat:     "openai_chat",
		RouteOpenRouterChat: "openrouter_chat",
		RouteResponseAPI:    "openai_response",
		Route(99):           "unknown",
	}
	for route, want := range cases {
		if got := route.String(); got != want {
			t.Errorf("Route(%d).String() = %q, want %q", route, got, want)
		}
	}
}

func TestNewClient_MissingOpenAIKey(t *testing.T) {
	d := testDispatcher(nil)
	for _, route := range []Route{RouteOpenAIChat, RouteResponseAPI} {
		if _, err := d.newClient(route); !errors.Is(err, ErrClientInit) {
			t.Errorf("route %v: err = %v, want ErrClientInit", route, err)
		}
	}
}

func TestNewClient_MissingOpenRouterKey(t *testing.T) {
	d := testDispatcher(map[string]string{OpenAIKeyEnv: "sk-test"})
	if _, err := d.newClient(RouteOpenRouterChat); !errors.Is(err, ErrClientInit) {
		t.Fatalf("err = %v, want ErrClientInit", err)
	}
	if _, err := d.newClient(RouteOpenAIChat); err != nil {
		t.Fatalf("openai chat client: %v", err)
	}
}

func TestNewClient_BothKeysPresent(t *testing.T) {
	d := testDispatcher(map[string]string{
		OpenAIKeyEnv:     "sk-test",
		OpenRouterKeyEnv: "or-test",
	})
	for _, route := range []Route{RouteOpenAIChat, RouteOpenRouterChat, RouteResponseAPI} {
		if _, err := d.newClient(route); err != nil {
			t.Errorf("route %v: %v", route, err)
		}
	}
}

func TestDispatch_UnknownModel(t *testing.T) {
	d := testDispatcher(map[string]string{OpenAIKeyEnv: "sk-test", OpenRouterKeyEnv: "or-test"})
	_, _, err := d.Dispatch(context.Background(), "prompt", "no-such-model", Options{})
	if !errors.Is(err, registry.ErrUnknownModel) {
		t.Fatalf("err = %v, want ErrUnknownModel", err)
	}
}

func TestDispatch_ClientErrorBeforeParameterError(t *testing.T) {
	// With both a missing credential and an illegal temperature, the client
	// failure surfaces first.
	d := testDispatcher(nil)
	bad := 99.0
	_, _, err := d.Dispatch(context.Background(), "prompt", "gpt-4", Options{Temperature: &bad})
	if !errors.Is(err, ErrClientInit) {
		t.Fatalf("err = %v, want ErrClientInit", err)
	}
}

func TestDispatch_ClientInitBeforeNetwork(t *testing.T) {
	// No credentials at all: dispatch must fail with ErrClientInit before any
	// request is attempted, for every route.
	d := testDispatcher(nil)
	for _, model := range []string{"gpt-4", "o3-pro", "x-ai/grok-4"} {
		_, _, err := d.Dispatch(context.Background(), "prompt", model, Options{})
		if !errors.Is(err, ErrClientInit) {
			t.Errorf("model %q: err = %v, want ErrClientInit", model, err)
		}
	}
}

func TestCheckCredentials(t *testing.T) {
	cases := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"both set", map[string]string{OpenAIKeyEnv: "a", OpenRouterKeyEnv: "b"}, false},
		{"openrouter missing", map[string]string{OpenAIKeyEnv: "a"}, false},
		{"openai missing", map[string]string{OpenRouterKeyEnv: "b"}, true},
		{"none set", nil, true},
	}
	for _, c := range cases {
		err := testDispatcher(c.env).CheckCredentials()
		if (err != nil) != c.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", c.name, err, c.wantErr)
		}
		if err != nil && !errors.Is(err, ErrClientInit) {
			t.Errorf("%s: err = %v, want ErrClientInit", c.name, err)
		}
	}
}

func TestCredentialFor(t *testing.T) {
	d := testDispatcher(map[string]string{OpenAIKeyEnv: "a"})
	if !d.CredentialFor("gpt-4") {
		t.Error("gpt-4 should be usable with only the OpenAI key")
	}
	if !d.CredentialFor("o3-pro") {
		t.Error("o3-pro should be usable with only the OpenAI key")
	}
	if d.CredentialFor("x-ai/grok-4") {
		t.Error("OpenRouter model should not be usable without its key")
	}
}

func TestRenderCount(t *testing.T) {
	if got := renderCount(nil); got != "unknown" {
		t.Fatalf("renderCount(nil) = %q", got)
	}
	n := 0
	if got := renderCount(&n); got != "0" {
		t.Fatalf("renderCount(&0) = %q, zero must render as a number", got)
	}
}

func TestCoercions(t *testing.T) {
	if f, ok := asFloat(3); !ok || f != 3 {
		t.Errorf("asFloat(int) = %v, %v", f, ok)
	}
	if f, ok := asFloat(0.5); !ok || f != 0.5 {
		t.Errorf("asFloat(float64) = %v, %v", f, ok)
	}
	if _, ok := asFloat("0.5"); ok {
		t.Error("asFloat(string) should fail")
	}
	if n, ok := asInt(1024.0); !ok || n != 1024 {
		t.Errorf("asInt(float64) = %v, %v", n, ok)
	}
	if n, ok := asInt(256); !ok || n != 256 {
		t.Errorf("asInt(int) = %v, %v", n, ok)
	}
}
