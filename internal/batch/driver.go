package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vulntriage/internal/config"
	"vulntriage/internal/dispatch"
	"vulntriage/internal/registry"
	"vulntriage/internal/verdict"
)

// Result is one triaged alert: the extracted verdict plus the metadata the
// reports need.
type Result struct {
	verdict.Verdict

	ProjectSlug string
	CVE         string
	CWE         string
	AlertName   string
	ContextPath string
	Provider    string
	Timestamp   string
}

// Caller sends one prompt to a model. *dispatch.Dispatcher satisfies it.
type Caller interface {
	Dispatch(ctx context.Context, prompt, model string, opts dispatch.Options) (string, dispatch.Usage, error)
}

// Driver runs a triage batch over the configured project list, one item at a
// time with a fixed delay between model calls.
type Driver struct {
	logger     *slog.Logger
	dispatcher Caller
	extractor  *verdict.Extractor
	cfg        config.Run

	// seams for tests
	now   func() time.Time
	sleep func(time.Duration)
}

func NewDriver(logger *slog.Logger, dispatcher Caller, extractor *verdict.Extractor, cfg config.Run) *Driver {
	return &Driver{
		logger:     logger,
		dispatcher: dispatcher,
		extractor:  extractor,
		cfg:        cfg,
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

// Run processes the batch and returns all results. Missing templates or
// contexts skip items with a warning. A remote call failure yields the
// sentinel verdict for that item and the run continues; configuration-class
// failures (unknown model, illegal parameter, unusable client) abort, since
// they would fail every remaining item identically.
func (d *Driver) Run(ctx context.Context) ([]Result, error) {
	if _, err := registry.Lookup(d.cfg.Model); err != nil {
		return nil, err
	}

	projects, err := LoadProjects(d.cfg.BaseDir)
	if err != nil {
		return nil, err
	}
	templates, err := LoadTemplates(d.cfg.BaseDir)
	if err != nil {
		return nil, err
	}
	if d.cfg.MaxProjects > 0 && len(projects) > d.cfg.MaxProjects {
		projects = projects[:d.cfg.MaxProjects]
	}

	d.logger.Info("starting triage batch",
		"model", d.cfg.Model, "projects", len(projects), "templates", len(templates))

	provider := providerLabel(d.cfg.Model)

	var results []Result
	for i, project := range projects {
		template, ok := templates[project.CWE]
		if !ok {
			d.logger.Warn("no template for CWE, skipping project",
				"cwe", project.CWE, "project", project.Slug)
			continue
		}

		contexts, err := ContextFiles(d.cfg.BaseDir, project.Slug)
		if err != nil {
			return results, fmt.Errorf("listing contexts for %s: %w", project.Slug, err)
		}
		if len(contexts) == 0 {
			d.logger.Warn("no context files for project, skipping", "project", project.Slug)
			continue
		}

		d.logger.Info("processing project",
			"index", i+1, "total", len(projects),
			"project", project.Slug, "cve", project.CVE, "cwe", project.CWE)

		for _, contextPath := range contexts {
			if err := ctx.Err(); err != nil {
				return results, err
			}

			codeContext, err := os.ReadFile(contextPath)
			if err != nil {
				d.logger.Warn("unreadable context file, skipping", "path", contextPath, "error", err)
				continue
			}
			if len(codeContext) == 0 {
				d.logger.Warn("empty context file, skipping", "path", contextPath)
				continue
			}

			alertName := strings.TrimSuffix(filepath.Base(contextPath), ".txt")
			prompt := BuildPrompt(template, string(codeContext))

			v, err := d.triageOne(ctx, prompt, alertName)
			if err != nil {
				return results, err
			}

			results = append(results, Result{
				Verdict:     v,
				ProjectSlug: project.Slug,
				CVE:         project.CVE,
				CWE:         project.CWE,
				AlertName:   alertName,
				ContextPath: contextPath,
				Provider:    provider,
				Timestamp:   d.now().Format(time.RFC3339),
			})

			if d.cfg.Delay > 0 {
				d.sleep(time.Duration(d.cfg.Delay))
			}
		}
	}

	return results, nil
}

// triageOne dispatches one prompt and extracts its verdict. Remote failures
// degrade to the sentinel verdict; setup failures propagate.
func (d *Driver) triageOne(ctx context.Context, prompt, alertName string) (verdict.Verdict, error) {
	text, _, err := d.dispatcher.Dispatch(ctx, prompt, d.cfg.Model, dispatchOptions(d.cfg))
	switch {
	case err == nil:
		return d.extractor.Extract(text, d.cfg.Model), nil
	case errors.Is(err, dispatch.ErrRemoteCall):
		d.logger.Warn("model call failed, recording sentinel verdict",
			"alert", alertName, "error", err)
		return verdict.SentinelVerdict(d.cfg.Model), nil
	default:
		return verdict.Verdict{}, err
	}
}

func dispatchOptions(cfg config.Run) dispatch.Options {
	opts := dispatch.Options{
		Temperature: cfg.Temperature,
		CountTokens: cfg.CountTokens,
	}
	if cfg.MaxTokens != nil {
		opts.Extra = map[string]any{registry.ParamMaxTokens: *cfg.MaxTokens}
	}
	return opts
}

func providerLabel(model string) string {
	if registry.IsOpenAIProvider(model) {
		return string(registry.ProviderOpenAI)
	}
	return string(registry.ProviderOpenRouter)
}
