package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vulntriage/internal/dispatch"
	"vulntriage/internal/registry"
	"vulntriage/internal/tokens"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify credentials and catalog integrity before a run",
	Long: `Run the preflight checks a batch would run: validate the model catalog,
require the OpenAI API key, and warn when the OpenRouter key is absent
(only OpenAI-hosted models stay usable without it).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		out := cmd.OutOrStdout()

		if err := registry.Validate(); err != nil {
			return fmt.Errorf("model catalog self-check: %w", err)
		}
		fmt.Fprintf(out, "ok: model catalog (%d models)\n", len(registry.Models()))

		dispatcher := dispatch.New(logger, tokens.NewCounter(logger))
		if err := dispatcher.CheckCredentials(); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok: credentials")

		if model != "" {
			if _, err := registry.Lookup(model); err != nil {
				return err
			}
			if !dispatcher.CredentialFor(model) {
				return fmt.Errorf("model %s routes via %s but its credential is not set",
					model, dispatch.Resolve(model))
			}
			fmt.Fprintf(out, "ok: model %s routes via %s\n", model, dispatch.Resolve(model))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&model, "model", "m", "", "Also verify this model's route and credential")
	rootCmd.AddCommand(checkCmd)
}
