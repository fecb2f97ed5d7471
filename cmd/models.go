package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vulntriage/internal/dispatch"
	"vulntriage/internal/registry"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models in the catalog",
	Long: `List every model this tool can dispatch to, with its provider route,
supported request parameters, temperature bound, and per-1K-token pricing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL\tROUTE\tMAX TEMP\tIN $/1K\tOUT $/1K\tPARAMETERS")
		for _, name := range registry.Models() {
			entry, err := registry.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%g\t%.5f\t%.5f\t%s\n",
				name,
				dispatch.Resolve(name),
				entry.MaxTemperature,
				entry.InputPer1K,
				entry.OutputPer1K,
				strings.Join(entry.SupportedParams, ","))
		}
		return w.Flush()
	},
}

var modelInfoCmd = &cobra.Command{
	Use:   "info [model]",
	Short: "Show the full catalog entry for one model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entry, err := registry.Lookup(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Model:          %s\n", args[0])
		fmt.Fprintf(out, "Description:    %s\n", entry.Description)
		fmt.Fprintf(out, "Provider:       %s\n", entry.Provider)
		fmt.Fprintf(out, "Route:          %s\n", dispatch.Resolve(args[0]))
		fmt.Fprintf(out, "Parameters:     %s\n", strings.Join(entry.SupportedParams, ", "))
		fmt.Fprintf(out, "Temperature:    [0, %g], default %g\n", entry.MaxTemperature, entry.DefaultTemperature)
		fmt.Fprintf(out, "Tokenizer:      %s\n", entry.Tokenizer)
		fmt.Fprintf(out, "Pricing ($/1K): %.5f input, %.5f output\n", entry.InputPer1K, entry.OutputPer1K)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelInfoCmd)
	rootCmd.AddCommand(modelsCmd)
}
