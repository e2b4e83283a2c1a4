package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/usecase"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/llm"
)

func newListCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories",
		Short: "List O*NET categories and their composite weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := usecase.Taxonomy()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tLABEL\tWEIGHT\tSCORED")
			for _, c := range view.Categories {
				scored := "no"
				if c.Scorable {
					scored = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%s\n", c.Category, c.Label, c.Weight*100, scored)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "Exposure levels:")
			for _, level := range view.ExposureLevels {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", level.Code, level.Label)
			}
			return nil
		},
	}
}

func newListModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-models",
		Short: "List supported model providers and known models",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, provider := range llm.Providers() {
				fmt.Fprintf(out, "%s (default %s)\n", provider, llm.DefaultModels[provider])
				for _, model := range llm.AvailableModels[provider] {
					fmt.Fprintf(out, "  %s\n", model)
				}
			}
		},
	}
}

func sampleReport(opts Options) (*domain.Report, error) {
	return usecase.BuildSampleReport(opts.Now())
}

func providerList() string {
	return strings.Join(llm.Providers(), ", ")
}
