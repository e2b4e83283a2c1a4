// Package cli is the automation-alert command line.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BenLYNC/AI-Automation-Alert/internal/config"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
)

// Service is everything the commands need from the scoring core.
type Service interface {
	ports.OccupationScorer
	ports.SampleReporter
}

// ServiceFactory builds a Service for cfg. The returned func releases it.
type ServiceFactory func(ctx context.Context, cfg config.Config) (Service, func(), error)

type Options struct {
	Version    string
	LoadConfig func() (config.Config, error)
	NewService ServiceFactory
	Now        func() time.Time
}

// NewRootCmd assembles the command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	root := &cobra.Command{
		Use:   "automation-alert",
		Short: "AI automation exposure scoring for O*NET occupations",
		Long: `automation-alert scores how much of an occupation's work AI can take over.

It fetches the occupation's O*NET descriptors, asks a language model for
subtask-level exposure, applies ceilings and discounts, and reports
time-saved ranges per item, per category and for the occupation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newScoreCmd(opts),
		newDemoCmd(opts),
		newListCategoriesCmd(),
		newListModelsCmd(),
		newMCPCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

func newVersionCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "automation-alert %s\n", opts.Version)
		},
	}
}
