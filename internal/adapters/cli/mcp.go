package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpadapter "github.com/BenLYNC/AI-Automation-Alert/internal/adapters/mcp"
)

func newMCPCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the scoring tools over MCP on stdio",
		Long: `Start an MCP (Model Context Protocol) server on stdin/stdout.

Tools: score_occupation, sample_report, list_categories.
Logs go to stderr so they never corrupt the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.NewService == nil {
				return fmt.Errorf("scoring service not configured")
			}
			cfg, err := opts.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			svc, release, err := opts.NewService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer release()

			srv := mcpadapter.NewServer(opts.Version, svc, svc)
			if err := mcpadapter.ServeStdio(srv); err != nil {
				return fmt.Errorf("running MCP server: %w", err)
			}
			return nil
		},
	}
}
