package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/report"
)

type scoreFlags struct {
	title        string
	provider     string
	model        string
	format       string
	output       string
	noAgentic    bool
	categories   []string
	previous     string
	changeReason string
}

func newScoreCmd(opts Options) *cobra.Command {
	var flags scoreFlags

	cmd := &cobra.Command{
		Use:   "score SOC_CODE",
		Short: "Score one occupation",
		Long: `Score one O*NET occupation, e.g. "automation-alert score 41-9022.00".

Pass --previous with an earlier JSON report to get per-item deltas.
The xlsx format needs --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.NewService == nil {
				return fmt.Errorf("scoring service not configured")
			}
			format, err := report.ParseFormat(flags.format)
			if err != nil {
				return err
			}
			if format == report.FormatXLSX && flags.output == "" {
				return fmt.Errorf("--output is required for xlsx")
			}

			cfg, err := opts.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if flags.provider != "" {
				cfg.LLMProvider = flags.provider
			}
			if flags.model != "" {
				cfg.LLMModel = flags.model
			}

			req := domain.ScoreRequest{
				SOCCode:        strings.TrimSpace(args[0]),
				Title:          strings.TrimSpace(flags.title),
				IncludeAgentic: !flags.noAgentic,
				ChangeReason:   flags.changeReason,
			}
			for _, raw := range flags.categories {
				if raw = strings.TrimSpace(raw); raw != "" {
					req.Categories = append(req.Categories, domain.OnetCategory(raw))
				}
			}
			if flags.previous != "" {
				previous, err := readPreviousAlert(flags.previous)
				if err != nil {
					return err
				}
				req.Previous = previous
			}

			svc, release, err := opts.NewService(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer release()

			rep, err := svc.ScoreOccupation(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeReport(cmd, format, flags.output, rep)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.title, "title", "", "occupation title (looked up on O*NET when empty)")
	f.StringVar(&flags.provider, "provider", "", "model provider ("+providerList()+")")
	f.StringVar(&flags.model, "model", "", "model name (provider default when empty)")
	f.StringVar(&flags.format, "format", string(report.FormatMarkdown), "report format: markdown, json or xlsx")
	f.StringVarP(&flags.output, "output", "o", "", "write the report to this file instead of stdout")
	f.BoolVar(&flags.noAgentic, "no-agentic", false, "skip the agentic workflow layer")
	f.StringSliceVar(&flags.categories, "categories", nil, "categories to score (default: all scorable)")
	f.StringVar(&flags.previous, "previous", "", "earlier JSON report to compare against")
	f.StringVar(&flags.changeReason, "change-reason", "", "why the occupation is being re-scored")
	return cmd
}

func newDemoCmd(opts Options) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the built-in sample report (no model or O*NET calls)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == report.FormatXLSX && output == "" {
				return fmt.Errorf("--output is required for xlsx")
			}
			rep, err := sampleReport(opts)
			if err != nil {
				return err
			}
			return writeReport(cmd, f, output, rep)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(report.FormatMarkdown), "report format: markdown, json or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to this file instead of stdout")
	return cmd
}

// readPreviousAlert accepts either a full report or a bare alert.
func readPreviousAlert(path string) (*domain.AutomationAlert, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read previous report: %w", err)
	}

	var rep domain.Report
	if err := json.Unmarshal(raw, &rep); err != nil {
		return nil, fmt.Errorf("decode previous report %s: %w", path, err)
	}
	if rep.Alert.SOCCode != "" {
		return &rep.Alert, nil
	}

	var alert domain.AutomationAlert
	if err := json.Unmarshal(raw, &alert); err != nil {
		return nil, fmt.Errorf("decode previous alert %s: %w", path, err)
	}
	if alert.SOCCode == "" {
		return nil, fmt.Errorf("previous report %s has no soc_code", path)
	}
	return &alert, nil
}

func writeReport(cmd *cobra.Command, format report.Format, output string, rep *domain.Report) error {
	var buf bytes.Buffer
	if err := report.Render(&buf, format, rep); err != nil {
		return err
	}
	if output == "" {
		_, err := io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", output)
	return nil
}
