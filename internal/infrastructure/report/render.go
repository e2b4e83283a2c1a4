package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatXLSX     Format = "xlsx"
)

var Formats = []Format{FormatMarkdown, FormatJSON, FormatXLSX}

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", domain.WrapError(domain.ErrInvalidInput, "parse report format",
			fmt.Errorf("unknown format %q (want markdown, json or xlsx)", raw))
	}
}

// ContentType is the media type served for each format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/markdown; charset=utf-8"
	}
}

func Render(w io.Writer, format Format, report *domain.Report) error {
	if report == nil {
		return domain.WrapError(domain.ErrInvalidInput, "render report", fmt.Errorf("report is nil"))
	}
	switch format {
	case FormatMarkdown, "":
		_, err := io.WriteString(w, Markdown(report))
		return err
	case FormatJSON:
		return writeJSON(w, report)
	case FormatXLSX:
		return writeWorkbook(w, report)
	default:
		return domain.WrapError(domain.ErrInvalidInput, "render report", fmt.Errorf("unknown format %q", format))
	}
}

func writeJSON(w io.Writer, report *domain.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report json: %w", err)
	}
	return nil
}

// agenticInOrder lists agentic scores in alert item order, then any
// scores without a base item by name.
func agenticInOrder(report *domain.Report) []domain.AgenticImpactScore {
	if len(report.Agentic) == 0 {
		return nil
	}
	out := make([]domain.AgenticImpactScore, 0, len(report.Agentic))
	seen := make(map[string]bool, len(report.Agentic))
	for _, item := range report.Alert.Items() {
		if score, ok := report.Agentic[item.ItemName]; ok && !seen[item.ItemName] {
			seen[item.ItemName] = true
			out = append(out, score)
		}
	}
	rest := make([]string, 0)
	for name := range report.Agentic {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, report.Agentic[name])
	}
	return out
}

// topAgentic returns up to n scores with the highest final high estimate.
func topAgentic(report *domain.Report, n int) []domain.AgenticImpactScore {
	scores := agenticInOrder(report)
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].FinalTimeSavedHighPct > scores[j].FinalTimeSavedHighPct
	})
	if len(scores) > n {
		scores = scores[:n]
	}
	return scores
}

func truncate(s string, n int) string {
	if clipped := clip(s, n); clipped != s {
		return clipped + "..."
	}
	return s
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
