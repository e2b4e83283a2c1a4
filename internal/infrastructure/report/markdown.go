package report

import (
	"fmt"
	"strings"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

const (
	rationaleWidth     = 120
	unitRationaleWidth = 80
	agenticNameWidth   = 50
	topAgenticItems    = 5
)

// Markdown renders the full human-readable report.
func Markdown(report *domain.Report) string {
	alert := report.Alert
	var b strings.Builder

	fmt.Fprintf(&b, "# %s — %s\n", alert.SOCCode, alert.OccupationTitle)
	fmt.Fprintf(&b, "**Automation Alert Profile** | Evaluated: %s\n\n", alert.EvaluatedAt.Format("2006-01-02"))

	b.WriteString("## Overall Automation Exposure\n\n")
	b.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| **Estimated Time Saved** | **%s** |\n", pctRange(alert.OverallTimeSavedLowPct, alert.OverallTimeSavedHighPct))
	fmt.Fprintf(&b, "| **Risk Level** | **%s** |\n", alert.OverallAutomationRiskLabel)
	dominant := make([]string, 0, len(alert.DominantExposureVectors))
	for _, level := range alert.DominantExposureVectors {
		dominant = append(dominant, fmt.Sprintf("%s (%s)", level, domain.ExposureLabels[level]))
	}
	fmt.Fprintf(&b, "| **Dominant Exposure Vectors** | %s |\n", strings.Join(dominant, ", "))
	fmt.Fprintf(&b, "| **Categories Scored** | %d |\n", len(alert.CategorySummaries))
	total := 0
	for _, cs := range alert.CategorySummaries {
		total += cs.ItemCount
	}
	fmt.Fprintf(&b, "| **Total Items Scored** | %d |\n\n", total)

	b.WriteString("## Category Summary\n\n")
	b.WriteString("| Category | Items | Avg Time Saved (%) | Dominant Vectors |\n")
	b.WriteString("|----------|-------|-------------------|-----------------|\n")
	for _, cs := range alert.CategorySummaries {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			cs.Category.Label(), cs.ItemCount,
			pctRange(cs.AvgTimeSavedLowPct, cs.AvgTimeSavedHighPct),
			joinLevels(cs.DominantExposureVectors))
	}
	b.WriteString("\n")

	for _, cs := range alert.CategorySummaries {
		writeCategoryDetail(&b, cs, report.Agentic)
	}

	if len(report.Agentic) > 0 {
		writeAgenticSummary(&b, report)
	}

	b.WriteString("## Exposure Level Legend\n\n")
	b.WriteString("| Code | Capability |\n|------|-----------|\n")
	for _, level := range domain.ExposureLevels {
		fmt.Fprintf(&b, "| %s | %s |\n", level, domain.ExposureLabels[level])
	}
	b.WriteString("\n")

	if len(alert.Deltas) > 0 {
		b.WriteString("## Score Changes Since Last Evaluation\n\n")
		b.WriteString("| Item | Category | Previous | Current | Delta | Reason |\n")
		b.WriteString("|------|----------|----------|---------|-------|--------|\n")
		for _, d := range alert.Deltas {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %+.0f/%+.0fpp | %s |\n",
				d.ItemName, d.Category,
				pctRange(d.PreviousTimeSavedLow, d.PreviousTimeSavedHigh),
				pctRange(d.CurrentTimeSavedLow, d.CurrentTimeSavedHigh),
				d.DeltaLow, d.DeltaHigh, d.ChangeReason)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "*Methodology v%s*\n\n", alert.MethodologyVersion)
	b.WriteString("*Base scoring: Subtask decomposition (6 buckets) → Weighted efficiency gains → " +
		"Reality discounts → Ceiling caps → Range generation*\n\n")
	b.WriteString("*Agentic scoring: Operating mode assignment → W1-W7 workflow decomposition → " +
		"Agentic suitability (AS 0-3) → Execution automation vs. oversight tax → " +
		"Compounding bonus → Exception/takeover discounts → Maturity-based range → " +
		"Agentic ceiling cap*")

	return b.String()
}

func writeCategoryDetail(b *strings.Builder, cs domain.CategorySummary, agentic map[string]domain.AgenticImpactScore) {
	fmt.Fprintf(b, "### %s\n\n", cs.Category.Label())

	withAgentic := false
	for _, item := range cs.Items {
		if _, ok := agentic[item.ItemName]; ok {
			withAgentic = true
			break
		}
	}

	if withAgentic {
		b.WriteString("| Item | Exposure | Est. Time Saved | Agent Mode | Maturity | Cognitive Displ. | Rationale |\n")
		b.WriteString("|------|----------|----------------|------------|----------|-----------------|-----------|\n")
	} else {
		b.WriteString("| Item | Exposure Level | Est. Time Saved (%) | Rationale |\n")
		b.WriteString("|------|---------------|-------------------|-----------|\n")
	}

	for _, item := range cs.Items {
		timeRange := pctRange(item.TimeSavedLowPct, item.TimeSavedHighPct)
		rationale := truncate(item.Rationale, rationaleWidth)
		if score, ok := agentic[item.ItemName]; ok && withAgentic {
			fmt.Fprintf(b, "| %s | %s | %s | Mode %d | L%d | %.0f%% | %s |\n",
				item.ItemName, item.ExposureLabel, timeRange,
				score.RecommendedMode, score.CurrentMaturity,
				score.CognitiveDisplacementPct, rationale)
			continue
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n", item.ItemName, item.ExposureLabel, timeRange, rationale)
	}
	b.WriteString("\n")
}

func writeAgenticSummary(b *strings.Builder, report *domain.Report) {
	b.WriteString("## Agentic Impact Analysis\n\n")
	b.WriteString("| Item | Mode | Maturity | Stakes | Raw Agentic % | Bonus | Exceptions | Final Agentic % | Ceiling |\n")
	b.WriteString("|------|------|----------|--------|--------------|-------|------------|----------------|---------|\n")
	for _, ag := range agenticInOrder(report) {
		fmt.Fprintf(b, "| %s | Mode %d | L%d | %s | %.0f%% | +%.0fpp | %.0f%%/%.0f%% | %s | %.0f%% |\n",
			truncate(ag.ItemName, agenticNameWidth), ag.RecommendedMode, ag.CurrentMaturity, ag.StakesLevel,
			ag.RawAgenticTimeSavedPct, ag.WorkflowCompoundingBonusPct,
			ag.ExceptionRatePct, ag.TakeoverCostPct,
			pctRange(ag.FinalTimeSavedLowPct, ag.FinalTimeSavedHighPct), ag.CeilingCapPct)
	}
	b.WriteString("\n")

	for _, ag := range topAgentic(report, topAgenticItems) {
		fmt.Fprintf(b, "#### %s\n", ag.ItemName)
		fmt.Fprintf(b, "**Operating Mode**: %s\n", domain.OperatingModeLabels[ag.RecommendedMode])
		fmt.Fprintf(b, "**Knowledge Work Type**: %s\n", ag.KnowledgeWorkType)
		fmt.Fprintf(b, "**Cognitive Displacement**: %.0f%%\n\n", ag.CognitiveDisplacementPct)
		b.WriteString("| Workflow Unit | Time Share | AS | EA | OT | Net Gain | Rationale |\n")
		b.WriteString("|--------------|-----------|----|----|----|---------:|-----------|\n")
		for _, ws := range ag.WorkflowScores {
			fmt.Fprintf(b, "| %s | %.0f%% | %d | %.0f%% | %.0f%% | %+.0f%% | %s |\n",
				unitLabel(ws.Unit), ws.TimeSharePct*100, ws.AgenticSuitability,
				ws.ExecutionAutomationPct*100, ws.OversightTaxPct*100, ws.NetGainPct*100,
				clip(ws.Rationale, unitRationaleWidth))
		}
		b.WriteString("\n")
		if ag.AdvancementNotes != "" {
			fmt.Fprintf(b, "**Advancement path**: %s\n", ag.AdvancementNotes)
		}
		if ag.NearTermProjection != "" {
			fmt.Fprintf(b, "**Near-term projection**: %s\n", ag.NearTermProjection)
		}
		b.WriteString("\n")
	}
}

// unitLabel drops the parenthesised examples: "W1: Intake & triage".
func unitLabel(unit domain.WorkflowUnit) string {
	label, ok := domain.WorkflowUnitLabels[unit]
	if !ok {
		return string(unit)
	}
	if i := strings.Index(label, "("); i >= 0 {
		label = label[:i]
	}
	return strings.TrimSpace(label)
}

func pctRange(low, high float64) string {
	return fmt.Sprintf("%.0f–%.0f%%", low, high)
}

func joinLevels(levels []domain.ExposureLevel) string {
	parts := make([]string, len(levels))
	for i, level := range levels {
		parts[i] = string(level)
	}
	return strings.Join(parts, ", ")
}
