package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

const (
	sheetSummary = "Summary"
	sheetItems   = "Items"
	sheetAgentic = "Agentic"
)

var (
	itemsHeader = []any{
		"Category", "Item", "O*NET ID", "Importance", "Exposure", "Exposure Label",
		"Time Saved Low %", "Time Saved High %", "Ceiling", "Ceiling Cap %",
		"Total Discount %", "Rationale",
	}
	agenticHeader = []any{
		"Item", "Category", "Mode", "Maturity", "Stakes", "Knowledge Work",
		"Raw Agentic %", "Bonus pp", "Exception %", "Takeover %", "Adjusted %",
		"Final Low %", "Final High %", "Ceiling", "Ceiling Cap %",
		"Cognitive Displacement %", "Rationale",
	}
)

// writeWorkbook exports the report as an XLSX workbook with one sheet each for
// the overview, the scored items and the agentic scores.
func writeWorkbook(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeSummarySheet(f, report, bold); err != nil {
		return err
	}
	if err := writeItemsSheet(f, report, bold); err != nil {
		return err
	}
	if err := writeAgenticSheet(f, report, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, report *domain.Report, headerStyle int) error {
	alert := report.Alert
	rows := [][]any{
		{"SOC Code", alert.SOCCode},
		{"Occupation", alert.OccupationTitle},
		{"Evaluated", alert.EvaluatedAt.Format("2006-01-02")},
		{"Report ID", report.ID},
		{"Time Saved Low %", alert.OverallTimeSavedLowPct},
		{"Time Saved High %", alert.OverallTimeSavedHighPct},
		{"Risk Level", alert.OverallAutomationRiskLabel},
		{"Dominant Vectors", joinLevels(alert.DominantExposureVectors)},
		{"Methodology", alert.MethodologyVersion},
		{},
		{"Category", "Items", "Avg Low %", "Avg High %", "Weight", "Dominant Vectors"},
	}
	categoryHeaderRow := len(rows)
	for _, cs := range alert.CategorySummaries {
		rows = append(rows, []any{
			cs.Category.Label(), cs.ItemCount, cs.AvgTimeSavedLowPct, cs.AvgTimeSavedHighPct,
			domain.CategoryWeight(cs.Category), joinLevels(cs.DominantExposureVectors),
		})
	}

	if err := setRows(f, sheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetSummary, "A1", fmt.Sprintf("A%d", categoryHeaderRow-2), headerStyle); err != nil {
		return fmt.Errorf("style summary labels: %w", err)
	}
	if err := f.SetRowStyle(sheetSummary, categoryHeaderRow, categoryHeaderRow, headerStyle); err != nil {
		return fmt.Errorf("style category header: %w", err)
	}
	return f.SetColWidth(sheetSummary, "A", "A", 22)
}

func writeItemsSheet(f *excelize.File, report *domain.Report, headerStyle int) error {
	if _, err := f.NewSheet(sheetItems); err != nil {
		return fmt.Errorf("create items sheet: %w", err)
	}
	rows := [][]any{itemsHeader}
	for _, item := range report.Alert.Items() {
		var importance any
		if item.Importance != nil {
			importance = *item.Importance
		}
		rows = append(rows, []any{
			item.Category.Label(), item.ItemName, item.OnetElementID, importance,
			joinLevels(item.ExposureLevels), item.ExposureLabel,
			item.TimeSavedLowPct, item.TimeSavedHighPct,
			string(item.CeilingCategory), item.CeilingCapPct,
			item.TotalDiscountPct, item.Rationale,
		})
	}
	if err := setRows(f, sheetItems, rows); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheetItems, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style items header: %w", err)
	}
	return f.SetColWidth(sheetItems, "B", "B", 48)
}

func writeAgenticSheet(f *excelize.File, report *domain.Report, headerStyle int) error {
	if _, err := f.NewSheet(sheetAgentic); err != nil {
		return fmt.Errorf("create agentic sheet: %w", err)
	}
	rows := [][]any{agenticHeader}
	for _, ag := range agenticInOrder(report) {
		rows = append(rows, []any{
			ag.ItemName, ag.Category.Label(), int(ag.RecommendedMode), int(ag.CurrentMaturity),
			string(ag.StakesLevel), string(ag.KnowledgeWorkType),
			ag.RawAgenticTimeSavedPct, ag.WorkflowCompoundingBonusPct,
			ag.ExceptionRatePct, ag.TakeoverCostPct, ag.AdjustedAgenticTimeSavedPct,
			ag.FinalTimeSavedLowPct, ag.FinalTimeSavedHighPct,
			string(ag.AgenticCeiling), ag.CeilingCapPct,
			ag.CognitiveDisplacementPct, strings.TrimSpace(ag.AgenticRationale),
		})
	}
	if err := setRows(f, sheetAgentic, rows); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheetAgentic, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style agentic header: %w", err)
	}
	return f.SetColWidth(sheetAgentic, "A", "A", 48)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
