// internal/export/xlsx.go
// Package export writes the derived report values to a spreadsheet.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mwiater/losdash/internal/metrics"
	"github.com/mwiater/losdash/internal/view"
	"github.com/xuri/excelize/v2"
)

// Sheet names in workbook order.
const (
	SummarySheet    = "Summary"
	BinsSheet       = "Bins"
	PredictorsSheet = "Predictors"
)

// Workbook builds the spreadsheet for r. Missing values are written as the
// view placeholder so a blank cell never reads as zero.
func Workbook(r metrics.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}

	head := view.Headline(r)
	summary := view.BinSummary(r)
	summaryRows := [][]any{
		{"Metric", "Value"},
		{"Model", head.ModelName},
		{"MAE (days)", head.MAEDays},
		{"RMSE (days)", head.RMSEDays},
		{"R²", head.R2},
		{"Binned accuracy", cellValue(summary.BinnedAccuracy)},
		{"Balanced accuracy", cellValue(summary.BalancedAccuracy)},
		{"Macro F1", cellValue(summary.MacroF1)},
		{"Macro recall", cellValue(view.MacroRecall(r))},
		{"Source", string(r.Source)},
	}
	if err := writeRows(f, SummarySheet, summaryRows); err != nil {
		return nil, err
	}

	binRows := [][]any{{"Bin", "Precision", "Recall", "F1", "MAE", "Median AE", "P90 AE"}}
	for _, bin := range metrics.Bins() {
		scores := view.ClassScores(r, bin)
		row := []any{bin, cellValue(scores.Precision), cellValue(scores.Recall), cellValue(scores.F1)}
		if es, ok := view.BinErrorStats(r, bin).Get(); ok {
			row = append(row, es.MAE, es.MedianAE, es.P90AE)
		} else {
			row = append(row, view.Placeholder, view.Placeholder, view.Placeholder)
		}
		binRows = append(binRows, row)
	}
	if err := addSheet(f, BinsSheet, binRows); err != nil {
		return nil, err
	}

	predictorRows := [][]any{{"Rank", "Feature", "Direction", "Effect"}}
	rank := 0
	for p := range view.TopPredictors(r) {
		rank++
		predictorRows = append(predictorRows, []any{rank, p.Feature, view.DirectionArrow(p.Direction), p.Effect})
	}
	if err := addSheet(f, PredictorsSheet, predictorRows); err != nil {
		return nil, err
	}

	return f, nil
}

// Write streams the workbook for r to w.
func Write(w io.Writer, r metrics.Report) error {
	f, err := Workbook(r)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	return f.Write(w)
}

// WriteFile saves the workbook for r at path, creating parent directories.
func WriteFile(path string, r metrics.Report) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}
	f, err := Workbook(r)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("unable to write workbook %s: %w", path, err)
	}
	return nil
}

func cellValue(v view.Optional[float64]) any {
	if x, ok := v.Get(); ok {
		return x
	}
	return view.Placeholder
}

func addSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
