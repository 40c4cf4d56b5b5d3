package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kanna-karuppasamy/campus-energy-dashboard/internal/models"
)

const (
	sheetDaily     = "Daily"
	sheetWeekly    = "Weekly"
	sheetBuildings = "Buildings"
)

// RenderWorkbook writes daily, weekly and per-building figures to an XLSX file
func RenderWorkbook(rep *models.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSeriesSheet(f, sheetDaily, "Date", rep.Daily); err != nil {
		return nil, fmt.Errorf("failed to create daily sheet: %w", err)
	}
	if err := writeSeriesSheet(f, sheetWeekly, "Week Ending", rep.Weekly); err != nil {
		return nil, fmt.Errorf("failed to create weekly sheet: %w", err)
	}
	if err := writeBuildingSheet(f, rep.Summary); err != nil {
		return nil, fmt.Errorf("failed to create buildings sheet: %w", err)
	}

	idx, err := f.GetSheetIndex(sheetDaily)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func writeSeriesSheet(f *excelize.File, sheet, periodHeader string, points []models.SeriesPoint) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeRow(f, sheet, 1, periodHeader, "kWh"); err != nil {
		return err
	}
	for i, pt := range points {
		if err := writeRow(f, sheet, i+2, pt.Period.Format(dateFormat), pt.KWh); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "B", 16)
}

func writeBuildingSheet(f *excelize.File, summary models.BuildingSummary) error {
	if _, err := f.NewSheet(sheetBuildings); err != nil {
		return err
	}
	if err := writeRow(f, sheetBuildings, 1, "Building", "Mean", "Min", "Max", "Sum", "Readings"); err != nil {
		return err
	}
	for i, s := range summary.Ordered() {
		if err := writeRow(f, sheetBuildings, i+2, s.Building, s.Mean, s.Min, s.Max, s.Sum, s.Count); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetBuildings, "A", "F", 16)
}
