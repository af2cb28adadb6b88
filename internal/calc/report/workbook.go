package report

import (
	"fmt"

	"Ampere/internal/calc/electrical"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary   = "Summary"
	SheetCircuits  = "Circuits"
	SheetMaterials = "Materials"
	SheetWarnings  = "Warnings"
)

// CircuitHeader is the column layout of the Circuits sheet. The importer
// reads the first five columns back.
var CircuitHeader = []any{"Name", "Type", "Power (W)", "Power factor", "Cable length (m)", "Current (A)", "Breaker (A)", "Wire (mm²)", "Voltage drop (%)"}

// Workbook builds an xlsx export of the results with warning messages in
// lang. Sheet names and headers stay fixed so the importer can read the
// Circuits sheet back. The caller closes it.
func Workbook(res electrical.CalculationResults, lang string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetCircuits, SheetMaterials, SheetWarnings} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	info := res.ProjectInfo
	summary := [][]any{
		{"Project", info.ProjectName},
		{"Building type", string(info.BuildingType)},
		{"Voltage (V)", info.Voltage},
		{"Frequency (Hz)", info.Frequency},
		{"Total load (kW)", res.TotalLoadKW},
		{"Total current (A)", res.TotalCurrent},
		{"Main breaker (A)", res.MainBreakerSize},
		{"Main feeder (mm²)", res.MainFeederWireSize},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		f.Close()
		return nil, err
	}

	circuits := [][]any{CircuitHeader}
	for _, c := range res.CircuitResults {
		circuits = append(circuits, []any{
			c.Name, string(c.Type), c.Power, c.PowerFactor, c.CableLength,
			c.Current, c.BreakerSize, c.WireSize, c.VoltageDrop,
		})
	}
	if err := writeRows(f, SheetCircuits, circuits); err != nil {
		f.Close()
		return nil, err
	}

	materials := [][]any{{"Item", "Size", "Quantity", "Unit"}}
	for _, b := range res.Quantities.Breakers {
		materials = append(materials, []any{"Breaker", b.Size, b.Count, "pcs"})
	}
	for _, c := range res.Quantities.CableLengthsBySize {
		materials = append(materials, []any{"Cable", c.Size, c.Length, "m"})
	}
	materials = append(materials, []any{"Distribution panel", "", res.Quantities.Panels, "pcs"})
	if err := writeRows(f, SheetMaterials, materials); err != nil {
		f.Close()
		return nil, err
	}

	warnings := [][]any{{"Key", "Message"}}
	for _, w := range res.Warnings {
		warnings = append(warnings, []any{w.Key, LocalizeWarning(lang, w)})
	}
	if err := writeRows(f, SheetWarnings, warnings); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
