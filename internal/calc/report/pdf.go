package report

import (
	"fmt"
	"io"
	"time"

	"Ampere/internal/calc/electrical"

	"github.com/phpdave11/gofpdf"
)

type Meta struct {
	Title  string
	Author string
	Notes  string
	Date   time.Time
}

var engineeringNotes = []string{
	"Calculations use simplified single-phase formulas and a single operating temperature.",
	"Breakers are sized at 125% of the calculated circuit current.",
	"Voltage drop assumes the round-trip conductor length and a 3% limit.",
	"Installation method and ambient temperature are not derated in this version.",
}

const disclaimer = "Results are estimates for preliminary design. A licensed electrical engineer must review them against the applicable code before installation."

// WritePDF renders the calculation report as an A4 PDF. The core PDF fonts
// are Latin-1 only, so the report is always English.
func WritePDF(w io.Writer, res electrical.CalculationResults, meta Meta) error {
	if meta.Title == "" {
		meta.Title = "Electrical Load Calculation Report"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(meta.Title), false)
	pdf.SetAuthor(tr(meta.Author), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	info := res.ProjectInfo
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", info.ProjectName)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Building type: %s | Voltage: %.0f V | Frequency: %.0f Hz", info.BuildingType, info.Voltage, info.Frequency)))
	pdf.Ln(6)
	if meta.Author != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	section(pdf, "Summary")
	summary := [][2]string{
		{"Total load", fmt.Sprintf("%.2f kW", res.TotalLoadKW)},
		{"Total current", fmt.Sprintf("%.2f A", res.TotalCurrent)},
		{"Main breaker", fmt.Sprintf("%g A", res.MainBreakerSize)},
		{"Main feeder cable", fmt.Sprintf("%g mm²", res.MainFeederWireSize)},
	}
	for _, row := range summary {
		pdf.CellFormat(60, 7, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, tr(row[1]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	if len(res.Warnings) > 0 {
		section(pdf, "Warnings")
		pdf.SetTextColor(160, 90, 0)
		for _, warn := range res.Warnings {
			pdf.MultiCell(0, 6, tr("- "+LocalizeWarning(LangEnglish, warn)), "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	section(pdf, "Circuits")
	headers := []string{"Name", "Type", "Power (W)", "Current (A)", "Breaker (A)", "Wire (mm²)", "Drop (%)"}
	widths := []float64{40, 24, 24, 24, 22, 22, 22}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 235, 240)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, c := range res.CircuitResults {
		cells := []string{
			c.Name,
			circuitTypeLabel(c.Type),
			fmt.Sprintf("%.0f", c.Power),
			fmt.Sprintf("%.2f", c.Current),
			fmt.Sprintf("%g", c.BreakerSize),
			fmt.Sprintf("%g", c.WireSize),
			fmt.Sprintf("%.2f", c.VoltageDrop),
		}
		for i, v := range cells {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, tr(v), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	section(pdf, "Bill of materials")
	for _, b := range res.Quantities.Breakers {
		pdf.Cell(0, 6, fmt.Sprintf("Breaker %g A: %d pcs", b.Size, b.Count))
		pdf.Ln(6)
	}
	for _, c := range res.Quantities.CableLengthsBySize {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Cable %g mm²: %.0f m", c.Size, c.Length)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Distribution panels: %d", res.Quantities.Panels))
	pdf.Ln(10)

	section(pdf, "Notes")
	for _, n := range engineeringNotes {
		pdf.MultiCell(0, 6, tr("- "+n), "", "L", false)
	}
	if meta.Notes != "" {
		pdf.MultiCell(0, 6, tr(meta.Notes), "", "L", false)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr(disclaimer), "", "L", false)

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
}

func circuitTypeLabel(t electrical.CircuitType) string {
	switch t {
	case electrical.CircuitLighting:
		return "Lighting"
	case electrical.CircuitSockets:
		return "Sockets"
	case electrical.CircuitAC:
		return "A/C"
	case electrical.CircuitHeavyDuty:
		return "Heavy duty"
	default:
		return "Other"
	}
}
