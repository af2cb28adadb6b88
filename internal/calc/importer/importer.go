package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"Ampere/internal/calc/electrical"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Defaults of the custom circuit template, used when a row leaves the
// column empty.
const (
	defaultPowerFactor = 0.9
	defaultCableLength = 10
)

// CircuitSheet is read when present, otherwise the first sheet.
const CircuitSheet = "Circuits"

// ParseCircuits reads circuits from an xlsx workbook. Expected columns after
// a header row: name, type, power_w, power_factor, cable_length_m. Rows
// without a name or a numeric power are skipped.
func ParseCircuits(r io.Reader) ([]electrical.Circuit, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := CircuitSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("empty sheet")
	}

	var circuits []electrical.Circuit
	for i := 1; i < len(rows); i++ {
		c, err := parseCircuitRow(rows[i])
		if err != nil {
			continue
		}
		circuits = append(circuits, c)
	}
	return circuits, nil
}

func parseCircuitRow(row []string) (electrical.Circuit, error) {
	if len(row) < 3 {
		return electrical.Circuit{}, fmt.Errorf("bad row")
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return electrical.Circuit{}, fmt.Errorf("missing name")
	}
	power, err := toFloat(row[2])
	if err != nil {
		return electrical.Circuit{}, err
	}
	pf := defaultPowerFactor
	if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
		if v, err := toFloat(row[3]); err == nil {
			pf = v
		}
	}
	length := float64(defaultCableLength)
	if len(row) > 4 && strings.TrimSpace(row[4]) != "" {
		if v, err := toFloat(row[4]); err == nil {
			length = v
		}
	}
	return electrical.Circuit{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        electrical.CircuitType(strings.ToLower(strings.TrimSpace(row[1]))),
		Power:       power,
		PowerFactor: pf,
		CableLength: length,
	}, nil
}

func toFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}
