package electrical

import (
	"errors"
	"math"
	"sort"
)

var (
	ErrInvalidVoltage   = errors.New("voltage must be a positive finite number")
	ErrUnknownCableType = errors.New("unknown cable type")
)

// Calculate sizes every circuit of the project and the main feeder.
// Circuits keep their input order. Besides a non-positive voltage or an
// unknown cable material, no input is rejected: degenerate values give
// degenerate but finite results.
func Calculate(p Project) (CalculationResults, error) {
	voltage := p.ProjectInfo.Voltage
	if voltage <= 0 || math.IsNaN(voltage) || math.IsInf(voltage, 0) {
		return CalculationResults{}, ErrInvalidVoltage
	}
	cable := p.WiringInfo.CableType
	if cable == "" {
		cable = CableCopper
	}
	resistivity, ok := Resistivity[cable]
	if !ok {
		return CalculationResults{}, ErrUnknownCableType
	}
	density := CurrentDensity[cable]

	warnings := make([]AppWarning, 0)
	results := make([]CircuitResult, 0, len(p.Circuits))
	totalLoadW := 0.0
	totalApparentVA := 0.0

	for _, c := range p.Circuits {
		current := 0.0
		if c.Power > 0 && c.PowerFactor > 0 {
			current = c.Power / (voltage * c.PowerFactor)
		}

		breaker := nextStandardSize(current*BreakerMargin, StandardBreakerSizes)

		requiredWire := 0.0
		if current > 0 {
			requiredWire = current / density
		}
		wire := nextStandardSize(requiredWire, StandardWireSizes)

		drop := 0.0
		if wire > 0 {
			drop = (2 * c.CableLength * current * resistivity) / (voltage * wire) * 100
		}

		if drop > VoltageDropLimit {
			warnings = append(warnings, AppWarning{
				Key:    WarningVoltageDrop,
				Params: map[string]any{"name": c.Name, "value": drop, "limit": VoltageDropLimit},
			})
		}
		if breaker < current {
			warnings = append(warnings, AppWarning{
				Key:    WarningBreakerSize,
				Params: map[string]any{"name": c.Name, "breaker": breaker, "current": current},
			})
		}

		totalLoadW += c.Power
		pf := c.PowerFactor
		if pf == 0 || math.IsNaN(pf) {
			pf = DefaultPowerFactor
		}
		totalApparentVA += c.Power / pf

		results = append(results, CircuitResult{
			Circuit:     c,
			Current:     current,
			BreakerSize: breaker,
			WireSize:    wire,
			VoltageDrop: drop,
		})
	}

	demandedVA := totalApparentVA * p.PanelInfo.DemandFactor
	totalCurrent := demandedVA / voltage

	return CalculationResults{
		ProjectInfo:        p.ProjectInfo,
		TotalLoadKW:        (totalLoadW / 1000) * p.PanelInfo.DemandFactor * p.Specifications.SafetyFactor,
		TotalCurrent:       totalCurrent,
		MainBreakerSize:    nextStandardSize(totalCurrent*BreakerMargin, StandardBreakerSizes),
		MainFeederWireSize: nextStandardSize(totalCurrent/density, StandardWireSizes),
		CircuitResults:     results,
		Warnings:           warnings,
		Quantities:         BuildMaterialQuantities(results),
	}, nil
}

// BuildMaterialQuantities counts breakers and sums cable length per size,
// both ascending by size. Lengths are summed in sorted order so the totals
// do not depend on circuit order.
func BuildMaterialQuantities(results []CircuitResult) MaterialQuantities {
	breakerCounts := make(map[float64]int)
	runs := make(map[float64][]float64)
	for _, r := range results {
		if r.BreakerSize > 0 {
			breakerCounts[r.BreakerSize]++
		}
		if r.WireSize > 0 {
			runs[r.WireSize] = append(runs[r.WireSize], r.CableLength)
		}
	}
	cableLengths := make(map[float64]float64, len(runs))
	for size, lengths := range runs {
		sort.Float64s(lengths)
		total := 0.0
		for _, l := range lengths {
			total += l
		}
		cableLengths[size] = total
	}

	breakers := make([]BreakerQuantity, 0, len(breakerCounts))
	for size, count := range breakerCounts {
		breakers = append(breakers, BreakerQuantity{Size: size, Count: count})
	}
	sort.Slice(breakers, func(i, j int) bool { return breakers[i].Size < breakers[j].Size })

	cables := make([]CableQuantity, 0, len(cableLengths))
	for size, length := range cableLengths {
		cables = append(cables, CableQuantity{Size: size, Length: length})
	}
	sort.Slice(cables, func(i, j int) bool { return cables[i].Size < cables[j].Size })

	return MaterialQuantities{
		CableLengthsBySize: cables,
		Breakers:           breakers,
		Panels:             PanelCount,
	}
}

// nextStandardSize returns the smallest size >= value, or the largest size
// when value exceeds the table.
func nextStandardSize(value float64, sizes []float64) float64 {
	for _, s := range sizes {
		if s >= value {
			return s
		}
	}
	return sizes[len(sizes)-1]
}
