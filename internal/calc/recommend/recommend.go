package recommend

import (
	"Ampere/internal/calc/electrical"
)

// WireRecommendation proposes a larger conductor for a circuit whose
// voltage drop is above the limit.
type WireRecommendation struct {
	CircuitID       string  `json:"circuitId"`
	Name            string  `json:"name"`
	WireSize        float64 `json:"wireSize"`        // mm², as calculated
	VoltageDrop     float64 `json:"voltageDrop"`     // %, as calculated
	RecommendedSize float64 `json:"recommendedSize"` // mm²
	RecommendedDrop float64 `json:"recommendedDrop"` // %
	// MaxLength is the longest one-way run the calculated wire allows
	// within the limit.
	MaxLength float64 `json:"maxLength"` // m
	// Feasible is false when even the largest standard size exceeds the limit.
	Feasible bool `json:"feasible"`
}

// WireSizes returns a recommendation for every circuit of res whose voltage
// drop exceeds electrical.VoltageDropLimit, in circuit order. p must be the
// project res was calculated from.
func WireSizes(p electrical.Project, res electrical.CalculationResults) []WireRecommendation {
	cable := p.WiringInfo.CableType
	if cable == "" {
		cable = electrical.CableCopper
	}
	rho, ok := electrical.Resistivity[cable]
	voltage := res.ProjectInfo.Voltage
	out := []WireRecommendation{}
	if !ok || voltage <= 0 {
		return out
	}

	for _, c := range res.CircuitResults {
		if c.VoltageDrop <= electrical.VoltageDropLimit {
			continue
		}
		// drop = 2·L·I·ρ / (V·S) · 100, solved for S and for L.
		k := 2 * c.CableLength * c.Current * rho * 100 / voltage
		rec := WireRecommendation{
			CircuitID:   c.ID,
			Name:        c.Name,
			WireSize:    c.WireSize,
			VoltageDrop: c.VoltageDrop,
			MaxLength:   electrical.VoltageDropLimit * voltage * c.WireSize / (2 * c.Current * rho * 100),
		}
		sizes := electrical.StandardWireSizes
		rec.RecommendedSize = sizes[len(sizes)-1]
		for _, s := range sizes {
			if s > c.WireSize && k/s <= electrical.VoltageDropLimit {
				rec.RecommendedSize = s
				rec.Feasible = true
				break
			}
		}
		rec.RecommendedDrop = k / rec.RecommendedSize
		out = append(out, rec)
	}
	return out
}
