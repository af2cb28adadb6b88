package electrical

// Simplified single-temperature constants. Real installations need the full
// IEC/NEC derating tables.

// Resistivity in Ω·mm²/m at ~70°C operating temperature.
var Resistivity = map[CableType]float64{
	CableCopper:   0.021,
	CableAluminum: 0.034,
}

// CurrentDensity in A/mm² used for conductor sizing.
var CurrentDensity = map[CableType]float64{
	CableCopper:   6,
	CableAluminum: 4,
}

// Ascending, non-empty.
var StandardBreakerSizes = []float64{10, 16, 20, 25, 32, 40, 50, 63, 80, 100, 125, 160, 200, 250, 320, 400}

// Ascending, non-empty. mm².
var StandardWireSizes = []float64{1.5, 2.5, 4, 6, 10, 16, 25, 35, 50, 70, 95, 120, 150, 185, 240}

var SupportedVoltages = []float64{220, 380}

const (
	VoltageDropLimit = 3.0 // %
	BreakerMargin    = 1.25
	// DefaultPowerFactor replaces a missing power factor in the aggregate
	// apparent power sum only.
	DefaultPowerFactor = 0.9
	Frequency          = 50.0
	PanelCount         = 1
)

const (
	WarningVoltageDrop = "warningVoltageDrop"
	WarningBreakerSize = "warningBreakerSize"
)
