package electrical

type BuildingType string

const (
	BuildingResidential BuildingType = "residential"
	BuildingCommercial  BuildingType = "commercial"
	BuildingIndustrial  BuildingType = "industrial"
)

type CircuitType string

const (
	CircuitLighting  CircuitType = "lighting"
	CircuitSockets   CircuitType = "sockets"
	CircuitAC        CircuitType = "ac"
	CircuitHeavyDuty CircuitType = "heavy_duty"
	CircuitCustom    CircuitType = ""
)

type CableType string

const (
	CableCopper   CableType = "copper"
	CableAluminum CableType = "aluminum"
)

type InstallationMethod string

const (
	InstallPipe     InstallationMethod = "pipe"
	InstallDuct     InstallationMethod = "duct"
	InstallFreeWire InstallationMethod = "free_wire"
)

type ProjectInfo struct {
	ProjectName  string       `json:"projectName" yaml:"projectName"`
	BuildingType BuildingType `json:"buildingType" yaml:"buildingType"`
	Voltage      float64      `json:"voltage" yaml:"voltage"`     // V
	Frequency    float64      `json:"frequency" yaml:"frequency"` // Hz, carried through
}

type Circuit struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Type        CircuitType `json:"type" yaml:"type"`
	Power       float64     `json:"power" yaml:"power"` // W
	PowerFactor float64     `json:"powerFactor" yaml:"powerFactor"`
	CableLength float64     `json:"cableLength" yaml:"cableLength"` // m, one way
}

type WiringInfo struct {
	CableType          CableType          `json:"cableType" yaml:"cableType"`
	InstallationMethod InstallationMethod `json:"installationMethod" yaml:"installationMethod"`
	AmbientTemp        float64            `json:"ambientTemp" yaml:"ambientTemp"` // °C, carried through
}

type PanelInfo struct {
	DemandFactor float64 `json:"demandFactor" yaml:"demandFactor"`
}

// Specifications.MaxLoadPercentage is informational only; breaker sizing
// always uses BreakerMargin.
type Specifications struct {
	SafetyFactor      float64 `json:"safetyFactor" yaml:"safetyFactor"`
	MaxLoadPercentage float64 `json:"maxLoadPercentage" yaml:"maxLoadPercentage"`
}

// Project is the complete input of one calculation run.
type Project struct {
	ProjectInfo    ProjectInfo    `json:"projectInfo" yaml:"projectInfo"`
	Circuits       []Circuit      `json:"circuits" yaml:"circuits"`
	WiringInfo     WiringInfo     `json:"wiringInfo" yaml:"wiringInfo"`
	PanelInfo      PanelInfo      `json:"panelInfo" yaml:"panelInfo"`
	Specifications Specifications `json:"specifications" yaml:"specifications"`
}

type CircuitResult struct {
	Circuit
	Current     float64 `json:"current"`     // A
	BreakerSize float64 `json:"breakerSize"` // A
	WireSize    float64 `json:"wireSize"`    // mm²
	VoltageDrop float64 `json:"voltageDrop"` // %
}

type BreakerQuantity struct {
	Size  float64 `json:"size"`
	Count int     `json:"count"`
}

type CableQuantity struct {
	Size   float64 `json:"size"`
	Length float64 `json:"length"`
}

// MaterialQuantities is the bill of materials of one calculation.
type MaterialQuantities struct {
	CableLengthsBySize []CableQuantity   `json:"cableLengthsBySize"`
	Breakers           []BreakerQuantity `json:"breakers"`
	Panels             int               `json:"panels"`
}

// AppWarning is a message key plus its substitution parameters. Rendering
// into text is left to the report layer.
type AppWarning struct {
	Key    string         `json:"key"`
	Params map[string]any `json:"params"`
}

type CalculationResults struct {
	ProjectInfo        ProjectInfo        `json:"projectInfo"`
	TotalLoadKW        float64            `json:"totalLoadKW"`
	TotalCurrent       float64            `json:"totalCurrent"`
	MainBreakerSize    float64            `json:"mainBreakerSize"`
	MainFeederWireSize float64            `json:"mainFeederWireSize"`
	CircuitResults     []CircuitResult    `json:"circuitResults"`
	Warnings           []AppWarning       `json:"warnings"`
	Quantities         MaterialQuantities `json:"quantities"`
}
