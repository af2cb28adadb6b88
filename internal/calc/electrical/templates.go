package electrical

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

type TemplateKey string

const (
	TemplateLighting       TemplateKey = "LIGHTING"
	TemplateGeneralSockets TemplateKey = "GENERAL_SOCKETS"
	TemplateAC             TemplateKey = "AC_1_5_TON"
	TemplateWaterHeater    TemplateKey = "WATER_HEATER"
	TemplateCustom         TemplateKey = "CUSTOM"
)

type Template struct {
	Key         TemplateKey `json:"key"`
	Label       string      `json:"label"`
	Type        CircuitType `json:"type"`
	Power       float64     `json:"power"`
	PowerFactor float64     `json:"powerFactor"`
	CableLength float64     `json:"cableLength"`
}

// Templates in the order they are offered to the user.
var Templates = []Template{
	{Key: TemplateLighting, Label: "Lighting", Type: CircuitLighting, Power: 800, PowerFactor: 0.9, CableLength: 20},
	{Key: TemplateGeneralSockets, Label: "General Sockets", Type: CircuitSockets, Power: 2000, PowerFactor: 0.85, CableLength: 25},
	{Key: TemplateAC, Label: "Air Conditioner 1.5 Ton", Type: CircuitAC, Power: 2200, PowerFactor: 0.8, CableLength: 15},
	{Key: TemplateWaterHeater, Label: "Water Heater", Type: CircuitHeavyDuty, Power: 3000, PowerFactor: 1.0, CableLength: 10},
	{Key: TemplateCustom, Label: "Custom Circuit", Type: CircuitCustom, Power: 0, PowerFactor: 0.9, CableLength: 10},
}

func LookupTemplate(key TemplateKey) (Template, bool) {
	i := slices.IndexFunc(Templates, func(t Template) bool { return t.Key == key })
	if i < 0 {
		return Template{}, false
	}
	return Templates[i], true
}

// NewCircuit builds a circuit from a template. Circuits of a typed template
// are numbered after the ones of the same type already in existing.
func NewCircuit(key TemplateKey, existing []Circuit) (Circuit, error) {
	t, ok := LookupTemplate(key)
	if !ok {
		return Circuit{}, fmt.Errorf("unknown circuit template %q", key)
	}
	count := 0
	if t.Type != CircuitCustom {
		for _, c := range existing {
			if c.Type == t.Type {
				count++
			}
		}
	}
	name := t.Label
	if count > 0 {
		name = fmt.Sprintf("%s %d", t.Label, count+1)
	}
	return Circuit{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        t.Type,
		Power:       t.Power,
		PowerFactor: t.PowerFactor,
		CableLength: t.CableLength,
	}, nil
}

// AddCircuit appends a templated circuit and returns it.
func (p *Project) AddCircuit(key TemplateKey) (Circuit, error) {
	c, err := NewCircuit(key, p.Circuits)
	if err != nil {
		return Circuit{}, err
	}
	p.Circuits = append(p.Circuits, c)
	return c, nil
}

// RemoveCircuit drops the circuit with the given id and reports whether it
// was present.
func (p *Project) RemoveCircuit(id string) bool {
	n := len(p.Circuits)
	p.Circuits = slices.DeleteFunc(p.Circuits, func(c Circuit) bool { return c.ID == id })
	return len(p.Circuits) != n
}

// DefaultProject is the starting point of a new project.
func DefaultProject() Project {
	return Project{
		ProjectInfo: ProjectInfo{
			BuildingType: BuildingResidential,
			Voltage:      220,
			Frequency:    Frequency,
		},
		Circuits: []Circuit{},
		WiringInfo: WiringInfo{
			CableType:          CableCopper,
			InstallationMethod: InstallPipe,
			AmbientTemp:        40,
		},
		PanelInfo:      PanelInfo{DemandFactor: 0.8},
		Specifications: Specifications{SafetyFactor: 1.25, MaxLoadPercentage: 80},
	}
}

// ApplyDefaults fills zero-valued settings from DefaultProject and gives
// circuits without an id a fresh one. Values already set are kept.
func ApplyDefaults(p Project) Project {
	d := DefaultProject()
	if p.ProjectInfo.BuildingType == "" {
		p.ProjectInfo.BuildingType = d.ProjectInfo.BuildingType
	}
	if p.ProjectInfo.Voltage == 0 {
		p.ProjectInfo.Voltage = d.ProjectInfo.Voltage
	}
	if p.ProjectInfo.Frequency == 0 {
		p.ProjectInfo.Frequency = d.ProjectInfo.Frequency
	}
	if p.WiringInfo.CableType == "" {
		p.WiringInfo.CableType = d.WiringInfo.CableType
	}
	if p.WiringInfo.InstallationMethod == "" {
		p.WiringInfo.InstallationMethod = d.WiringInfo.InstallationMethod
	}
	if p.PanelInfo.DemandFactor <= 0 {
		p.PanelInfo.DemandFactor = d.PanelInfo.DemandFactor
	}
	if p.Specifications.SafetyFactor <= 0 {
		p.Specifications.SafetyFactor = d.Specifications.SafetyFactor
	}
	if p.Specifications.MaxLoadPercentage <= 0 {
		p.Specifications.MaxLoadPercentage = d.Specifications.MaxLoadPercentage
	}
	p.Circuits = slices.Clone(p.Circuits)
	if p.Circuits == nil {
		p.Circuits = []Circuit{}
	}
	for i := range p.Circuits {
		if p.Circuits[i].ID == "" {
			p.Circuits[i].ID = uuid.NewString()
		}
	}
	return p
}
