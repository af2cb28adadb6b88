package electrical

import (
	"fmt"
	"slices"
	"strings"
)

const (
	ErrorProjectName   = "errorProjectName"
	ErrorMinOneCircuit = "errorMinOneCircuit"
	ErrorCircuitName   = "errorCircuitName"
	ErrorCircuitPower  = "errorCircuitPower"
	ErrorVoltage       = "errorVoltage"
	ErrorCableType     = "errorCableType"
)

// ValidationError lists every problem found in a project, in form order.
type ValidationError struct {
	Issues []AppWarning `json:"issues"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		keys = append(keys, is.Key)
	}
	return "invalid project: " + strings.Join(keys, ", ")
}

// Validate applies the submission rules a project must pass before it is
// worth calculating. It returns nil or a *ValidationError.
func Validate(p Project) error {
	var issues []AppWarning
	add := func(key string, params map[string]any) {
		if params == nil {
			params = map[string]any{}
		}
		issues = append(issues, AppWarning{Key: key, Params: params})
	}

	if strings.TrimSpace(p.ProjectInfo.ProjectName) == "" {
		add(ErrorProjectName, nil)
	}
	if !slices.Contains(SupportedVoltages, p.ProjectInfo.Voltage) {
		add(ErrorVoltage, map[string]any{"voltage": p.ProjectInfo.Voltage})
	}
	if p.WiringInfo.CableType != "" {
		if _, ok := Resistivity[p.WiringInfo.CableType]; !ok {
			add(ErrorCableType, map[string]any{"cableType": string(p.WiringInfo.CableType)})
		}
	}
	if len(p.Circuits) == 0 {
		add(ErrorMinOneCircuit, nil)
	}
	for i, c := range p.Circuits {
		if strings.TrimSpace(c.Name) == "" {
			add(ErrorCircuitName, map[string]any{"number": i + 1})
		}
		if c.Power <= 0 {
			name := c.Name
			if name == "" {
				name = fmt.Sprintf("Circuit %d", i+1)
			}
			add(ErrorCircuitPower, map[string]any{"name": name})
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}
