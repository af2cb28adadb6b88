package importer

import (
	"encoding/json"
	"net/http"
	"strconv"

	"Ampere/internal/calc/electrical"
)

const maxUploadSize = 10 << 20

type Handler struct{}

type ImportResult struct {
	Count   int                           `json:"count"`
	Results electrical.CalculationResults `json:"results"`
}

// Circuits imports a circuit list from the multipart "file" field and
// calculates it. Project settings come from optional form fields.
func (h *Handler) Circuits(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	circuits, err := ParseCircuits(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}

	p := ProjectFromForm(r)
	p.Circuits = circuits
	res, err := electrical.Run(p)
	if err != nil {
		electrical.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ImportResult{Count: len(circuits), Results: res})
}

// ProjectFromForm reads project settings from form values. Missing or
// malformed numbers are left zero so defaults apply.
func ProjectFromForm(r *http.Request) electrical.Project {
	var p electrical.Project
	p.ProjectInfo.ProjectName = r.FormValue("projectName")
	p.ProjectInfo.BuildingType = electrical.BuildingType(r.FormValue("buildingType"))
	p.ProjectInfo.Voltage = formFloat(r, "voltage")
	p.WiringInfo.CableType = electrical.CableType(r.FormValue("cableType"))
	p.WiringInfo.InstallationMethod = electrical.InstallationMethod(r.FormValue("installationMethod"))
	p.WiringInfo.AmbientTemp = formFloat(r, "ambientTemp")
	p.PanelInfo.DemandFactor = formFloat(r, "demandFactor")
	p.Specifications.SafetyFactor = formFloat(r, "safetyFactor")
	p.Specifications.MaxLoadPercentage = formFloat(r, "maxLoadPercentage")
	return p
}

func formFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(r.FormValue(key), 64)
	if err != nil {
		return 0
	}
	return v
}
