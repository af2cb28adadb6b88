package recommend

import (
	"encoding/json"
	"net/http"

	"Ampere/internal/calc/electrical"
)

type Handler struct{}

type Result struct {
	Results         electrical.CalculationResults `json:"results"`
	Recommendations []WireRecommendation          `json:"recommendations"`
}

func (h *Handler) Wire(w http.ResponseWriter, r *http.Request) {
	var input electrical.Project
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	p, err := electrical.Prepare(input)
	if err != nil {
		electrical.WriteError(w, err)
		return
	}
	res, err := electrical.Calculate(p)
	if err != nil {
		electrical.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Result{Results: res, Recommendations: WireSizes(p, res)})
}
