package batch

import (
	"encoding/json"
	"errors"
	"net/http"

	"Ampere/internal/calc/electrical"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input BatchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		var itemErr *ItemError
		if !errors.As(err, &itemErr) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var verr *electrical.ValidationError
		if errors.As(err, &verr) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(struct {
				Index  int                     `json:"index"`
				Issues []electrical.AppWarning `json:"issues"`
			}{itemErr.Index, verr.Issues})
			return
		}
		electrical.WriteError(w, itemErr.Err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
