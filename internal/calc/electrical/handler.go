package electrical

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Project
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Run(input)
	if err != nil {
		WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Templates []Template `json:"templates"`
		Defaults  Project    `json:"defaults"`
	}{Templates, DefaultProject()})
}

// Prepare fills defaults and validates a submitted project.
func Prepare(p Project) (Project, error) {
	p = ApplyDefaults(p)
	if err := Validate(p); err != nil {
		return p, err
	}
	return p, nil
}

// Run prepares and calculates a submitted project.
func Run(p Project) (CalculationResults, error) {
	p, err := Prepare(p)
	if err != nil {
		return CalculationResults{}, err
	}
	return Calculate(p)
}

// WriteError maps calculation and validation errors to HTTP responses.
func WriteError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(verr)
	case errors.Is(err, ErrInvalidVoltage), errors.Is(err, ErrUnknownCableType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("calculation error: %v", err)
		http.Error(w, "Calculation error", http.StatusInternalServerError)
	}
}
