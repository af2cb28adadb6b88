package report

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"Ampere/internal/calc/electrical"
)

type Input struct {
	Project electrical.Project `json:"project"`
	Author  string             `json:"author"`
	Title   string             `json:"title"`
	Notes   string             `json:"notes"`
	// Lang selects the message language of the xlsx export. Accept-Language
	// is used when empty.
	Lang    string             `json:"lang"`
}

type Handler struct{}

func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	input, res, ok := decodeAndRun(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WritePDF(&buf, res, Meta{Title: input.Title, Author: input.Author, Notes: input.Notes}); err != nil {
		log.Printf("pdf report: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"electrical-report.pdf\"")
	w.Write(buf.Bytes())
}

func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	input, res, ok := decodeAndRun(w, r)
	if !ok {
		return
	}
	lang := input.Lang
	if lang == "" {
		lang = r.Header.Get("Accept-Language")
	}
	f, err := Workbook(res, NormalizeLang(lang))
	if err != nil {
		log.Printf("xlsx report: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("xlsx report: %v", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"electrical-report.xlsx\"")
	w.Write(buf.Bytes())
}

func decodeAndRun(w http.ResponseWriter, r *http.Request) (Input, electrical.CalculationResults, bool) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return input, electrical.CalculationResults{}, false
	}
	res, err := electrical.Run(input.Project)
	if err != nil {
		electrical.WriteError(w, err)
		return input, electrical.CalculationResults{}, false
	}
	return input, res, true
}
