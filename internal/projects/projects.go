package projects

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"Ampere/internal/auth"
	"Ampere/internal/calc/electrical"
	"Ampere/internal/calc/report"
	"Ampere/internal/repo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Handler serves the saved projects of the authenticated user.
type Handler struct {
	Repo repo.ProjectStore
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, uuid.Nil, http.StatusCreated)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	h.save(w, r, id, http.StatusOK)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input electrical.Project
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	input, err := electrical.Prepare(input)
	if err != nil {
		electrical.WriteError(w, err)
		return
	}
	res, err := electrical.Calculate(input)
	if err != nil {
		electrical.WriteError(w, err)
		return
	}

	rec := &repo.ProjectRecord{
		ID:      id,
		UserID:  userID,
		Name:    strings.TrimSpace(input.ProjectInfo.ProjectName),
		Input:   input,
		Results: res,
	}
	if id == uuid.Nil {
		err = h.Repo.CreateProject(r.Context(), rec)
	} else {
		err = h.Repo.UpdateProject(r.Context(), rec)
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "Project not found", http.StatusNotFound)
			return
		}
		log.Printf("save project %s error: %v", id, err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, rec)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Repo.ListProjects(r.Context(), userID)
	if err != nil {
		log.Printf("ListProjects error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := projectID(w, r)
	if !ok {
		return
	}
	err := h.Repo.DeleteProject(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("DeleteProject error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PDF renders the stored results of a project.
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	meta := report.Meta{Title: rec.Name, Date: rec.UpdatedAt}
	if err := report.WritePDF(&buf, rec.Results, meta); err != nil {
		log.Printf("pdf report for project %s: %v", rec.ID, err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"project-%s.pdf\"", rec.ID))
	w.Write(buf.Bytes())
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*repo.ProjectRecord, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	id, ok := projectID(w, r)
	if !ok {
		return nil, false
	}
	rec, err := h.Repo.GetProject(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		log.Printf("GetProject error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return nil, false
	}
	return rec, true
}

func projectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid project id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
