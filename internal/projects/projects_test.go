package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Ampere/internal/auth"
	"Ampere/internal/repo"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type memStore struct {
	records map[uuid.UUID]repo.ProjectRecord
}

func newMemStore() *memStore {
	return &memStore{records: map[uuid.UUID]repo.ProjectRecord{}}
}

func (m *memStore) CreateProject(ctx context.Context, p *repo.ProjectRecord) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.records[p.ID] = *p
	return nil
}

func (m *memStore) UpdateProject(ctx context.Context, p *repo.ProjectRecord) error {
	old, ok := m.records[p.ID]
	if !ok || old.UserID != p.UserID {
		return repo.ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = time.Now()
	m.records[p.ID] = *p
	return nil
}

func (m *memStore) GetProject(ctx context.Context, userID int, id uuid.UUID) (*repo.ProjectRecord, error) {
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return nil, repo.ErrNotFound
	}
	return &rec, nil
}

func (m *memStore) ListProjects(ctx context.Context, userID int) ([]repo.ProjectSummary, error) {
	out := []repo.ProjectSummary{}
	for _, rec := range m.records {
		if rec.UserID == userID {
			out = append(out, rec.Summary())
		}
	}
	return out, nil
}

func (m *memStore) DeleteProject(ctx context.Context, userID int, id uuid.UUID) error {
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return repo.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

const projectBody = `{"projectInfo":{"projectName":"Flat 12","voltage":220},
	"circuits":[{"name":"AC","type":"ac","power":2200,"powerFactor":0.8,"cableLength":60}]}`

func newRouter(store repo.ProjectStore) *mux.Router {
	h := &Handler{Repo: store}
	r := mux.NewRouter()
	r.HandleFunc("/projects", h.Create).Methods("POST")
	r.HandleFunc("/projects", h.List).Methods("GET")
	r.HandleFunc("/projects/{id}", h.Get).Methods("GET")
	r.HandleFunc("/projects/{id}", h.Update).Methods("PUT")
	r.HandleFunc("/projects/{id}", h.Delete).Methods("DELETE")
	r.HandleFunc("/projects/{id}/pdf", h.PDF).Methods("GET")
	return r
}

func serve(r http.Handler, userID int, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(auth.WithSession(req.Context(), auth.Session{UserID: userID, Login: "user"}))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGet(t *testing.T) {
	store := newMemStore()
	r := newRouter(store)

	rec := serve(r, 1, "POST", "/projects", projectBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body)
	}
	var created repo.ProjectRecord
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == uuid.Nil || created.Name != "Flat 12" {
		t.Errorf("created = %+v", created)
	}
	if created.Results.MainBreakerSize != 16 || len(created.Results.Warnings) != 1 {
		t.Errorf("results = %+v", created.Results)
	}
	if created.Input.PanelInfo.DemandFactor != 0.8 {
		t.Errorf("stored input missing defaults: %+v", created.Input.PanelInfo)
	}

	rec = serve(r, 1, "GET", "/projects/"+created.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = serve(r, 1, "GET", "/projects", "")
	var list []repo.ProjectSummary
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 1 || list[0].WarningCount != 1 {
		t.Errorf("list = %+v", list)
	}
}

func TestOtherUsersProjectsHidden(t *testing.T) {
	store := newMemStore()
	r := newRouter(store)

	rec := serve(r, 1, "POST", "/projects", projectBody)
	var created repo.ProjectRecord
	json.NewDecoder(rec.Body).Decode(&created)
	path := "/projects/" + created.ID.String()

	for _, tc := range []struct{ method, path string }{
		{"GET", path},
		{"PUT", path},
		{"DELETE", path},
		{"GET", path + "/pdf"},
	} {
		if rec := serve(r, 2, tc.method, tc.path, projectBody); rec.Code != http.StatusNotFound {
			t.Errorf("%s %s as other user: status = %d, want 404", tc.method, tc.path, rec.Code)
		}
	}

	rec = serve(r, 2, "GET", "/projects", "")
	var list []repo.ProjectSummary
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list) != 0 {
		t.Errorf("other user sees %d projects", len(list))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	r := newRouter(newMemStore())
	rec := serve(r, 1, "POST", "/projects", projectBody)
	var created repo.ProjectRecord
	json.NewDecoder(rec.Body).Decode(&created)
	path := "/projects/" + created.ID.String()

	updated := strings.Replace(projectBody, `"cableLength":60`, `"cableLength":15`, 1)
	rec = serve(r, 1, "PUT", path, updated)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	var got repo.ProjectRecord
	json.NewDecoder(rec.Body).Decode(&got)
	if got.ID != created.ID || len(got.Results.Warnings) != 0 {
		t.Errorf("updated = %+v", got)
	}

	if rec := serve(r, 1, "DELETE", path, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := serve(r, 1, "GET", path, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d", rec.Code)
	}
}

func TestUpdateUnknownProject(t *testing.T) {
	store := newMemStore()
	r := newRouter(store)
	if rec := serve(r, 1, "PUT", "/projects/"+uuid.NewString(), projectBody); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if len(store.records) != 0 {
		t.Errorf("update of unknown id stored %d projects", len(store.records))
	}
}

func TestCreateRejectsInvalidProject(t *testing.T) {
	r := newRouter(newMemStore())
	rec := serve(r, 1, "POST", "/projects", `{"projectInfo":{"projectName":""},"circuits":[]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestPDF(t *testing.T) {
	r := newRouter(newMemStore())
	rec := serve(r, 1, "POST", "/projects", projectBody)
	var created repo.ProjectRecord
	json.NewDecoder(rec.Body).Decode(&created)

	rec = serve(r, 1, "GET", "/projects/"+created.ID.String()+"/pdf", "")
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("status = %d, content-type = %s", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestBadRequests(t *testing.T) {
	r := newRouter(newMemStore())
	if rec := serve(r, 1, "GET", "/projects/not-a-uuid", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rec.Code)
	}
	if rec := serve(r, 0, "GET", "/projects", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no session status = %d", rec.Code)
	}
}
