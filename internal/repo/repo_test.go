package repo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"Ampere/internal/calc/electrical"

	"github.com/google/uuid"
)

// setupTestDB connects to TEST_DATABASE_URL and skips when it is unset.
func setupTestDB(t *testing.T) *PostgresRepository {
	t.Helper()
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := InitDB(connStr)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return NewPostgresDB(db)
}

func createTestUser(t *testing.T, r *PostgresRepository) int {
	t.Helper()
	login := fmt.Sprintf("user-%d", time.Now().UnixNano())
	id, err := r.CreateUser(context.Background(), login, login+"@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return id
}

func sampleRecord(t *testing.T, userID int) *ProjectRecord {
	t.Helper()
	p := electrical.DefaultProject()
	p.ProjectInfo.ProjectName = "Stored"
	p.Circuits = []electrical.Circuit{{ID: "c1", Name: "AC", Power: 2200, PowerFactor: 0.8, CableLength: 60}}
	res, err := electrical.Calculate(p)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	return &ProjectRecord{UserID: userID, Name: p.ProjectInfo.ProjectName, Input: p, Results: res}
}

func TestUsers(t *testing.T) {
	r := setupTestDB(t)
	ctx := context.Background()
	login := fmt.Sprintf("login-%d", time.Now().UnixNano())
	id, err := r.CreateUser(ctx, login, login+"@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	gotID, hash, err := r.GetByLogin(ctx, login)
	if err != nil || gotID != id || hash != "hash" {
		t.Errorf("GetByLogin = %d, %q, %v", gotID, hash, err)
	}
	if _, _, err := r.GetByLogin(ctx, "nobody-"+login); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := r.CreateUser(ctx, login, "other@example.com", "hash"); err == nil {
		t.Error("duplicate login accepted")
	}
}

func TestProjects(t *testing.T) {
	r := setupTestDB(t)
	ctx := context.Background()
	owner := createTestUser(t, r)
	stranger := createTestUser(t, r)

	rec := sampleRecord(t, owner)
	if err := r.CreateProject(ctx, rec); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if rec.ID == uuid.Nil || rec.CreatedAt.IsZero() {
		t.Fatalf("record not populated: %+v", rec)
	}

	got, err := r.GetProject(ctx, owner, rec.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Results.CircuitResults[0].BreakerSize != 16 || len(got.Results.Warnings) != 1 {
		t.Errorf("results not round-tripped: %+v", got.Results)
	}
	if _, err := r.GetProject(ctx, stranger, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger read: err = %v, want ErrNotFound", err)
	}

	hijack := *rec
	hijack.UserID = stranger
	if err := r.UpdateProject(ctx, &hijack); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger update: err = %v, want ErrNotFound", err)
	}

	unknown := *rec
	unknown.ID = uuid.New()
	if err := r.UpdateProject(ctx, &unknown); !errors.Is(err, ErrNotFound) {
		t.Errorf("update of unknown id: err = %v, want ErrNotFound", err)
	}
	if _, err := r.GetProject(ctx, owner, unknown.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("update of unknown id created a project: err = %v", err)
	}

	created := rec.CreatedAt
	rec.Name = "Renamed"
	if err := r.UpdateProject(ctx, rec); err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if !rec.CreatedAt.Equal(created) || rec.UpdatedAt.Before(created) {
		t.Errorf("timestamps after update: created %v -> %v, updated %v", created, rec.CreatedAt, rec.UpdatedAt)
	}

	list, err := r.ListProjects(ctx, owner)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(list) != 1 || list[0].ID != rec.ID || list[0].WarningCount != 1 || list[0].MainBreakerSize != rec.Results.MainBreakerSize {
		t.Errorf("list = %+v", list)
	}

	if err := r.DeleteProject(ctx, stranger, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger delete: err = %v", err)
	}
	if err := r.DeleteProject(ctx, owner, rec.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}
	if _, err := r.GetProject(ctx, owner, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: err = %v", err)
	}
}

func TestSummary(t *testing.T) {
	rec := sampleRecord(t, 1)
	rec.ID = uuid.New()
	s := rec.Summary()
	if s.ID != rec.ID || s.Name != "Stored" || s.WarningCount != 1 || s.TotalLoadKW != rec.Results.TotalLoadKW {
		t.Errorf("summary = %+v", s)
	}
}

var _ Repository = (*PostgresRepository)(nil)
