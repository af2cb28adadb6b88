package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Ampere/internal/calc/electrical"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type UserStore interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

type ProjectStore interface {
	CreateProject(ctx context.Context, p *ProjectRecord) error
	UpdateProject(ctx context.Context, p *ProjectRecord) error
	GetProject(ctx context.Context, userID int, id uuid.UUID) (*ProjectRecord, error)
	ListProjects(ctx context.Context, userID int) ([]ProjectSummary, error)
	DeleteProject(ctx context.Context, userID int, id uuid.UUID) error
}

type Repository interface {
	UserStore
	ProjectStore
}

// ProjectRecord is a saved project with the results of its last calculation.
type ProjectRecord struct {
	ID        uuid.UUID                     `json:"id"`
	UserID    int                           `json:"-"`
	Name      string                        `json:"name"`
	Input     electrical.Project            `json:"input"`
	Results   electrical.CalculationResults `json:"results"`
	CreatedAt time.Time                     `json:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

type ProjectSummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	TotalLoadKW     float64   `json:"total_load_kw"`
	MainBreakerSize float64   `json:"main_breaker_size"`
	WarningCount    int       `json:"warning_count"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", ErrNotFound
		}
		return 0, "", err
	}
	return id, hash, nil
}

// CreateProject inserts a new project and assigns its ID and timestamps.
func (r *PostgresRepository) CreateProject(ctx context.Context, p *ProjectRecord) error {
	input, results, err := encodeProject(p)
	if err != nil {
		return err
	}
	p.ID = uuid.New()
	now := time.Now().UTC()

	query := `INSERT INTO projects (id, user_id, name, input, results, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, p.ID, p.UserID, p.Name, input, results, now).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// UpdateProject overwrites an existing project of p.UserID. It returns
// ErrNotFound when no such project exists or another user owns it.
func (r *PostgresRepository) UpdateProject(ctx context.Context, p *ProjectRecord) error {
	input, results, err := encodeProject(p)
	if err != nil {
		return err
	}
	query := `UPDATE projects SET name = $3, input = $4, results = $5, updated_at = $6
		WHERE id = $1 AND user_id = $2
		RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query, p.ID, p.UserID, p.Name, input, results, time.Now().UTC()).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// encodeProject returns the JSONB parameters of a record. lib/pq sends
// []byte as bytea, so they are passed as strings.
func encodeProject(p *ProjectRecord) (string, string, error) {
	input, err := json.Marshal(p.Input)
	if err != nil {
		return "", "", fmt.Errorf("encode input: %w", err)
	}
	results, err := json.Marshal(p.Results)
	if err != nil {
		return "", "", fmt.Errorf("encode results: %w", err)
	}
	return string(input), string(results), nil
}

func (r *PostgresRepository) GetProject(ctx context.Context, userID int, id uuid.UUID) (*ProjectRecord, error) {
	var (
		p       ProjectRecord
		input   []byte
		results []byte
	)
	query := `SELECT id, user_id, name, input, results, created_at, updated_at
		FROM projects WHERE id=$1 AND user_id=$2`
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&p.ID, &p.UserID, &p.Name, &input, &results, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(input, &p.Input); err != nil {
		return nil, fmt.Errorf("decode input of project %s: %w", id, err)
	}
	if err := json.Unmarshal(results, &p.Results); err != nil {
		return nil, fmt.Errorf("decode results of project %s: %w", id, err)
	}
	return &p, nil
}

func (r *PostgresRepository) ListProjects(ctx context.Context, userID int) ([]ProjectSummary, error) {
	query := `SELECT id, name,
			(results->>'totalLoadKW')::float8,
			(results->>'mainBreakerSize')::float8,
			COALESCE(jsonb_array_length(results->'warnings'), 0),
			updated_at
		FROM projects WHERE user_id=$1 ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ProjectSummary{}
	for rows.Next() {
		var s ProjectSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.TotalLoadKW, &s.MainBreakerSize, &s.WarningCount, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) DeleteProject(ctx context.Context, userID int, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=$1 AND user_id=$2", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary derives the list view of a record.
func (p *ProjectRecord) Summary() ProjectSummary {
	return ProjectSummary{
		ID:              p.ID,
		Name:            p.Name,
		TotalLoadKW:     p.Results.TotalLoadKW,
		MainBreakerSize: p.Results.MainBreakerSize,
		WarningCount:    len(p.Results.Warnings),
		UpdatedAt:       p.UpdatedAt,
	}
}
