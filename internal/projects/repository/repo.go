package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/wys-platform/project-service/internal/projects/domain"
)

const uniqueViolation = "23505"

const projectColumns = `id, name, user_id, m2_gen_id, location_gen_id, layout_gen_id, time_gen_id, price_gen_id, created_at, updated_at`

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ID, &p.Name, &p.UserID,
		&p.M2Ref, &p.LocationRef, &p.LayoutRef, &p.TimeRef, &p.PriceRef,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new project owned by userID.
func (r *ProjectRepository) Create(ctx context.Context, userID int64, in domain.CreateProjectInput) (*domain.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrNameRequired
	}

	q := `
INSERT INTO projects (name, user_id, m2_gen_id, location_gen_id, layout_gen_id, time_gen_id, price_gen_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + projectColumns + `;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q,
		in.Name, userID,
		in.M2Ref, in.LocationRef, in.LayoutRef, in.TimeRef, in.PriceRef,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// GetByID returns the project with id if it belongs to userID.
func (r *ProjectRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Project, error) {
	q := `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1 AND user_id = $2;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ListByUser returns all projects of userID in insertion order.
func (r *ProjectRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Project, error) {
	q := `
SELECT ` + projectColumns + `
FROM projects
WHERE user_id = $1
ORDER BY id ASC;
`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// Update writes every mutable field of p. Ownership and id are matched, never changed.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, domain.ErrNameRequired
	}

	q := `
UPDATE projects
SET name = $3,
    m2_gen_id = $4,
    location_gen_id = $5,
    layout_gen_id = $6,
    time_gen_id = $7,
    price_gen_id = $8,
    updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + projectColumns + `;
`
	out, err := scanProject(r.db.QueryRowContext(ctx, q,
		p.ID, p.UserID, p.Name,
		p.M2Ref, p.LocationRef, p.LayoutRef, p.TimeRef, p.PriceRef,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return out, nil
}

// Delete removes the project. It reports false when nothing matched.
func (r *ProjectRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	const q = `DELETE FROM projects WHERE id = $1 AND user_id = $2;`

	result, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
