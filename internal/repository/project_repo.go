package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"careerlift/internal/domain"
)

// ProjectRepository define el contrato de persistencia para proyectos.
type ProjectRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Project, error)
	Create(ctx context.Context, p domain.Project) (domain.Project, error)
}

// PgProjectRepository implementa ProjectRepository usando pgxpool.
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

func (r *PgProjectRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Project, error) {
	const query = `
		SELECT id, user_id, title, description, technologies,
		       COALESCE(live_url, ''), COALESCE(github_url, ''),
		       COALESCE(image_url, ''), status, created_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Technologies, &p.LiveURL, &p.GithubURL, &p.ImageURL, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *PgProjectRepository) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	const query = `
		INSERT INTO projects (user_id, title, description, technologies, live_url, github_url, image_url, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		p.UserID,
		p.Title,
		p.Description,
		p.Technologies,
		p.LiveURL,
		p.GithubURL,
		p.ImageURL,
		p.Status,
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return domain.Project{}, err
	}
	return p, nil
}
