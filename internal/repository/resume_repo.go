package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"careerlift/internal/domain"
)

// ResumeRepository define el contrato de persistencia para curriculums.
type ResumeRepository interface {
	Create(ctx context.Context, resume domain.Resume) (domain.Resume, error)
	GetLatestByUser(ctx context.Context, userID int64) (domain.Resume, error)
}

// PgResumeRepository implementa ResumeRepository usando pgxpool.
type PgResumeRepository struct {
	pool *pgxpool.Pool
}

func NewPgResumeRepository(pool *pgxpool.Pool) *PgResumeRepository {
	return &PgResumeRepository{pool: pool}
}

func (r *PgResumeRepository) Create(ctx context.Context, resume domain.Resume) (domain.Resume, error) {
	const query = `
		INSERT INTO resumes (user_id, file_name, file_path, extracted_skills, ats_score, keyword_score, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		resume.UserID,
		resume.FileName,
		resume.FilePath,
		resume.ExtractedSkills,
		resume.ATSScore,
		resume.KeywordScore,
		resume.UploadedAt,
	).Scan(&resume.ID)
	if err != nil {
		return domain.Resume{}, err
	}
	return resume, nil
}

func (r *PgResumeRepository) GetLatestByUser(ctx context.Context, userID int64) (domain.Resume, error) {
	const query = `
		SELECT id, user_id, file_name, file_path, extracted_skills, ats_score, keyword_score, uploaded_at
		FROM resumes
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
		LIMIT 1
	`
	var res domain.Resume
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&res.ID,
		&res.UserID,
		&res.FileName,
		&res.FilePath,
		&res.ExtractedSkills,
		&res.ATSScore,
		&res.KeywordScore,
		&res.UploadedAt,
	)
	if err != nil {
		return domain.Resume{}, err
	}
	return res, nil
}
