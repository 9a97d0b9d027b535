package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"careerlift/internal/domain"
)

// ProgressRepository define el contrato de persistencia para insignias y
// resultados de entrevistas simuladas.
type ProgressRepository interface {
	ListBadges(ctx context.Context, userID int64) ([]domain.SkillBadge, error)
	AwardBadge(ctx context.Context, b domain.SkillBadge) (domain.SkillBadge, error)
	ListInterviewPerformance(ctx context.Context, userID int64) ([]domain.InterviewPerformance, error)
	CreateInterviewPerformance(ctx context.Context, p domain.InterviewPerformance) (domain.InterviewPerformance, error)
}

// PgProgressRepository implementa ProgressRepository usando pgxpool.
type PgProgressRepository struct {
	pool *pgxpool.Pool
}

func NewPgProgressRepository(pool *pgxpool.Pool) *PgProgressRepository {
	return &PgProgressRepository{pool: pool}
}

func (r *PgProgressRepository) ListBadges(ctx context.Context, userID int64) ([]domain.SkillBadge, error) {
	const query = `
		SELECT id, user_id, badge_name, badge_type, earned_at
		FROM skill_badges
		WHERE user_id = $1
		ORDER BY earned_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.SkillBadge
	for rows.Next() {
		var b domain.SkillBadge
		if err := rows.Scan(&b.ID, &b.UserID, &b.BadgeName, &b.BadgeType, &b.EarnedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

func (r *PgProgressRepository) AwardBadge(ctx context.Context, b domain.SkillBadge) (domain.SkillBadge, error) {
	const query = `
		INSERT INTO skill_badges (user_id, badge_name, badge_type, earned_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query, b.UserID, b.BadgeName, b.BadgeType, b.EarnedAt).Scan(&b.ID)
	if err != nil {
		return domain.SkillBadge{}, err
	}
	return b, nil
}

func (r *PgProgressRepository) ListInterviewPerformance(ctx context.Context, userID int64) ([]domain.InterviewPerformance, error) {
	const query = `
		SELECT id, user_id, session_type, technical_score, communication_score,
		       problem_solving_score, COALESCE(feedback, ''), completed_at
		FROM interview_performance
		WHERE user_id = $1
		ORDER BY completed_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.InterviewPerformance
	for rows.Next() {
		var p domain.InterviewPerformance
		if err := rows.Scan(&p.ID, &p.UserID, &p.SessionType, &p.TechnicalScore, &p.CommunicationScore, &p.ProblemSolvingScore, &p.Feedback, &p.CompletedAt); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

func (r *PgProgressRepository) CreateInterviewPerformance(ctx context.Context, p domain.InterviewPerformance) (domain.InterviewPerformance, error) {
	const query = `
		INSERT INTO interview_performance (user_id, session_type, technical_score, communication_score, problem_solving_score, feedback, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		p.UserID,
		p.SessionType,
		p.TechnicalScore,
		p.CommunicationScore,
		p.ProblemSolvingScore,
		p.Feedback,
		p.CompletedAt,
	).Scan(&p.ID)
	if err != nil {
		return domain.InterviewPerformance{}, err
	}
	return p, nil
}
