package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerlift/internal/domain"
)

// ErrDuplicateEmail se devuelve cuando un INSERT viola la unicidad de email.
// El constraint de storage es quien arbitra la carrera find-or-create.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	SetGoogleID(ctx context.Context, id int64, googleID string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdateSubscription(ctx context.Context, id int64, plan string, expiry *time.Time) error
	IncrementMentorSessions(ctx context.Context, id int64) error
	IncrementCoursesCompleted(ctx context.Context, id int64) error
	IncrementResumeAnalysis(ctx context.Context, id int64) error
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `
	id, COALESCE(username, ''), COALESCE(password, ''), email,
	first_name, last_name, COALESCE(profile_picture, ''),
	COALESCE(phone_number, ''), COALESCE(google_id, ''),
	COALESCE(linkedin_id, ''), COALESCE(github_id, ''), auth_provider,
	career_score, courses_completed, badges, mentor_sessions,
	subscription_plan, subscription_expiry, resume_analysis_count,
	free_analysis_used, created_at, last_login
`

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.ProfilePicture,
		&u.PhoneNumber,
		&u.GoogleID,
		&u.LinkedinID,
		&u.GithubID,
		&u.AuthProvider,
		&u.CareerScore,
		&u.CoursesCompleted,
		&u.Badges,
		&u.MentorSessions,
		&u.SubscriptionPlan,
		&u.SubscriptionExpiry,
		&u.ResumeAnalysisCount,
		&u.FreeAnalysisUsed,
		&u.CreatedAt,
		&u.LastLogin,
	)
	return u, err
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const query = `
		INSERT INTO users (
			username, password, email, first_name, last_name,
			profile_picture, phone_number, google_id, auth_provider,
			career_score, courses_completed, badges, mentor_sessions,
			subscription_plan, resume_analysis_count, free_analysis_used,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Email,
		user.FirstName,
		user.LastName,
		user.ProfilePicture,
		user.PhoneNumber,
		user.GoogleID,
		user.AuthProvider,
		user.CareerScore,
		user.CoursesCompleted,
		user.Badges,
		user.MentorSessions,
		user.SubscriptionPlan,
		user.ResumeAnalysisCount,
		user.FreeAnalysisUsed,
		user.CreatedAt,
	).Scan(&user.ID, &user.CreatedAt)
	if isUniqueViolation(err) {
		return domain.User{}, ErrDuplicateEmail
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgUserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) SetGoogleID(ctx context.Context, id int64, googleID string) error {
	const query = `UPDATE users SET google_id = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, googleID)
	return err
}

func (r *PgUserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE users SET last_login = $2 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, at)
	return err
}

func (r *PgUserRepository) UpdateSubscription(ctx context.Context, id int64, plan string, expiry *time.Time) error {
	const query = `UPDATE users SET subscription_plan = $2, subscription_expiry = $3 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, plan, expiry)
	return err
}

func (r *PgUserRepository) IncrementMentorSessions(ctx context.Context, id int64) error {
	const query = `UPDATE users SET mentor_sessions = mentor_sessions + 1 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgUserRepository) IncrementCoursesCompleted(ctx context.Context, id int64) error {
	const query = `UPDATE users SET courses_completed = courses_completed + 1 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgUserRepository) IncrementResumeAnalysis(ctx context.Context, id int64) error {
	const query = `
		UPDATE users
		SET resume_analysis_count = resume_analysis_count + 1, free_analysis_used = TRUE
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
