package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerlift/internal/domain"
)

// CourseRepository define el contrato de persistencia para cursos y
// matriculas de usuarios.
type CourseRepository interface {
	ListAll(ctx context.Context) ([]domain.Course, error)
	GetByID(ctx context.Context, id int64) (domain.Course, error)
	ListBySkills(ctx context.Context, skills []string) ([]domain.Course, error)
	ListEnrollments(ctx context.Context, userID int64) ([]domain.Enrollment, error)
	CreateEnrollment(ctx context.Context, e domain.Enrollment) (domain.Enrollment, error)
	UpdateProgress(ctx context.Context, userID, courseID int64, progress int, completedAt *time.Time) (domain.Enrollment, error)
}

// PgCourseRepository implementa CourseRepository usando pgxpool.
type PgCourseRepository struct {
	pool *pgxpool.Pool
}

func NewPgCourseRepository(pool *pgxpool.Pool) *PgCourseRepository {
	return &PgCourseRepository{pool: pool}
}

const courseColumns = `
	id, title, description, provider, price, duration,
	COALESCE(rating::text, ''), COALESCE(image_url, ''),
	COALESCE(affiliate_link, ''), skills, level
`

func scanCourse(row pgx.Row) (domain.Course, error) {
	var c domain.Course
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Provider,
		&c.Price,
		&c.Duration,
		&c.Rating,
		&c.ImageURL,
		&c.AffiliateLink,
		&c.Skills,
		&c.Level,
	)
	return c, err
}

func (r *PgCourseRepository) ListAll(ctx context.Context) ([]domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *PgCourseRepository) GetByID(ctx context.Context, id int64) (domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(r.pool.QueryRow(ctx, query, id))
}

func (r *PgCourseRepository) ListBySkills(ctx context.Context, skills []string) ([]domain.Course, error) {
	const query = `SELECT ` + courseColumns + ` FROM courses WHERE skills && $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, skills)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (r *PgCourseRepository) ListEnrollments(ctx context.Context, userID int64) ([]domain.Enrollment, error) {
	const query = `
		SELECT id, user_id, course_id, progress, is_completed, enrolled_at, completed_at
		FROM user_courses
		WHERE user_id = $1
		ORDER BY enrolled_at
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []domain.Enrollment
	for rows.Next() {
		var e domain.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.IsCompleted, &e.EnrolledAt, &e.CompletedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

func (r *PgCourseRepository) CreateEnrollment(ctx context.Context, e domain.Enrollment) (domain.Enrollment, error) {
	const query = `
		INSERT INTO user_courses (user_id, course_id, progress, is_completed, enrolled_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		e.UserID,
		e.CourseID,
		e.Progress,
		e.IsCompleted,
		e.EnrolledAt,
	).Scan(&e.ID)
	if err != nil {
		return domain.Enrollment{}, err
	}
	return e, nil
}

func (r *PgCourseRepository) UpdateProgress(ctx context.Context, userID, courseID int64, progress int, completedAt *time.Time) (domain.Enrollment, error) {
	const query = `
		UPDATE user_courses
		SET progress = $3, is_completed = $4, completed_at = $5
		WHERE user_id = $1 AND course_id = $2
		RETURNING id, user_id, course_id, progress, is_completed, enrolled_at, completed_at
	`
	var e domain.Enrollment
	err := r.pool.QueryRow(ctx, query, userID, courseID, progress, completedAt != nil, completedAt).Scan(
		&e.ID,
		&e.UserID,
		&e.CourseID,
		&e.Progress,
		&e.IsCompleted,
		&e.EnrolledAt,
		&e.CompletedAt,
	)
	if err != nil {
		return domain.Enrollment{}, err
	}
	return e, nil
}
