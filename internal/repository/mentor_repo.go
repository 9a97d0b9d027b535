package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"careerlift/internal/domain"
)

// MentorRepository define el contrato de persistencia para mentores y
// reservas de sesiones.
type MentorRepository interface {
	ListTop(ctx context.Context, limit int) ([]domain.Mentor, error)
	GetByID(ctx context.Context, id int64) (domain.Mentor, error)
	CreateBooking(ctx context.Context, b domain.MentorBooking) (domain.MentorBooking, error)
	ListBookings(ctx context.Context, userID int64) ([]domain.MentorBooking, error)
}

// PgMentorRepository implementa MentorRepository usando pgxpool.
type PgMentorRepository struct {
	pool *pgxpool.Pool
}

func NewPgMentorRepository(pool *pgxpool.Pool) *PgMentorRepository {
	return &PgMentorRepository{pool: pool}
}

func (r *PgMentorRepository) ListTop(ctx context.Context, limit int) ([]domain.Mentor, error) {
	const query = `
		SELECT id, name, title, company, COALESCE(profile_picture, ''),
		       COALESCE(rating::text, ''), hourly_rate, specialties, COALESCE(bio, '')
		FROM mentors
		ORDER BY rating DESC NULLS LAST
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mentors []domain.Mentor
	for rows.Next() {
		var m domain.Mentor
		if err := rows.Scan(&m.ID, &m.Name, &m.Title, &m.Company, &m.ProfilePicture, &m.Rating, &m.HourlyRate, &m.Specialties, &m.Bio); err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}

func (r *PgMentorRepository) GetByID(ctx context.Context, id int64) (domain.Mentor, error) {
	const query = `
		SELECT id, name, title, company, COALESCE(profile_picture, ''),
		       COALESCE(rating::text, ''), hourly_rate, specialties, COALESCE(bio, '')
		FROM mentors
		WHERE id = $1
	`
	var m domain.Mentor
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID,
		&m.Name,
		&m.Title,
		&m.Company,
		&m.ProfilePicture,
		&m.Rating,
		&m.HourlyRate,
		&m.Specialties,
		&m.Bio,
	)
	if err != nil {
		return domain.Mentor{}, err
	}
	return m, nil
}

func (r *PgMentorRepository) CreateBooking(ctx context.Context, b domain.MentorBooking) (domain.MentorBooking, error) {
	const query = `
		INSERT INTO mentor_sessions (user_id, mentor_id, session_date, duration, price, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.pool.QueryRow(ctx, query,
		b.UserID,
		b.MentorID,
		b.SessionDate,
		b.Duration,
		b.Price,
		b.Status,
		b.Notes,
		b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return domain.MentorBooking{}, err
	}
	return b, nil
}

func (r *PgMentorRepository) ListBookings(ctx context.Context, userID int64) ([]domain.MentorBooking, error) {
	const query = `
		SELECT id, user_id, mentor_id, session_date, duration, price, status, COALESCE(notes, ''), created_at
		FROM mentor_sessions
		WHERE user_id = $1
		ORDER BY session_date
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.MentorBooking
	for rows.Next() {
		var b domain.MentorBooking
		if err := rows.Scan(&b.ID, &b.UserID, &b.MentorID, &b.SessionDate, &b.Duration, &b.Price, &b.Status, &b.Notes, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
