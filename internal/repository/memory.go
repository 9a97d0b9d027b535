package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"careerlift/internal/domain"
)

// Implementaciones en memoria de los repositorios, para desarrollo y tests.
// Se seleccionan al arranque con STORAGE_BACKEND=memory y devuelven
// pgx.ErrNoRows como sentinel de no-encontrado para que los servicios no
// distingan backend.

// MemoryUserRepository implementa UserRepository sobre mapas.
// La unicidad de email se garantiza bajo el mismo lock que el insert, igual
// que el constraint UNIQUE en postgres.
type MemoryUserRepository struct {
	mu         sync.Mutex
	users      map[int64]domain.User
	emailIndex map[string]int64
	nextID     int64
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:      make(map[int64]domain.User),
		emailIndex: make(map[string]int64),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.emailIndex[user.Email]; exists {
		return domain.User{}, ErrDuplicateEmail
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	r.emailIndex[user.Email] = user.ID
	return user, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int64) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.emailIndex[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return r.users[id], nil
}

func (r *MemoryUserRepository) SetGoogleID(_ context.Context, id int64, googleID string) error {
	return r.mutate(id, func(u *domain.User) { u.GoogleID = googleID })
}

func (r *MemoryUserRepository) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	return r.mutate(id, func(u *domain.User) { u.LastLogin = &at })
}

func (r *MemoryUserRepository) UpdateSubscription(_ context.Context, id int64, plan string, expiry *time.Time) error {
	return r.mutate(id, func(u *domain.User) {
		u.SubscriptionPlan = plan
		u.SubscriptionExpiry = expiry
	})
}

func (r *MemoryUserRepository) IncrementMentorSessions(_ context.Context, id int64) error {
	return r.mutate(id, func(u *domain.User) { u.MentorSessions++ })
}

func (r *MemoryUserRepository) IncrementCoursesCompleted(_ context.Context, id int64) error {
	return r.mutate(id, func(u *domain.User) { u.CoursesCompleted++ })
}

func (r *MemoryUserRepository) IncrementResumeAnalysis(_ context.Context, id int64) error {
	return r.mutate(id, func(u *domain.User) {
		u.ResumeAnalysisCount++
		u.FreeAnalysisUsed = true
	})
}

// Delete elimina un usuario. Util en tests para simular cuentas borradas.
func (r *MemoryUserRepository) Delete(_ context.Context, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return
	}
	delete(r.emailIndex, user.Email)
	delete(r.users, id)
}

func (r *MemoryUserRepository) mutate(id int64, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	fn(&user)
	r.users[id] = user
	return nil
}

// MemorySessionRepository implementa SessionRepository sobre un mapa
// indexado por hash de token.
type MemorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]domain.Session)}
}

func (r *MemorySessionRepository) Create(_ context.Context, session domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.TokenHash] = session
	return nil
}

func (r *MemorySessionRepository) GetByTokenHash(_ context.Context, tokenHash string) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[tokenHash]
	if !ok {
		return domain.Session{}, pgx.ErrNoRows
	}
	return session, nil
}

func (r *MemorySessionRepository) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, tokenHash)
	return nil
}

func (r *MemorySessionRepository) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for hash, session := range r.sessions {
		if session.ExpiresAt.Before(before) {
			delete(r.sessions, hash)
			n++
		}
	}
	return n, nil
}
