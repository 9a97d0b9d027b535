package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"careerlift/internal/domain"
	"careerlift/internal/repository"
)

// SessionTTL es fijo desde la creacion, no deslizante.
const SessionTTL = 24 * time.Hour

const sessionTokenBytes = 32

// ErrUnauthenticated indica que no hay sesion valida. Es distinto de
// ErrInvalidCredentials: aqui no hubo intento de login que fallara.
var ErrUnauthenticated = errors.New("unauthenticated")

// SessionService mantiene el mapeo token opaco -> usuario autenticado.
type SessionService struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	users    repository.UserRepository
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(logger *zap.Logger, sessions repository.SessionRepository, users repository.UserRepository) *SessionService {
	return &SessionService{
		logger:   logger,
		sessions: sessions,
		users:    users,
		ttl:      SessionTTL,
		now:      time.Now,
	}
}

// TTL expone la vigencia configurada, para el MaxAge de la cookie.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Establish crea una sesion nueva para el usuario y devuelve el token crudo
// que viaja al cliente. El storage solo ve el hash.
func (s *SessionService) Establish(ctx context.Context, user domain.User) (string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	now := s.now().UTC()
	session := domain.Session{
		TokenHash: HashToken(token),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("session established", zap.Int64("user_id", user.ID))
	return token, nil
}

// Resolve traduce un token de sesion al usuario actual. Siempre re-lee el
// registro de usuario para que mutaciones recientes sean visibles sin
// invalidar la sesion.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrUnauthenticated
	}

	session, err := s.sessions.GetByTokenHash(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, fmt.Errorf("lookup session: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		// Limpieza perezosa: el row expirado se borra al tocarlo.
		if err := s.sessions.DeleteByTokenHash(ctx, session.TokenHash); err != nil {
			s.logger.Warn("delete expired session failed", zap.Error(err))
		}
		return domain.User{}, ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUnauthenticated
		}
		return domain.User{}, fmt.Errorf("lookup session user: %w", err)
	}

	return user, nil
}

// Destroy elimina la sesion. Destruir una sesion inexistente no es error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteByTokenHash(ctx, HashToken(token)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired borra sesiones vencidas en bloque.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}
