package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"careerlift/internal/domain"
	"careerlift/internal/oauth"
	"careerlift/internal/repository"
)

var (
	// ErrInvalidCredentials cubre email desconocido, password incorrecto y
	// cuentas sin password. Las tres causas devuelven lo mismo para no
	// filtrar existencia de cuentas.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken = errors.New("email already registered")

	// ErrMissingEmailClaim: sin email no hay clave de identidad, el
	// handshake se trata como fallido. Nunca se aprovisiona una cuenta
	// sin email.
	ErrMissingEmailClaim = errors.New("oauth profile missing email claim")
)

// UserService coordina registro, verificacion de credenciales y la
// resolucion find-or-create de identidades federadas.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
	now    func() time.Time
}

func NewUserService(logger *zap.Logger, users repository.UserRepository) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
		now:    time.Now,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	Username    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// Register crea una cuenta local con password hasheado.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	username := input.Username
	if username == "" {
		username = emailLocalPart(input.Email)
	}

	user := domain.User{
		Username:         username,
		PasswordHash:     hash,
		Email:            input.Email,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		PhoneNumber:      input.PhoneNumber,
		AuthProvider:     domain.AuthProviderEmail,
		SubscriptionPlan: domain.PlanFree,
		CreatedAt:        s.now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", created.ID))
	return created, nil
}

// Authenticate verifica credenciales locales. El lookup por email es match
// exacto, sensible a mayusculas.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if user.PasswordHash == "" {
		// Cuenta solo-OAuth: nunca autentica por password.
		return domain.User{}, ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.PasswordHash) {
		s.logger.Warn("login failed", zap.Int64("user_id", user.ID))
		return domain.User{}, ErrInvalidCredentials
	}

	s.touchLastLogin(ctx, user.ID)
	return user, nil
}

// FindOrCreateFromGoogle resuelve los claims del callback a un usuario
// local: enlaza por email si existe, o aprovisiona uno nuevo. La carrera de
// dos callbacks simultaneos para el mismo email la arbitra el constraint de
// unicidad del storage; el perdedor reintenta como lookup.
func (s *UserService) FindOrCreateFromGoogle(ctx context.Context, profile oauth.Profile) (domain.User, error) {
	if profile.Email == "" {
		return domain.User{}, ErrMissingEmailClaim
	}

	user, err := s.users.GetByEmail(ctx, profile.Email)
	if err == nil {
		s.linkGoogleID(ctx, user, profile.Subject)
		s.touchLastLogin(ctx, user.ID)
		s.logger.Info("oauth linked existing user", zap.Int64("user_id", user.ID))
		return user, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, fmt.Errorf("lookup user by email: %w", err)
	}

	username := profile.Name
	if username == "" {
		username = emailLocalPart(profile.Email)
	}
	first, last := splitName(profile.Name)

	created, err := s.users.Create(ctx, domain.User{
		Username:         username,
		Email:            profile.Email,
		FirstName:        first,
		LastName:         last,
		ProfilePicture:   profile.Picture,
		GoogleID:         profile.Subject,
		AuthProvider:     domain.AuthProviderGoogle,
		SubscriptionPlan: domain.PlanFree,
		CreatedAt:        s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Otro callback gano la carrera: el usuario ya existe.
			return s.users.GetByEmail(ctx, profile.Email)
		}
		return domain.User{}, fmt.Errorf("provision oauth user: %w", err)
	}

	s.logger.Info("oauth provisioned new user", zap.Int64("user_id", created.ID))
	return created, nil
}

// GetUser relee el registro completo por id.
func (s *UserService) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// linkGoogleID refuerza lookups futuros. Best effort: un fallo aqui no
// cancela el login.
func (s *UserService) linkGoogleID(ctx context.Context, user domain.User, subject string) {
	if subject == "" || user.GoogleID == subject {
		return
	}
	if err := s.users.SetGoogleID(ctx, user.ID, subject); err != nil {
		s.logger.Warn("link google id failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

func (s *UserService) touchLastLogin(ctx context.Context, id int64) {
	if err := s.users.TouchLastLogin(ctx, id, s.now().UTC()); err != nil {
		s.logger.Warn("touch last login failed", zap.Int64("user_id", id), zap.Error(err))
	}
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
