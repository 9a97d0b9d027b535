package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerlift/internal/domain"
	"careerlift/internal/repository"
	"careerlift/internal/service"
)

// brokenSessionRepo simula un session store caido.
type brokenSessionRepo struct{}

func (brokenSessionRepo) Create(_ context.Context, _ domain.Session) error {
	return errors.New("session store unreachable")
}

func (brokenSessionRepo) GetByTokenHash(_ context.Context, _ string) (domain.Session, error) {
	return domain.Session{}, errors.New("session store unreachable")
}

func (brokenSessionRepo) DeleteByTokenHash(_ context.Context, _ string) error {
	return errors.New("session store unreachable")
}

func (brokenSessionRepo) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, errors.New("session store unreachable")
}

func TestSessionAuthMiddleware_StorageFailureIsNot401(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	users := repository.NewMemoryUserRepository()
	sessionSvc := service.NewSessionService(logger, brokenSessionRepo{}, users)

	r := gin.New()
	r.GET("/protected", SessionAuthMiddleware(logger, sessionSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "some-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when session store is down, got %d", w.Code)
	}
}

func TestSessionAuthMiddleware_MissingSessionIs401(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	users := repository.NewMemoryUserRepository()
	sessions := repository.NewMemorySessionRepository()
	sessionSvc := service.NewSessionService(logger, sessions, users)

	r := gin.New()
	r.GET("/protected", SessionAuthMiddleware(logger, sessionSvc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Token desconocido: 401, no 500.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "unknown-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", w.Code)
	}
}
