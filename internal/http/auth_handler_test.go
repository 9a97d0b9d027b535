package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerlift/internal/oauth"
	"careerlift/internal/repository"
	"careerlift/internal/service"
)

type fakeProvider struct {
	profile oauth.Profile
	err     error
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (p *fakeProvider) Exchange(_ context.Context, _ string) (oauth.Profile, error) {
	if p.err != nil {
		return oauth.Profile{}, p.err
	}
	return p.profile, nil
}

type testEnv struct {
	router   *gin.Engine
	users    *repository.MemoryUserRepository
	provider *fakeProvider
}

func newTestEnv(t *testing.T, limiter service.LoginRateLimiter) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	users := repository.NewMemoryUserRepository()
	sessions := repository.NewMemorySessionRepository()

	userSvc := service.NewUserService(logger, users)
	sessionSvc := service.NewSessionService(logger, sessions, users)
	provider := &fakeProvider{}
	signer := service.NewStateSigner("test-secret")

	authH := NewAuthHandler(logger, userSvc, sessionSvc, limiter, provider, signer, CookieOptions{Secure: true, HTTPOnly: true}, "")
	resumeH := NewResumeHandler(logger, repository.NewMemoryResumeRepository(), users, t.TempDir())
	courseH := NewCourseHandler(logger, repository.NewMemoryCourseRepository(), users)
	mentorH := NewMentorHandler(logger, repository.NewMemoryMentorRepository(), users)
	projectH := NewProjectHandler(logger, repository.NewMemoryProjectRepository())
	progressH := NewProgressHandler(logger, repository.NewMemoryProgressRepository())
	paymentH := NewPaymentHandler(logger, nil, repository.NewMemoryPaymentRepository(), users)

	router := NewRouter(logger, sessionSvc, authH, resumeH, courseH, mentorH, projectH, progressH, paymentH)
	return &testEnv{router: router, users: users, provider: provider}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("expected %s cookie in response", SessionCookieName)
	return nil
}

func TestAuthRegister_SetsSessionCookie(t *testing.T) {
	env := newTestEnv(t, nil)

	w := postJSON(t, env.router, "/api/register", gin.H{
		"email":    "ana@example.com",
		"password": "s3cret-pass",
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	cookie := sessionCookie(t, w)
	if cookie.Value == "" {
		t.Fatalf("expected session token in cookie")
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Fatalf("expected HttpOnly+Secure cookie, got %+v", cookie)
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", cookie.SameSite)
	}
	if cookie.MaxAge != int((24 * 60 * 60)) {
		t.Fatalf("expected 24h MaxAge, got %d", cookie.MaxAge)
	}

	if strings.Contains(w.Body.String(), "password_hash") {
		t.Fatalf("expected password hash to stay out of responses")
	}
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t, nil)

	if w := postJSON(t, env.router, "/api/register", gin.H{"email": "ana@example.com", "password": "s3cret-pass"}, nil); w.Code != http.StatusCreated {
		t.Fatalf("first register failed: %d", w.Code)
	}
	w := postJSON(t, env.router, "/api/register", gin.H{"email": "ana@example.com", "password": "other-pass"}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestAuthLogin_InvalidCredentialsUniform(t *testing.T) {
	env := newTestEnv(t, nil)

	if w := postJSON(t, env.router, "/api/register", gin.H{"email": "ana@example.com", "password": "s3cret-pass"}, nil); w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", w.Code)
	}

	unknown := postJSON(t, env.router, "/api/login", gin.H{"email": "nadie@example.com", "password": "s3cret-pass"}, nil)
	wrong := postJSON(t, env.router, "/api/login", gin.H{"email": "ana@example.com", "password": "not-it"}, nil)

	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected uniform 401, got %d and %d", unknown.Code, wrong.Code)
	}
	if unknown.Body.String() != wrong.Body.String() {
		t.Fatalf("expected identical bodies, got %q vs %q", unknown.Body.String(), wrong.Body.String())
	}
}

func TestAuthLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t, service.NewLoginRateLimiter(0, 1))

	if w := postJSON(t, env.router, "/api/register", gin.H{"email": "ana@example.com", "password": "s3cret-pass"}, nil); w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", w.Code)
	}

	if w := postJSON(t, env.router, "/api/login", gin.H{"email": "ana@example.com", "password": "s3cret-pass"}, nil); w.Code != http.StatusOK {
		t.Fatalf("expected first login 200, got %d", w.Code)
	}
	if w := postJSON(t, env.router, "/api/login", gin.H{"email": "ana@example.com", "password": "s3cret-pass"}, nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestAuthMe_SessionFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	// Sin cookie: 401.
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without cookie, got %d", w.Code)
	}

	reg := postJSON(t, env.router, "/api/register", gin.H{"email": "ana@example.com", "password": "s3cret-pass"}, nil)
	cookie := sessionCookie(t, reg)

	req = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with cookie, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "ana@example.com") {
		t.Fatalf("expected user payload, got %s", w.Body.String())
	}

	// Token adulterado: 401.
	req = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"})
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with tampered token, got %d", w.Code)
	}
}

func TestAuthLogout_Idempotent(t *testing.T) {
	env := newTestEnv(t, nil)

	reg := postJSON(t, env.router, "/api/register", gin.H{"email": "ana@example.com", "password": "s3cret-pass"}, nil)
	cookie := sessionCookie(t, reg)

	w := postJSON(t, env.router, "/api/logout", gin.H{}, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	if w.Code != http.StatusOK {
		t.Fatalf("expected logout 200, got %d", w.Code)
	}
	cleared := sessionCookie(t, w)
	if cleared.MaxAge >= 0 {
		t.Fatalf("expected cookie cleared, got MaxAge=%d", cleared.MaxAge)
	}

	// La sesion ya no resuelve.
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}

	// Repetir logout, y sin cookie, sigue siendo 200.
	if w := postJSON(t, env.router, "/api/logout", gin.H{}, &http.Cookie{Name: cookie.Name, Value: cookie.Value}); w.Code != http.StatusOK {
		t.Fatalf("expected repeated logout 200, got %d", w.Code)
	}
	if w := postJSON(t, env.router, "/api/logout", gin.H{}, nil); w.Code != http.StatusOK {
		t.Fatalf("expected logout without cookie 200, got %d", w.Code)
	}
}

func TestGoogleCallback_Success(t *testing.T) {
	env := newTestEnv(t, nil)
	env.provider.profile = oauth.Profile{
		Subject: "google-sub-1",
		Email:   "nueva@example.com",
		Name:    "Nueva Cuenta",
	}

	signer := service.NewStateSigner("test-secret")
	state, err := signer.Sign()
	if err != nil {
		t.Fatalf("sign state failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=abc&state="+state, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
	cookie := sessionCookie(t, w)
	if cookie.Value == "" {
		t.Fatalf("expected session cookie on oauth success")
	}

	if _, err := env.users.GetByEmail(context.Background(), "nueva@example.com"); err != nil {
		t.Fatalf("expected provisioned user, got %v", err)
	}
}

func TestGoogleCallback_Failures(t *testing.T) {
	cases := []struct {
		name  string
		setup func(env *testEnv) string // devuelve el query string
	}{
		{"provider error param", func(env *testEnv) string {
			return "error=access_denied"
		}},
		{"invalid state", func(env *testEnv) string {
			return "code=abc&state=forged"
		}},
		{"missing code", func(env *testEnv) string {
			signer := service.NewStateSigner("test-secret")
			state, _ := signer.Sign()
			return "state=" + state
		}},
		{"exchange failure", func(env *testEnv) string {
			env.provider.err = errors.New("exchange boom")
			signer := service.NewStateSigner("test-secret")
			state, _ := signer.Sign()
			return "code=abc&state=" + state
		}},
		{"missing email claim", func(env *testEnv) string {
			env.provider.profile = oauth.Profile{Subject: "no-email"}
			signer := service.NewStateSigner("test-secret")
			state, _ := signer.Sign()
			return "code=abc&state=" + state
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			query := tc.setup(env)

			req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?"+query, nil)
			w := httptest.NewRecorder()
			env.router.ServeHTTP(w, req)

			if w.Code != http.StatusFound {
				t.Fatalf("expected 302, got %d", w.Code)
			}
			if loc := w.Header().Get("Location"); loc != "/?error=google_failed" {
				t.Fatalf("expected failure redirect, got %q", loc)
			}
			for _, c := range w.Result().Cookies() {
				if c.Name == SessionCookieName && c.Value != "" {
					t.Fatalf("expected no session on failed handshake")
				}
			}
		})
	}
}

func TestGoogleRedirect_CarriesSignedState(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	loc := w.Header().Get("Location")
	idx := strings.Index(loc, "state=")
	if idx < 0 {
		t.Fatalf("expected state in redirect, got %q", loc)
	}
	state := loc[idx+len("state="):]
	if err := service.NewStateSigner("test-secret").Verify(state); err != nil {
		t.Fatalf("expected redirect state to verify, got %v", err)
	}
}
