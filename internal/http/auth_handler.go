package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerlift/internal/oauth"
	"careerlift/internal/service"
)

// CookieOptions controla los flags de la cookie de sesion.
type CookieOptions struct {
	Secure   bool
	HTTPOnly bool
}

// AuthHandler mantiene dependencias para endpoints de autenticacion.
type AuthHandler struct {
	logger   *zap.Logger
	users    *service.UserService
	sessions *service.SessionService
	limiter  service.LoginRateLimiter
	provider oauth.Provider
	state    *service.StateSigner
	cookies  CookieOptions

	// appBaseURL es el origen del frontend para los redirects post-OAuth.
	// Vacio significa mismo origen.
	appBaseURL string
}

func NewAuthHandler(
	logger *zap.Logger,
	users *service.UserService,
	sessions *service.SessionService,
	limiter service.LoginRateLimiter,
	provider oauth.Provider,
	state *service.StateSigner,
	cookies CookieOptions,
	appBaseURL string,
) *AuthHandler {
	return &AuthHandler{
		logger:     logger,
		users:      users,
		sessions:   sessions,
		limiter:    limiter,
		provider:   provider,
		state:      state,
		cookies:    cookies,
		appBaseURL: appBaseURL,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.cookies.Secure,
		HttpOnly: h.cookies.HTTPOnly,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register maneja POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		Username    string `json:"username"`
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Username:    req.Username,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.logger.Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not register"})
		return
	}

	token, err := h.sessions.Establish(c.Request.Context(), user)
	if err != nil {
		h.logger.Error("establish session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not establish session"})
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login maneja POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if h.limiter != nil && !h.limiter.Allow(req.Email) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
		return
	}

	token, err := h.sessions.Establish(c.Request.Context(), user)
	if err != nil {
		h.logger.Error("establish session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not establish session"})
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout maneja POST /api/logout. Idempotente: sin cookie tambien responde 200.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			h.logger.Error("destroy session failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log out"})
			return
		}
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Me maneja GET /api/user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := GetAuthUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GoogleRedirect maneja GET /api/auth/google.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	if h.provider == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google auth not configured"})
		return
	}
	state, err := h.state.Sign()
	if err != nil {
		h.logger.Error("sign oauth state failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start oauth"})
		return
	}
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// GoogleCallback maneja GET /api/auth/google/callback. Cualquier fallo del
// handshake redirige al frontend sin sesion; nunca queda media sesion.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.provider == nil {
		c.Redirect(http.StatusFound, h.appBaseURL+"/?error=google_failed")
		return
	}
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warn("oauth callback denied", zap.String("error", errParam))
		c.Redirect(http.StatusFound, h.appBaseURL+"/?error=google_failed")
		return
	}
	if err := h.state.Verify(c.Query("state")); err != nil {
		h.logger.Warn("oauth state rejected")
		c.Redirect(http.StatusFound, h.appBaseURL+"/?error=google_failed")
		return
	}
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, h.appBaseURL+"/?error=google_failed")
		return
	}

	profile, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Warn("oauth exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, h.appBaseURL+"/?error=google_failed")
		return
	}

	user, err := h.users.FindOrCreateFromGoogle(c.Request.Context(), profile)
	if err != nil {
		if !errors.Is(err, service.ErrMissingEmailClaim) {
			h.logger.Error("oauth find-or-create failed", zap.Error(err))
		}
		c.Redirect(http.StatusFound, h.appBaseURL+"/?error=google_failed")
		return
	}

	token, err := h.sessions.Establish(c.Request.Context(), user)
	if err != nil {
		h.logger.Error("establish session failed", zap.Error(err))
		c.Redirect(http.StatusFound, h.appBaseURL+"/?error=google_failed")
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL().Seconds()))
	c.Redirect(http.StatusFound, h.appBaseURL+"/dashboard")
}
