package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"careerlift/internal/domain"
	"careerlift/internal/repository"
)

// MentorHandler mantiene dependencias para endpoints de mentoria.
type MentorHandler struct {
	logger  *zap.Logger
	mentors repository.MentorRepository
	users   repository.UserRepository
}

func NewMentorHandler(logger *zap.Logger, mentors repository.MentorRepository, users repository.UserRepository) *MentorHandler {
	return &MentorHandler{
		logger:  logger,
		mentors: mentors,
		users:   users,
	}
}

// ListTop maneja GET /api/mentors. Devuelve los mentores mejor rankeados.
func (h *MentorHandler) ListTop(c *gin.Context) {
	mentors, err := h.mentors.ListTop(c.Request.Context(), 3)
	if err != nil {
		h.logger.Error("list mentors failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load mentors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": mentors})
}

// Book maneja POST /api/mentors/:mentorId/book. El precio se deriva de la
// tarifa horaria del mentor y la duracion pedida.
func (h *MentorHandler) Book(c *gin.Context) {
	user, _ := GetAuthUser(c)

	mentorID, err := strconv.ParseInt(c.Param("mentorId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mentor id"})
		return
	}

	var req struct {
		SessionDate time.Time `json:"sessionDate" binding:"required"`
		Duration    int       `json:"duration" binding:"required,min=15,max=240"`
		Notes       string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	mentor, err := h.mentors.GetByID(c.Request.Context(), mentorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "mentor not found"})
			return
		}
		h.logger.Error("get mentor failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not book session"})
		return
	}

	booking, err := h.mentors.CreateBooking(c.Request.Context(), domain.MentorBooking{
		UserID:      user.ID,
		MentorID:    mentor.ID,
		SessionDate: req.SessionDate.UTC(),
		Duration:    req.Duration,
		Price:       mentor.HourlyRate * float64(req.Duration) / 60,
		Status:      domain.BookingScheduled,
		Notes:       req.Notes,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("create booking failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not book session"})
		return
	}

	if err := h.users.IncrementMentorSessions(c.Request.Context(), user.ID); err != nil {
		h.logger.Warn("increment mentor sessions failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}
