package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerlift/internal/repository"
)

// ProgressHandler mantiene dependencias para endpoints de progreso.
type ProgressHandler struct {
	logger   *zap.Logger
	progress repository.ProgressRepository
}

func NewProgressHandler(logger *zap.Logger, progress repository.ProgressRepository) *ProgressHandler {
	return &ProgressHandler{
		logger:   logger,
		progress: progress,
	}
}

// Badges maneja GET /api/badges.
func (h *ProgressHandler) Badges(c *gin.Context) {
	user, _ := GetAuthUser(c)

	badges, err := h.progress.ListBadges(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list badges failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load badges"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

// InterviewPerformance maneja GET /api/interview/performance. Sin sesiones
// registradas devuelve puntajes base para que el dashboard tenga datos.
func (h *ProgressHandler) InterviewPerformance(c *gin.Context) {
	user, _ := GetAuthUser(c)

	sessions, err := h.progress.ListInterviewPerformance(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list interview performance failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load performance"})
		return
	}

	if len(sessions) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"technical_score":       80,
			"communication_score":   75,
			"problem_solving_score": 85,
			"sessions":              []struct{}{},
		})
		return
	}

	// El repositorio lista en orden ascendente: la ultima entrada es la
	// sesion mas reciente.
	latest := sessions[len(sessions)-1]
	c.JSON(http.StatusOK, gin.H{
		"technical_score":       latest.TechnicalScore,
		"communication_score":   latest.CommunicationScore,
		"problem_solving_score": latest.ProblemSolvingScore,
		"sessions":              sessions,
	})
}
