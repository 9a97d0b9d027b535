package http

import (
	"errors"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"careerlift/internal/domain"
	"careerlift/internal/repository"
)

// ResumeHandler mantiene dependencias para endpoints de curriculum.
type ResumeHandler struct {
	logger    *zap.Logger
	resumes   repository.ResumeRepository
	users     repository.UserRepository
	uploadDir string
}

func NewResumeHandler(logger *zap.Logger, resumes repository.ResumeRepository, users repository.UserRepository, uploadDir string) *ResumeHandler {
	return &ResumeHandler{
		logger:    logger,
		resumes:   resumes,
		users:     users,
		uploadDir: uploadDir,
	}
}

// GetResume maneja GET /api/resume. Devuelve el ultimo analisis del usuario.
func (h *ResumeHandler) GetResume(c *gin.Context) {
	user, _ := GetAuthUser(c)

	resume, err := h.resumes.GetLatestByUser(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no resume uploaded"})
			return
		}
		h.logger.Error("get resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load resume"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resume": resume})
}

// Upload maneja POST /api/resume/upload. Guarda el archivo y registra un
// analisis. El scoring real todavia no existe: se simulan skills y
// puntajes como hace el resto del pipeline de analisis.
func (h *ResumeHandler) Upload(c *gin.Context) {
	user, _ := GetAuthUser(c)

	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume file required"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.Error("create upload dir failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store resume"})
		return
	}
	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	storedPath := filepath.Join(h.uploadDir, storedName)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		h.logger.Error("save resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store resume"})
		return
	}

	resume, err := h.resumes.Create(c.Request.Context(), domain.Resume{
		UserID:          user.ID,
		FileName:        file.Filename,
		FilePath:        storedPath,
		ExtractedSkills: []string{"React.js", "JavaScript", "Node.js", "Git"},
		ATSScore:        80 + rand.Intn(21),
		KeywordScore:    70 + rand.Intn(21),
		UploadedAt:      time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("record resume failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record analysis"})
		return
	}

	if err := h.users.IncrementResumeAnalysis(c.Request.Context(), user.ID); err != nil {
		h.logger.Warn("increment resume analysis failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{"resume": resume})
}
