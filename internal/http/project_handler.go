package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerlift/internal/domain"
	"careerlift/internal/repository"
)

// ProjectHandler mantiene dependencias para endpoints de portafolio.
type ProjectHandler struct {
	logger   *zap.Logger
	projects repository.ProjectRepository
}

func NewProjectHandler(logger *zap.Logger, projects repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{
		logger:   logger,
		projects: projects,
	}
}

// List maneja GET /api/projects.
func (h *ProjectHandler) List(c *gin.Context) {
	user, _ := GetAuthUser(c)

	projects, err := h.projects.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list projects failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// Create maneja POST /api/projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	user, _ := GetAuthUser(c)

	var req struct {
		Title        string   `json:"title" binding:"required"`
		Description  string   `json:"description"`
		Technologies []string `json:"technologies"`
		LiveURL      string   `json:"liveUrl"`
		GithubURL    string   `json:"githubUrl"`
		ImageURL     string   `json:"imageUrl"`
		Status       string   `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Status == "" {
		req.Status = "in_progress"
	}

	project, err := h.projects.Create(c.Request.Context(), domain.Project{
		UserID:       user.ID,
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		LiveURL:      req.LiveURL,
		GithubURL:    req.GithubURL,
		ImageURL:     req.ImageURL,
		Status:       req.Status,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("create project failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project})
}
