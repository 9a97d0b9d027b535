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

// CourseHandler mantiene dependencias para endpoints de cursos.
type CourseHandler struct {
	logger  *zap.Logger
	courses repository.CourseRepository
	users   repository.UserRepository
}

func NewCourseHandler(logger *zap.Logger, courses repository.CourseRepository, users repository.UserRepository) *CourseHandler {
	return &CourseHandler{
		logger:  logger,
		courses: courses,
		users:   users,
	}
}

// ListCourses maneja GET /api/courses.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("list courses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load courses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// Recommended maneja GET /api/courses/recommended. Cruza los gaps de
// skills del ultimo analisis contra el catalogo.
func (h *CourseHandler) Recommended(c *gin.Context) {
	// Gaps tipicos mientras el analisis de resume no produce los propios.
	missingSkills := []string{"AWS", "Docker", "TypeScript", "System Design"}

	courses, err := h.courses.ListBySkills(c.Request.Context(), missingSkills)
	if err != nil {
		h.logger.Error("recommend courses failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load recommendations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "missing_skills": missingSkills})
}

// ListUserCourses maneja GET /api/user/courses.
func (h *CourseHandler) ListUserCourses(c *gin.Context) {
	user, _ := GetAuthUser(c)

	enrollments, err := h.courses.ListEnrollments(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("list enrollments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load enrollments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}

// Enroll maneja POST /api/courses/:courseId/enroll.
func (h *CourseHandler) Enroll(c *gin.Context) {
	user, _ := GetAuthUser(c)

	courseID, err := strconv.ParseInt(c.Param("courseId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	if _, err := h.courses.GetByID(c.Request.Context(), courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		h.logger.Error("get course failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not enroll"})
		return
	}

	enrollment, err := h.courses.CreateEnrollment(c.Request.Context(), domain.Enrollment{
		UserID:     user.ID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("create enrollment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not enroll"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"enrollment": enrollment})
}

// UpdateProgress maneja PATCH /api/courses/:courseId/progress. Al llegar a
// 100 marca el curso completado y actualiza el contador del usuario.
func (h *CourseHandler) UpdateProgress(c *gin.Context) {
	user, _ := GetAuthUser(c)

	courseID, err := strconv.ParseInt(c.Param("courseId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var req struct {
		Progress *int `json:"progress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || *req.Progress < 0 || *req.Progress > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "progress must be between 0 and 100"})
		return
	}

	var completedAt *time.Time
	if *req.Progress == 100 {
		now := time.Now().UTC()
		completedAt = &now
	}

	enrollment, err := h.courses.UpdateProgress(c.Request.Context(), user.ID, courseID, *req.Progress, completedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "enrollment not found"})
			return
		}
		h.logger.Error("update progress failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update progress"})
		return
	}

	if completedAt != nil {
		if err := h.users.IncrementCoursesCompleted(c.Request.Context(), user.ID); err != nil {
			h.logger.Warn("increment courses completed failed", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"enrollment": enrollment})
}
