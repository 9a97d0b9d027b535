package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerlift/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	sessions *service.SessionService,
	authH *AuthHandler,
	resumeH *ResumeHandler,
	courseH *CourseHandler,
	mentorH *MentorHandler,
	projectH *ProjectHandler,
	progressH *ProgressHandler,
	paymentH *PaymentHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Rutas publicas.
	api.POST("/register", authH.Register)
	api.POST("/login", authH.Login)
	api.POST("/logout", authH.Logout)
	api.GET("/auth/google", authH.GoogleRedirect)
	api.GET("/auth/google/callback", authH.GoogleCallback)
	api.GET("/courses", courseH.ListCourses)
	api.GET("/mentors", mentorH.ListTop)

	// Rutas protegidas por sesion.
	authed := api.Group("")
	authed.Use(SessionAuthMiddleware(logger, sessions))
	authed.GET("/user", authH.Me)
	authed.GET("/resume", resumeH.GetResume)
	authed.POST("/resume/upload", resumeH.Upload)
	authed.GET("/courses/recommended", courseH.Recommended)
	authed.GET("/user/courses", courseH.ListUserCourses)
	authed.POST("/courses/:courseId/enroll", courseH.Enroll)
	authed.PATCH("/courses/:courseId/progress", courseH.UpdateProgress)
	authed.POST("/mentors/:mentorId/book", mentorH.Book)
	authed.GET("/projects", projectH.List)
	authed.POST("/projects", projectH.Create)
	authed.GET("/badges", progressH.Badges)
	authed.GET("/interview/performance", progressH.InterviewPerformance)
	authed.POST("/payment/create-order", paymentH.CreateOrder)
	authed.POST("/payment/verify", paymentH.Verify)

	return r
}
