package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prepdesk/prepdesk-backend/internal/config"
	"github.com/prepdesk/prepdesk-backend/internal/handler"
	"github.com/prepdesk/prepdesk-backend/internal/middleware"
	"github.com/prepdesk/prepdesk-backend/internal/response"
	"github.com/prepdesk/prepdesk-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Exam     *handler.ExamHandler
	Question *handler.QuestionHandler
	Attempt  *handler.AttemptHandler
	Review   *handler.ReviewHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour

	// save-progress and submit-exam keep the exact CORS contract their
	// original web clients were built against: any origin, POST/OPTIONS
	// only, and the legacy header set (authorization, x-client-info,
	// apikey, content-type).
	legacyConfig := cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"POST", "OPTIONS"},
		AllowHeaders:    []string{"authorization", "x-client-info", "apikey", "content-type"},
		MaxAge:          12 * time.Hour,
	}

	standardCORS := cors.New(corsConfig)
	legacyCORS := cors.New(legacyConfig)
	router.Use(func(c *gin.Context) {
		switch c.Request.URL.Path {
		case "/api/v1/attempts/save-progress", "/api/v1/attempts/submit-exam":
			legacyCORS(c)
		default:
			standardCORS(c)
		}
	})

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
	}

	// ─── 2. Exam Group (JWT) ───────────────────────────────────────────
	examAPI := router.Group("/api/v1/exams")
	examAPI.Use(middleware.RequireAuth(authService))
	{
		examAPI.GET("", handlers.Exam.List)
		examAPI.GET("/:exam_id/paper", handlers.Exam.GetPaper)
	}

	// ─── 3. Attempt Group (JWT) ────────────────────────────────────────
	attemptAPI := router.Group("/api/v1/attempts")
	attemptAPI.Use(middleware.RequireAuth(authService))
	{
		attemptAPI.POST("/save-progress", handlers.Attempt.SaveProgress)
		attemptAPI.POST("/submit-exam", handlers.Attempt.SubmitExam)
		attemptAPI.GET("/progress/:exam_id", handlers.Attempt.GetProgress)
		attemptAPI.GET("/state/:exam_id", handlers.Attempt.GetState)
		attemptAPI.POST("/state/:exam_id/answer", handlers.Attempt.RecordAnswer)
		attemptAPI.POST("/state/:exam_id/mark", handlers.Attempt.ToggleMark)
		attemptAPI.GET("/results", handlers.Review.ListResults)
		attemptAPI.GET("/results/:exam_id", handlers.Review.GetReview)
	}

	// ─── 4. Admin Group (JWT + admin flag) ─────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdmin(authService))
	{
		adminAPI.POST("/exams", handlers.Exam.Create)
		adminAPI.PUT("/exams/:exam_id", handlers.Exam.Update)
		adminAPI.DELETE("/exams/:exam_id", handlers.Exam.Delete)
		adminAPI.PUT("/exams/:exam_id/questions", handlers.Exam.AssignQuestions)

		adminAPI.GET("/questions", handlers.Question.List)
		adminAPI.GET("/questions/:id", handlers.Question.Get)
		adminAPI.POST("/questions", handlers.Question.Create)
		adminAPI.PUT("/questions/:id", handlers.Question.Update)
		adminAPI.DELETE("/questions/:id", handlers.Question.Delete)
	}

	return router
}
