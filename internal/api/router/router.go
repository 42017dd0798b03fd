package router

import (
	"net/http"

	"github.com/alexanderramin/studyplan/internal/api/handler"
	"github.com/alexanderramin/studyplan/internal/api/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Setup builds the gin engine. Everything under /api/v1 except the health
// check and the OAuth callback requires a bearer token.
func Setup(h *handler.Handler, tokens middleware.TokenParser, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", health)
		v1.GET("/calendar/callback", h.Calendar.Callback)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(tokens))
		{
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.List)
				subjects.POST("", h.Subject.Create)
				subjects.GET("/:id", h.Subject.Get)
				subjects.PUT("/:id", h.Subject.Update)
				subjects.DELETE("/:id", h.Subject.Delete)
			}

			authorized.GET("/availability", h.Subject.ListAvailability)
			authorized.PUT("/availability", h.Subject.ReplaceAvailability)

			authorized.GET("/settings", h.Settings.Get)
			authorized.PUT("/settings", h.Settings.Update)

			authorized.POST("/schedule/generate", h.Schedule.Generate)
			authorized.GET("/dashboard", h.Session.Dashboard)

			sessions := authorized.Group("/sessions")
			{
				sessions.GET("", h.Session.List)
				sessions.GET("/week", h.Session.Week)
				sessions.POST("/:id/toggle", h.Session.Toggle)
				sessions.POST("/:id/complete", h.Session.Complete)
				sessions.GET("/:id/summary", h.Tutor.SessionSummary)
				sessions.GET("/:id/quiz", h.Tutor.SessionQuiz)
			}

			authorized.GET("/summaries", h.Tutor.ListSummaries)
			authorized.POST("/quizzes", h.Tutor.SubmitQuiz)
			authorized.GET("/quizzes/:id", h.Tutor.GetResult)

			authorized.GET("/calendar/connect", h.Calendar.Connect)
			authorized.POST("/calendar/sync", h.Calendar.Sync)

			authorized.GET("/export.ics", h.Export.ICS)
			authorized.GET("/export.xlsx", h.Export.XLSX)
		}
	}
	return r
}
