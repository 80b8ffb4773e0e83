package app

import (
	"time"

	"finverse_backend/internal/middleware"
	"finverse_backend/pkg/monitoring"
	"finverse_backend/pkg/security"
	"finverse_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
)

func (a *App) setupRouter(ctrl *Controllers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(security.CORS(a.Config.CORS.AllowedOrigins))
	router.Use(security.Secure())
	if a.Config.RateLimit.MaxRequests > 0 {
		router.Use(security.RateLimiter(
			a.Config.RateLimit.MaxRequests,
			time.Duration(a.Config.RateLimit.WindowMinutes)*time.Minute,
		))
	}
	if a.Config.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}
	router.Use(monitoring.MetricsMiddleware())

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", ctrl.Health.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/register", ctrl.Auth.Register)
			auth.POST("/login", ctrl.Auth.Login)
		}

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(a.Config))
		{
			profile := authed.Group("/profile")
			{
				profile.GET("/me", ctrl.Profile.Me)
				profile.PATCH("/me", ctrl.Profile.UpdateMe)
			}

			lessons := authed.Group("/lessons")
			{
				lessons.GET("", ctrl.Lesson.List)
				lessons.GET("/:id", ctrl.Lesson.Get)
				lessons.POST("/:id/generate", ctrl.Lesson.GenerateContent)
				lessons.GET("/:id/content", ctrl.Lesson.GetContent)
				lessons.DELETE("/:id/content", ctrl.Lesson.DeleteContent)
				lessons.POST("/:id/regenerate", ctrl.Lesson.Regenerate)
			}

			progress := authed.Group("/progress")
			{
				progress.POST("/:lessonId/complete", ctrl.Progress.CompleteLesson)
				progress.GET("/summary", ctrl.Progress.Summary)
			}

			duels := authed.Group("/duels")
			{
				duels.POST("/create", ctrl.Duel.Create)
				duels.POST("/join", ctrl.Duel.Join)
				duels.POST("/:id/submit", ctrl.Duel.Submit)
				duels.GET("/my", ctrl.Duel.ListMy)
			}

			boss := authed.Group("/boss")
			{
				boss.POST("/start", ctrl.Boss.Start)
				boss.POST("/turn", ctrl.Boss.Turn)
			}

			traps := authed.Group("/traps")
			{
				traps.POST("/start", ctrl.Trap.Start)
				traps.POST("/:id/choose", ctrl.Trap.Choose)
				traps.GET("/types", ctrl.Trap.Types)
			}

			habits := authed.Group("/habits")
			{
				habits.GET("", ctrl.Habit.List)
				habits.POST("", ctrl.Habit.Create)
				habits.POST("/:id/check", ctrl.Habit.CheckIn)
				habits.DELETE("/:id", ctrl.Habit.Delete)
			}

			budget := authed.Group("/budget")
			{
				budget.POST("/start", ctrl.Budget.Start)
				budget.POST("/:id/submit", ctrl.Budget.Submit)
			}

			ai := authed.Group("/ai")
			{
				ai.POST("/coach", ctrl.AI.Coach)
				ai.POST("/lesson-regenerate", ctrl.AI.RegenerateLesson)
				ai.POST("/life-example", ctrl.AI.LifeExample)
				ai.POST("/dictionary", ctrl.AI.Dictionary)
			}
		}
	}

	return router
}
