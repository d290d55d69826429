// Package router собирает gin-приложение: middleware, документацию, метрики и маршруты API.
package router

import (
	"time"

	_ "school_achievements/docs"
	"school_achievements/internal/auth"
	"school_achievements/internal/config"
	"school_achievements/internal/handlers"
	"school_achievements/internal/metrics"
	"school_achievements/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func New(cfg config.ServerConfig, h *handlers.Handler, tokens *auth.TokenManager, logger zerolog.Logger) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestID(logger),
		RequestLogging(logger),
		metrics.GinMiddleware(),
	)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: !allowsAll(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", h.Health)

	authn := auth.AuthMiddleware(tokens)
	active := auth.RequireActive()
	teacher := auth.RequireRole(models.RoleTeacher, models.RoleAdmin)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/verify-email", h.VerifyEmail)
		authGroup.POST("/resend-verification", h.ResendVerification)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/google", h.GoogleLogin)
		authGroup.GET("/me", authn, active, h.Me)
	}

	api.GET("/users/me", authn, active, h.UsersMe)
	api.GET("/users/:id", authn, active, h.UsersMe)

	student := api.Group("/student", authn, auth.RequireRole(models.RoleStudent))
	{
		student.GET("", h.StudentMe)
		student.GET("/project_office", h.StudentProjectOffice)
		student.GET("/record-book/marks", h.StudentRecordBook)
	}

	eventTypes := api.Group("/event-types", authn)
	{
		eventTypes.GET("/all_event_types", active, h.ListEventTypes)
		eventTypes.GET("/leader/:leader_id", teacher, h.EventTypesByLeader)
		eventTypes.GET("/:id", teacher, h.GetEventType)
		eventTypes.POST("", teacher, h.CreateEventType)
		eventTypes.PUT("/:id", teacher, h.UpdateEventType)
		eventTypes.POST("/:id/archive", teacher, h.ArchiveEventType)
		eventTypes.DELETE("/:id", auth.RequireRole(models.RoleAdmin), h.DeleteEventType)
	}

	events := api.Group("/events", authn)
	{
		events.GET("/all_events", active, h.ListEvents)
		events.GET("/:id", active, h.GetEvent)
		events.POST("", teacher, h.CreateEvent)
	}

	eventLeader := api.Group("/event-leader", authn, teacher)
	{
		eventLeader.GET("/event_types", h.LeaderEventTypes)
		eventLeader.GET("/events", h.LeaderEvents)
	}

	groups := api.Group("/groups", authn, teacher)
	{
		groups.GET("/all", h.ListGroups)
		groups.GET("/for_group_leader", h.LedGroups)
		groups.GET("/for_group_leader/:group_id", h.GroupStudents)
		groups.GET("/:group_id", h.GetGroupCard)
	}

	groupLeader := api.Group("/group-leader", authn, teacher)
	{
		groupLeader.GET("/event_types", h.GroupLeaderEventTypes)
		groupLeader.GET("/events", h.GroupLeaderEvents)
		groupLeader.GET("/students", h.GroupLeaderStudents)
		groupLeader.GET("/:group_id", h.GroupLeaderOf)
	}

	journal := api.Group("/journal", authn, teacher)
	{
		journal.GET("/events/:event_type_id/stages", h.EventTypeStages)
		if h.Hub != nil {
			journal.GET("/ws/:event_id", h.Hub.Handler)
		}
		journal.GET("/:event_id/:group_id", h.ClassJournal)
		journal.POST("/:event_id/:student_id/:stage_id", h.SetResult)
		journal.DELETE("/:event_id/:student_id/:stage_id", h.DeleteResult)
	}

	office := api.Group("/project-office", authn, active)
	{
		office.GET("/journal/:event_id", h.OfficeJournal)
		office.GET("/events", h.OfficeEvents)
		office.GET("/groups", h.OfficeGroups)
		office.GET("/pivot-data-optimized", h.OfficePivot)
		office.POST("/change-events-project", h.ChangeOfficeEvents)
		office.POST("/change-event-imp/:event_id", h.ChangeEventImportance)
	}

	admin := api.Group("/admin", authn, auth.RequireRole(models.RoleAdmin))
	{
		admin.POST("/sync_teachers", h.SyncTeachers)
		admin.POST("/sync_students", h.SyncStudents)
		admin.GET("/all_event_types", h.AdminListEventTypes)
		admin.GET("/email-logs", h.EmailLogs)
	}

	return r
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
