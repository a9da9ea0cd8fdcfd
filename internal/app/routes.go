package app

import (
	"time"

	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/auth"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/cache"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/config"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/handlers"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/identity"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/repo"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/service"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/store"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/tasklist"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine and returns the
// task-list session registry so the app can flush it on shutdown.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) *tasklist.Registry {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	events := identity.NewBroker()
	registry := tasklist.NewRegistry(events.Subscribe())

	sessionStore := auth.NewStore(rdb, 24*time.Hour)
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc, events)
	registerAuthRoutes(api, authHandler)

	// Demo manager: anonymous sessions, in-memory day partitions.
	demoSource := handlers.NewDemoSource(registry)
	demo := api.Group("/demo", auth.DemoSession())
	registerTaskRoutes(demo, handlers.NewTaskHandler(demoSource))

	// Authenticated manager: Postgres-backed, scoped per user, with a
	// Redis day-list cache in front of reads.
	dayCache := cache.NewDayCache(rdb, cfg.Redis.TTL())
	taskStore := store.NewCachedStore(store.NewPGStore(db), dayCache)
	authSource := handlers.NewAuthSource(registry, taskStore)
	protected := api.Group("", auth.RequireSession(sessionStore))
	registerTaskRoutes(protected, handlers.NewTaskHandler(authSource))

	return registry
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Daily Task API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/tasks", h.List)
	api.POST("/tasks", h.Create)
	api.GET("/tasks/past", h.Past)
	api.POST("/tasks/reorder", h.Reorder)
	api.PATCH("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
	api.POST("/tasks/:id/toggle", h.Toggle)
	api.POST("/tasks/:id/move", h.Move)
	api.GET("/dates", h.DateOptions)
	api.GET("/notifications", h.Notifications)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}
