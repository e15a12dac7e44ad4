package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobportal/internal/config"
	"jobportal/internal/domain"
	"jobportal/internal/handler"
	"jobportal/internal/middleware"
	"jobportal/internal/repository"
	"jobportal/internal/service"
	"jobportal/internal/storage"
	"jobportal/pkg/database"
	"jobportal/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	if cfg.Environment == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file storage")
	}

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	cvRepo := repository.NewCVRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient)
	dashboardCache := repository.NewDashboardCache(redisClient, cfg.DashboardCacheTTL)

	authService := service.NewAuthService(cfg, userRepo, sessionRepo)
	jobService := service.NewJobService(jobRepo, userRepo)
	appService := service.NewApplicationService(appRepo, jobRepo)
	adminService := service.NewAdminService(userRepo, jobRepo, appRepo, sessionRepo, dashboardCache)
	seekerService := service.NewJobSeekerService(userRepo, cvRepo, store)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("Failed to seed admin account")
	}
	cancel()

	router := setupRouter(cfg, db, redisClient, sessionRepo, store,
		handler.NewAuthHandler(authService),
		handler.NewJobHandler(jobService),
		handler.NewApplicationHandler(appService),
		handler.NewAdminHandler(adminService),
		handler.NewJobSeekerHandler(seekerService),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server startup failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("Server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func setupRouter(
	cfg *config.Config,
	db *sql.DB,
	redisClient *goredis.Client,
	sessions domain.SessionStore,
	store *storage.LocalStore,
	authHandler *handler.AuthHandler,
	jobHandler *handler.JobHandler,
	appHandler *handler.ApplicationHandler,
	adminHandler *handler.AdminHandler,
	seekerHandler *handler.JobSeekerHandler,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.FrontendURL))

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "up"
		if err := db.PingContext(ctx); err != nil {
			dbStatus = "down"
		}
		redisStatus := "up"
		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisStatus = "down"
		}

		status, overall := http.StatusOK, "ok"
		if dbStatus != "up" || redisStatus != "up" {
			status, overall = http.StatusServiceUnavailable, "degraded"
		}
		c.JSON(status, gin.H{
			"status":   overall,
			"time":     time.Now(),
			"database": dbStatus,
			"redis":    redisStatus,
		})
	})
	router.Static("/uploads", store.BaseDir())

	authenticated := middleware.Auth(cfg.JWTSecret, sessions)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/check-email/:email", authHandler.CheckEmail)
			auth.GET("/check-username/:username", authHandler.CheckUsername)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListActive)
			jobs.GET("/search", jobHandler.Search)
			jobs.GET("/:id", jobHandler.GetByID)

			employer := jobs.Group("", authenticated, middleware.RequireRole(domain.RoleEmployer))
			{
				employer.POST("", jobHandler.Create)
				employer.PUT("/:id", jobHandler.Update)
				employer.DELETE("/:id", jobHandler.Delete)
				employer.PATCH("/:id/toggle-status", jobHandler.ToggleStatus)
				employer.GET("/employer/my-jobs", jobHandler.MyJobs)
			}
		}

		applications := api.Group("/applications", authenticated)
		{
			applications.GET("/:id", appHandler.GetByID)

			seeker := applications.Group("", middleware.RequireRole(domain.RoleJobSeeker))
			{
				seeker.POST("", appHandler.Apply)
				seeker.GET("/my-applications", appHandler.MyApplications)
				seeker.GET("/status/:status", appHandler.MyApplicationsByStatus)
				seeker.DELETE("/:id", appHandler.Withdraw)
				seeker.GET("/check/:jobId", appHandler.CheckApplied)
			}

			employer := applications.Group("", middleware.RequireRole(domain.RoleEmployer))
			{
				employer.GET("/job/:jobId", appHandler.ByJob)
				employer.GET("/employer/my-applications", appHandler.EmployerApplications)
				employer.PATCH("/:id/status", appHandler.UpdateStatus)
			}
		}

		seekers := api.Group("/job-seekers", authenticated, middleware.RequireRole(domain.RoleJobSeeker))
		{
			seekers.GET("/profile", seekerHandler.GetProfile)
			seekers.PUT("/profile", seekerHandler.UpdateProfile)
			seekers.POST("/profile/picture", seekerHandler.UploadProfilePicture)
			seekers.GET("/cv", seekerHandler.GetCV)
			seekers.PUT("/cv", seekerHandler.UpdateCV)
			seekers.POST("/cv/upload", seekerHandler.UploadCVFile)
			seekers.POST("/cv/education", seekerHandler.AddEducation)
			seekers.POST("/cv/work-experience", seekerHandler.AddWorkExperience)
			seekers.POST("/cv/certification", seekerHandler.AddCertification)
		}

		admin := api.Group("/admin", authenticated, middleware.RequireRole(domain.RoleAdmin))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/employers/pending", adminHandler.PendingEmployers)
			admin.PATCH("/employers/:id/approve", adminHandler.ApproveEmployer)
			admin.PATCH("/employers/:id/reject", adminHandler.RejectEmployer)
			admin.GET("/jobs/pending", adminHandler.PendingJobs)
			admin.PATCH("/jobs/:id/approve", adminHandler.ApproveJob)
			admin.PATCH("/jobs/:id/deactivate", adminHandler.DeactivateJob)
			admin.DELETE("/jobs/:id", adminHandler.DeleteJob)
			admin.PATCH("/users/:id/enable", adminHandler.EnableUser)
			admin.PATCH("/users/:id/disable", adminHandler.DisableUser)
			admin.PATCH("/users/:id/lock", adminHandler.LockUser)
			admin.PATCH("/users/:id/unlock", adminHandler.UnlockUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}

	return router
}
