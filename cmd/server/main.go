package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/pagepost/configs"
	"github.com/maheshrc27/pagepost/internal/api/handlers"
	"github.com/maheshrc27/pagepost/internal/api/middleware"
	job "github.com/maheshrc27/pagepost/internal/jobs"
	"github.com/maheshrc27/pagepost/internal/monitoring"
	"github.com/maheshrc27/pagepost/internal/queue"
	"github.com/maheshrc27/pagepost/internal/repository"
	"github.com/maheshrc27/pagepost/internal/service"
	"github.com/maheshrc27/pagepost/internal/telemetry"
	"github.com/maheshrc27/pagepost/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	telemetry.SetupLogger()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(registry)

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error(err.Error(), "path", c.Path())
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	cipher := utils.NewTokenCipher(cfg.SecretKey)

	userRepo := repository.NewUserRepository(db)
	pageRepo := repository.NewFacebookPageRepository(db)
	postRepo := repository.NewScheduledPostRepository(db)
	postLogRepo := repository.NewPostLogRepository(db)

	facebookService := service.NewFacebookService(*cfg, nil)
	pageService := service.NewPageService(facebookService, pageRepo, userRepo, cipher)
	postService := service.NewPostService(postRepo, pageRepo, postLogRepo)
	userService := service.NewUserService(userRepo)

	var archiver job.LogArchiver
	if cfg.R2.Enabled() {
		r2Service, err := service.NewR2Service(context.Background(), cfg.R2)
		if err != nil {
			log.Fatalf("Failed to configure R2: %v", err)
		}
		archiver = r2Service
	}

	publishJob := job.NewPublishPostsJob(postRepo, postLogRepo, facebookService, cipher, metrics, archiver)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	page := handlers.NewPageHandler(pageService, *cfg)
	app.Get("/auth/facebook", page.ConnectFacebook)
	app.Get("/auth/facebook/callback", page.FacebookCallback)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	api.Get("/pages", page.ListPages)
	api.Post("/pages/create", page.CreatePage)
	api.Post("/pages/remove", page.RemovePage)

	post := handlers.NewPostHandler(postService)
	api.Post("/posts/create", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/remove", post.RemovePost)
	api.Get("/posts/logs", post.ListLogs)

	var stopTrigger func()
	switch cfg.TriggerMode {
	case config.TriggerModeHTTP:
		jobs := handlers.NewJobHandler(publishJob)
		app.Post("/jobs/publish-posts", authMiddleware.JobKey(), jobs.PublishPosts)
		stopTrigger = func() {}

	case config.TriggerModeQueue:
		stopTrigger = startQueue(cfg, publishJob)

	default:
		c := cron.New()
		if err := c.AddFunc(cfg.PublishSchedule, publishJob.PublishDuePosts); err != nil {
			log.Fatalf("Invalid publish schedule %q: %v", cfg.PublishSchedule, err)
		}
		c.Start()
		stopTrigger = c.Stop
	}
	slog.Info("publish trigger started", "mode", cfg.TriggerMode, "schedule", cfg.PublishSchedule)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db, stopTrigger)
}

func startQueue(cfg *config.Config, publishJob *job.PublishPostsJob) func() {
	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}

	scheduler := asynq.NewScheduler(redisConn, &asynq.SchedulerOpts{})
	if _, err := queue.RegisterPeriodic(scheduler, cfg.PublishSchedule, uniqueWindow(cfg.PublishSchedule)); err != nil {
		log.Fatalf("Could not register publish task: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Could not start Asynq scheduler: %v", err)
	}

	server := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: 1,
	})

	log.Println("Starting the Asynq server...")
	if err := server.Start(queue.NewQueue(publishJob).Mux()); err != nil {
		log.Fatalf("Could not start Asynq server: %v", err)
	}

	return func() {
		scheduler.Shutdown()
		server.Shutdown()
	}
}

// uniqueWindow is the gap between two ticks of the schedule, or one minute
// when the spec cannot be read as a five-field asynq schedule.
func uniqueWindow(spec string) time.Duration {
	window, err := queue.ScheduleInterval(spec, time.Now())
	if err != nil {
		slog.Warn("falling back to a one minute unique window", "schedule", spec, "error", err)
		return time.Minute
	}
	return window
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB, stopTrigger func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	stopTrigger()

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
