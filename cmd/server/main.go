package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "postpilot/configs"
	"postpilot/internal/api/handlers"
	"postpilot/internal/api/middleware"
	"postpilot/internal/dispatch"
	job "postpilot/internal/jobs"
	"postpilot/internal/repository"
	"postpilot/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	ctx := context.Background()
	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to prepare database schema: %v", err)
	}

	postRepo := repository.NewPostRepository(db)
	accountRepo := repository.NewPlatformAccountRepository(db)
	outcomeRepo := repository.NewPublishOutcomeRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	if err := accountRepo.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed platform registry: %v", err)
	}

	mediaService := service.NewMediaService(*cfg)
	postService := service.NewPostService(postRepo, accountRepo, outcomeRepo, mediaService)
	platformService := service.NewPlatformService(accountRepo)
	captionService := service.NewCaptionService(*cfg)
	authService := service.NewAuthService(*cfg, sessionRepo)
	publisher := service.NewStubPublisher(accountRepo)

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-Auth-Token",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	auth := handlers.NewAuthHandler(authService)
	app.Post("/api/login", auth.Login)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	api.Post("/logout", auth.Logout)

	caption := handlers.NewCaptionHandler(captionService)
	api.Post("/generate-caption", caption.GenerateCaption)

	post := handlers.NewPostHandler(postService)
	api.Post("/schedule", post.CreatePost)
	api.Get("/schedule", post.ListPosts)
	api.Put("/schedule/:id", post.UpdatePost)
	api.Delete("/schedule/:id", post.DeletePost)
	api.Get("/schedule/:id/outcomes", post.PostOutcomes)

	account := handlers.NewAccountHandler(platformService)
	api.Get("/accounts", account.ListAccounts)
	api.Post("/accounts", account.UpsertAccount)

	// cron jobs
	dispatcher := dispatch.NewDispatcher(postRepo, outcomeRepo, publisher, cfg.PublishTimeout, cfg.Concurrency)
	sessionCleanup := job.NewSessionCleanupJob(sessionRepo)

	c := cron.New()
	c.AddFunc(cfg.DispatchEvery, dispatcher.Tick)
	c.AddFunc("@every 0h10m0s", sessionCleanup.Sweep)
	c.Start()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
