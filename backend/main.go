package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/shopspring/decimal"

	"iqscaler/backend/cache"
	"iqscaler/backend/config"
	"iqscaler/backend/gateway"
	"iqscaler/backend/mailer"
	"iqscaler/backend/middleware"
	"iqscaler/backend/routes"
	"iqscaler/backend/services"
	"iqscaler/backend/storage"
	"iqscaler/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger(utils.LoggerConfig{
		Format:       os.Getenv("LOG_FORMAT"),
		EnableColors: !cfg.IsProduction(),
	})

	ctx := context.Background()

	// Initialize database
	st, err := utils.InitDB(ctx, cfg)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}
	defer st.Close(ctx)

	var m mailer.Mailer = mailer.LogMailer{Logger: logger}
	if cfg.SMTPConfigured() {
		m = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailFrom)
	}

	var blobs storage.BlobStore
	if cfg.BlobDriver == config.BlobGCS {
		gcs, err := storage.NewGCSStore(ctx, cfg.GCSBucket)
		if err != nil {
			logger.Fatalf("Error initializing image storage: %v", err)
		}
		defer gcs.Close()
		blobs = gcs
	} else {
		fs, err := storage.NewFSStore(cfg.UploadDir, routes.UploadsPrefix)
		if err != nil {
			logger.Fatalf("Error initializing image storage: %v", err)
		}
		blobs = fs
	}

	var lb cache.LeaderboardCache = cache.Nop{}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer client.Close()
		lb = cache.NewRedisLeaderboard(client, cfg.LeaderboardTTL)
	}

	svc := services.New(services.Deps{
		Store:   st,
		Gateway: gateway.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		Mailer:  m,
		Blobs:   blobs,
		Cache:   lb,
		Config:  cfg,
		Logger:  logger,
	})

	// Payment amounts go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// Create Fiber app
	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler(cfg, logger)})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, svc, cfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Println("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	// Start server
	logger.Printf("server listening on :%s (%s, db=%s)", cfg.ServerPort, cfg.Env, cfg.DBDriver)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Fatalf("server: %v", err)
	}
}
