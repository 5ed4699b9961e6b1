package main // Entry point package

import (
	"context" // startup contexts for migrations and S3 client
	"log"     // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/plastiside/plastiside/internal/config"     // Internal config loader
	"github.com/plastiside/plastiside/internal/database"   // MySQL pool + migrations
	"github.com/plastiside/plastiside/internal/handler"    // HTTP handlers
	"github.com/plastiside/plastiside/internal/middleware" // rate limiting and caching
	"github.com/plastiside/plastiside/internal/queue"      // verification audit consumer
	"github.com/plastiside/plastiside/internal/repository" // DB repositories
	"github.com/plastiside/plastiside/internal/router"     // Internal router setup
	"github.com/plastiside/plastiside/internal/storage"    // blob storage drivers
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	// Redis is optional: without it the server runs unthrottled and uncached.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	blobs, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	users := repository.NewUserRepo(db)
	submissions := repository.NewSubmissionRepo(db)
	settings := repository.NewSettingsRepo(db)
	chatbot := repository.NewChatbotRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	profileH := handler.NewProfileHandler(users, blobs)
	submissionH := handler.NewSubmissionHandler(cfg, submissions, blobs)
	adminH := handler.NewAdminHandler(users, submissions, settings, blobs)
	chatbotH := handler.NewChatbotHandler(chatbot)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// The response cache is mounted per-route on the public branding read
	// only; analytics and anything authenticated stay uncached.
	var cacheMW echo.MiddlewareFunc
	if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled && rdb != nil {
		cacheMW = middleware.NewRedisCache(cacheCfg, rdb)
	}

	router.RegisterRoutes(e) // Register application routes
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, adminH, chatbotH, cacheMW)
	router.RegisterUser(e, profileH, submissionH, users, cfg.JWTSecret)
	router.RegisterVerifier(e, submissionH, users, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, submissionH, chatbotH, users, cfg.JWTSecret)

	// Serve uploads directly when they live on local disk.  With the s3
	// driver the stored references point at the bucket instead.
	if cfg.StorageDriver == "local" {
		e.Static("/"+storage.DirAvatars, cfg.PublicDir+"/"+storage.DirAvatars)
		e.Static("/"+storage.DirSubmissions, cfg.PublicDir+"/"+storage.DirSubmissions)
		e.Static("/"+storage.DirLogos, cfg.PublicDir+"/"+storage.DirLogos)
	}

	// Verification audit trail consumer; reconnects on broker failures.
	go func() {
		if err := queue.StartVerificationConsumer(); err != nil {
			log.Printf("verification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

// newBlobStore picks the upload driver from configuration.
func newBlobStore(cfg config.Config) (storage.BlobStore, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewS3Store(context.Background(), storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return storage.NewLocalStore(cfg.PublicDir), nil
}
