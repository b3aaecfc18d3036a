package main // Entry point package

import (
	"context"       // context for startup-bound operations
	"log"           // Logging library
	"strconv"       // parse the SMTP port
	"time"          // timeouts for startup tasks

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/thuwalaco/thuwala-site/internal/config"     // Internal config loader
	"github.com/thuwalaco/thuwala-site/internal/database"   // MySQL pool and migrations
	"github.com/thuwalaco/thuwala-site/internal/handler"    // HTTP handlers
	"github.com/thuwalaco/thuwala-site/internal/mailer"     // SMTP notifications
	"github.com/thuwalaco/thuwala-site/internal/middleware" // cache and rate limit middleware
	"github.com/thuwalaco/thuwala-site/internal/queue"      // background consumer
	"github.com/thuwalaco/thuwala-site/internal/repository" // DB repositories
	"github.com/thuwalaco/thuwala-site/internal/router"     // route registration
	"github.com/thuwalaco/thuwala-site/internal/seed"       // startup reconciliation
	"github.com/thuwalaco/thuwala-site/internal/storage"    // MinIO uploads
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err) // Without a database nothing works
	}
	defer db.Close()

	// Schema setup is tolerated to fail: an operator may run the DDL out of
	// band, and the reconciler re-checks the parts it depends on.
	if err := database.RunMigrations(db, "migrations/001_create_tables.sql"); err != nil {
		log.Printf("migrations: %v (continuing)", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	services := repository.NewServiceRepo(db)
	portfolio := repository.NewPortfolioRepo(db)
	ads := repository.NewAdRepo(db)
	messages := repository.NewContactRepo(db)
	schema := repository.NewSchemaRepo(db)

	// Bring the database to the canonical baseline before serving.
	rec := &seed.Reconciler{
		Schema:     schema,
		Users:      users,
		Services:   services,
		Portfolio:  portfolio,
		Ads:        ads,
		Tokens:     tokens,
		BcryptCost: cfg.BcryptCost,
	}
	recCtx, recCancel := context.WithTimeout(context.Background(), 60*time.Second)
	rec.Run(recCtx)
	recCancel()

	mailPort, _ := strconv.Atoi(cfg.Mail.Port)
	mail := mailer.New(cfg.Mail.Host, mailPort, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.AdminTo)
	if !mail.Enabled() {
		log.Println("mailer: no SMTP credentials, email sending disabled")
	}

	// Uploads are optional: without MinIO the admin can still manage
	// content, just not attach new images.
	var uploads *storage.Uploader
	if cfg.MinIO.Endpoint != "" {
		upCtx, upCancel := context.WithTimeout(context.Background(), 10*time.Second)
		uploads, err = storage.NewUploader(upCtx, cfg.MinIO)
		upCancel()
		if err != nil {
			log.Printf("storage: %v (uploads disabled)", err)
			uploads = nil
		}
	}

	// Redis backs the public page cache and the contact form rate
	// limiter; both degrade to pass-through when it is unreachable.
	rdb := config.NewRedisClient()
	var cacheMW, limitMW echo.MiddlewareFunc
	if rdb != nil {
		cacheMW = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
		limitMW = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	}

	// Background consumer: logs contact events and notifies the admin.
	go func() {
		if err := queue.StartContactConsumer(mail); err != nil {
			log.Printf("contact-consumer: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterPublic(e,
		handler.NewPublicHandler(services, portfolio, ads),
		handler.NewContactHandler(cfg, messages),
		cacheMW, limitMW)
	router.RegisterAdmin(e,
		handler.NewAuthHandler(cfg, users, tokens, mail),
		handler.NewAdminMessageHandler(messages, services, portfolio, ads),
		handler.NewAdminServiceHandler(services),
		handler.NewAdminPortfolioHandler(portfolio, uploads),
		handler.NewAdminAdHandler(ads, uploads),
		handler.NewAdminUserHandler(cfg, users),
		cfg.JWTSecret)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
