package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forma-backend/internal/config"
	"forma-backend/internal/database"
	"forma-backend/internal/handlers"
	"forma-backend/internal/middleware"
	"forma-backend/internal/repository"
	"forma-backend/internal/router"
	"forma-backend/internal/services"
	"forma-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting ForMa Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	childRepo := repository.NewChildRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)
	foodRepo := repository.NewFoodRepo(pool)
	diaperRepo := repository.NewDiaperRepo(pool)
	deviceEventRepo := repository.NewDeviceEventRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	authService := services.NewAuthService(userRepo, redisClients.Tokens, jwtAuth)
	childService := services.NewChildService(childRepo, deviceEventRepo)
	userService := services.NewUserService(userRepo)
	sessionService := services.NewSessionService(sessionRepo, childRepo)
	foodService := services.NewFoodService(foodRepo, childRepo)
	diaperService := services.NewDiaperService(diaperRepo, childRepo)
	timelineService := services.NewTimelineService(foodRepo, diaperRepo, sessionRepo)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	childHandler := handlers.NewChildHandler(childService)
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	foodHandler := handlers.NewFoodHandler(foodService)
	diaperHandler := handlers.NewDiaperHandler(diaperService)
	timelineHandler := handlers.NewTimelineHandler(timelineService)

	// ──── Step 5: Start Alert Scheduler ────
	alertScheduler := services.NewAlertScheduler(
		diaperService,
		diaperRepo,
		userRepo,
		emailService,
		redisClients.PubSub,
		time.Duration(cfg.AlertPollMinutes)*time.Minute,
	)
	alertScheduler.Start()

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		childHandler,
		userHandler,
		sessionHandler,
		foodHandler,
		diaperHandler,
		timelineHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		alertScheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ ForMa Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
