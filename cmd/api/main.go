package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fitlink/internal/config"
	"fitlink/internal/database"
	"fitlink/internal/middleware"
	"fitlink/internal/modules/auth"
	"fitlink/internal/modules/challenge"
	"fitlink/internal/modules/chat"
	"fitlink/internal/modules/health"
	"fitlink/internal/modules/market"
	"fitlink/internal/modules/notification"
	"fitlink/internal/modules/profile"
	jwtsvc "fitlink/internal/pkg/jwt"
	"fitlink/internal/repository"
)

func main() {
	// Missing .env is fine; the environment may be set by the host.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewHealthLogRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	listingRepo := repository.NewListingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	notifyManager := notification.NewManager(notification.Config{
		RefreshInterval:  cfg.NotifyRefreshInterval,
		GenerateInterval: cfg.NotifyGenerateInterval,
		GenerateChance:   cfg.NotifyGenerateChance,
	})
	notifyHub := notification.NewHub()
	notifyHandler := notification.NewHandler(notifyManager, notifyHub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	profileService := profile.NewService(userRepo)
	profileHandler := profile.NewHandler(profileService)

	healthService := health.NewService(logRepo, goalRepo, cfg.TrendThreshold, cfg.StatsFetchBudget)
	healthHandler := health.NewHandler(healthService)

	chatHub := chat.NewHub()
	chatService := chat.NewService(groupRepo, messageRepo, chatHub, notifyManager)
	chatHandler := chat.NewHandler(chatService, chatHub)

	challengeService := challenge.NewService(challengeRepo, healthService, notifyManager)
	challengeHandler := challenge.NewHandler(challengeService)

	marketService := market.NewService(listingRepo)
	marketHandler := market.NewHandler(marketService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			profileHandler.RegisterRoutes(protected)
			healthHandler.RegisterRoutes(protected)
			notifyHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			challengeHandler.RegisterRoutes(protected)
			marketHandler.RegisterRoutes(protected)
		}
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("listening on", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("server shutdown:", err)
	}

	// Stop per-user notification timers and drop open sockets last so
	// in-flight requests finish against live stores.
	notifyManager.Close()
	notifyHub.Close()
	chatHub.Close()
}
