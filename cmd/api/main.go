package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/campusbooks/campusbooks-backend/api/routes"
	"github.com/campusbooks/campusbooks-backend/internal/auth"
	"github.com/campusbooks/campusbooks-backend/internal/chat"
	"github.com/campusbooks/campusbooks-backend/internal/deals"
	"github.com/campusbooks/campusbooks-backend/internal/listings"
	"github.com/campusbooks/campusbooks-backend/internal/users"
	"github.com/campusbooks/campusbooks-backend/internal/watchlist"
	"github.com/campusbooks/campusbooks-backend/pkg/auth/session"
	"github.com/campusbooks/campusbooks-backend/pkg/config"
	"github.com/campusbooks/campusbooks-backend/pkg/db"
	"github.com/campusbooks/campusbooks-backend/pkg/logger"
	"github.com/campusbooks/campusbooks-backend/pkg/metrics"
	"github.com/campusbooks/campusbooks-backend/pkg/migrate"
	"github.com/campusbooks/campusbooks-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	var dbClient *db.Client
	if cfg.FeatureFlags.UseSQLite {
		dbClient, err = db.NewSQLite(context.Background(), "", logg)
	} else {
		dbClient, err = db.New(context.Background(), cfg.DB, logg)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	userRepo := users.NewRepository(conn)
	listingRepo := listings.NewRepository(conn)
	watchlistRepo := watchlist.NewRepository(conn)
	chatRepo := chat.NewRepository(conn)
	dealRepo := deals.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}
	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:                 dbClient,
		SessionManager:     sessionManager,
		PasswordConfig:     cfg.Password,
		RegistrationConfig: cfg.Registration,
		JWTConfig:          cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}
	listingService, err := listings.NewService(listings.ServiceParams{Repo: listingRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create listing service", err)
		os.Exit(1)
	}
	watchlistService, err := watchlist.NewService(watchlist.ServiceParams{
		Repo:     watchlistRepo,
		Listings: listingRepo,
		Users:    userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create watchlist service", err)
		os.Exit(1)
	}
	chatService, err := chat.NewService(chat.ServiceParams{
		DB:       dbClient,
		Repo:     chatRepo,
		Listings: listingRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}
	dealService, err := deals.NewService(deals.ServiceParams{
		DB:       dbClient,
		Repo:     dealRepo,
		Listings: listingRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create deal service", err)
		os.Exit(1)
	}
	profileService, err := users.NewService(users.ServiceParams{
		Users:     userRepo,
		Listings:  listingRepo,
		Deals:     dealService,
		Watchlist: watchlistService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	router := routes.NewRouter(routes.Dependencies{
		Config:          cfg,
		Logger:          logg,
		DB:              dbClient,
		Redis:           redisClient,
		Metrics:         httpMetrics,
		SessionManager:  sessionManager,
		AuthService:     authService,
		RegisterService: registerService,
		ProfileService:  profileService,
		ListingService:  listingService,
		WatchlistSvc:    watchlistService,
		ChatService:     chatService,
		DealService:     dealService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}

	closeErr := multierr.Combine(
		redisClient.Close(),
		dbClient.Close(),
	)
	if closeErr != nil {
		logg.Error(ctx, "error closing dependencies", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
