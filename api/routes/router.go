package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusbooks/campusbooks-backend/api/controllers"
	"github.com/campusbooks/campusbooks-backend/api/middleware"
	authsvc "github.com/campusbooks/campusbooks-backend/internal/auth"
	chatsvc "github.com/campusbooks/campusbooks-backend/internal/chat"
	dealsvc "github.com/campusbooks/campusbooks-backend/internal/deals"
	listingsvc "github.com/campusbooks/campusbooks-backend/internal/listings"
	usersvc "github.com/campusbooks/campusbooks-backend/internal/users"
	watchsvc "github.com/campusbooks/campusbooks-backend/internal/watchlist"
	"github.com/campusbooks/campusbooks-backend/pkg/auth/session"
	"github.com/campusbooks/campusbooks-backend/pkg/config"
	"github.com/campusbooks/campusbooks-backend/pkg/logger"
	"github.com/campusbooks/campusbooks-backend/pkg/metrics"
	"github.com/campusbooks/campusbooks-backend/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      controllers.Pinger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics

	SessionManager  session.AccessSessionChecker
	AuthService     authsvc.Service
	RegisterService authsvc.RegisterService
	ProfileService  usersvc.Service
	ListingService  listingsvc.Service
	WatchlistSvc    watchsvc.Service
	ChatService     chatsvc.Service
	DealService     dealsvc.Service
}

// NewRouter assembles the HTTP surface.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var cache controllers.Pinger
	if deps.Redis != nil {
		cache = deps.Redis
	}
	r.Get("/healthz", controllers.Health(deps.DB, cache, logg))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
			Post("/register", controllers.Register(deps.RegisterService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.Login(deps.AuthService, logg))
		r.Post("/refresh", controllers.Refresh(deps.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Post("/logout", controllers.Logout(deps.AuthService, logg))
			r.Get("/user/{id}", controllers.GetProfile(deps.ProfileService, logg))
			r.Patch("/user/{id}/watchlist", controllers.UpdateWatchlist(deps.WatchlistSvc, logg))
		})
	})

	r.Route("/api/listings", func(r chi.Router) {
		r.Get("/", controllers.ListListings(deps.ListingService, logg))
		r.Get("/{id}", controllers.GetListing(deps.ListingService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Post("/", controllers.CreateListing(deps.ListingService, logg))
			r.Patch("/{id}", controllers.UpdateListing(deps.ListingService, logg))
			r.Delete("/{id}", controllers.DeleteListing(deps.ListingService, logg))
		})
	})

	r.Route("/api/chat", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Get("/threads/{userId}", controllers.ListThreads(deps.ChatService, logg))
		r.Get("/threads/{threadId}/messages/{userId}", controllers.ListMessages(deps.ChatService, logg))
		r.Post("/threads/{threadId}/messages/{userId}", controllers.SendMessage(deps.ChatService, logg))
		r.Post("/create/{userId}", controllers.CreateThread(deps.ChatService, logg))
		r.Get("/find/{userId}/{listingId}", controllers.FindThread(deps.ChatService, logg))
	})

	r.Route("/api/deals", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Post("/", controllers.CreateDeal(deps.DealService, logg))
		r.Get("/{id}", controllers.GetDeal(deps.DealService, logg))
		r.Patch("/{id}/status", controllers.UpdateDealStatus(deps.DealService, logg))
	})

	return r
}
