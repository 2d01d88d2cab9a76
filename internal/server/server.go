package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/iudanet/starmap/internal/server/handlers"
	"github.com/iudanet/starmap/internal/server/middleware"
	"github.com/iudanet/starmap/internal/server/service"
	"github.com/iudanet/starmap/internal/server/session"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host               string
	PublicDir          string
	Version            string
	CORSOrigins        []string
	Port               int
	LoginRatePerMinute int
	ShutdownTimeout    time.Duration
}

// Services собирает зависимости обработчиков
type Services struct {
	DB      handlers.Pinger
	Codec   *session.Codec
	Auth    *service.Auth
	Users   *service.Users
	Graph   *service.Graph
	Catalog *service.Catalog
	Admin   *service.Admin
}

// Server is the HTTP server of the map: API, pages and health check.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	cfg        Config
}

// New создает сервер и регистрирует все маршруты
func New(cfg Config, svc Services, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}
	s.router = s.routes(svc)
	return s
}

func (s *Server) routes(svc Services) chi.Router {
	authHandler := handlers.NewAuthHandler(s.logger, svc.Auth, svc.Codec.TTL())
	graphHandler := handlers.NewGraphHandler(s.logger, svc.Graph)
	catalogHandler := handlers.NewCatalogHandler(s.logger, svc.Catalog)
	adminHandler := handlers.NewAdminHandler(s.logger, svc.Users, svc.Admin)
	healthHandler := handlers.NewHealthHandler(s.logger, svc.DB, s.cfg.Version)
	pages := handlers.NewPageHandler(s.logger, s.cfg.PublicDir)

	apiAuth := middleware.APIAuth(s.logger, svc.Codec)
	pageAuth := middleware.PageAuth(s.logger, svc.Codec)

	r := chi.NewRouter()

	// Неизвестные маршруты никогда не обслуживаются, только редирект на вход.
	// Обработчики задаются до Route, чтобы подмаршрутизаторы их унаследовали.
	r.NotFound(handlers.RedirectToLogin)
	r.MethodNotAllowed(handlers.RedirectToLogin)

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.LoggingWithSkip(s.logger, []string{"/healthz"}))
	r.Use(middleware.RecoveryMiddleware(s.logger))
	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Публичные маршруты
	r.Get("/healthz", healthHandler.Health)
	r.Get("/login", pages.Page("login.html"))
	r.Get("/login.html", pages.Page("login.html"))

	r.Route("/api", func(r chi.Router) {
		r.With(s.loginLimiter()...).Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(apiAuth)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/me", authHandler.UpdateMe)

			r.Get("/resources", catalogHandler.List)

			r.Get("/markers", graphHandler.ListMarkers)
			r.Post("/markers", graphHandler.CreateMarker)
			r.Get("/markers/{id}", graphHandler.GetMarker)
			r.Put("/markers/{id}", graphHandler.UpdateMarker)
			r.Delete("/markers/{id}", graphHandler.DeleteMarker)

			r.Get("/modules", graphHandler.ListModules)
			r.Post("/modules", graphHandler.CreateModule)
			r.Get("/modules/{id}", graphHandler.GetModule)
			r.Put("/modules/{id}", graphHandler.UpdateModule)
			r.Delete("/modules/{id}", graphHandler.DeleteModule)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(s.logger))

				r.Get("/users", adminHandler.ListUsers)
				r.Post("/users", adminHandler.CreateUser)
				r.Put("/users/{id}/password", adminHandler.ResetPassword)
				r.Put("/users/{id}/role", adminHandler.ChangeRole)
				r.Delete("/users/{id}", adminHandler.DeleteUser)

				r.Get("/resources", catalogHandler.List)
				r.Post("/resources", catalogHandler.Create)
				r.Put("/resources/{id}", catalogHandler.Update)

				r.Get("/logs", adminHandler.Logs)

				r.Post("/reset/map", adminHandler.ResetMap)
				r.Post("/reset/players", adminHandler.ResetPlayers)
				r.Post("/reset/logs", adminHandler.ResetLogs)
				r.Post("/reset/all", adminHandler.ResetAll)
			})
		})
	})

	// Страницы
	r.Group(func(r chi.Router) {
		r.Use(pageAuth)

		r.Get("/", pages.Page("index.html"))
		r.Get("/index.html", pages.Page("index.html"))
		r.Get("/map_starrupture.png", pages.Page("map_starrupture.png"))

		r.With(middleware.PageAdmin(s.logger)).Get("/admin.html", pages.Page("admin.html"))
	})

	return r
}

func (s *Server) loginLimiter() []func(http.Handler) http.Handler {
	if s.cfg.LoginRatePerMinute <= 0 {
		return nil
	}
	return []func(http.Handler) http.Handler{
		middleware.RateLimit(s.logger, s.cfg.LoginRatePerMinute, time.Minute),
	}
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled.
// It then performs a graceful shutdown, draining in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
