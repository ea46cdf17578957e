package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ems-dash/apiserver/config"
	"github.com/ems-dash/apiserver/internal/db"
	"github.com/ems-dash/apiserver/internal/handlers"
	"github.com/ems-dash/apiserver/internal/services"
	"github.com/ems-dash/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	reportRepo := store.NewReportRepository(dbConn)

	userService := services.NewUserService(userRepo)
	reportService := services.NewReportService(reportRepo)

	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT secret is required")
	}
	session := handlers.SessionConfig{
		Secret:     []byte(secret),
		Production: cfg.Production,
	}

	authHandler := handlers.NewAuthHandler(userService, session)
	reportHandler := handlers.NewReportHandler(reportService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/ping", reportHandler.Ping)
	router.Route("/api", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/check-auth", authHandler.CheckAuth)
		r.Get("/get-data-meter-wise", reportHandler.MeterWise)
		r.With(handlers.RequireSession(session)).Get("/ems-dashboard/data", reportHandler.Dashboard)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8040
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
