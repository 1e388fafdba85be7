package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pius706975/poolseek-be/config"
	"github.com/pius706975/poolseek-be/internal/db"
	"github.com/pius706975/poolseek-be/internal/handlers"
	"github.com/pius706975/poolseek-be/internal/mail"
	"github.com/pius706975/poolseek-be/internal/mq"
	"github.com/pius706975/poolseek-be/internal/services"
	"github.com/pius706975/poolseek-be/internal/storage"
	"github.com/pius706975/poolseek-be/internal/store"
	"github.com/pius706975/poolseek-be/internal/token"
)

// Server wraps the HTTP server and its shared resources.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	queue      *mq.MQ
}

// New constructs a Server with all collaborators wired from cfg.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if strings.TrimSpace(cfg.JWT.AccessSecret) == "" || strings.TrimSpace(cfg.JWT.RefreshSecret) == "" {
		return nil, errors.New("JWT_ACCESS_TOKEN_SECRET and JWT_REFRESH_TOKEN_SECRET are required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	sessionRepo := store.NewSessionRepository(dbConn)
	roleRepo := store.NewRoleRepository(dbConn)

	issuer := token.NewIssuer(cfg.JWT)
	hasher := services.NewBcryptHasher(0)

	// Prefer the queue-backed notifier; when no broker is reachable, fall
	// back to direct SMTP so account flows still work without a worker.
	var notifier services.Notifier
	queue, err := mq.NewFromConfig(ctx, cfg.MQ)
	if err != nil {
		logger.Warn("mail queue unavailable, sending email directly", slog.Any("error", err))
		notifier = mail.NewDirectNotifier(mail.NewSMTPSender(cfg.Mailer))
	} else {
		notifier = mail.NewQueueNotifier(queue, cfg.MQ.MailQueue)
	}

	var images services.ImageStore
	if objectStore, err := storage.NewFromConfig(ctx, cfg.Storage); err != nil {
		logger.Warn("object storage unavailable, profile image uploads disabled", slog.Any("error", err))
	} else {
		images = objectStore
	}

	authService := services.NewAuthService(userRepo, sessionRepo, issuer, hasher, notifier, logger)
	accountService := services.NewAccountService(userRepo, issuer, hasher, notifier, images, logger)
	roleService := services.NewRoleService(roleRepo)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			handlers.AuthRouter(r, authService)
		})
		r.Route("/user", func(r chi.Router) {
			handlers.UserRouter(r, accountService)
		})
		r.Route("/role", func(r chi.Router) {
			handlers.RoleRouter(r, roleService)
		})
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
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
		queue:      queue,
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
	if s.queue != nil {
		_ = s.queue.Close()
	}
	return s.httpServer.Close()
}
