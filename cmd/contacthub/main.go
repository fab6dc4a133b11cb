package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hubcontatos/contacthub/pkg/config"
	"github.com/hubcontatos/contacthub/pkg/contact"
	contactapi "github.com/hubcontatos/contacthub/pkg/contact/api"
	"github.com/hubcontatos/contacthub/pkg/login"
	loginapi "github.com/hubcontatos/contacthub/pkg/login/api"
	"github.com/hubcontatos/contacthub/pkg/notification"
	"github.com/hubcontatos/contacthub/pkg/pending"
	"github.com/hubcontatos/contacthub/pkg/sessions"
	"github.com/hubcontatos/contacthub/pkg/signup"
	signupapi "github.com/hubcontatos/contacthub/pkg/signup/api"
	"github.com/hubcontatos/contacthub/pkg/storage"
	"github.com/hubcontatos/contacthub/pkg/user"
	userapi "github.com/hubcontatos/contacthub/pkg/user/api"
	"github.com/hubcontatos/contacthub/pkg/verification"
)

// loadEnvFile loads environment variables from a .env file if one exists,
// checking the executable directory first and the working directory second.
func loadEnvFile() {
	execPath, err := os.Executable()
	if err != nil {
		slog.Error("Failed to get executable path", "error", err)
		return
	}

	envFile := filepath.Join(filepath.Dir(execPath), ".env")
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		cwd, err := os.Getwd()
		if err != nil {
			slog.Error("Failed to get current working directory", "error", err)
			return
		}
		envFile = filepath.Join(cwd, ".env")
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Info("No .env file found", "path", envFile)
		return
	}

	if err := godotenv.Load(envFile); err != nil {
		slog.Error("Failed to load .env file", "error", err, "path", envFile)
		return
	}
	slog.Info("Configuration loaded from .env file", "path", envFile)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	loadEnvFile()

	cfg := config.Config{}
	cleanenv.ReadEnv(&cfg)

	// persistence
	var pool *pgxpool.Pool
	if cfg.App.Persistence == "postgres" {
		var err error
		pool, err = pgxpool.New(context.Background(), cfg.Database.ToDatabaseURL())
		if err != nil {
			slog.Error("Failed creating dbpool", "db", cfg.Database.Database, "host", cfg.Database.Host, "error", err)
			os.Exit(-1)
		}
		defer pool.Close()
	}

	var redisClient redis.UniversalClient
	if cfg.App.SessionStore == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	userRepo, err := user.NewUserRepository(cfg.App.Persistence, user.RepositoryConfig{Pool: pool})
	if err != nil {
		slog.Error("Failed creating user repository", "error", err)
		os.Exit(-1)
	}

	verificationRepo, err := verification.NewVerificationRepository(cfg.App.Persistence, verification.RepositoryConfig{Pool: pool})
	if err != nil {
		slog.Error("Failed creating verification repository", "error", err)
		os.Exit(-1)
	}

	contactRepo, err := contact.NewContactRepository(cfg.App.Persistence, contact.RepositoryConfig{Pool: pool})
	if err != nil {
		slog.Error("Failed creating contact repository", "error", err)
		os.Exit(-1)
	}

	pendingStore, err := pending.NewPendingStore(cfg.App.SessionStore, pending.StoreConfig{
		TTL:       cfg.App.PendingTTL,
		Client:    redisClient,
		KeyPrefix: "contacthub:pending",
	})
	if err != nil {
		slog.Error("Failed creating pending store", "error", err)
		os.Exit(-1)
	}

	sessionRepo, err := sessions.NewSessionRepository(cfg.App.SessionStore, sessions.RepositoryConfig{
		Client:    redisClient,
		KeyPrefix: "contacthub:session",
	})
	if err != nil {
		slog.Error("Failed creating session repository", "error", err)
		os.Exit(-1)
	}

	// notifications: SMTP primary, SendGrid fallback when configured
	notificationManager, err := notification.NewNotificationManagerWithOptions(
		notification.WithSMTP(cfg.Email.ToSMTPConfig()),
		notification.WithSendGridFallback(cfg.SendGrid.ToNotificationConfig()),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed creating notification manager", "error", err)
		os.Exit(-1)
	}

	dispatcher := notification.NewDispatcher(notificationManager,
		notification.WithSynchronous(cfg.App.Debug))
	defer dispatcher.Close()

	pictureStorage, err := storage.NewObjectStorage(cfg.Storage.Backend, cfg.Storage.ToStorageConfig())
	if err != nil {
		slog.Error("Failed creating picture storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(-1)
	}

	// services
	userService := user.NewService(userRepo)
	loginService := login.NewService(userRepo)
	verificationService := verification.NewService(verificationRepo,
		verification.WithCodeExpiry(cfg.App.CodeExpiry))
	sessionService := sessions.NewService(sessionRepo,
		sessions.WithLifetime(cfg.App.SessionLifetime),
		sessions.WithSecureCookies(cfg.App.SecureCookies))
	signupService := signup.NewService(pendingStore, verificationService, userService, loginService,
		signup.WithDispatcher(dispatcher))
	contactService := contact.NewService(contactRepo,
		contact.WithPictureStorage(pictureStorage))

	// handlers
	signupHandler := signupapi.NewHandler(signupService, sessionService)
	loginHandler := loginapi.NewHandler(loginService, sessionService)
	userHandler := userapi.NewHandler(userService)
	contactHandler := contactapi.NewHandler(contactService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Mount("/api/auth", signupHandler.Routes())
	r.Mount("/api", loginHandler.Routes())
	r.Group(func(r chi.Router) {
		r.Use(sessionService.RequireAuth)
		r.Mount("/api/users", userHandler.Routes())
		r.Mount("/api/contacts", contactHandler.Routes())
	})

	if cfg.Storage.Backend == "fs" {
		fileServer := http.StripPrefix(cfg.Storage.FSBaseURL+"/", http.FileServer(http.Dir(cfg.Storage.FSBaseDir)))
		r.Get(cfg.Storage.FSBaseURL+"/*", fileServer.ServeHTTP)
	}

	slog.Info("Starting server", "addr", cfg.App.Addr, "persistence", cfg.App.Persistence, "session_store", cfg.App.SessionStore)
	if err := http.ListenAndServe(cfg.App.Addr, r); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(-1)
	}
}
