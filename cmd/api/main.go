package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/rmaestri/roleplay/internal/config"
	"github.com/rmaestri/roleplay/internal/database"
	"github.com/rmaestri/roleplay/internal/group"
	"github.com/rmaestri/roleplay/internal/grouprequest"
	"github.com/rmaestri/roleplay/internal/mailer"
	"github.com/rmaestri/roleplay/internal/password"
	"github.com/rmaestri/roleplay/internal/session"
	"github.com/rmaestri/roleplay/internal/user"
	mw "github.com/rmaestri/roleplay/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("connected to database")

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		mail = mailer.NewLogMailer(logger)
	}

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Session feature (bearer tokens)
	sessionRepo := session.NewRepository(db)
	sessionService := session.NewService(sessionRepo, userRepo, cfg.SessionTTL)
	sessionHandler := session.NewHandler(sessionService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo)
	groupHandler := group.NewHandler(groupService)

	// Group request workflow (guards resolve against the group repo)
	requestRepo := grouprequest.NewRepository(db)
	requestService := grouprequest.NewService(requestRepo, groupRepo)
	requestHandler := grouprequest.NewHandler(requestService)

	// Password reset workflow
	passwordRepo := password.NewRepository(db)
	passwordService := password.NewService(passwordRepo, userRepo, mail, cfg.MailFrom, cfg.ResetTokenTTL, logger)
	passwordHandler := password.NewHandler(passwordService)

	auth := mw.Auth(sessionService)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Post("/users", userHandler.Create)
	r.With(auth).Put("/users/{id}", userHandler.Update)

	r.Post("/sessions", sessionHandler.Create)
	r.With(auth).Delete("/sessions", sessionHandler.Destroy)

	r.Post("/forgot-password", passwordHandler.ForgotPassword)
	r.Post("/reset-password", passwordHandler.ResetPassword)

	r.Route("/groups", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", groupHandler.List)
		r.Post("/", groupHandler.Create)
		r.Patch("/{groupID}", groupHandler.Update)
		r.Delete("/{groupID}", groupHandler.Delete)
		r.Delete("/{groupID}/players/{playerID}", groupHandler.RemovePlayer)
		r.Mount("/{groupID}/requests", requestHandler.Routes())
	})

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
