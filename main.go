package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SocialScheduler/config"
	"SocialScheduler/database"
	"SocialScheduler/handlers"
	"SocialScheduler/metrics"
	"SocialScheduler/middleware"
	"SocialScheduler/services"
	"SocialScheduler/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err == nil {
		utils.Debugf("loaded configuration from .env")
	}

	cfg := config.Load()

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		utils.Errorf("failed to connect to database: %v", err)
		os.Exit(1)
	}

	storage, err := services.NewStorageService(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		utils.Errorf("failed to initialize storage: %v", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	googleAuth := services.NewGoogleAuthService(db, cfg.GoogleClientID, cfg.GoogleTokenInfoURL)
	accounts := services.NewAccountService(db)
	share := services.NewShareService(accounts)
	linkedin := services.NewLinkedInService(cfg.LinkedInClientID, cfg.LinkedInClientSecret, cfg.LinkedInRedirectURI)
	oauthStates := services.NewOAuthStateService()

	scheduler := services.NewScheduler(db, collector, cfg.SweepInterval)
	if err := scheduler.Start(); err != nil {
		utils.Errorf("failed to start scheduler: %v", err)
		os.Exit(1)
	}

	handler := handlers.NewHandler(db, authService, googleAuth, accounts, storage, share, linkedin, oauthStates)

	r := setupRoutes(handler, authService, collector, cfg)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		utils.Infof("server listening on port %s", cfg.Port)
		utils.Infof("upload directory: %s", cfg.UploadDir)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Errorf("server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	utils.Infof("shutting down")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		utils.Errorf("shutdown error: %v", err)
	}
}

func setupRoutes(h *handlers.Handler, authService *services.AuthService, collector *metrics.Collector, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins
	r.Use(middleware.CORS(corsCfg))
	r.Use(collector.Middleware)

	// Global cap leaves room for multipart uploads; JSON-only routes get a
	// tighter per-route cap below.
	r.Use(middleware.BodyLimit(cfg.MaxUploadSize + 1<<20))

	generalLimiter := middleware.NewRateLimiter(20, 40)
	authLimiter := middleware.NewRateLimiter(1, 5)
	r.Use(generalLimiter.Limit())

	jsonLimit := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.BodyLimitHandler(1<<20, next)
	}

	// Public routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.Handle("/metrics", collector.Handler()).Methods("GET")
	r.HandleFunc("/auth/register", authLimiter.LimitHandler(jsonLimit(h.Register))).Methods("POST")
	r.HandleFunc("/auth/login", authLimiter.LimitHandler(jsonLimit(h.Login))).Methods("POST")
	r.HandleFunc("/auth/google", authLimiter.LimitHandler(jsonLimit(h.GoogleAuth))).Methods("POST")

	r.HandleFunc("/oauth/success", h.OAuthSuccessPage).Methods("GET")
	r.HandleFunc("/oauth/error", h.OAuthErrorPage).Methods("GET")

	// Uploaded images: signed URL or JWT required
	r.PathPrefix("/uploads/").Handler(
		middleware.UploadsFileServer(cfg.UploadDir, cfg.URLSigningKey, authService))

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware(authService))

	// Posts
	protected.HandleFunc("/posts/create", h.CreatePost).Methods("POST")
	protected.HandleFunc("/posts", h.GetPosts).Methods("GET")
	protected.HandleFunc("/posts/{id}", h.GetPost).Methods("GET")
	protected.HandleFunc("/posts/{id}", h.UpdatePost).Methods("PUT")
	protected.HandleFunc("/posts/{id}", h.DeletePost).Methods("DELETE")

	// Drafts (a view over draft-status posts)
	protected.HandleFunc("/drafts", h.GetDrafts).Methods("GET")
	protected.HandleFunc("/drafts", h.SaveDraft).Methods("POST")
	protected.HandleFunc("/drafts/{id}", h.DeleteDraft).Methods("DELETE")

	// Accounts
	protected.HandleFunc("/accounts", h.GetAccounts).Methods("GET")
	protected.HandleFunc("/accounts/link", h.LinkAccount).Methods("POST")
	protected.HandleFunc("/accounts/disconnect", h.DisconnectAccount).Methods("POST")
	protected.HandleFunc("/accounts/connected", h.GetConnectedAccounts).Methods("GET")

	// LinkedIn OAuth
	protected.HandleFunc("/linkedin/auth-url", h.GetLinkedInAuthURL).Methods("GET")
	protected.HandleFunc("/linkedin/callback", h.HandleLinkedInCallback).Methods("POST")

	// Sharing
	protected.HandleFunc("/share", h.SharePost).Methods("POST")

	// User, preferences, dashboard
	protected.HandleFunc("/user/profile", h.GetProfile).Methods("GET")
	protected.HandleFunc("/user/profile", h.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/password", h.ChangePassword).Methods("PUT")
	protected.HandleFunc("/preferences", h.GetPreferences).Methods("GET")
	protected.HandleFunc("/preferences", h.UpdatePreferences).Methods("PUT")
	protected.HandleFunc("/quick-stats", h.GetQuickStats).Methods("GET")
	protected.HandleFunc("/welcome", h.GetWelcomeData).Methods("GET")

	return r
}
