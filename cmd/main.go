package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/ekarabulut/social-wall/internal/facades"
	"github.com/ekarabulut/social-wall/internal/handlers"
	"github.com/ekarabulut/social-wall/internal/jwt"
	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/middlewares"
	"github.com/ekarabulut/social-wall/internal/repositories"
	"github.com/ekarabulut/social-wall/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title social-wall API
// @version 1.0.0
// @description Backend for a social posting wall: accounts, password lifecycle, posts and moderation
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// config holds every environment-driven setting of the service.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PgHost         string
	PgPort         int
	PgUser         string
	PgPassword     string
	PgDB           string
	PgMaxOpenConns int
	PgMaxIdleConns int

	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	KafkaAddr  string
	KafkaTopic string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailFromName string
	FrontendURL  string

	JWTSecretKey  string
	JWTIssuer     string
	JWTAudience   string
	JWTExpMinutes int

	ResetTTLHours int
	LoginLimit    int
	LoginWindow   time.Duration
}

// parseConfig loads environment variables from a file and returns the full
// application configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PgUser = getEnv("POSTGRES_USER", "user")
	cfg.PgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PgDB = getEnv("POSTGRES_DB", "database")
	if cfg.PgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if cfg.PgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if cfg.PgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")

	// Kafka config; an empty address disables event publishing
	cfg.KafkaAddr = getEnv("KAFKA_ADDR", "")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "social-wall-events")

	// SMTP config; an empty host disables the forgot-password mail
	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	if cfg.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587")); err != nil {
		return
	}
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", "")
	cfg.MailFrom = getEnv("MAIL_FROM", "no-reply@social-wall.local")
	cfg.MailFromName = getEnv("MAIL_FROM_NAME", "Social Wall")
	cfg.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "social-wall")
	cfg.JWTAudience = getEnv("JWT_AUDIENCE", "social-wall")
	if cfg.JWTExpMinutes, err = strconv.Atoi(getEnv("JWT_EXP_MINUTES", "60")); err != nil {
		return
	}

	// Password lifecycle config
	if cfg.ResetTTLHours, err = strconv.Atoi(getEnv("RESET_TOKEN_TTL_HOURS", "24")); err != nil {
		return
	}
	if cfg.LoginLimit, err = strconv.Atoi(getEnv("LOGIN_ATTEMPT_LIMIT", "10")); err != nil {
		return
	}
	var windowMinutes int
	if windowMinutes, err = strconv.Atoi(getEnv("LOGIN_ATTEMPT_WINDOW_MINUTES", "15")); err != nil {
		return
	}
	cfg.LoginWindow = time.Duration(windowMinutes) * time.Minute

	return
}

// run initializes the logger, database, Redis, Kafka, SMTP and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PgUser, cfg.PgPassword, cfg.PgHost, cfg.PgPort, cfg.PgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "err", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PgMaxOpenConns)
	db.SetMaxIdleConns(cfg.PgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "err", err)
		return err
	}

	// Apply schema migrations
	if err := repositories.RunMigrations(ctx, db.DB); err != nil {
		logger.Log.Errorw("migrations failed", "err", err)
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "err", err)
		return err
	}
	defer rdb.Close()

	// Kafka writer for domain events, optional
	var kafkaWriter services.KafkaWriter
	if cfg.KafkaAddr != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(cfg.KafkaAddr),
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
	}

	// SMTP facade for reset links, optional
	var mailer services.ResetMailSender
	if cfg.SMTPHost != "" {
		mf, err := facades.NewMailFacade(cfg.SMTPHost, cfg.SMTPPort,
			cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.MailFromName, cfg.FrontendURL)
		if err != nil {
			logger.Log.Errorw("SMTP client error", "err", err)
			return err
		}
		mailer = mf
	}

	// Initialize JWT service
	tokener := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithIssuer(cfg.JWTIssuer),
		jwt.WithAudience(cfg.JWTAudience),
		jwt.WithExpiration(time.Duration(cfg.JWTExpMinutes)*time.Minute),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	postReadRepo := repositories.NewPostReadRepository(db)
	postWriteRepo := repositories.NewPostWriteRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	attemptRepo := repositories.NewLoginAttemptRepository(rdb, int64(cfg.LoginLimit), cfg.LoginWindow)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokener,
		mailer, attemptRepo, kafkaWriter, time.Duration(cfg.ResetTTLHours)*time.Hour)
	postService := services.NewPostService(postReadRepo, postWriteRepo, userReadRepo, kafkaWriter)
	adminService := services.NewAdminService(userReadRepo, adminRepo, tokener, kafkaWriter)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	authMiddleware := middlewares.AuthMiddleware(tokener)
	txMiddleware := middlewares.TxMiddleware(db)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes; mutations run in a request transaction
		r.Group(func(r chi.Router) {
			r.Use(txMiddleware)
			r.Post("/register", handlers.NewRegisterHandler(authService))
			r.Post("/forgot-password", handlers.NewForgotPasswordHandler(authService))
			r.Post("/reset-password", handlers.NewResetPasswordHandler(authService))
		})
		r.Post("/login", handlers.NewLoginHandler(authService))
		r.Post("/validate-reset-token", handlers.NewValidateResetTokenHandler(authService))
		r.Post("/admin/login", handlers.NewAdminLoginHandler(adminService))

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/me", handlers.NewGetProfileHandler(authService))
			r.Get("/posts", handlers.NewListPostsHandler(postService))
			r.Get("/posts/my", handlers.NewListMyPostsHandler(postService))

			r.Group(func(r chi.Router) {
				r.Use(txMiddleware)
				r.Put("/update-profile", handlers.NewUpdateProfileHandler(authService))
				r.Put("/change-password", handlers.NewChangePasswordHandler(authService))
				r.Post("/posts", handlers.NewCreatePostHandler(postService))
			})
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middlewares.RequireAdmin)
			r.Get("/admin/users", handlers.NewAdminListUsersHandler(adminService))
			r.Get("/admin/posts", handlers.NewAdminListPostsHandler(adminService))

			r.Group(func(r chi.Router) {
				r.Use(txMiddleware)
				r.Delete("/admin/users/{id}", handlers.NewAdminDeactivateUserHandler(adminService))
				r.Put("/admin/users/{id}/toggle", handlers.NewAdminToggleUserStatusHandler(adminService))
				r.Delete("/admin/posts/{id}", handlers.NewAdminDeletePostHandler(adminService))
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
