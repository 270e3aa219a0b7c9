package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-user-accounts/internal/config"
	_ "github.com/sbilibin2017/gw-user-accounts/internal/docs"
	"github.com/sbilibin2017/gw-user-accounts/internal/facades"
	"github.com/sbilibin2017/gw-user-accounts/internal/handlers"
	"github.com/sbilibin2017/gw-user-accounts/internal/hasher"
	"github.com/sbilibin2017/gw-user-accounts/internal/jwt"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/middlewares"
	"github.com/sbilibin2017/gw-user-accounts/internal/repositories"
	"github.com/sbilibin2017/gw-user-accounts/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

const serviceName = "gw-user-accounts"

// @title gw-user-accounts API
// @version 1.0.0
// @description User account service: registration, sessions, profile and media
// @host localhost:8000
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run connects the stores, wires the account service and serves HTTP
// until a shutdown signal arrives.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.App.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.App.LogLevel)

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	if err := repositories.RunMigrations(ctx, db.DB); err != nil {
		return err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	var kafkaWriter services.KafkaWriter
	if len(cfg.Kafka.Brokers) > 0 {
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.Kafka.Brokers...),
			Topic:        cfg.Kafka.Topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireAll,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Kafka publishing enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	media, err := newMediaStore(ctx, cfg)
	if err != nil {
		return err
	}

	accessJWT := jwt.New(
		jwt.WithSecretKey(cfg.JWT.AccessSecret),
		jwt.WithExpiration(cfg.JWT.AccessExpiry),
		jwt.WithCookieName("accessToken"),
	)
	refreshJWT := jwt.New(
		jwt.WithSecretKey(cfg.JWT.RefreshSecret),
		jwt.WithExpiration(cfg.JWT.RefreshExpiry),
		jwt.WithCookieName("refreshToken"),
	)

	authService := services.NewAuthService(
		repositories.NewUserReadRepository(db, middlewares.GetTxFromContext),
		repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext),
		accessJWT,
		refreshJWT,
		repositories.NewTokenRevocationRepository(rdb),
		hasher.New(cfg.Bcrypt.Cost),
		media,
		kafkaWriter,
		middlewares.AfterCommit,
	)

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           newRouter(cfg, db, authService, accessJWT, media),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", cfg.App.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newMediaStore selects the media backend named by BLOB_DRIVER.
func newMediaStore(ctx context.Context, cfg *config.Config) (services.MediaStore, error) {
	if cfg.Blob.Driver == "memory" {
		baseURL := cfg.Blob.PublicURL
		if baseURL == "" {
			baseURL = "http://" + cfg.App.Addr()
		}
		logger.Log.Warn("Using in-memory media store, uploads are lost on restart")
		return facades.NewMediaMemoryFacade(baseURL, cfg.Blob.KeyPrefix), nil
	}

	opts := facades.S3Options{
		Bucket:    cfg.Blob.Bucket,
		Region:    cfg.Blob.Region,
		Endpoint:  cfg.Blob.Endpoint,
		AccessKey: cfg.Blob.AccessKey,
		SecretKey: cfg.Blob.SecretKey,
		PublicURL: cfg.Blob.PublicURL,
		KeyPrefix: cfg.Blob.KeyPrefix,
	}
	client, err := facades.NewS3Client(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("media store: %w", err)
	}
	return facades.NewMediaS3Facade(client, opts), nil
}

// newRouter mounts the account routes under /api/v1/users together with
// health, metrics and API docs. Media stores that serve their own files
// are mounted under /media/.
func newRouter(cfg *config.Config, db *sqlx.DB, svc *services.AuthService, tokener middlewares.Tokener, media services.MediaStore) http.Handler {
	cookies := handlers.CookieOptions{
		Secure:     cfg.Cookie.Secure,
		AccessTTL:  cfg.JWT.AccessExpiry,
		RefreshTTL: cfg.JWT.RefreshExpiry,
	}
	uploads := handlers.UploadOptions{
		TmpDir:    cfg.Upload.TempDir,
		MaxMemory: cfg.Upload.MaxMemory,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middlewares.LoggingMiddleware)
	r.Use(middlewares.MetricsMiddleware(serviceName))

	handlers.RegisterHealthHandler(r, handlers.NewHealthHandler(db))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if h, ok := media.(http.Handler); ok {
		r.Method(http.MethodGet, "/media/*", h)
	}

	r.Route("/api/v1/users", func(r chi.Router) {
		handlers.RegisterRegisterHandler(r, handlers.NewRegisterHandler(svc, uploads))
		handlers.RegisterLoginHandler(r, handlers.NewLoginHandler(svc, cookies))
		handlers.RegisterRefreshHandler(r.With(middlewares.TxMiddleware(db)), handlers.NewRefreshHandler(svc, cookies))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokener, svc))
			handlers.RegisterLogoutHandler(r, handlers.NewLogoutHandler(svc, cookies))
			handlers.RegisterChangePasswordHandler(r, handlers.NewChangePasswordHandler(svc))
			handlers.RegisterUpdateAccountHandler(r, handlers.NewUpdateAccountHandler(svc))
			handlers.RegisterUpdateAvatarHandler(r, handlers.NewUpdateAvatarHandler(svc, uploads))
			handlers.RegisterUpdateCoverImageHandler(r, handlers.NewUpdateCoverImageHandler(svc, uploads))
			handlers.RegisterCurrentUserHandler(r, handlers.NewCurrentUserHandler())
		})
	})

	return r
}
