package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/cache"
	"github.com/developia-II/tacticalgear-backend/internal/config"
	"github.com/developia-II/tacticalgear-backend/internal/database"
	"github.com/developia-II/tacticalgear-backend/internal/handlers"
	"github.com/developia-II/tacticalgear-backend/internal/logging"
	"github.com/developia-II/tacticalgear-backend/internal/middleware"
	"github.com/developia-II/tacticalgear-backend/internal/notify"
	"github.com/developia-II/tacticalgear-backend/internal/payments"
	"github.com/developia-II/tacticalgear-backend/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	client, db, err := database.Connect(connectCtx, cfg.MongoURL, cfg.DBName)
	cancel()
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logrus.WithError(err).Warn("MongoDB disconnect failed")
		}
	}()

	indexCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		// Startup continues; queries still work without the indexes.
		logrus.WithError(err).Warn("Some indexes could not be created")
	}
	cancel()

	ext := handlers.Externals{
		Tokens:    utils.NewTokenManager(cfg.JWTSecret, utils.DefaultTokenTTL),
		Cache:     cache.Noop{},
		Uploader:  utils.DisabledUploader{},
		Payments:  payments.Disabled{},
		Mailer:    notify.LogMailer{},
		AllowSeed: cfg.AllowSeed,
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient = cache.NewRedisClient(cfg.RedisAddress, cfg.RedisPassword)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logrus.WithError(err).Warn("Redis unavailable, product cache disabled")
			_ = redisClient.Close()
			redisClient = nil
		} else {
			ext.Cache = cache.NewRedisProductCache(redisClient)
			logrus.WithField("addr", cfg.RedisAddress).Info("Connected to Redis")
		}
		cancel()
	}
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	if cfg.StripeEnabled() {
		ext.Payments = payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
		logrus.Info("Stripe payments enabled")
	}

	if cfg.CloudinaryEnabled() {
		uploader, err := utils.NewCloudinaryUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			logrus.WithError(err).Warn("Cloudinary unavailable, image uploads disabled")
		} else {
			ext.Uploader = uploader
		}
	}

	if cfg.SMTPEnabled() {
		mailer, err := notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
		if err != nil {
			logrus.WithError(err).Warn("SMTP unavailable, quote emails will be logged")
		} else {
			ext.Mailer = mailer
		}
	}

	deps := handlers.Wire(db, ext)

	if cfg.AdminEmail != "" {
		bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := deps.Identity.BootstrapAdmin(bootCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logrus.WithError(err).Error("Failed to bootstrap admin account")
		}
		cancel()
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	handlers.SetupRoutes(router, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Server is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to run server: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shut down")
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "Stripe-Signature"},
		ExposeHeaders: []string{"Content-Length", "X-Cache", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
