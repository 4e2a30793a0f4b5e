package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/hospital-api/internal/access"
	"github.com/harentsoaR/hospital-api/internal/cache"
	"github.com/harentsoaR/hospital-api/internal/config"
	"github.com/harentsoaR/hospital-api/internal/handlers"
	"github.com/harentsoaR/hospital-api/internal/jobs"
	"github.com/harentsoaR/hospital-api/internal/middleware"
	"github.com/harentsoaR/hospital-api/internal/models"
	"github.com/harentsoaR/hospital-api/internal/services"
	"github.com/harentsoaR/hospital-api/internal/store"
	"github.com/harentsoaR/hospital-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger := cfg.Logger()
	logger.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"backend": cfg.Database.Backend,
		"redis":   cfg.Redis.Addr != "",
		"sms":     cfg.SMS.APIKey != "",
	}).Info("starting hospital api")

	// --- Store ---
	users, deps, closeStore := openStore(cfg, logger)
	defer closeStore()

	hasher := utils.NewBcryptHasher(cfg.Auth.BcryptCost)
	userStore := store.NewUserStore(users, hasher)
	deps.Users = userStore
	deps.Logger = logger

	// --- Profile cache ---
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password})
		defer client.Close()
		profiles := cache.NewRedisProfiles(client, cfg.Redis.ProfileTTL)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := profiles.Ping(ctx); err != nil {
			logger.WithError(err).Warn("redis unreachable, profile cache disabled")
		} else {
			deps.Profiles = profiles
		}
		cancel()
	}

	// --- Initialize Services ---
	notificationSvc := services.NewNotificationService(cfg.SMS.Endpoint, cfg.SMS.APIKey, logger)
	defer notificationSvc.Wait()
	deps.Notifier = notificationSvc

	svc := access.NewService(deps)
	tokens := utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	h := handlers.NewHandler(svc, tokens, logger)

	// --- Jobs ---
	scheduler, err := jobs.NewShiftHandover(svc, logger).Start()
	if err != nil {
		logger.WithError(err).Fatal("could not schedule shift handover")
	}
	defer scheduler.Stop()

	// --- Gin Router ---
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	}))
	h.Routes(r, middleware.AuthMiddleware(tokens))

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: r}
	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}

// openStore connects the configured backend and returns the user collection,
// the independent record collections and a close function.
func openStore(cfg *config.Config, logger *logrus.Logger) (store.Users, access.Deps, func()) {
	if cfg.Database.Backend == config.BackendMemory {
		logger.Warn("using the in-memory store, data is lost on restart")
		return store.NewMemoryUsers(), access.Deps{
			Notices:  store.NewMemoryRecords[models.Notice](),
			Requests: store.NewMemoryRecords[models.AppointmentRequest](),
			Rooms:    store.NewMemoryRecords[models.Room](),
			Leaves:   store.NewMemoryRecords[models.LeaveRequest](),
		}, func() {}
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.WithError(err).Fatal("MongoDB is unreachable")
	}
	db := client.Database(cfg.Database.Name)
	logger.WithField("database", cfg.Database.Name).Info("Successfully connected to MongoDB!")

	users := store.NewMongoUsers(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		logger.WithError(err).Fatal("could not create user indexes")
	}

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.WithError(err).Warn("MongoDB disconnect failed")
		}
	}
	return users, access.Deps{
		Notices:  store.NewMongoRecords[models.Notice](db, store.NoticesCollection),
		Requests: store.NewMongoRecords[models.AppointmentRequest](db, store.AppointmentRequestsCollection),
		Rooms:    store.NewMongoRecords[models.Room](db, store.RoomsCollection),
		Leaves:   store.NewMongoRecords[models.LeaveRequest](db, store.LeavesCollection),
	}, closeFn
}
