// @title        Q&A Platform API
// @version      1.0
// @description  Questions, answers, voting, acceptance, notifications and moderation.
// @BasePath     /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/askstack/qa-platform/docs"
	"github.com/askstack/qa-platform/internal/api"
	"github.com/askstack/qa-platform/internal/api/middleware"
	"github.com/askstack/qa-platform/internal/core/domain"
	"github.com/askstack/qa-platform/internal/core/service"
	mongodb "github.com/askstack/qa-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/askstack/qa-platform/internal/infrastructure/db/redis"
	"github.com/askstack/qa-platform/internal/infrastructure/http/handlers"
	"github.com/askstack/qa-platform/internal/infrastructure/queue"
	"github.com/askstack/qa-platform/internal/infrastructure/realtime"
	"github.com/askstack/qa-platform/internal/pkg/config"
	"github.com/askstack/qa-platform/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "qa-api",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	questions := mongodb.NewQuestionRepository(db)
	answers := mongodb.NewAnswerRepository(db)
	notifications := mongodb.NewNotificationRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, questions, answers, notifications); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	// --- Real-time push ---
	publisher := redisdb.NewPublisher(rdb)
	dispatcher := queue.NewPushDispatcher(cfg.PushWorkers, publisher, logger.Component("push"))
	dispatcher.Start(ctx)
	bans := redisdb.NewBanList(rdb)
	if n, err := service.WarmBanList(ctx, users, bans); err != nil {
		log.Warn().Err(err).Msg("failed to warm ban list")
	} else {
		log.Info().Int("banned", n).Msg("ban list warmed")
	}

	// --- Services ---
	notifier := service.NewNotificationService(notifications, users, dispatcher, logger.Component("notifications"))
	authService := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	questionService := service.NewQuestionService(questions, answers, users, logger.Component("questions"))
	answerService := service.NewAnswerService(questions, answers, users, notifier, logger.Component("answers"))
	userService := service.NewUserService(users, questions, answers)
	moderation := service.NewModerationService(users, questions, answers, notifications, notifier, bans, logger.Component("moderation"))

	health := handlers.NewHealthHandler(map[string]handlers.Check{
		"mongodb": handlers.MongoCheck(db),
		"redis":   handlers.RedisCheck(rdb),
	})
	gateway := realtime.NewGateway(
		func(token string) (domain.Actor, error) { return middleware.ParseActor(cfg.JWTSecret, token) },
		publisher,
		logger.Component("realtime"),
	)

	e := api.NewRouter(api.Deps{
		JWTSecret:     cfg.JWTSecret,
		RateLimit:     cfg.RateLimit,
		Log:           log,
		Auth:          authService,
		Questions:     questionService,
		Answers:       answerService,
		Notifications: notifier,
		Users:         userService,
		Moderation:    moderation,
		Bans:          bans,
		Directory:     users,
		Liveness:      health.Liveness,
		Readiness:     health.Readiness,
		Websocket:     gateway.Serve,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
