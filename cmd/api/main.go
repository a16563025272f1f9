package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/api"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/internal/infrastructure/config"
	mongodb "github.com/Siddhant0227/Custom-Chatbot-Builder/internal/infrastructure/db/mongo"
	redisdb "github.com/Siddhant0227/Custom-Chatbot-Builder/internal/infrastructure/db/redis"
	"github.com/Siddhant0227/Custom-Chatbot-Builder/pkg/logger"
)

// @title        Chatbot Builder API
// @version      1.0
// @description  Backend for the visual chatbot builder: accounts, chatbot configurations, and the AI passthrough.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := mongodb.NewChatbotRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("chatbot index creation failed")
	}

	if cfg.AI.APIKey == "" {
		log.Warn().Msg("no AI credential configured, passthrough will serve fallback replies")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("chatbot builder api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
