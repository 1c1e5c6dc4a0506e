package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/261361-VetNurse/Backend/internal/api"
	"github.com/261361-VetNurse/Backend/internal/config"
	"github.com/261361-VetNurse/Backend/internal/logger"
	"github.com/261361-VetNurse/Backend/internal/metrics"
	"github.com/261361-VetNurse/Backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	if err := logger.Init(&logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		Rotation:   cfg.Logging.Rotation,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	}); err != nil {
		log.Fatal().Err(err).Msg("could not initialize logger")
	}
	mainLog := logger.WithComponent("server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		cancel()
		mainLog.Fatal().Err(err).Str("url", cfg.Mongo.URL).Msg("could not connect to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		cancel()
		mainLog.Fatal().Err(err).Str("url", cfg.Mongo.URL).Msg("could not reach mongodb")
	}
	cancel()
	mainLog.Info().Str("url", cfg.Mongo.URL).Str("database", cfg.Mongo.DBName).Msg("connected to mongodb")

	items := service.NewItemService(client.Database(cfg.Mongo.DBName))
	handler := api.NewHandler(items, logger.WithComponent("api"), cfg.AppVersion)
	collector := metrics.NewCollector()

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.Handle("/metrics", collector.Handler())

	chain := api.RequestIDMiddleware()(
		api.LoggingMiddleware(logger.WithComponent("http"))(
			api.MetricsMiddleware(collector)(mux)))

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      chain,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		mainLog.Info().Str("addr", server.Addr).Str("app", cfg.AppName).Str("version", cfg.AppVersion).Msg("server is listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mainLog.Fatal().Err(err).Msg("could not listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	mainLog.Info().Msg("server is shutting down")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		mainLog.Fatal().Err(err).Msg("server forced to shutdown")
	}
	if err := client.Disconnect(ctxShutdown); err != nil {
		mainLog.Error().Err(err).Msg("error closing mongodb connection")
	}

	mainLog.Info().Msg("server stopped")
}
