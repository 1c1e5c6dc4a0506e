// Command setupdb drops and recreates the pet medical records database from
// the schema registry. Run it once, by hand; it destroys any existing data in
// the target database.
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/261361-VetNurse/Backend/internal/config"
	"github.com/261361-VetNurse/Backend/internal/logger"
	"github.com/261361-VetNurse/Backend/internal/provision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load configuration")
	}
	if err := logger.Init(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: "text",
	}); err != nil {
		log.Fatal().Err(err).Msg("could not initialize logger")
	}
	mainLog := logger.WithComponent("setupdb")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	mainLog.Info().Str("url", cfg.Mongo.URL).Msg("connecting to mongodb")
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		mainLog.Fatal().Err(err).Msg("could not connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			mainLog.Error().Err(err).Msg("error closing mongodb connection")
		}
	}()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		mainLog.Fatal().Err(err).Msg("could not reach mongodb")
	}

	if err := provision.Run(ctx, client, cfg.Mongo.SetupDBName); err != nil {
		mainLog.Fatal().Err(err).Msg("database initialization failed")
	}
}
