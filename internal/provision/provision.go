// Package provision bootstraps the pet medical records database from the
// schema registry. Running it drops the target database, so it is a one-time
// operator tool, never part of normal startup.
package provision

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/261361-VetNurse/Backend/internal/logger"
	"github.com/261361-VetNurse/Backend/internal/schema"
)

// Run drops the named database and recreates it from the schema registry:
// one collection per registry entry with its validator attached, then the
// declared indexes. A failure on one collection or index is logged and
// skipped so the rest of the run still completes; only a failed drop aborts.
func Run(ctx context.Context, client *mongo.Client, dbName string) error {
	log := logger.WithComponent("provision")

	log.Info().Str("database", dbName).Msg("dropping database")
	db := client.Database(dbName)
	if err := db.Drop(ctx); err != nil {
		return fmt.Errorf("dropping database %s: %w", dbName, err)
	}
	log.Info().Str("database", dbName).Msg("database created fresh")

	failed := apply(ctx, db, schema.Collections, log)
	if failed > 0 {
		log.Warn().Int("failed_steps", failed).Msg("database initialization finished with failures")
	} else {
		log.Info().Msg("database initialization complete")
	}
	return nil
}

// apply creates the given collections and their indexes, continuing past
// per-step failures. It returns the number of steps that failed.
func apply(ctx context.Context, db *mongo.Database, collections []schema.Collection, log zerolog.Logger) int {
	var failed int

	log.Info().Msg("creating collections and validators")
	for _, coll := range collections {
		opts := options.CreateCollection().SetValidator(coll.Validator)
		if err := db.CreateCollection(ctx, coll.Name, opts); err != nil {
			failed++
			log.Error().Err(err).Str("collection", coll.Name).Msg("failed to create collection")
			continue
		}
		log.Info().Str("collection", coll.Name).Msg("created collection")
	}

	log.Info().Msg("creating indexes")
	for _, coll := range collections {
		for _, idx := range coll.Indexes {
			opts := options.Index()
			if idx.Unique {
				opts.SetUnique(true)
			}
			if idx.ExpireAfterSeconds != nil {
				opts.SetExpireAfterSeconds(*idx.ExpireAfterSeconds)
			}
			indexModel := mongo.IndexModel{Keys: idx.Keys, Options: opts}
			name, err := db.Collection(coll.Name).Indexes().CreateOne(ctx, indexModel)
			if err != nil {
				failed++
				log.Error().Err(err).Str("collection", coll.Name).Msg("failed to create index")
				continue
			}
			log.Info().Str("collection", coll.Name).Str("index", name).Msg("created index")
		}
	}

	return failed
}
