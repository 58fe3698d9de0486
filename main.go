// main.go
//
// Entry point for the Distle server.
//   - Loads .env (optional) and the environment config.
//   - Loads the dictionary, opens + migrates SQLite.
//   - Picks the game session store (memory or Redis).
//   - Starts the filter worker pool and the HTTP server.

package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/distle/internal/config"
	"github.com/robalobadob/distle/internal/db"
	"github.com/robalobadob/distle/internal/httpserver"
	"github.com/robalobadob/distle/internal/store"
	"github.com/robalobadob/distle/internal/words"
	"github.com/robalobadob/distle/internal/workerpool"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(cfg.WordsFile); err != nil {
		log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("failed to load dictionary")
	}
	log.Info().Int("words", words.Stats()).Msg("dictionary loaded")

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open db")
	}
	defer conn.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = db.Migrate(ctx, conn)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("migrate db")
	}

	st := store.NewMemoryStore()
	if cfg.Store == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()
		pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := client.Ping(pctx).Err()
		pcancel()
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping")
		}
		st = store.NewRedisStore(client, cfg.SessionTTL)
	}

	pool := workerpool.New(cfg.FilterWorkers, cfg.FilterWorkers*16)
	defer pool.Stop()

	srv := httpserver.New(st, conn, pool, cfg)
	log.Info().Str("port", cfg.Port).Str("store", cfg.Store).Int("workers", pool.Size()).Msg("starting distle server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
