// internal/config/config.go
//
// Server configuration read from the environment.
// main loads an optional .env file (godotenv) before calling Load, so values
// may come from either source; real environment variables win.
//
// Environment variables (defaults in parentheses):
//   PORT (5175)                  HTTP listen port
//   LOG_LEVEL (info)             zerolog level
//   DB_PATH (./data/distle.db)   SQLite database file
//   STORE (memory)               session store: memory | redis
//   REDIS_ADDR (localhost:6379), REDIS_PASSWORD, REDIS_DB (0)
//   SESSION_TTL (24h)            Redis session expiry
//   WORDS_FILE                   dictionary file; embedded default if unset
//   MAX_GUESSES (10)             default guess limit for new games
//   FILTER_WORKERS (4)           worker pool size for agent filtering
//   DAILY_SALT (local_dev_salt)  seed for the daily secret
//   JWT_SECRET (dev_secret_change_me), JWT_EXPIRES_DAYS (14)
//   COOKIE_NAME (distle_token), CLIENT_ORIGIN (http://localhost:5173)
//   NODE_ENV                     "production" enables secure cookies

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	LogLevel      string
	DBPath        string
	Store         string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration
	WordsFile     string
	MaxGuesses    int
	FilterWorkers int
	DailySalt     string
	JWTSecret     string
	JWTExpiryDays int
	CookieName    string
	ClientOrigin  string
	Production    bool
}

// Load reads Config from the environment.
func Load() (Config, error) {
	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	c := Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBPath:        getEnv("DB_PATH", "./data/distle.db"),
		Store:         getEnv("STORE", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SessionTTL:    ttl,
		WordsFile:     os.Getenv("WORDS_FILE"),
		MaxGuesses:    getEnvInt("MAX_GUESSES", 10),
		FilterWorkers: getEnvInt("FILTER_WORKERS", 4),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
		JWTSecret:     getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiryDays: getEnvInt("JWT_EXPIRES_DAYS", 14),
		CookieName:    getEnv("COOKIE_NAME", "distle_token"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:    os.Getenv("NODE_ENV") == "production",
	}
	switch c.Store {
	case "memory", "redis":
	default:
		return Config{}, fmt.Errorf("STORE: unknown store %q", c.Store)
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}
