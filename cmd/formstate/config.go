package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "FORMSTATE_"

type config struct {
	LogLevel  string
	LogFormat string
	Addr      string
}

// loadConfig reads the env files (missing files are ignored) and then the
// FORMSTATE_* environment.
func loadConfig(envFiles ...string) config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	_ = godotenv.Load(files...)

	return config{
		LogLevel:  env("LOG_LEVEL", "info"),
		LogFormat: env("LOG_FORMAT", "text"),
		Addr:      env("ADDR", ":8080"),
	}
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
