// Command fakeapi runs the in-memory platform API for local development.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/classroom/internal/fakeapi"
	"github.com/dmitrymomot/classroom/pkg/logger"
)

type config struct {
	Addr     string `env:"FAKEAPI_ADDR" envDefault:":3000"`
	Secret   string `env:"FAKEAPI_SECRET"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Envelope bool   `env:"FAKEAPI_ENVELOPE" envDefault:"true"`
	Seed     bool   `env:"FAKEAPI_SEED" envDefault:"true"`
}

func main() {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithExtractors(fakeapi.RequestIDExtractor()),
	)

	srv := fakeapi.New(
		fakeapi.WithLogger(log),
		fakeapi.WithSecret([]byte(cfg.Secret)),
		fakeapi.WithEnvelope(cfg.Envelope),
	)
	if cfg.Seed {
		if err := srv.Seed(); err != nil {
			log.Error("seeding failed", slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("demo accounts ready",
			slog.String("professor", fakeapi.DemoProfessorEmail),
			slog.String("aluno", fakeapi.DemoAlunoEmail),
		)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Serve(ctx, cfg.Addr, nil); err != nil {
		log.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
