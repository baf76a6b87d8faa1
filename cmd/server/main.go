package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dealflow/internal/config"
	"dealflow/internal/infra"
	"dealflow/internal/repository"
	"dealflow/internal/router"
	"dealflow/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	rdb, err := infra.NewRedis(ctx, cfg.RedisURL, 5*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"))
	mailer := infra.NewMailer(cfg)
	if !mailer.Enabled() {
		log.Warn().Msg("SMTP_HOST not set, outgoing email will only be logged")
	}
	dispatcher := worker.NewDispatcher(rdb)

	deps := router.Deps{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		MailCB: mailCB,
		Mail:   dispatcher,
	}
	if cfg.S3Bucket != "" || cfg.S3Endpoint != "" {
		presigner, err := infra.NewS3Presigner(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure object storage")
		}
		deps.Presigner = presigner
	}

	// Background work: email queue consumers and the reminder cron.
	pool := worker.NewPool(rdb)
	pool.Register(worker.QueueEmail, worker.JobEmail, worker.NewEmailWorker(mailer, mailCB).Process)
	pool.Start(ctx, cfg.WorkerPoolSize)

	worker.StartReminderCron(ctx, worker.ReminderCronConfig{
		Activities: repository.NewActivityRepository(db),
		Dispatcher: dispatcher,
		CB:         mailCB,
		Domain:     cfg.Domain,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("dealflow API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	pool.Wait()
	_ = rdb.Close()
	log.Info().Msg("server exited")
}
