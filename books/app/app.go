package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/book-tracker/books/config"
	"github.com/Astemirdum/book-tracker/books/internal/events"
	"github.com/Astemirdum/book-tracker/books/internal/handler"
	"github.com/Astemirdum/book-tracker/books/internal/repository"
	"github.com/Astemirdum/book-tracker/books/internal/server"
	"github.com/Astemirdum/book-tracker/books/internal/service"
	"github.com/Astemirdum/book-tracker/books/migrations"
	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/pkg/circuit_breaker"
	"github.com/Astemirdum/book-tracker/pkg/kafka"
	"github.com/Astemirdum/book-tracker/pkg/logger"
	"github.com/Astemirdum/book-tracker/pkg/postgres"
)

const shutdownTimeout = 5 * time.Second

// Run serves the API until SIGINT or SIGTERM.
func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "books")
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return errors.Wrap(err, "repo")
	}

	publisher, closePublisher, err := newPublisher(cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	svc := service.NewService(repo, auth.NewManager(cfg.Auth), log, service.WithPublisher(publisher))
	h := handler.New(svc, svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ", zap.String("addr", srv.Addr()))
		return srv.Run()
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}

// Migrate runs a goose command (up, down, status, version, redo) against the database.
func Migrate(cfg *config.Config, command string, args ...string) error {
	db, err := postgres.Open(context.Background(), &cfg.Database)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()
	return postgres.Migrate(db, migrations.MigrationFiles, command, args...)
}

func newPublisher(cfg kafka.Config, log *zap.Logger) (events.Publisher, func(), error) {
	if !cfg.Enabled() {
		log.Info("kafka brokers not configured, book events disabled")
		return events.Nop{}, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "kafka.NewProducer")
	}
	p := events.NewKafkaPublisher(producer, cfg.Topic(), circuit_breaker.New(100, time.Second, 0.2, 2), log)
	return p, func() {
		if err := p.Close(); err != nil {
			log.Warn("close kafka producer", zap.Error(err))
		}
	}, nil
}
