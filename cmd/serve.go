package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cachopreto/webdev-semester-team1/internal/clock"
	"github.com/cachopreto/webdev-semester-team1/internal/consumer"
	"github.com/cachopreto/webdev-semester-team1/internal/repository"
	"github.com/cachopreto/webdev-semester-team1/internal/server"
	"github.com/cachopreto/webdev-semester-team1/internal/service"
	"github.com/cachopreto/webdev-semester-team1/pkg/cache"
	"github.com/cachopreto/webdev-semester-team1/pkg/database"
	"github.com/cachopreto/webdev-semester-team1/pkg/rabbitmq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reservation API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			defer closeDB(db, log)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if migrateUp {
				if err := database.Migrate(db); err != nil {
					return err
				}
			}

			// Messaging is optional: without it the catalog is managed through seed/migrate
			// and reservation events are not emitted.
			var publisher service.EventPublisher
			if cfg.RabbitURL != "" {
				pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
				if err != nil {
					return err
				}
				defer pub.Close()
				publisher = pub

				mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, log)
				if err != nil {
					return err
				}
				defer mqConsumer.Close()

				msgs, err := mqConsumer.Consume()
				if err != nil {
					return err
				}
				consumer.NewCatalogConsumer(repository.NewCatalogRepository(db), log).Start(ctx, msgs)
			} else {
				log.Warn("RABBITMQ_URL not set, catalog sync and reservation events disabled")
			}

			var rdb *redis.Client
			if cfg.RedisAddr != "" {
				rdb, err = cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
				if err != nil {
					log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
				} else {
					defer rdb.Close()
				}
			}

			svc := service.NewReservationService(
				repository.NewShowDateRepository(db),
				repository.NewReservationRepository(db),
			)
			booker := service.NewBooker(svc, clock.NewSystem(), publisher, log)

			e, err := server.New(server.Deps{
				Config: cfg,
				Booker: booker,
				Log:    log,
				Redis:  rdb,
			})
			if err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("reservation service starting", zap.String("port", cfg.ServerPort), zap.String("env", cfg.AppEnv))
				if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err, ok := <-errCh:
				if ok {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancelShutdown()
			return e.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
