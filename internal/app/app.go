package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-co-op/gocron/v2"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/socialspark/socialspark-bot/internal/command"
	"github.com/socialspark/socialspark-bot/internal/command/commandimpl"
	"github.com/socialspark/socialspark-bot/internal/editor"
	"github.com/socialspark/socialspark-bot/internal/library"
	_ "github.com/socialspark/socialspark-bot/internal/migrations"
	"github.com/socialspark/socialspark-bot/internal/ratelimit"
	repositories "github.com/socialspark/socialspark-bot/internal/repositories/fx"
	"github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"github.com/socialspark/socialspark-bot/internal/scheduler/schedulerimpl"
	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/internal/spark/sparkimpl"
	"github.com/socialspark/socialspark-bot/internal/store"
	"github.com/socialspark/socialspark-bot/internal/studio"
	"github.com/socialspark/socialspark-bot/internal/studio/studioimpl"
	"github.com/socialspark/socialspark-bot/internal/telegram"
	"github.com/socialspark/socialspark-bot/internal/telegram/telegramimpl"
	"github.com/socialspark/socialspark-bot/pkg/config"
	"github.com/socialspark/socialspark-bot/pkg/logger"
	"github.com/socialspark/socialspark-bot/pkg/pgx"
	"go.uber.org/fx"
)

// staleSlotAge is how long an untouched single-value slot survives before the
// nightly cleanup removes it.
const staleSlotAge = 7 * 24 * time.Hour

var App = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			sparkimpl.New,
			fx.As(new(spark.Client)),
		),
		fx.Annotate(
			studioimpl.New,
			fx.As(new(studio.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
		func() ratelimit.Limiter {
			return ratelimit.NewInMemoryLimiter(1, time.Second, 5)
		},
	),
	repositories.Module,
	store.Module,
	editor.Module,
	library.Module,
	schedulerimpl.Module,
	fx.Invoke(runMigrations),
	fx.Invoke(run),
)

func runMigrations(c *config.Config) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	// Migrations are registered from internal/migrations; no .sql files on disk.
	return goose.Up(db, ".")
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, cmdClient command.Client, slotRepo slot.Repository) {
	appCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)

			go func() {
				for {
					if err := cmdClient.HandleCommand(appCtx); err != nil {
						if appCtx.Err() != nil {
							return
						}
						log.Error("Command handler stopped, restarting", "error", err)
						time.Sleep(5 * time.Second)
					}
				}
			}()

			if err := startSlotCleanup(appCtx, log, slotRepo); err != nil {
				log.Error("Failed to start slot cleanup job", "error", err)
			}

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// startSlotCleanup runs a nightly job that drops stale single-value slots so
// abandoned drafts do not pile up.
func startSlotCleanup(ctx context.Context, log logger.Logger, slotRepo slot.Repository) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.CronJob("0 3 * * *", false),
		gocron.NewTask(func() {
			removed, err := slotRepo.CleanupOldSlots(ctx, staleSlotAge)
			if err != nil {
				log.Error("Slot cleanup failed", "error", err)
				return
			}
			if removed > 0 {
				log.Info("Cleaned up stale slots", "removed", removed)
			}
		}),
	)
	if err != nil {
		return err
	}

	scheduler.Start()

	go func() {
		<-ctx.Done()
		if err := scheduler.Shutdown(); err != nil {
			log.Error("Failed to shut down cleanup scheduler", "error", err)
		}
	}()

	return nil
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start: %v", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Info("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
