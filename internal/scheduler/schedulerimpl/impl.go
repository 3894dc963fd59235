package schedulerimpl

import (
	"context"
	"errors"
	"time"

	"github.com/socialspark/socialspark-bot/internal/domain"
	"github.com/socialspark/socialspark-bot/internal/poller"
	libraryrepo "github.com/socialspark/socialspark-bot/internal/repositories/library"
	"github.com/socialspark/socialspark-bot/internal/scheduler"
	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/internal/store"
	"github.com/socialspark/socialspark-bot/pkg/config"
	apperrors "github.com/socialspark/socialspark-bot/pkg/errors"
	"github.com/socialspark/socialspark-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Spark       spark.Client
	Store       *store.Store
	LibraryRepo libraryrepo.Repository
	Logger      logger.Logger
	Config      *config.Config
}

type SchedulerImpl struct {
	Spark       spark.Client
	Store       *store.Store
	LibraryRepo libraryrepo.Repository
	Logger      logger.Logger
	Config      *config.Config
}

func New(opts Opts) *SchedulerImpl {
	return &SchedulerImpl{
		Spark:       opts.Spark,
		Store:       opts.Store,
		LibraryRepo: opts.LibraryRepo,
		Logger:      opts.Logger.WithComponent("Scheduler"),
		Config:      opts.Config,
	}
}

var _ scheduler.Client = (*SchedulerImpl)(nil)

// Schedule validates the asset and timestamp, submits the reminder and, on a
// scheduled/queued response, marks the library copy and starts polling the
// reminder status every 15 seconds until the backend reports done.
func (s *SchedulerImpl) Schedule(ctx context.Context, req scheduler.Request, notify scheduler.NotifyFunc) (*scheduler.Result, error) {
	runAt, err := combineDateTime(req.Date, req.Time)
	if err != nil {
		return nil, scheduler.ErrInvalidRunAt
	}

	if _, err := s.Store.FindContentByID(ctx, req.ChatID, req.AssetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, scheduler.ErrAssetNotFound
		}
		return nil, err
	}

	resp, err := s.Spark.ScheduleReminder(ctx, spark.ScheduleReminderRequest{
		AssetID:  req.AssetID,
		Platform: req.Platform,
		RunAt:    runAt.Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	if resp.Status != domain.StatusScheduled && resp.Status != domain.TaskQueued {
		return nil, apperrors.WrapWithCode(apperrors.ErrServiceUnavailable, "SCHEDULE_REJECTED", "failed to schedule reminder")
	}

	s.markStatus(ctx, req.ChatID, req.AssetID, domain.StatusScheduled)

	scheduledFor := resp.ScheduledFor
	if scheduledFor == "" {
		scheduledFor = runAt.Format(time.RFC3339)
	}

	s.watchReminder(ctx, req.ChatID, req.AssetID, notify)

	return &scheduler.Result{Status: resp.Status, ScheduledFor: scheduledFor}, nil
}

// watchReminder polls /schedule/{asset_id}; "done" marks the asset published
// and notifies the chat. Poll errors halt the watch (fail-fast) after
// surfacing a generic message.
func (s *SchedulerImpl) watchReminder(ctx context.Context, chatID int64, assetID string, notify scheduler.NotifyFunc) {
	_, err := poller.Start(ctx, s.Logger, assetID, s.Config.Poller.ReminderInterval, func(ctx context.Context, id string) (bool, error) {
		status, err := s.Spark.GetReminderStatus(ctx, id)
		if err != nil {
			if notify != nil {
				notify("Failed to check scheduling status")
			}
			return false, err
		}

		if status.Status != domain.TaskDone {
			return false, nil
		}

		s.markStatus(ctx, chatID, id, domain.StatusPublished)
		if notify != nil {
			notify("Content has been published!")
		}
		return true, nil
	})
	if err != nil {
		s.Logger.Error("Failed to start reminder watch", "asset_id", assetID, "error", err)
	}
}

// markStatus updates the library copy when the asset lives there. Assets
// that only exist in a single slot have no status field to update.
func (s *SchedulerImpl) markStatus(ctx context.Context, chatID int64, assetID string, status string) {
	if err := s.LibraryRepo.SetStatus(ctx, chatID, assetID, status); err != nil {
		if errors.Is(err, libraryrepo.ErrNotFound) {
			return
		}
		s.Logger.Warn("Failed to update library status", "asset_id", assetID, "status", status, "error", err)
	}
}

// combineDateTime merges a selected day with a selected time-of-day into one
// local timestamp.
func combineDateTime(date, timeOfDay string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, time.Local)
}

var Module = fx.Module("scheduler",
	fx.Provide(
		New,
		fx.Annotate(
			func(impl *SchedulerImpl) scheduler.Client {
				return impl
			},
			fx.As(new(scheduler.Client)),
		),
	),
)
