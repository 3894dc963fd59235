package studioimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/socialspark/socialspark-bot/internal/domain"
	"github.com/socialspark/socialspark-bot/internal/repositories/brand"
	"github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/internal/studio"
	"github.com/socialspark/socialspark-bot/pkg/config"
	"github.com/socialspark/socialspark-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	LC        fx.Lifecycle
	Spark     spark.Client
	BrandRepo brand.Repository
	SlotRepo  slot.Repository
	Logger    logger.Logger
	Config    *config.Config
}

type StudioImpl struct {
	Spark     spark.Client
	BrandRepo brand.Repository
	SlotRepo  slot.Repository
	Logger    logger.Logger
	Config    *config.Config

	pool *ants.Pool
}

func New(opts Opts) (*StudioImpl, error) {
	workers := opts.Config.Studio.Workers
	if workers <= 0 {
		workers = 5
	}

	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create studio worker pool: %w", err)
	}

	s := &StudioImpl{
		Spark:     opts.Spark,
		BrandRepo: opts.BrandRepo,
		SlotRepo:  opts.SlotRepo,
		Logger:    opts.Logger.WithComponent("Studio"),
		Config:    opts.Config,
		pool:      pool,
	}

	opts.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Release()
			return nil
		},
	})

	return s, nil
}

var _ studio.Client = (*StudioImpl)(nil)

// Generate runs the flow on the shared worker pool so a slow render for one
// chat cannot starve the rest, and blocks until the flow finishes.
func (s *StudioImpl) Generate(ctx context.Context, req studio.Request, progress studio.ProgressFunc) (*domain.ContentDraft, error) {
	type result struct {
		draft *domain.ContentDraft
		err   error
	}

	done := make(chan result, 1)
	err := s.pool.Submit(func() {
		draft, err := s.generate(ctx, req, progress)
		done <- result{draft: draft, err: err}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit generation job: %w", err)
	}

	res := <-done
	return res.draft, res.err
}

// brandPresets builds the presets payload attached to every generation call.
func brandPresets(profile *domain.BrandProfile, tone string) spark.BrandPresets {
	return spark.BrandPresets{
		Name:            profile.BusinessName,
		Tone:            tone,
		Colors:          []string{profile.PrimaryColor, profile.SecondaryColor},
		DefaultHashtags: profile.DefaultHashtags,
		FooterText:      fmt.Sprintf("© %s %d", profile.BusinessName, time.Now().Year()),
	}
}
