package commandimpl

import (
	"github.com/socialspark/socialspark-bot/internal/command"
	"github.com/socialspark/socialspark-bot/internal/editor"
	"github.com/socialspark/socialspark-bot/internal/library"
	"github.com/socialspark/socialspark-bot/internal/ratelimit"
	"github.com/socialspark/socialspark-bot/internal/repositories/brand"
	libraryrepo "github.com/socialspark/socialspark-bot/internal/repositories/library"
	"github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"github.com/socialspark/socialspark-bot/internal/scheduler"
	"github.com/socialspark/socialspark-bot/internal/store"
	"github.com/socialspark/socialspark-bot/internal/studio"
	"github.com/socialspark/socialspark-bot/internal/telegram"
	"github.com/socialspark/socialspark-bot/pkg/config"
	"github.com/socialspark/socialspark-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Telegram    telegram.Client
	Studio      studio.Client
	Scheduler   scheduler.Client
	Library     *library.Manager
	Editor      *editor.Manager
	Store       *store.Store
	BrandRepo   brand.Repository
	SlotRepo    slot.Repository
	LibraryRepo libraryrepo.Repository
	Limiter     ratelimit.Limiter
	Logger      logger.Logger
	Config      *config.Config
}

type CommandImpl struct {
	Telegram    telegram.Client
	Studio      studio.Client
	Scheduler   scheduler.Client
	Library     *library.Manager
	Editor      *editor.Manager
	Store       *store.Store
	BrandRepo   brand.Repository
	SlotRepo    slot.Repository
	LibraryRepo libraryrepo.Repository
	Limiter     ratelimit.Limiter
	Logger      logger.Logger
	Config      *config.Config
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Telegram:    opts.Telegram,
		Studio:      opts.Studio,
		Scheduler:   opts.Scheduler,
		Library:     opts.Library,
		Editor:      opts.Editor,
		Store:       opts.Store,
		BrandRepo:   opts.BrandRepo,
		SlotRepo:    opts.SlotRepo,
		LibraryRepo: opts.LibraryRepo,
		Limiter:     opts.Limiter,
		Logger:      opts.Logger.WithComponent("Command"),
		Config:      opts.Config,
	}
}

var _ command.Client = (*CommandImpl)(nil)
