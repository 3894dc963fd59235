package store

import (
	"context"
	"errors"

	"github.com/socialspark/socialspark-bot/internal/domain"
	"github.com/socialspark/socialspark-bot/internal/repositories/library"
	"github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"github.com/socialspark/socialspark-bot/pkg/logger"
	"go.uber.org/fx"
)

var ErrNotFound = errors.New("content not found")

// Store is the cross-slot view of the content store. It only adds lookups
// that span the single slots and the library; everything else goes through
// the repositories directly.
type Store struct {
	Slots   slot.Repository
	Library library.Repository
	Logger  logger.Logger
}

type Opts struct {
	fx.In

	Slots   slot.Repository
	Library library.Repository
	Logger  logger.Logger
}

func New(opts Opts) *Store {
	return &Store{
		Slots:   opts.Slots,
		Library: opts.Library,
		Logger:  opts.Logger.WithComponent("ContentStore"),
	}
}

// FindContentByID searches the single slots in their fixed order, then the
// library collection. First match wins.
func (s *Store) FindContentByID(ctx context.Context, chatID int64, id string) (*domain.ContentDraft, error) {
	for _, name := range slot.SearchOrder {
		draft, err := s.Slots.Get(ctx, chatID, name)
		if err != nil {
			if errors.Is(err, slot.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if draft.ID == id {
			return draft, nil
		}
	}

	item, err := s.Library.GetByID(ctx, chatID, id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	draft := item.ContentDraft
	return &draft, nil
}

var Module = fx.Module("content_store",
	fx.Provide(New),
)
