package library

import (
	"context"
	"errors"
	"sync"

	"github.com/socialspark/socialspark-bot/internal/domain"
	libraryrepo "github.com/socialspark/socialspark-bot/internal/repositories/library"
	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/pkg/formatter"
	"github.com/socialspark/socialspark-bot/pkg/logger"
	"go.uber.org/fx"
)

var ErrNothingToExport = errors.New("no content to export")
var ErrNoPendingDelete = errors.New("no deletion awaiting confirmation")

// ExportResult describes the asset handed back to the user.
type ExportResult struct {
	AssetURL string
	Kind     string // "video" or "image"
	FileName string
}

type Opts struct {
	fx.In

	Repo   libraryrepo.Repository
	Spark  spark.Client
	Logger logger.Logger
}

// Manager is the presentation-independent side of the library: listing,
// filtering, the two-phase delete and export.
type Manager struct {
	repo   libraryrepo.Repository
	spark  spark.Client
	logger logger.Logger

	mu      sync.Mutex
	pending map[int64]*domain.LibraryItem
}

func New(opts Opts) *Manager {
	return &Manager{
		repo:    opts.Repo,
		spark:   opts.Spark,
		logger:  opts.Logger.WithComponent("Library"),
		pending: make(map[int64]*domain.LibraryItem),
	}
}

func (m *Manager) List(ctx context.Context, chatID int64) ([]domain.LibraryItem, error) {
	return m.repo.GetAll(ctx, chatID)
}

func (m *Manager) Get(ctx context.Context, chatID int64, id string) (*domain.LibraryItem, error) {
	return m.repo.GetByID(ctx, chatID, id)
}

func (m *Manager) Search(ctx context.Context, chatID int64, query, typeFilter, platformFilter string) ([]domain.LibraryItem, error) {
	items, err := m.repo.GetAll(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return FilterContent(items, query, typeFilter, platformFilter), nil
}

// RequestDelete records the deletion candidate; nothing is removed until the
// chat confirms.
func (m *Manager) RequestDelete(ctx context.Context, chatID int64, id string) (*domain.LibraryItem, error) {
	item, err := m.repo.GetByID(ctx, chatID, id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.pending[chatID] = item
	m.mu.Unlock()

	return item, nil
}

// ConfirmDelete removes the recorded candidate and returns it together with
// the reloaded collection.
func (m *Manager) ConfirmDelete(ctx context.Context, chatID int64) (*domain.LibraryItem, []domain.LibraryItem, error) {
	m.mu.Lock()
	item := m.pending[chatID]
	delete(m.pending, chatID)
	m.mu.Unlock()

	if item == nil {
		return nil, nil, ErrNoPendingDelete
	}

	if err := m.repo.Remove(ctx, chatID, item.ID); err != nil {
		return nil, nil, err
	}

	items, err := m.repo.GetAll(ctx, chatID)
	if err != nil {
		return item, nil, err
	}
	return item, items, nil
}

// CancelDelete discards the candidate without touching storage.
func (m *Manager) CancelDelete(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending[chatID] == nil {
		return false
	}
	delete(m.pending, chatID)
	return true
}

// Export hands the item's media to the user. Video export is attempted first
// when a video URL exists; if the backend export fails and an image URL is
// available, the image is exported instead. With neither URL present the
// result is ErrNothingToExport.
func (m *Manager) Export(ctx context.Context, chatID int64, id string) (*ExportResult, error) {
	item, err := m.repo.GetByID(ctx, chatID, id)
	if err != nil {
		return nil, err
	}

	if !item.IsVideo() && item.ImageURL == "" {
		return nil, ErrNothingToExport
	}

	if item.IsVideo() {
		resp, err := m.spark.ExportDraft(ctx, item.ID)
		if err == nil {
			return &ExportResult{
				AssetURL: resp.AssetURL,
				Kind:     "video",
				FileName: formatter.FileName(item.Title, ".mp4"),
			}, nil
		}

		m.logger.Warn("Video export failed", "id", item.ID, "error", err)
		if item.ImageURL == "" {
			return nil, err
		}
	}

	return &ExportResult{
		AssetURL: item.ImageURL,
		Kind:     "image",
		FileName: formatter.FileName(item.Title, ".png"),
	}, nil
}

// CopyText renders the clipboard payload: caption plus the hashtag line.
func CopyText(item *domain.LibraryItem) string {
	return formatter.CaptionWithHashtags(item.Caption, item.Hashtags)
}

var Module = fx.Module("library",
	fx.Provide(New),
)
