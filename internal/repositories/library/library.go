package library

import (
	"context"
	"errors"

	"github.com/socialspark/socialspark-bot/internal/domain"
)

var ErrNotFound = errors.New("library item not found")
var ErrCannotSave = errors.New("error saving library item")

//go:generate go run go.uber.org/mock/mockgen -source=library.go -destination=mocks/mock.go

// Repository is the persisted library collection: append order is insertion
// order and there is at most one item per id.
type Repository interface {
	// Save assigns a fresh id and creation time, appends the draft as a
	// library item with status "draft" and returns the id.
	Save(ctx context.Context, chatID int64, draft domain.ContentDraft) (string, error)
	GetAll(ctx context.Context, chatID int64) ([]domain.LibraryItem, error)
	GetByID(ctx context.Context, chatID int64, id string) (*domain.LibraryItem, error)
	// Update overwrites the stored item; ErrNotFound when the id is absent.
	Update(ctx context.Context, chatID int64, item domain.LibraryItem) error
	// SetStatus updates only the status field of the matching item.
	SetStatus(ctx context.Context, chatID int64, id string, status string) error
	// Remove is idempotent: removing an absent id is not an error.
	Remove(ctx context.Context, chatID int64, id string) error
}
