package slot

import (
	"context"
	"errors"
	"time"

	"github.com/socialspark/socialspark-bot/internal/domain"
)

// Slot names. Each holds at most one draft per chat, mirroring the original
// dashboard's single-value storage keys.
const (
	Scheduler = "schedulerContent"
	Editor    = "editorContent"
	Post      = "postContent"
	Export    = "exportDraft"
)

// SearchOrder is the order FindContentByID walks the single slots before
// falling back to the library.
var SearchOrder = []string{Scheduler, Editor, Post, Export}

var ErrNotFound = errors.New("slot content not found")
var ErrCannotSave = errors.New("error saving slot content")

//go:generate go run go.uber.org/mock/mockgen -source=slot.go -destination=mocks/mock.go

// Repository is the single-value side of the content store: each named slot
// holds one draft per chat and saving overwrites whatever was there.
type Repository interface {
	// Save overwrites the slot and returns the draft id. Drafts without an id
	// get a fresh one; drafts that already carry an id keep it, so staging an
	// existing item does not break later lookups.
	Save(ctx context.Context, chatID int64, slot string, draft domain.ContentDraft) (string, error)
	// Get returns ErrNotFound for missing or unreadable slots, never a raw
	// decode error.
	Get(ctx context.Context, chatID int64, slot string) (*domain.ContentDraft, error)
	Clear(ctx context.Context, chatID int64, slot string) error
	// CleanupOldSlots removes slot rows older than the given duration.
	CleanupOldSlots(ctx context.Context, olderThan time.Duration) (int64, error)
}
