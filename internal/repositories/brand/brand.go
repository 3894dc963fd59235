package brand

import (
	"context"
	"errors"

	"github.com/socialspark/socialspark-bot/internal/domain"
)

var ErrNotFound = errors.New("brand profile not found")
var ErrCannotSave = errors.New("error saving brand profile")

//go:generate go run go.uber.org/mock/mockgen -source=brand.go -destination=mocks/mock.go

// Repository stores one brand profile per chat. Saving overwrites the
// previous profile; generation flows refuse to run while Get reports
// ErrNotFound.
type Repository interface {
	Get(ctx context.Context, chatID int64) (*domain.BrandProfile, error)
	Save(ctx context.Context, chatID int64, profile domain.BrandProfile) error
}
