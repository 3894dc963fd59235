package scheduler

import (
	"context"
	"errors"
)

// Precondition errors, surfaced before any backend call.
var (
	ErrInvalidRunAt  = errors.New("please provide a valid date and time")
	ErrAssetNotFound = errors.New("content not found, please generate or save content first")
)

// NotifyFunc delivers asynchronous scheduling events (e.g. publication) back
// to the user.
type NotifyFunc func(message string)

// Request attaches a run-at timestamp and platform to a stored asset.
type Request struct {
	ChatID   int64
	AssetID  string
	Platform string
	Date     string // "2006-01-02"
	Time     string // "15:04"
}

// Result reports a successful hand-off to the reminder service.
type Result struct {
	Status       string
	ScheduledFor string
}

// Client validates and submits reminders, then polls the reminder status
// until the backend reports the asset as done.
type Client interface {
	Schedule(ctx context.Context, req Request, notify NotifyFunc) (*Result, error)
}
