package studio

import (
	"context"
	"errors"

	"github.com/socialspark/socialspark-bot/internal/domain"
)

// ErrNoBrand blocks generation before any backend call is made.
var ErrNoBrand = errors.New("Please set up your brand first!")

// ErrEmptyStoryboard aborts the video path when the backend produced no shots.
var ErrEmptyStoryboard = errors.New("Failed to generate storyboard: No shots were created")

// Content types accepted by Generate.
const (
	TypeImage = "image"
	TypeVideo = "video"
)

// ProgressFunc receives coarse progress checkpoints (0-100) with a
// user-facing message. The percentages only order the steps; they carry no
// other meaning.
type ProgressFunc func(percent int, message string)

// Request describes one generation run.
type Request struct {
	ChatID      int64
	Idea        string
	Platform    string
	ContentType string
	Tone        string
	Language    string
}

// Client turns an idea into a finished draft: caption and hashtags plus a
// rendered image or video, polled to completion. The returned draft is
// already stored in the chat's post slot.
type Client interface {
	Generate(ctx context.Context, req Request, progress ProgressFunc) (*domain.ContentDraft, error)
}
