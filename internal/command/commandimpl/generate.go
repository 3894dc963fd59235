package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"github.com/socialspark/socialspark-bot/internal/spark"
	"github.com/socialspark/socialspark-bot/internal/studio"
	"github.com/socialspark/socialspark-bot/pkg/formatter"
)

func (c *CommandImpl) handleGenerateCommand(ctx context.Context, chatID int64, args string, contentType string) error {
	idea := strings.TrimSpace(args)
	if idea == "" {
		usage := "/generate <idea>"
		if contentType == studio.TypeVideo {
			usage = "/video <idea>"
		}
		_, err := c.Telegram.SendMessage(chatID, "Please describe your idea: "+usage)
		return err
	}

	sentMsgID, err := c.Telegram.SendMessage(chatID, "Starting generation... ⏳")
	if err != nil {
		return fmt.Errorf("failed to send initial message: %w", err)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	progress := func(percent int, message string) {
		if err := c.Telegram.EditMessageText(chatID, sentMsgID, fmt.Sprintf("[%d%%] %s", percent, message)); err != nil {
			c.Logger.Warn("Failed to update progress message", "error", err)
		}
	}

	draft, err := c.Studio.Generate(ctxWithTimeout, studio.Request{
		ChatID:      chatID,
		Idea:        idea,
		ContentType: contentType,
	}, progress)
	if err != nil {
		if errors.Is(err, studio.ErrNoBrand) || errors.Is(err, studio.ErrEmptyStoryboard) {
			c.Telegram.EditMessageText(chatID, sentMsgID, "❌ "+err.Error())
			return err
		}
		c.Telegram.EditMessageText(chatID, sentMsgID, "❌ "+spark.UserMessage(err))
		return err
	}

	mediaURL := draft.ImageURL
	if draft.IsVideo() {
		mediaURL = draft.VideoURL
	}
	if mediaURL != "" {
		if err := c.Telegram.SendMediaByUrl(chatID, mediaURL); err != nil {
			c.Logger.Error("Failed to send generated media", "url", mediaURL, "error", err)
		}
	}

	c.Telegram.SendMessage(chatID, formatter.CaptionWithHashtags(draft.Caption, draft.Hashtags))
	_, err = c.Telegram.SendMessage(chatID,
		fmt.Sprintf("✅ Done! Use /save to keep it in your library, /edit %s to tweak it, or /schedule %s to plan a reminder.", draft.ID, draft.ID))
	return err
}

// handleSaveCommand moves the latest generated draft into the library.
func (c *CommandImpl) handleSaveCommand(ctx context.Context, chatID int64) error {
	draft, err := c.SlotRepo.Get(ctx, chatID, slot.Post)
	if err != nil {
		if errors.Is(err, slot.ErrNotFound) {
			_, sendErr := c.Telegram.SendMessage(chatID, "Nothing to save yet. Generate something first with /generate or /video.")
			return sendErr
		}
		return err
	}

	id, err := c.LibraryRepo.Save(ctx, chatID, *draft)
	if err != nil {
		c.Logger.Error("Failed to save draft to library", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Failed to save to your library. Please try again.")
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	if err := c.SlotRepo.Clear(ctx, chatID, slot.Post); err != nil {
		c.Logger.Warn("Failed to clear draft slot after saving", "error", err)
	}

	_, err = c.Telegram.SendMessage(chatID, fmt.Sprintf("💾 Saved to your library with id %s.", id))
	return err
}
