package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/socialspark/socialspark-bot/internal/scheduler"
	"github.com/socialspark/socialspark-bot/internal/spark"
)

const scheduleUsage = "Schedule an item: /schedule <id> <yyyy-mm-dd> <hh:mm> [platform]"

func (c *CommandImpl) handleScheduleCommand(ctx context.Context, chatID int64, args string) error {
	parts := strings.Fields(args)
	if len(parts) < 3 {
		_, err := c.Telegram.SendMessage(chatID, scheduleUsage)
		return err
	}

	req := scheduler.Request{
		ChatID:   chatID,
		AssetID:  parts[0],
		Date:     parts[1],
		Time:     parts[2],
		Platform: "instagram",
	}
	if len(parts) > 3 {
		req.Platform = parts[3]
	}

	notify := func(message string) {
		if _, err := c.Telegram.SendMessage(chatID, message); err != nil {
			c.Logger.Warn("Failed to deliver scheduling notification", "error", err)
		}
	}

	result, err := c.Scheduler.Schedule(ctx, req, notify)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidRunAt), errors.Is(err, scheduler.ErrAssetNotFound):
			_, sendErr := c.Telegram.SendMessage(chatID, "❌ "+err.Error())
			if sendErr != nil {
				return sendErr
			}
		default:
			_, sendErr := c.Telegram.SendMessage(chatID, "❌ "+spark.UserMessage(err))
			if sendErr != nil {
				return sendErr
			}
		}
		return err
	}

	_, err = c.Telegram.SendMessage(chatID,
		fmt.Sprintf("📅 Scheduled for %s (%s). I'll let you know when it goes live.", result.ScheduledFor, result.Status))
	return err
}
