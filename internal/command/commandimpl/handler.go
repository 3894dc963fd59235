package commandimpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/socialspark/socialspark-bot/internal/library"
)

const helpMessage = `👋 *Welcome to SocialSpark!*

Here are the available commands:

*BRAND:*
/brand <name> | <type> | <description> - Set up your brand profile.
/brand - Show your current brand profile.

*CREATE:*
/generate <idea> - Generate an image post from your idea.
/video <idea> - Generate a short video from your idea.
/save - Save the latest generated draft to your library.

*LIBRARY:*
/library - List your saved content.
/search <query> - Search your library (add type:image, type:video or platform:<name>).
/filter image|video|all [platform] - Show only one kind of content.
/view <id> - Show one item with its media.
/copy <id> - Get the caption and hashtags as plain text.
/delete <id> - Delete an item (asks for confirmation).
/export <id> - Download the item's media file.

*EDIT & SCHEDULE:*
/edit <id> - Open an item in the editor. Use /edit help for editor commands.
/schedule <id> <yyyy-mm-dd> <hh:mm> [platform] - Schedule an item.

Type /help at any time to see this guide.`

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly. Restarting handler...")
				return errors.New("telegram updates channel closed")
			}

			// Handle callback queries (button clicks)
			if update.CallbackQuery != nil {
				go c.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			go func(u tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
					}
				}()

				if u.Message == nil {
					return
				}

				c.Logger.Info("Message received", "from", u.Message.From.UserName, "text", u.Message.Text)

				if u.Message.IsCommand() {
					if err := c.processCommand(ctx, u); err != nil {
						c.Logger.Error("Error processing command",
							"command", u.Message.Command(),
							"error", err)
					}
				}
			}(update)
		}
	}
}

func (c *CommandImpl) processCommand(ctx context.Context, update tgbotapi.Update) error {
	command := update.Message.Command()
	args := update.Message.CommandArguments()
	chatID := update.Message.Chat.ID

	if !c.Limiter.Allow(chatID) {
		_, err := c.Telegram.SendMessage(chatID, "Too many requests. Please slow down.")
		return err
	}

	switch command {
	case "start", "help":
		_, err := c.Telegram.SendMessage(chatID, helpMessage)
		return err
	case "brand":
		return c.handleBrandCommand(ctx, chatID, args)
	case "generate":
		return c.handleGenerateCommand(ctx, chatID, args, "image")
	case "video":
		return c.handleGenerateCommand(ctx, chatID, args, "video")
	case "save":
		return c.handleSaveCommand(ctx, chatID)
	case "library":
		return c.handleLibraryCommand(ctx, chatID)
	case "search":
		return c.handleSearchCommand(ctx, chatID, args)
	case "filter":
		return c.handleFilterCommand(ctx, chatID, args)
	case "view":
		return c.handleViewCommand(ctx, chatID, args)
	case "copy":
		return c.handleCopyCommand(ctx, chatID, args)
	case "delete":
		return c.handleDeleteCommand(ctx, chatID, args)
	case "export":
		return c.handleExportCommand(ctx, chatID, args)
	case "edit":
		return c.handleEditCommand(ctx, chatID, args)
	case "schedule":
		return c.handleScheduleCommand(ctx, chatID, args)
	default:
		_, err := c.Telegram.SendMessage(chatID, "Unknown command. Type /help to see the list of available commands.")
		return err
	}
}

type callbackData struct {
	Action string `json:"action"`
}

func (c *CommandImpl) handleCallback(ctx context.Context, callbackQuery *tgbotapi.CallbackQuery) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Error("Panic recovered while processing a callback", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if err := c.Telegram.AnswerCallback(callbackQuery.ID); err != nil {
		c.Logger.Warn("Failed to acknowledge callback", "error", err)
	}

	var data callbackData
	if err := json.Unmarshal([]byte(callbackQuery.Data), &data); err != nil {
		c.Logger.Error("Failed to unmarshal callback data", "error", err)
		return
	}

	chatID := callbackQuery.Message.Chat.ID
	messageID := callbackQuery.Message.MessageID

	switch data.Action {
	case "del_confirm":
		item, items, err := c.Library.ConfirmDelete(ctx, chatID)
		if err != nil {
			if errors.Is(err, library.ErrNoPendingDelete) {
				c.Telegram.EditMessageText(chatID, messageID, "There is nothing waiting to be deleted.")
				return
			}
			c.Logger.Error("Failed to confirm deletion", "error", err)
			c.Telegram.EditMessageText(chatID, messageID, "Something went wrong. Please try again.")
			return
		}
		c.Telegram.EditMessageText(chatID, messageID,
			fmt.Sprintf("🗑 Deleted \"%s\". %d item(s) left in your library.", item.Title, len(items)))
	case "del_cancel":
		if c.Library.CancelDelete(chatID) {
			c.Telegram.EditMessageText(chatID, messageID, "Deletion cancelled.")
		} else {
			c.Telegram.EditMessageText(chatID, messageID, "There is nothing waiting to be deleted.")
		}
	}
}
