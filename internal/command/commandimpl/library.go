package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/socialspark/socialspark-bot/internal/domain"
	"github.com/socialspark/socialspark-bot/internal/library"
	libraryrepo "github.com/socialspark/socialspark-bot/internal/repositories/library"
	"github.com/socialspark/socialspark-bot/internal/spark"
)

func (c *CommandImpl) handleLibraryCommand(ctx context.Context, chatID int64) error {
	items, err := c.Library.List(ctx, chatID)
	if err != nil {
		c.Logger.Error("Failed to list library", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Failed to load your library. Please try again.")
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	_, err = c.Telegram.SendMessage(chatID, renderItemList(items, "📚 Your library"))
	return err
}

func (c *CommandImpl) handleSearchCommand(ctx context.Context, chatID int64, args string) error {
	query, typeFilter, platformFilter := parseSearchArgs(args)
	if query == "" && typeFilter == library.FilterAll && platformFilter == library.FilterAll {
		_, err := c.Telegram.SendMessage(chatID,
			"Search your library: /search <query> [type:image|type:video] [platform:<name>]")
		return err
	}

	items, err := c.Library.Search(ctx, chatID, query, typeFilter, platformFilter)
	if err != nil {
		c.Logger.Error("Failed to search library", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Search failed. Please try again.")
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	_, err = c.Telegram.SendMessage(chatID, renderItemList(items, "🔎 Search results"))
	return err
}

// handleFilterCommand is the filter-only view of the library: no free-text
// query, just a kind and an optional platform.
func (c *CommandImpl) handleFilterCommand(ctx context.Context, chatID int64, args string) error {
	parts := strings.Fields(args)
	if len(parts) == 0 {
		_, err := c.Telegram.SendMessage(chatID, "Filter your library: /filter image|video|all [platform]")
		return err
	}

	typeFilter := parts[0]
	if typeFilter != library.FilterImage && typeFilter != library.FilterVideo && typeFilter != library.FilterAll {
		_, err := c.Telegram.SendMessage(chatID, "Filter your library: /filter image|video|all [platform]")
		return err
	}

	platformFilter := library.FilterAll
	if len(parts) > 1 {
		platformFilter = parts[1]
	}

	items, err := c.Library.Search(ctx, chatID, "", typeFilter, platformFilter)
	if err != nil {
		c.Logger.Error("Failed to filter library", "error", err)
		_, sendErr := c.Telegram.SendMessage(chatID, "Failed to load your library. Please try again.")
		if sendErr != nil {
			return sendErr
		}
		return err
	}

	_, err = c.Telegram.SendMessage(chatID, renderItemList(items, "📚 Filtered library"))
	return err
}

func (c *CommandImpl) handleViewCommand(ctx context.Context, chatID int64, args string) error {
	id := strings.TrimSpace(args)
	if id == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide an item id: /view <id>")
		return err
	}

	item, err := c.Library.Get(ctx, chatID, id)
	if err != nil {
		return c.sendLibraryError(chatID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📄 *%s*\n", item.Title)
	fmt.Fprintf(&b, "Type: %s | Platform: %s | Status: %s\n\n", contentKind(item), item.Platform, item.Status)
	b.WriteString(library.CopyText(item))
	if item.Engagement.Likes > 0 || item.Engagement.Comments > 0 || item.Engagement.Views > 0 {
		fmt.Fprintf(&b, "\n\n❤️ %d  💬 %d  👁 %d", item.Engagement.Likes, item.Engagement.Comments, item.Engagement.Views)
	}

	if _, err := c.Telegram.SendMessage(chatID, b.String()); err != nil {
		return err
	}

	mediaURL := item.ImageURL
	if item.IsVideo() {
		mediaURL = item.VideoURL
	}
	if mediaURL != "" {
		if err := c.Telegram.SendMediaByUrl(chatID, mediaURL); err != nil {
			c.Logger.Error("Failed to send library media", "url", mediaURL, "error", err)
		}
	}
	return nil
}

func (c *CommandImpl) handleCopyCommand(ctx context.Context, chatID int64, args string) error {
	id := strings.TrimSpace(args)
	if id == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide an item id: /copy <id>")
		return err
	}

	item, err := c.Library.Get(ctx, chatID, id)
	if err != nil {
		return c.sendLibraryError(chatID, err)
	}

	_, err = c.Telegram.SendMessage(chatID, library.CopyText(item))
	return err
}

func (c *CommandImpl) handleDeleteCommand(ctx context.Context, chatID int64, args string) error {
	id := strings.TrimSpace(args)
	if id == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide an item id: /delete <id>")
		return err
	}

	item, err := c.Library.RequestDelete(ctx, chatID, id)
	if err != nil {
		return c.sendLibraryError(chatID, err)
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, delete", `{"action":"del_confirm"}`),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", `{"action":"del_cancel"}`),
		),
	)

	_, err = c.Telegram.SendMessageWithKeyboard(chatID,
		fmt.Sprintf("Delete \"%s\"? This cannot be undone.", item.Title), keyboard)
	return err
}

func (c *CommandImpl) handleExportCommand(ctx context.Context, chatID int64, args string) error {
	id := strings.TrimSpace(args)
	if id == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide an item id: /export <id>")
		return err
	}

	sentMsgID, err := c.Telegram.SendMessage(chatID, "Preparing your export... ⏳")
	if err != nil {
		return fmt.Errorf("failed to send initial message: %w", err)
	}

	result, err := c.Library.Export(ctx, chatID, id)
	if err != nil {
		switch {
		case errors.Is(err, libraryrepo.ErrNotFound):
			c.Telegram.EditMessageText(chatID, sentMsgID, "No item with that id in your library.")
		case errors.Is(err, library.ErrNothingToExport):
			c.Telegram.EditMessageText(chatID, sentMsgID, "This item has no media to export.")
		default:
			c.Telegram.EditMessageText(chatID, sentMsgID, "❌ "+spark.UserMessage(err))
		}
		return err
	}

	if err := c.Telegram.SendDocumentByUrl(chatID, result.AssetURL, result.FileName); err != nil {
		c.Telegram.EditMessageText(chatID, sentMsgID, "Failed to send the exported file. Please try again.")
		return err
	}

	c.Telegram.EditMessageText(chatID, sentMsgID, fmt.Sprintf("✅ Exported %s as %s.", result.Kind, result.FileName))
	return nil
}

func (c *CommandImpl) sendLibraryError(chatID int64, err error) error {
	if errors.Is(err, libraryrepo.ErrNotFound) {
		_, sendErr := c.Telegram.SendMessage(chatID, "No item with that id in your library.")
		if sendErr != nil {
			return sendErr
		}
		return err
	}
	c.Logger.Error("Library operation failed", "error", err)
	_, sendErr := c.Telegram.SendMessage(chatID, "Something went wrong. Please try again.")
	if sendErr != nil {
		return sendErr
	}
	return err
}

// parseSearchArgs splits "type:" and "platform:" tokens out of the free-text
// query.
func parseSearchArgs(args string) (query, typeFilter, platformFilter string) {
	typeFilter = library.FilterAll
	platformFilter = library.FilterAll

	var queryWords []string
	for _, word := range strings.Fields(args) {
		switch {
		case strings.HasPrefix(word, "type:"):
			switch strings.TrimPrefix(word, "type:") {
			case "image":
				typeFilter = library.FilterImage
			case "video":
				typeFilter = library.FilterVideo
			}
		case strings.HasPrefix(word, "platform:"):
			platformFilter = strings.TrimPrefix(word, "platform:")
		default:
			queryWords = append(queryWords, word)
		}
	}
	return strings.Join(queryWords, " "), typeFilter, platformFilter
}

func renderItemList(items []domain.LibraryItem, header string) string {
	if len(items) == 0 {
		return "Your library is empty. Generate something with /generate or /video, then /save it."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d):\n\n", header, len(items))
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s [%s, %s] id: %s\n", i+1, item.Title, contentKind(&item), item.Status, item.ID)
	}
	b.WriteString("\nUse /view <id> to see an item.")
	return b.String()
}

func contentKind(item *domain.LibraryItem) string {
	if item.IsVideo() {
		return "video"
	}
	return "image"
}
