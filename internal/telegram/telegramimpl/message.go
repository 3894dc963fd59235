package telegramimpl

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// GetUpdatesChan wraps the bot's long-polling update channel
func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	tg.TgBot.StopReceivingUpdates()
}

// SendMessage sends a text message to a specific chat ID
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	return sentMsg.MessageID, nil
}

// SendMessageWithKeyboard sends a text message with an inline keyboard attached
func (tg *TelegramImpl) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard

	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message with keyboard",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	return sentMsg.MessageID, nil
}

// SendMediaByUrl sends a photo or video by its URL, letting Telegram fetch it
func (tg *TelegramImpl) SendMediaByUrl(chatID int64, url string) error {
	media := tgbotapi.FileURL(url)

	var err error
	if strings.Contains(url, ".mp4") {
		_, err = tg.TgBot.Send(tgbotapi.NewVideo(chatID, media))
	} else {
		_, err = tg.TgBot.Send(tgbotapi.NewPhoto(chatID, media))
	}

	if err != nil {
		tg.Logger.Error("Error sending media",
			"chatID", chatID,
			"url", url,
			"error", err)
		return fmt.Errorf("failed to send media: %w", err)
	}
	return nil
}

// SendDocumentByUrl sends the asset as a document so the original file is
// preserved, with the given download name.
func (tg *TelegramImpl) SendDocumentByUrl(chatID int64, url string, fileName string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileURL(url))
	doc.Caption = fileName

	if _, err := tg.TgBot.Send(doc); err != nil {
		tg.Logger.Error("Error sending document",
			"chatID", chatID,
			"url", url,
			"error", err)
		return fmt.Errorf("failed to send document: %w", err)
	}
	return nil
}

// EditMessageText replaces the text of an already sent message
func (tg *TelegramImpl) EditMessageText(chatID int64, messageID int, newText string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, newText)
	if _, err := tg.TgBot.Send(edit); err != nil {
		tg.Logger.Error("Error editing message",
			"chatID", chatID,
			"messageID", messageID,
			"error", err)
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (tg *TelegramImpl) DeleteMessage(chatID int64, messageID int) error {
	if _, err := tg.TgBot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		tg.Logger.Error("Error deleting message",
			"chatID", chatID,
			"messageID", messageID,
			"error", err)
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// AnswerCallback acknowledges a button press to stop the loading animation.
// Request is used instead of Send to avoid a JSON unmarshal error on the
// empty response.
func (tg *TelegramImpl) AnswerCallback(callbackID string) error {
	_, err := tg.TgBot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}
