package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Client interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	SendMessage(chatID int64, text string) (int, error)
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) (int, error)
	SendMediaByUrl(chatID int64, url string) error
	SendDocumentByUrl(chatID int64, url string, fileName string) error
	EditMessageText(chatID int64, messageID int, newText string) error
	DeleteMessage(chatID int64, messageID int) error
	AnswerCallback(callbackID string) error
}
