package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// newMenuMessage creates an HTML message that (re)shows the menu keyboard.
func newMenuMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = buildMenuKeyboard()
	return msg
}

// newPromptMessage hides the menu while a free-text answer is expected.
func newPromptMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	return msg
}

func newHTMLEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}
