package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// buildMenuKeyboard builds the persistent reply keyboard.
func buildMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnToday),
			tgbotapi.NewKeyboardButton(btnForecast),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSettings),
			tgbotapi.NewKeyboardButton(btnAbout),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// buildSettingsKeyboard builds the inline keyboard under the settings screen.
func buildSettingsKeyboard(paused bool) tgbotapi.InlineKeyboardMarkup {
	toggle := tgbotapi.NewInlineKeyboardButtonData("⏸ Pause daily ping", buildSettingsCallback(settingsPause))
	if paused {
		toggle = tgbotapi.NewInlineKeyboardButtonData("▶️ Resume daily ping", buildSettingsCallback(settingsResume))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(toggle),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Re-onboard", buildSettingsCallback(settingsReOnboard)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Reset", buildSettingsCallback(settingsReset)),
		),
	)
}

// buildResetConfirmKeyboard asks before deleting the profile.
func buildResetConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes, delete", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", buildResetCancelCallback()),
		),
	)
}

// BotCommands is the command list registered with SetMyCommands.
func BotCommands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start or show today's card"},
		{Command: "today", Description: "Today's card"},
		{Command: "forecast", Description: "Next 7 days"},
		{Command: "about", Description: "About the current phase"},
		{Command: "settings", Description: "Profile and daily ping"},
		{Command: "set_time", Description: "Daily ping time (HH:MM)"},
		{Command: "set_cycle", Description: "Cycle length (21-35)"},
		{Command: "update_period", Description: "Log the latest period (START [END])"},
		{Command: "set_timezone", Description: "Timezone (e.g. Europe/Stockholm)"},
		{Command: "pause", Description: "Pause daily pings"},
		{Command: "resume", Description: "Resume daily pings"},
		{Command: "re_onboard", Description: "Answer the setup questions again"},
		{Command: "reset", Description: "Delete the profile"},
		{Command: "cancel", Description: "Stop the setup questions"},
		{Command: "help", Description: "Help"},
	}
}
