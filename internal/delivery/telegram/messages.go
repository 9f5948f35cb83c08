// messages.go contains message templates for Telegram.

package telegram

// Menu button labels. Routing matches them exactly.
const (
	btnToday    = "📍 Today"
	btnForecast = "🔮 Forecast"
	btnSettings = "⚙️ Settings"
	btnAbout    = "📚 About phase"
)

const (
	msgWelcome          = "Welcome 👋\n\n<b>Quick onboarding</b>"
	msgFallback         = "Use the menu buttons, or type /start."
	msgUnknownCommand   = "Unknown command. Use the menu buttons, or type /help."
	msgInternalError    = "Something went wrong. Please try again later."
	msgSaved            = "✅ Saved."
	msgUpdated          = "✅ Updated."
	msgPeriodUpdated    = "✅ Period updated."
	msgCancelled        = "Onboarding cancelled."
	msgNothingToCancel  = "Nothing to cancel."
	msgFinishOnboarding = "Let's finish the setup first, or type /cancel."
	msgPaused           = "⏸ Daily ping paused. Send /resume to turn it back on."
	msgResumed          = "▶️ Daily ping resumed."
	msgResetConfirm     = "Delete the profile and period history? This can't be undone."
	msgResetDone        = "🗑 Profile deleted. Type /start to set things up again."
	msgResetCancelled   = "Reset cancelled."
)

const msgHelp = "<b>Daycue</b> sends a daily card about your partner's cycle phase.\n\n" +
	"/today - today's card\n" +
	"/forecast - next 7 days\n" +
	"/about - about the current phase\n" +
	"/settings - profile and daily ping\n" +
	"/set_time HH:MM - change the daily ping time\n" +
	"/set_cycle N - change the cycle length (21-35)\n" +
	"/update_period START [END] - log the latest period\n" +
	"/set_timezone TZ - e.g. Europe/Stockholm or UTC+3\n" +
	"/pause, /resume - stop or restart daily pings\n" +
	"/re_onboard - answer the setup questions again\n" +
	"/reset - delete everything\n" +
	"/cancel - stop the setup questions"

// Onboarding prompts, one per step.
const (
	promptNickname    = "1/6 - Enter partner nickname (example: Anna)"
	promptDOB         = "2/6 - Partner DOB (YYYY-MM-DD) or type <b>skip</b>"
	promptPeriodStart = "3/6 - Last period START date (YYYY-MM-DD)"
	promptPeriodEnd   = "4/6 - Last period END date (YYYY-MM-DD) or type <b>skip</b>"
	promptCycleLength = "5/6 - Cycle length in days (21-35). Example: 28"
	promptNotifyTime  = "6/6 - Daily notification time (HH:MM). Example: 09:00"
)

// Corrective prompts for invalid answers.
const (
	fixNickname       = "Please enter a nickname (2+ letters)."
	fixDate           = "That date doesn't look valid. Use YYYY-MM-DD."
	fixOptionalDate   = "That date doesn't look valid. Use YYYY-MM-DD or type 'skip'."
	fixEndBeforeStart = "End date can't be before start date. Try again."
	fixCycleLength    = "Enter a number between 21 and 35."
	fixNotifyTime     = "Time format should be HH:MM (24h)."
)

// Settings command usage lines.
const (
	usageSetTime      = "Usage: /set_time HH:MM"
	usageSetCycle     = "Usage: /set_cycle 21-35"
	usageUpdatePeriod = "Usage: /update_period START [END]"
	usageSetTimezone  = "Usage: /set_timezone Europe/Stockholm (or UTC+3)"

	errTimeFormat     = "Time should be HH:MM (24h)."
	errCycleRange     = "Cycle length should be 21-35."
	errDateFormat     = "Dates must be YYYY-MM-DD."
	errEndBeforeStart = "END cannot be before START."
	errTimezone       = "Unknown timezone. Use an IANA name like Europe/Stockholm or an offset like UTC+3."
)
