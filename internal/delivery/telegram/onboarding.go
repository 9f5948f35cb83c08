package telegram

import (
	"context"
	"errors"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

func stepPrompt(step entities.OnboardingStep) string {
	switch step {
	case entities.StepNickname:
		return promptNickname
	case entities.StepDOB:
		return promptDOB
	case entities.StepPeriodStart:
		return promptPeriodStart
	case entities.StepPeriodEnd:
		return promptPeriodEnd
	case entities.StepCycleLength:
		return promptCycleLength
	case entities.StepNotifyTime:
		return promptNotifyTime
	}
	return ""
}

// correctivePrompt explains what was wrong with an answer to step.
func correctivePrompt(step entities.OnboardingStep, err error) string {
	switch {
	case errors.Is(err, entities.ErrNameTooShort):
		return fixNickname
	case errors.Is(err, entities.ErrPeriodEndBeforeStart):
		return fixEndBeforeStart
	case errors.Is(err, entities.ErrInvalidCycleLength):
		return fixCycleLength
	case errors.Is(err, entities.ErrInvalidClock):
		return fixNotifyTime
	case errors.Is(err, entities.ErrInvalidDate):
		if step == entities.StepDOB || step == entities.StepPeriodEnd {
			return fixOptionalDate
		}
		return fixDate
	}
	return fixDate
}

// startOnboarding opens a new session, replacing any unfinished one.
func (h *Handler) startOnboarding(_ context.Context, chatID int64) error {
	session := h.onboardingService.Start(chatID, h.now())
	return h.send(newPromptMessage(chatID, msgWelcome+"\n\n"+stepPrompt(session.Step)))
}

// resumeOnboarding repeats the current question of an open session, or starts one.
func (h *Handler) resumeOnboarding(ctx context.Context, chatID int64) error {
	session, ok := h.onboardingService.Active(chatID)
	if !ok {
		return h.startOnboarding(ctx, chatID)
	}
	return h.send(newPromptMessage(chatID, msgFinishOnboarding+"\n\n"+stepPrompt(session.Step)))
}

func (h *Handler) handleOnboardingAnswer(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, profile, err := h.onboardingService.Answer(ctx, chatID, text, h.now())
		switch {
		case err == nil && profile != nil:
			return h.send(newMenuMessage(chatID, msgSaved+"\n\n"+h.renderToday(ctx, profile)))

		case err == nil:
			return h.send(newPromptMessage(chatID, stepPrompt(session.Step)))

		case entities.IsValidation(err) && session != nil:
			// Same step again.
			return h.send(newPromptMessage(chatID, correctivePrompt(session.Step, err)+"\n\n"+stepPrompt(session.Step)))

		default:
			return err
		}
	}
}

func (h *Handler) handleCancel(ctx context.Context, chatID int64) error {
	if !h.onboardingService.Cancel(chatID) {
		return h.send(newHTMLMessage(chatID, msgNothingToCancel))
	}

	p, err := h.profileService.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if p == nil {
		return h.send(newHTMLMessage(chatID, msgCancelled+" "+msgFallback))
	}
	return h.send(newMenuMessage(chatID, msgCancelled))
}
