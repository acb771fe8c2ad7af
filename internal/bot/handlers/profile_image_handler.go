package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewProfileImageHandler returns a handler for the /profile_image command.
// It renders the sender's profile card with the numbers picked from the
// registered type text.
func NewProfileImageHandler(deps HandlerDeps) bot.HandlerFunc {
	return profileImageHandler{deps}.Handle
}

type profileImageHandler struct {
	deps HandlerDeps
}

func (h profileImageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "profile_image")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.WarnContext(ctx, "Profile image handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := msg.Chat.ID

	profile, err := deps.Store.GetProfile(ctx, msg.From.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load profile", "error", err, "user_id", msg.From.ID)
		h.sendText(ctx, b, chatID, deps.Config.Messages.GeneralError)
		return
	}
	if profile == nil {
		h.sendText(ctx, b, chatID, deps.Config.Messages.NoProfile)
		return
	}

	cp := profileCard(profile)
	if len(cp.Numbers) == 0 {
		log.DebugContext(ctx, "No digits in registered type text", "user_id", msg.From.ID)
		h.sendText(ctx, b, chatID, deps.Config.Messages.ProfileNoDigits)
		return
	}

	png, err := deps.Card.Render(cp)
	if err != nil {
		log.ErrorContext(ctx, "Failed to render profile card", "error", err, "user_id", msg.From.ID)
		h.sendText(ctx, b, chatID, deps.Config.Messages.GeneralError)
		return
	}

	if err := sendPhoto(ctx, b, chatID, "profile.png", png); err != nil {
		log.ErrorContext(ctx, "Failed to send profile card", "error", err, "chat_id", chatID)
		return
	}
	log.InfoContext(ctx, "Sent profile card", "user_id", msg.From.ID, "numbers", cp.Numbers)
}

func (h profileImageHandler) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send profile image reply", "error", err, "chat_id", chatID)
	}
}
