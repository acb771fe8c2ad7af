package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aoimori/kizunabot/internal/database"
)

// NewProfileHandler returns a handler for the /profile command. With
// arguments ("type | bio | interests") it registers or updates the sender's
// profile; without arguments it shows the current one.
func NewProfileHandler(deps HandlerDeps) bot.HandlerFunc {
	return profileHandler{deps}.Handle
}

type profileHandler struct {
	deps HandlerDeps
}

func (h profileHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "profile")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.WarnContext(ctx, "Profile handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := msg.Chat.ID

	args := commandArgs(msg.Text)
	if args == "" {
		h.show(ctx, b, chatID, msg.From.ID)
		return
	}

	parts := strings.SplitN(args, "|", 3)
	typeText := strings.TrimSpace(parts[0])
	if typeText == "" {
		h.sendText(ctx, b, chatID, deps.Config.Messages.ProfileUsage)
		return
	}

	profile := &database.Profile{
		UserID:      msg.From.ID,
		DisplayName: displayName(msg.From),
		TypeText:    typeText,
	}
	if len(parts) > 1 {
		profile.Bio = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		profile.Interests = strings.TrimSpace(parts[2])
	}

	if err := deps.Store.SaveProfile(ctx, profile); err != nil {
		log.ErrorContext(ctx, "Failed to save profile", "error", err, "user_id", msg.From.ID)
		h.sendText(ctx, b, chatID, deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Saved profile", "user_id", msg.From.ID)
	h.sendText(ctx, b, chatID, deps.Config.Messages.ProfileSaved)
	h.sendCard(ctx, b, chatID, profile)
}

// sendCard renders and posts the freshly registered profile card. A type
// text without digits skips the card; registration itself already succeeded,
// so failures here are logged and not surfaced.
func (h profileHandler) sendCard(ctx context.Context, b *bot.Bot, chatID int64, profile *database.Profile) {
	log := h.deps.Logger.With("handler", "profile")

	cp := profileCard(profile)
	if len(cp.Numbers) == 0 {
		log.DebugContext(ctx, "No digits in type text, skipping registration card", "user_id", profile.UserID)
		return
	}

	png, err := h.deps.Card.Render(cp)
	if err != nil {
		log.ErrorContext(ctx, "Failed to render registration card", "error", err, "user_id", profile.UserID)
		return
	}
	if err := sendPhoto(ctx, b, chatID, "profile.png", png); err != nil {
		log.ErrorContext(ctx, "Failed to send registration card", "error", err, "chat_id", chatID)
	}
}

func (h profileHandler) show(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	deps := h.deps
	log := deps.Logger.With("handler", "profile")

	profile, err := deps.Store.GetProfile(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load profile", "error", err, "user_id", userID)
		h.sendText(ctx, b, chatID, deps.Config.Messages.GeneralError)
		return
	}
	if profile == nil {
		h.sendText(ctx, b, chatID, deps.Config.Messages.NoProfile)
		return
	}

	text := fmt.Sprintf("%s\n体癖: %s", profile.DisplayName, profile.TypeText)
	if profile.Bio != "" {
		text += "\nひとこと: " + profile.Bio
	}
	if profile.Interests != "" {
		text += "\n興味: " + profile.Interests
	}
	h.sendText(ctx, b, chatID, text)
}

func (h profileHandler) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send profile reply", "error", err, "chat_id", chatID)
	}
}
