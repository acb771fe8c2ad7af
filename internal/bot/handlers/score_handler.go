package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewScoreHandler returns a handler for the /score command.
func NewScoreHandler(deps HandlerDeps) bot.HandlerFunc {
	return scoreHandler{deps}.Handle
}

type scoreHandler struct {
	deps HandlerDeps
}

func (h scoreHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "score")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Score handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	score, err := deps.Store.GetScore(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load score", "error", err, "user_id", userID)
		h.sendText(ctx, b, chatID, deps.Config.Messages.GeneralError)
		return
	}

	var sb strings.Builder
	sb.WriteString(deps.Config.Messages.ScoreHeader)
	values := score.Values()
	for i, label := range deps.Config.Radar.AxisLabels {
		sb.WriteString(fmt.Sprintf("\n%s: %d", label, values[i]))
	}
	h.sendText(ctx, b, chatID, sb.String())
}

func (h scoreHandler) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send score reply", "error", err, "chat_id", chatID)
	}
}
