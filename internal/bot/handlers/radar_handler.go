package handlers

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aoimori/kizunabot/internal/radar"
)

// NewRadarHandler returns a handler for the /radar command. It renders the
// sender's contribution radar chart and sends it as a photo.
func NewRadarHandler(deps HandlerDeps) bot.HandlerFunc {
	return radarHandler{deps}.Handle
}

type radarHandler struct {
	deps HandlerDeps
}

func (h radarHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "radar")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Radar handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	score, err := deps.Store.GetScore(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load score", "error", err, "user_id", userID)
		h.sendError(ctx, b, chatID)
		return
	}

	values := score.Values()
	scale := radar.ScaleFor(radar.MaxValue(values))
	projection := radar.Project(values, scale)

	title := fmt.Sprintf(deps.Config.Messages.RadarTitleFormat, displayName(update.Message.From), scale)
	png, err := deps.Radar.Render(projection, deps.Config.Radar.AxisLabels, title)
	if err != nil {
		log.ErrorContext(ctx, "Failed to render radar chart", "error", err, "user_id", userID)
		h.sendError(ctx, b, chatID)
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: "radar.png",
			Data:     bytes.NewReader(png),
		},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send radar chart", "error", err, "chat_id", chatID)
		return
	}
	log.InfoContext(ctx, "Sent radar chart", "user_id", userID, "scale", scale)
}

func (h radarHandler) sendError(ctx context.Context, b *bot.Bot, chatID int64) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.GeneralError}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send error message", "error", err, "chat_id", chatID)
	}
}
