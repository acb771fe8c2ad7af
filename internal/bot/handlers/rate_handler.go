package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aoimori/kizunabot/internal/database"
)

// NewRateHandler returns a handler for the /rate command (admin only via
// middleware). The command must be a reply to the target user's message and
// takes axis=delta pairs, e.g. "/rate topic=2 emotion=-1". Negative deltas
// floor at zero per axis.
func NewRateHandler(deps HandlerDeps) bot.HandlerFunc {
	return rateHandler{deps}.Handle
}

type rateHandler struct {
	deps HandlerDeps
}

func (h rateHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "rate")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.WarnContext(ctx, "Rate handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := msg.Chat.ID

	if msg.ReplyToMessage == nil || msg.ReplyToMessage.From == nil {
		h.sendText(ctx, b, chatID, deps.Config.Messages.RateNeedsReply)
		return
	}
	target := msg.ReplyToMessage.From

	delta, err := parseDelta(commandArgs(msg.Text))
	if err != nil {
		log.DebugContext(ctx, "Rejected rate arguments", "error", err, "text", msg.Text)
		h.sendText(ctx, b, chatID, deps.Config.Messages.RateUsage)
		return
	}

	score, err := deps.Store.AddScoreDelta(ctx, target.ID, delta)
	if err != nil {
		log.ErrorContext(ctx, "Failed to apply manual score delta", "error", err, "user_id", target.ID)
		h.sendText(ctx, b, chatID, deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Applied manual score delta", "admin_id", msg.From.ID, "user_id", target.ID, "axes", len(delta))

	var sb strings.Builder
	sb.WriteString(deps.Config.Messages.ScoreHeader)
	values := score.Values()
	for i, label := range deps.Config.Radar.AxisLabels {
		sb.WriteString(fmt.Sprintf("\n%s: %d", label, values[i]))
	}
	h.sendText(ctx, b, chatID, sb.String())
}

func (h rateHandler) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send rate reply", "error", err, "chat_id", chatID)
	}
}

// parseDelta parses axis=delta pairs into a Delta. Unknown axes and
// malformed pairs are errors; an empty argument list is an error.
func parseDelta(args string) (database.Delta, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no axis=delta pairs given")
	}

	delta := database.Delta{}
	for _, f := range fields {
		axis, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("malformed pair %q", f)
		}
		if !database.ValidAxis(axis) {
			return nil, fmt.Errorf("unknown axis %q", axis)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("malformed delta in %q: %w", f, err)
		}
		delta[database.Axis(axis)] += n
	}
	return delta, nil
}
