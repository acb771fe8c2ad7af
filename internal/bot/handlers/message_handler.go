package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aoimori/kizunabot/internal/classify"
	"github.com/aoimori/kizunabot/internal/database"
	"github.com/aoimori/kizunabot/internal/ingest"
)

const dbSaveTimeout = 5 * time.Second

type messageHandler struct {
	deps HandlerDeps
}

// NewMessageHandler creates the handler for ordinary group messages. Each
// message is classified, recorded for later reaction attribution, and
// forwarded to the ingestion sink.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

func (h messageHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "message")

	msg := update.Message
	if msg == nil || msg.From == nil {
		log.DebugContext(ctx, "Ignoring update with nil message or sender", "update_id", update.ID)
		return
	}
	if deps.Config.Telegram.BotInfo != nil && msg.From.ID == deps.Config.Telegram.BotInfo.ID {
		return
	}

	text := msg.Text
	entitySpans := msg.Entities
	if text == "" {
		text = msg.Caption
		entitySpans = msg.CaptionEntities
	}

	entities := classify.Extract(text)
	label := deps.Classifier.Label(text)

	log.DebugContext(ctx, "Classified message",
		"chat_id", msg.Chat.ID,
		"message_id", msg.ID,
		"label", label,
		"urls", len(entities.URLs),
		"numbers", len(entities.Numbers))

	record := &database.Message{
		ChatID:    msg.Chat.ID,
		MessageID: int64(msg.ID),
		UserID:    msg.From.ID,
		Content:   text,
		Label:     string(label),
		Timestamp: time.Unix(int64(msg.Date), 0).UTC(),
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	err := deps.Store.SaveMessage(dbCtx, record)
	cancel()
	if err != nil {
		log.ErrorContext(ctx, "Failed to save message", "error", err, "chat_id", msg.Chat.ID, "message_id", msg.ID)
	}

	h.deliver(ctx, msg, text, entitySpans, entities, label)
}

// deliver forwards one record to the ingestion sink. Failures are logged and
// the record dropped; message processing never depends on the sink.
func (h messageHandler) deliver(ctx context.Context, msg *models.Message, text string, entitySpans []models.MessageEntity, entities classify.Entities, label classify.Label) {
	deps := h.deps
	if !deps.Ingest.Enabled() {
		return
	}
	log := deps.Logger.With("handler", "message")

	out := ingest.Message{
		ServerID:   strconv.FormatInt(msg.Chat.ID, 10),
		ChannelID:  strconv.FormatInt(msg.Chat.ID, 10),
		MessageID:  strconv.Itoa(msg.ID),
		AuthorID:   strconv.FormatInt(msg.From.ID, 10),
		AuthorBot:  msg.From.IsBot,
		CreatedAt:  time.Unix(int64(msg.Date), 0).UTC(),
		Text:       text,
		MentionIDs: extractMentionRefs(text, entitySpans),
	}
	if msg.MessageThreadID != 0 {
		out.ThreadID = strconv.Itoa(msg.MessageThreadID)
	}
	if msg.ReplyToMessage != nil {
		out.ReplyToID = strconv.Itoa(msg.ReplyToMessage.ID)
	}

	if err := deps.Ingest.Deliver(ctx, ingest.BuildRecord(out, entities, label)); err != nil {
		log.WarnContext(ctx, "Ingestion delivery failed, record dropped",
			"error", err, "chat_id", msg.Chat.ID, "message_id", msg.ID)
	}
}
