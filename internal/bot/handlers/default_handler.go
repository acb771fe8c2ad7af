package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDefaultHandler creates the catch-all handler. It routes plain messages
// to the classification pipeline and reaction updates to the scorer;
// everything else is ignored.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	message := messageHandler{deps}
	reaction := reactionHandler{deps}

	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		switch {
		case update.MessageReaction != nil:
			reaction.Handle(ctx, b, update)
		case update.Message != nil:
			message.Handle(ctx, b, update)
		}
	}
}
