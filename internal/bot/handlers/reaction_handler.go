package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aoimori/kizunabot/internal/database"
)

type reactionHandler struct {
	deps HandlerDeps
}

// NewReactionHandler creates the handler for message_reaction updates. Each
// newly added reaction that is mapped to a score axis credits one point to
// the author of the reacted-to message. Removed reactions do not subtract.
func NewReactionHandler(deps HandlerDeps) bot.HandlerFunc {
	return reactionHandler{deps}.Handle
}

func (h reactionHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "reaction")

	r := update.MessageReaction
	if r == nil {
		return
	}

	added := addedEmoji(r.OldReaction, r.NewReaction)
	if len(added) == 0 {
		return
	}

	delta := database.Delta{}
	for _, emoji := range added {
		axis, ok := deps.Config.Scoring.Reactions[emoji]
		if !ok {
			continue
		}
		delta[database.Axis(axis)]++
	}
	if len(delta) == 0 {
		log.DebugContext(ctx, "No scored reactions in update", "chat_id", r.Chat.ID, "message_id", r.MessageID)
		return
	}

	author, err := deps.Store.GetMessageAuthor(ctx, r.Chat.ID, int64(r.MessageID))
	if err != nil {
		log.ErrorContext(ctx, "Failed to resolve message author", "error", err, "chat_id", r.Chat.ID, "message_id", r.MessageID)
		return
	}
	if author == 0 {
		log.DebugContext(ctx, "Reaction on unobserved message, skipping", "chat_id", r.Chat.ID, "message_id", r.MessageID)
		return
	}
	// Self-reactions do not score.
	if r.User != nil && r.User.ID == author {
		return
	}
	if deps.Config.Telegram.BotInfo != nil && author == deps.Config.Telegram.BotInfo.ID {
		return
	}

	score, err := deps.Store.AddScoreDelta(ctx, author, delta)
	if err != nil {
		log.ErrorContext(ctx, "Failed to apply reaction score", "error", err, "user_id", author)
		return
	}

	log.InfoContext(ctx, "Applied reaction score",
		"user_id", author,
		"chat_id", r.Chat.ID,
		"message_id", r.MessageID,
		"delta_axes", len(delta),
		"max_axis", score.Max())
}

// addedEmoji returns the emoji present in the new reaction set but not the
// old one. Custom and paid reactions have no emoji and are ignored.
func addedEmoji(oldSet, newSet []models.ReactionType) []string {
	seen := make(map[string]bool, len(oldSet))
	for _, rt := range oldSet {
		if rt.ReactionTypeEmoji != nil {
			seen[rt.ReactionTypeEmoji.Emoji] = true
		}
	}

	var added []string
	for _, rt := range newSet {
		if rt.ReactionTypeEmoji == nil {
			continue
		}
		if !seen[rt.ReactionTypeEmoji.Emoji] {
			added = append(added, rt.ReactionTypeEmoji.Emoji)
		}
	}
	return added
}
