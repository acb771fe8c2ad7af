package handlers

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aoimori/kizunabot/internal/card"
	"github.com/aoimori/kizunabot/internal/database"
	"github.com/aoimori/kizunabot/internal/numbers"
)

// extractMentionRefs returns the mention references of a message in entity
// order. Text mentions carry the target's numeric ID; plain @mentions only
// carry the username text, so that text is used as the reference. Entity
// offsets are UTF-16 code units per the Telegram API.
func extractMentionRefs(text string, entities []models.MessageEntity) []string {
	refs := []string{}
	if len(entities) == 0 {
		return refs
	}

	encoded := utf16.Encode([]rune(text))
	for _, e := range entities {
		switch e.Type {
		case models.MessageEntityTypeTextMention:
			if e.User != nil {
				refs = append(refs, strconv.FormatInt(e.User.ID, 10))
			}
		case models.MessageEntityTypeMention:
			if e.Offset < 0 || e.Length <= 0 || e.Offset+e.Length > len(encoded) {
				continue
			}
			refs = append(refs, string(utf16.Decode(encoded[e.Offset:e.Offset+e.Length])))
		}
	}
	return refs
}

// displayName returns a human-readable name for a Telegram user.
func displayName(u *models.User) string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	if name == "" {
		name = strconv.FormatInt(u.ID, 10)
	}
	return name
}

// profileCard builds the card drawing data for a stored profile. The shown
// numbers are picked from the digits of the registered type text; an empty
// Numbers slice means the type text contains no digits.
func profileCard(profile *database.Profile) card.Profile {
	return card.Profile{
		DisplayName: profile.DisplayName,
		TypeText:    profile.TypeText,
		Bio:         profile.Bio,
		Interests:   profile.Interests,
		Numbers:     numbers.Pick(numbers.Digits(profile.TypeText)),
	}
}

// sendPhoto uploads rendered PNG bytes as a photo message.
func sendPhoto(ctx context.Context, b *bot.Bot, chatID int64, filename string, png []byte) error {
	_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(png),
		},
	})
	return err
}

// commandArgs strips the leading /command token (bot suffix included) and
// returns the remaining text.
func commandArgs(text string) string {
	if !strings.HasPrefix(text, "/") {
		return strings.TrimSpace(text)
	}
	parts := strings.SplitN(text, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
