package handlers

import (
	"bytes"
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/aoimori/kizunabot/internal/card"
	"github.com/aoimori/kizunabot/internal/database"
)

func TestParseDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    string
		want    database.Delta
		wantErr bool
	}{
		{
			name: "single pair",
			args: "topic=2",
			want: database.Delta{database.AxisTopic: 2},
		},
		{
			name: "multiple pairs with negative",
			args: "topic=2 emotion=-1",
			want: database.Delta{database.AxisTopic: 2, database.AxisEmotion: -1},
		},
		{
			name: "repeated axis accumulates",
			args: "reply=1 reply=2",
			want: database.Delta{database.AxisReply: 3},
		},
		{name: "empty args", args: "", wantErr: true},
		{name: "unknown axis", args: "charisma=1", wantErr: true},
		{name: "missing value", args: "topic", wantErr: true},
		{name: "non numeric value", args: "topic=two", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseDelta(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDelta(%q) succeeded, want error", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDelta(%q): %v", tt.args, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseDelta(%q) = %v, want %v", tt.args, got, tt.want)
			}
			for axis, n := range tt.want {
				if got[axis] != n {
					t.Errorf("parseDelta(%q)[%s] = %d, want %d", tt.args, axis, got[axis], n)
				}
			}
		})
	}
}

func emoji(e string) models.ReactionType {
	return models.ReactionType{ReactionTypeEmoji: &models.ReactionTypeEmoji{Type: "emoji", Emoji: e}}
}

func TestAddedEmoji(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		oldSet []models.ReactionType
		newSet []models.ReactionType
		want   []string
	}{
		{
			name:   "first reaction",
			newSet: []models.ReactionType{emoji("👍")},
			want:   []string{"👍"},
		},
		{
			name:   "added on top of existing",
			oldSet: []models.ReactionType{emoji("👍")},
			newSet: []models.ReactionType{emoji("👍"), emoji("💗")},
			want:   []string{"💗"},
		},
		{
			name:   "removal adds nothing",
			oldSet: []models.ReactionType{emoji("👍"), emoji("💗")},
			newSet: []models.ReactionType{emoji("👍")},
			want:   nil,
		},
		{
			name:   "custom reaction without emoji ignored",
			newSet: []models.ReactionType{{ReactionTypeCustomEmoji: &models.ReactionTypeCustomEmoji{Type: "custom_emoji", CustomEmojiID: "x"}}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := addedEmoji(tt.oldSet, tt.newSet)
			if len(got) != len(tt.want) {
				t.Fatalf("addedEmoji = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("addedEmoji = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestExtractMentionRefs(t *testing.T) {
	t.Parallel()

	// Offsets are UTF-16 code units; the leading Japanese text counts one
	// unit per character.
	text := "こんにちは @alice さん"
	entities := []models.MessageEntity{
		{Type: models.MessageEntityTypeMention, Offset: 6, Length: 6},
	}

	refs := extractMentionRefs(text, entities)
	if len(refs) != 1 || refs[0] != "@alice" {
		t.Errorf("refs = %v, want [@alice]", refs)
	}

	withUser := []models.MessageEntity{
		{Type: models.MessageEntityTypeTextMention, Offset: 0, Length: 5, User: &models.User{ID: 777}},
	}
	refs = extractMentionRefs(text, withUser)
	if len(refs) != 1 || refs[0] != "777" {
		t.Errorf("refs = %v, want [777]", refs)
	}

	if refs := extractMentionRefs("no entities", nil); len(refs) != 0 {
		t.Errorf("refs = %v, want empty", refs)
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user *models.User
		want string
	}{
		{name: "nil user", user: nil, want: ""},
		{name: "first and last", user: &models.User{FirstName: "葵", LastName: "森"}, want: "葵 森"},
		{name: "first only", user: &models.User{FirstName: "葵"}, want: "葵"},
		{name: "username fallback", user: &models.User{Username: "aoi"}, want: "aoi"},
		{name: "id fallback", user: &models.User{ID: 9}, want: "9"},
	}

	for _, tt := range tests {
		if got := displayName(tt.user); got != tt.want {
			t.Errorf("%s: displayName = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestProfileCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		typeText string
		want     []int
	}{
		{name: "single digit", typeText: "3種", want: []int{3}},
		{name: "compound type picks odd even odd", typeText: "1種/複合2-5", want: []int{1, 2, 5}},
		{name: "no digits yields empty set", typeText: "未登録", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cp := profileCard(&database.Profile{
				UserID:      1,
				DisplayName: "あおい",
				TypeText:    tt.typeText,
			})
			if len(cp.Numbers) != len(tt.want) {
				t.Fatalf("Numbers = %v, want %v", cp.Numbers, tt.want)
			}
			for i := range cp.Numbers {
				if cp.Numbers[i] != tt.want[i] {
					t.Errorf("Numbers = %v, want %v", cp.Numbers, tt.want)
					break
				}
			}
		})
	}
}

func TestProfileCard_RegistrationRendersPNG(t *testing.T) {
	t.Parallel()

	profile := &database.Profile{
		UserID:      1,
		DisplayName: "あおい",
		TypeText:    "1種/複合2-5",
		Bio:         "よろしく",
		Interests:   "音楽",
	}

	cp := profileCard(profile)
	if len(cp.Numbers) == 0 {
		t.Fatal("expected picked numbers for digit-bearing type text")
	}

	png, err := card.NewRenderer("", nil).Render(cp)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}
}

func TestCommandArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "/profile 3種 | よろしく | 音楽", want: "3種 | よろしく | 音楽"},
		{input: "/profile", want: ""},
		{input: "/rate topic=1", want: "topic=1"},
		{input: "plain text", want: "plain text"},
	}

	for _, tt := range tests {
		if got := commandArgs(tt.input); got != tt.want {
			t.Errorf("commandArgs(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
