package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/aoimori/kizunabot/internal/database"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewSQLStore(db, nil)
}

func TestGetScore_UnknownUserReadsAsZero(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	score, err := store.GetScore(ctx, 42)
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if score.UserID != 42 {
		t.Errorf("UserID = %d, want 42", score.UserID)
	}
	for _, a := range database.Axes {
		if got := score.Value(a); got != 0 {
			t.Errorf("axis %s = %d, want 0", a, got)
		}
	}
}

func TestAddScoreDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		deltas []database.Delta
		want   [5]int
	}{
		{
			name:   "single positive delta",
			deltas: []database.Delta{{database.AxisTopic: 3}},
			want:   [5]int{3, 0, 0, 0, 0},
		},
		{
			name: "accumulation across calls",
			deltas: []database.Delta{
				{database.AxisQuestion: 2, database.AxisReply: 1},
				{database.AxisQuestion: 1},
			},
			want: [5]int{0, 3, 1, 0, 0},
		},
		{
			name: "floor holds mid sequence",
			deltas: []database.Delta{
				{database.AxisEmotion: 1},
				{database.AxisEmotion: 1},
				{database.AxisEmotion: -5},
			},
			want: [5]int{0, 0, 0, 0, 0},
		},
		{
			name: "floor is per axis",
			deltas: []database.Delta{
				{database.AxisTopic: 5, database.AxisConstructive: -3},
			},
			want: [5]int{5, 0, 0, 0, 0},
		},
		{
			name: "negative on first touch floors at zero",
			deltas: []database.Delta{
				{database.AxisReply: -2},
			},
			want: [5]int{0, 0, 0, 0, 0},
		},
	}

	for i, tt := range tests {
		userID := int64(100 + i)
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newTestStore(t)
			ctx := context.Background()

			var last *database.UserScore
			for _, d := range tt.deltas {
				var err error
				last, err = store.AddScoreDelta(ctx, userID, d)
				if err != nil {
					t.Fatalf("AddScoreDelta: %v", err)
				}
			}
			if got := last.Values(); got != tt.want {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}

			// The returned record and a fresh read must agree.
			read, err := store.GetScore(ctx, userID)
			if err != nil {
				t.Fatalf("GetScore: %v", err)
			}
			if got := read.Values(); got != tt.want {
				t.Errorf("GetScore Values() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddScoreDelta_FlooredDeficitDoesNotCarry(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.AddScoreDelta(ctx, 7, database.Delta{database.AxisTopic: -10}); err != nil {
		t.Fatalf("AddScoreDelta: %v", err)
	}
	score, err := store.AddScoreDelta(ctx, 7, database.Delta{database.AxisTopic: 2})
	if err != nil {
		t.Fatalf("AddScoreDelta: %v", err)
	}
	if score.Topic != 2 {
		t.Errorf("Topic = %d, want 2 (floored deficit must not persist)", score.Topic)
	}
}

func TestSaveMessage_AndAuthorLookup(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	msg := &database.Message{
		ChatID:    -100123,
		MessageID: 555,
		UserID:    9001,
		Content:   "これ見て https://example.com",
		Label:     "S",
		Timestamp: time.Now().UTC(),
	}
	if err := store.SaveMessage(ctx, msg); err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}

	author, err := store.GetMessageAuthor(ctx, -100123, 555)
	if err != nil {
		t.Fatalf("GetMessageAuthor: %v", err)
	}
	if author != 9001 {
		t.Errorf("author = %d, want 9001", author)
	}

	// Unknown messages resolve to zero without an error.
	author, err = store.GetMessageAuthor(ctx, -100123, 556)
	if err != nil {
		t.Fatalf("GetMessageAuthor (unknown): %v", err)
	}
	if author != 0 {
		t.Errorf("author for unknown message = %d, want 0", author)
	}

	// Re-delivery of the same message updates in place.
	msg.Content = "edited"
	msg.Label = "CH"
	if err := store.SaveMessage(ctx, msg); err != nil {
		t.Fatalf("SaveMessage (redelivery): %v", err)
	}
}

func TestSaveMessage_NilMessage(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.SaveMessage(context.Background(), nil); err == nil {
		t.Error("expected error for nil message, got nil")
	}
}

func TestProfileRoundtrip(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	// Missing profile reads as nil, nil.
	p, err := store.GetProfile(ctx, 321)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p != nil {
		t.Fatalf("GetProfile for unknown user = %+v, want nil", p)
	}

	in := &database.Profile{
		UserID:      321,
		DisplayName: "あおい",
		TypeText:    "3種",
		Bio:         "よろしく",
		Interests:   "音楽, 登山",
	}
	if err := store.SaveProfile(ctx, in); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	p, err = store.GetProfile(ctx, 321)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p == nil {
		t.Fatal("GetProfile returned nil after save")
	}
	if p.DisplayName != in.DisplayName || p.TypeText != in.TypeText || p.Bio != in.Bio || p.Interests != in.Interests {
		t.Errorf("profile = %+v, want fields of %+v", p, in)
	}

	// Upsert replaces the stored fields.
	in.Bio = "更新しました"
	if err := store.SaveProfile(ctx, in); err != nil {
		t.Fatalf("SaveProfile (update): %v", err)
	}
	p, err = store.GetProfile(ctx, 321)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.Bio != "更新しました" {
		t.Errorf("Bio = %q, want %q", p.Bio, "更新しました")
	}
}

func TestSaveProfile_Validation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveProfile(ctx, nil); err == nil {
		t.Error("expected error for nil profile, got nil")
	}
	if err := store.SaveProfile(ctx, &database.Profile{}); err == nil {
		t.Error("expected error for zero user ID, got nil")
	}
}

func TestRunSQLMaintenance(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.RunSQLMaintenance(context.Background()); err != nil {
		t.Fatalf("RunSQLMaintenance: %v", err)
	}
}
