package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for data persistence operations.
type Store interface {
	Ping(ctx context.Context) error
	SaveMessage(ctx context.Context, msg *Message) error
	GetMessageAuthor(ctx context.Context, chatID, messageID int64) (int64, error)
	GetScore(ctx context.Context, userID int64) (*UserScore, error)
	AddScoreDelta(ctx context.Context, userID int64, delta Delta) (*UserScore, error)
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	SaveProfile(ctx context.Context, profile *Profile) error
	RunSQLMaintenance(ctx context.Context) error
}

// SQLStore implements the Store interface using sqlx.
type SQLStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLStore creates a new SQLStore instance.
func NewSQLStore(db *sqlx.DB, logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// SaveMessage persists one observed message. Re-delivery of the same
// (chat_id, message_id) pair updates the stored content and label in place.
func (s *SQLStore) SaveMessage(ctx context.Context, msg *Message) error {
	if msg == nil {
		return errors.New("cannot save nil message")
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO messages (chat_id, message_id, user_id, content, label, timestamp, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chat_id, message_id) DO UPDATE SET
			content = excluded.content,
			label = excluded.label,
			updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		msg.ChatID, msg.MessageID, msg.UserID, msg.Content, msg.Label, msg.Timestamp.UTC(), now, now)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("saving message cancelled or timed out: %w", ctx.Err())
		}
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// GetMessageAuthor returns the stored author of a message, or 0 with a nil
// error when the message was never observed.
func (s *SQLStore) GetMessageAuthor(ctx context.Context, chatID, messageID int64) (int64, error) {
	var userID int64
	query := `SELECT user_id FROM messages WHERE chat_id = ? AND message_id = ? LIMIT 1`

	err := s.db.GetContext(ctx, &userID, query, chatID, messageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		if ctx.Err() != nil {
			return 0, fmt.Errorf("author lookup cancelled or timed out: %w", ctx.Err())
		}
		return 0, fmt.Errorf("failed to look up message author: %w", err)
	}
	return userID, nil
}

// GetScore returns a user's score record. A user with no stored row reads as
// all zeros; the five axes are always present.
func (s *SQLStore) GetScore(ctx context.Context, userID int64) (*UserScore, error) {
	var score UserScore
	query := `SELECT user_id, topic, question, reply, emotion, constructive, updated_at
		FROM scores WHERE user_id = ?`

	err := s.db.GetContext(ctx, &score, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &UserScore{UserID: userID}, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("score lookup cancelled or timed out: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}
	return &score, nil
}

// AddScoreDelta applies per-axis adjustments to a user's score and returns
// the resulting record. Each axis is floored at zero independently, so a
// deficit on one axis never carries over to another and never goes below
// zero. The update and the read-back run in one transaction.
func (s *SQLStore) AddScoreDelta(ctx context.Context, userID int64, delta Delta) (*UserScore, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				s.logger.Error("Failed to rollback score transaction", "error", rbErr)
			}
		}
	}()

	now := time.Now().UTC()
	d := [5]int{}
	for i, a := range Axes {
		d[i] = delta[a]
	}

	// MAX(0, ...) floors each axis both on first insert and on update.
	query := `
		INSERT INTO scores (user_id, topic, question, reply, emotion, constructive, updated_at)
		VALUES (?, MAX(0, ?), MAX(0, ?), MAX(0, ?), MAX(0, ?), MAX(0, ?), ?)
		ON CONFLICT(user_id) DO UPDATE SET
			topic = MAX(0, topic + ?),
			question = MAX(0, question + ?),
			reply = MAX(0, reply + ?),
			emotion = MAX(0, emotion + ?),
			constructive = MAX(0, constructive + ?),
			updated_at = ?`

	_, err = tx.ExecContext(ctx, query,
		userID, d[0], d[1], d[2], d[3], d[4], now,
		d[0], d[1], d[2], d[3], d[4], now)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("score update cancelled or timed out: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to apply score delta: %w", err)
	}

	var score UserScore
	readQuery := `SELECT user_id, topic, question, reply, emotion, constructive, updated_at
		FROM scores WHERE user_id = ?`
	if err := tx.GetContext(ctx, &score, readQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to read back score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit score transaction: %w", err)
	}
	tx = nil

	return &score, nil
}

// GetProfile returns a user's profile, or nil with a nil error when the user
// has not registered one.
func (s *SQLStore) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `SELECT id, created_at, updated_at, user_id, display_name, type_text, bio, interests
		FROM profiles WHERE user_id = ?`

	err := s.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("profile lookup cancelled or timed out: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// SaveProfile inserts or updates a user's profile.
func (s *SQLStore) SaveProfile(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return errors.New("cannot save nil profile")
	}
	if profile.UserID == 0 {
		return errors.New("cannot save profile with zero user ID")
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO profiles (user_id, display_name, type_text, bio, interests, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			type_text = excluded.type_text,
			bio = excluded.bio,
			interests = excluded.interests,
			updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		profile.UserID, profile.DisplayName, profile.TypeText, profile.Bio, profile.Interests, now, now)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("saving profile cancelled or timed out: %w", ctx.Err())
		}
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// RunSQLMaintenance performs database maintenance (VACUUM and ANALYZE).
func (s *SQLStore) RunSQLMaintenance(ctx context.Context) error {
	s.logger.Info("Starting database maintenance")

	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("maintenance cancelled or timed out: %w", ctx.Err())
		}
		return fmt.Errorf("failed to vacuum database: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "ANALYZE"); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("maintenance cancelled or timed out: %w", ctx.Err())
		}
		return fmt.Errorf("failed to analyze database: %w", err)
	}

	s.logger.Info("Database maintenance completed")
	return nil
}
