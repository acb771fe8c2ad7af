// Package config provides configuration loading, defaulting, and validation
// for the bot. Values come from a YAML file overridden by BOT_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"

	"github.com/aoimori/kizunabot/internal/database"
)

// Config is the root application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Classify  ClassifyConfig  `mapstructure:"classify"`
	Radar     RadarConfig     `mapstructure:"radar"`
	Profile   ProfileConfig   `mapstructure:"profile"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds connection and authorization settings for Telegram.
// BotInfo is populated at startup from GetMe, not from configuration.
type TelegramConfig struct {
	Token       string `mapstructure:"token"         validate:"required"`
	AdminUserID int64  `mapstructure:"admin_user_id" validate:"required,gt=0"`

	BotInfo *models.User `mapstructure:"-"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// IngestConfig holds the ingestion sink settings. An empty URL disables
// delivery.
type IngestConfig struct {
	URL     string        `mapstructure:"url"     validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"min=1s,max=2m"`
}

// ScoringConfig maps reaction emoji to the score axis they credit.
type ScoringConfig struct {
	Reactions map[string]string `mapstructure:"reactions" validate:"required,min=1"`
}

// ClassifyConfig holds the labeler trigger sets.
type ClassifyConfig struct {
	AgreementWords    []string `mapstructure:"agreement_words"`
	EmotionWords      []string `mapstructure:"emotion_words"`
	ShortChatMaxRunes int      `mapstructure:"short_chat_max_runes" validate:"gt=0"`
}

// RadarConfig holds radar chart rendering settings.
type RadarConfig struct {
	Size       int       `mapstructure:"size"        validate:"min=200,max=2000"`
	FontPath   string    `mapstructure:"font_path"`
	AxisLabels [5]string `mapstructure:"axis_labels"`
}

// ProfileConfig holds profile card rendering settings.
type ProfileConfig struct {
	FontPath string `mapstructure:"font_path"`
}

// MessagesConfig holds the user-facing reply texts.
type MessagesConfig struct {
	Welcome          string `mapstructure:"welcome"           validate:"required"`
	Help             string `mapstructure:"help"              validate:"required"`
	NotAuthorized    string `mapstructure:"not_authorized"    validate:"required"`
	GeneralError     string `mapstructure:"general_error"     validate:"required"`
	NoProfile        string `mapstructure:"no_profile"        validate:"required"`
	ProfileNoDigits  string `mapstructure:"profile_no_digits" validate:"required"`
	ProfileSaved     string `mapstructure:"profile_saved"     validate:"required"`
	ProfileUsage     string `mapstructure:"profile_usage"     validate:"required"`
	RateUsage        string `mapstructure:"rate_usage"        validate:"required"`
	RateNeedsReply   string `mapstructure:"rate_needs_reply"  validate:"required"`
	ScoreHeader      string `mapstructure:"score_header"      validate:"required"`
	RadarTitleFormat string `mapstructure:"radar_title_format" validate:"required"`
}

// TaskConfig controls one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig holds the scheduled task map keyed by task name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// LoadConfig loads configuration from the given YAML file path, applies
// defaults, merges BOT_* environment variables, and validates the result.
// A missing config file is not an error; defaults plus environment apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration beyond struct tags: every configured
// reaction must map to a known score axis.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	for emoji, axis := range c.Scoring.Reactions {
		if !database.ValidAxis(axis) {
			return fmt.Errorf("config validation failed: reaction %q maps to unknown axis %q", emoji, axis)
		}
	}
	for i, label := range c.Radar.AxisLabels {
		if label == "" {
			return fmt.Errorf("config validation failed: radar axis label %d is empty", i)
		}
	}
	return nil
}
