package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aoimori/kizunabot/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const minimalConfig = `
telegram:
  token: "123456:test-token"
  admin_user_id: 42
`

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %q, want info", cfg.Logger.Level)
	}
	if cfg.Database.Path != "storage.db" {
		t.Errorf("Database.Path = %q, want storage.db", cfg.Database.Path)
	}
	if cfg.Classify.ShortChatMaxRunes != 20 {
		t.Errorf("Classify.ShortChatMaxRunes = %d, want 20", cfg.Classify.ShortChatMaxRunes)
	}
	if len(cfg.Scoring.Reactions) != 5 {
		t.Errorf("Scoring.Reactions has %d entries, want 5", len(cfg.Scoring.Reactions))
	}
	if cfg.Radar.Size != 800 {
		t.Errorf("Radar.Size = %d, want 800", cfg.Radar.Size)
	}
	for i, label := range cfg.Radar.AxisLabels {
		if label == "" {
			t.Errorf("Radar.AxisLabels[%d] is empty", i)
		}
	}
	if cfg.Messages.ProfileNoDigits == "" {
		t.Error("Messages.ProfileNoDigits default is empty")
	}
	task, ok := cfg.Scheduler.Tasks["sql_maintenance"]
	if !ok || !task.Enabled || task.Schedule == "" {
		t.Errorf("sql_maintenance task = %+v, want enabled with a schedule", task)
	}
}

func TestLoadConfig_MissingFileUsesDefaultsButFailsValidation(t *testing.T) {
	// Without a token the defaults alone cannot validate.
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected validation error without telegram token")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
logger:
  level: debug
  json: false
scoring:
  reactions:
    "🔥": emotion
classify:
  short_chat_max_runes: 12
`)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Logger.Level != "debug" || cfg.Logger.JSON {
		t.Errorf("logger = %+v, want debug/text", cfg.Logger)
	}
	if cfg.Scoring.Reactions["🔥"] != "emotion" {
		t.Errorf("reactions = %v, want 🔥 mapped to emotion", cfg.Scoring.Reactions)
	}
	if cfg.Classify.ShortChatMaxRunes != 12 {
		t.Errorf("ShortChatMaxRunes = %d, want 12", cfg.Classify.ShortChatMaxRunes)
	}
}

func TestLoadConfig_RejectsUnknownAxis(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
scoring:
  reactions:
    "👍": charisma
`)

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown axis in reaction map")
	}
}

func TestLoadConfig_RejectsBadLogLevel(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
logger:
  level: verbose
`)

	if _, err := config.LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}
