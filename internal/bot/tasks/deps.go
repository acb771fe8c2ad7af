// Package tasks implements scheduled tasks for the bot. It includes task
// definitions, dependencies, and registration.
package tasks

import (
	"log/slog"

	"github.com/aoimori/kizunabot/internal/config"
	"github.com/aoimori/kizunabot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
