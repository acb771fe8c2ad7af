package handlers

import (
	"log/slog"

	"github.com/aoimori/kizunabot/internal/card"
	"github.com/aoimori/kizunabot/internal/classify"
	"github.com/aoimori/kizunabot/internal/config"
	"github.com/aoimori/kizunabot/internal/database"
	"github.com/aoimori/kizunabot/internal/ingest"
	"github.com/aoimori/kizunabot/internal/radar"
)

// HandlerDeps provides dependencies for Telegram command and message handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Store      database.Store
	Ingest     *ingest.Client
	Classifier *classify.Classifier
	Radar      *radar.Renderer
	Card       *card.Renderer
}
