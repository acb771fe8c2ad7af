// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/aoimori/kizunabot/internal/bot"
	"github.com/aoimori/kizunabot/internal/bot/handlers"
	"github.com/aoimori/kizunabot/internal/bot/tasks"
	"github.com/aoimori/kizunabot/internal/card"
	"github.com/aoimori/kizunabot/internal/classify"
	"github.com/aoimori/kizunabot/internal/config"
	"github.com/aoimori/kizunabot/internal/database"
	"github.com/aoimori/kizunabot/internal/ingest"
	"github.com/aoimori/kizunabot/internal/logger"
	"github.com/aoimori/kizunabot/internal/radar"
	"github.com/aoimori/kizunabot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger, db,
// renderers, bot, scheduler), handles graceful shutdown, and returns an exit
// code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewSQLStore(db, log)

	hDeps := handlers.HandlerDeps{
		Logger:     log,
		Config:     cfg,
		Store:      store,
		Ingest:     ingest.NewClient(cfg.Ingest.URL, cfg.Ingest.Timeout, log),
		Classifier: classify.New(cfg.Classify.AgreementWords, cfg.Classify.EmotionWords, cfg.Classify.ShortChatMaxRunes),
		Radar:      radar.NewRenderer(cfg.Radar.Size, cfg.Radar.FontPath, log),
		Card:       card.NewRenderer(cfg.Profile.FontPath, log),
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
		// Reaction updates are not delivered unless explicitly requested.
		tgbot.WithAllowedUpdates(tgbot.AllowedUpdates{"message", "message_reaction"}),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	// Retrieve bot info and store it in the config for runtime use
	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	if _, err := tg.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: []models.BotCommand{
			{Command: "start", Description: "あいさつと使い方の案内"},
			{Command: "help", Description: "コマンド一覧を表示"},
			{Command: "score", Description: "自分のスコアを表示"},
			{Command: "radar", Description: "貢献度レーダーを表示"},
			{Command: "profile", Description: "プロフィールを登録・表示"},
			{Command: "profile_image", Description: "プロフィールカードを表示"},
		},
	}); err != nil {
		log.Warn("Failed to publish command list", "error", err)
	}

	sched := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	app := bot.NewBot(log, cfg, db, store, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx) // Run blocks until context is cancelled or an error occurs
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
