package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/aoimori/kizunabot/internal/classify"
)

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = true

	DefaultDBPath = "storage.db"

	DefaultIngestTimeout = 10 * time.Second

	DefaultRadarSize = 800
)

// DefaultReactions maps the reaction emoji to the axis they credit.
var DefaultReactions = map[string]string{
	"👍": "topic",
	"❓": "question",
	"💬": "reply",
	"💗": "emotion",
	"🛠": "constructive",
}

// DefaultRadarAxisLabels are the chart axis captions in display order.
var DefaultRadarAxisLabels = [5]string{"話題提示", "質問", "応答", "感情", "建設性"}

// DefaultMessages are the user-facing reply texts.
var DefaultMessages = MessagesConfig{
	Welcome:          "👋 こんにちは！発言やリアクションから貢献度を記録しています。/help で使い方を確認できます。",
	Help:             "使い方:\n/score - 自分のスコアを表示\n/radar - 貢献度レーダーを表示\n/profile 体癖 | ひとこと | 興味 - プロフィール登録\n/profile_image - プロフィールカードを表示",
	NotAuthorized:    "🚫 このコマンドは管理者のみ使用できます。",
	GeneralError:     "❌ エラーが発生しました。しばらくしてからもう一度お試しください。",
	NoProfile:        "プロフィールが未登録です。/profile 体癖 | ひとこと | 興味 の形式で登録してください。",
	ProfileNoDigits:  "⚠️ 登録済みプロフィールに数字が見つかりませんでした。例: 1,2,5 のように数字を含めて登録してください。",
	ProfileSaved:     "✅ プロフィールを登録しました。/profile_image でカードを確認できます。",
	ProfileUsage:     "ℹ️ /profile 体癖 | ひとこと | 興味 の形式で入力してください。",
	RateUsage:        "ℹ️ /rate axis=delta の形式で入力してください。例: /rate topic=2 emotion=-1",
	RateNeedsReply:   "ℹ️ 対象ユーザーのメッセージに返信する形で /rate を実行してください。",
	ScoreHeader:      "📊 現在のスコア:",
	RadarTitleFormat: "%s の貢献度レーダー（外周=%d）",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", DefaultLogJSON)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("ingest.url", "")
	v.SetDefault("ingest.timeout", DefaultIngestTimeout)

	v.SetDefault("scoring.reactions", DefaultReactions)

	v.SetDefault("classify.agreement_words", classify.DefaultAgreementWords)
	v.SetDefault("classify.emotion_words", classify.DefaultEmotionWords)
	v.SetDefault("classify.short_chat_max_runes", classify.DefaultShortChatMaxRunes)

	v.SetDefault("radar.size", DefaultRadarSize)
	v.SetDefault("radar.font_path", "")
	v.SetDefault("radar.axis_labels", DefaultRadarAxisLabels[:])

	v.SetDefault("profile.font_path", "")

	v.SetDefault("messages.welcome", DefaultMessages.Welcome)
	v.SetDefault("messages.help", DefaultMessages.Help)
	v.SetDefault("messages.not_authorized", DefaultMessages.NotAuthorized)
	v.SetDefault("messages.general_error", DefaultMessages.GeneralError)
	v.SetDefault("messages.no_profile", DefaultMessages.NoProfile)
	v.SetDefault("messages.profile_no_digits", DefaultMessages.ProfileNoDigits)
	v.SetDefault("messages.profile_saved", DefaultMessages.ProfileSaved)
	v.SetDefault("messages.profile_usage", DefaultMessages.ProfileUsage)
	v.SetDefault("messages.rate_usage", DefaultMessages.RateUsage)
	v.SetDefault("messages.rate_needs_reply", DefaultMessages.RateNeedsReply)
	v.SetDefault("messages.score_header", DefaultMessages.ScoreHeader)
	v.SetDefault("messages.radar_title_format", DefaultMessages.RadarTitleFormat)

	v.SetDefault("scheduler.tasks.sql_maintenance.enabled", true)
	v.SetDefault("scheduler.tasks.sql_maintenance.schedule", "0 0 4 * * *")
}
