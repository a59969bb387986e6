package bot

import (
	"fmt"
	"log/slog"
	"strings"

	"easywork/entity"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
)

// linkedUser looks the sender up in the store; unknown senders get their id back
// so an administrator can link it to a user record.
func (t *TgBot) linkedUser(chatId int64) *entity.User {
	if t.db == nil {
		return nil
	}
	user, err := t.db.GetUserByTelegramId(chatId)
	if err != nil {
		t.reportError(chatId, "lookup", err)
		return nil
	}
	if user == nil {
		t.plainResponse(chatId, fmt.Sprintf("This chat is not linked to a user\\. Your id: `%d`", chatId))
	}
	return user
}

func (t *TgBot) start(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveUser.Id
	user := t.linkedUser(chatId)
	if user == nil {
		return nil
	}
	level := user.LogLevel
	if !user.TelegramEnabled && level == 0 {
		level = int(t.minLogLevel)
	}
	err := t.db.SetTelegramEnabled(chatId, true, level)
	if err != nil {
		t.reportError(chatId, "/start", err)
		return nil
	}
	t.plainResponse(chatId, "Notifications ENABLED")
	t.loadUsers()
	return nil
}

func (t *TgBot) stop(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveUser.Id
	user := t.linkedUser(chatId)
	if user == nil {
		return nil
	}
	err := t.db.SetTelegramEnabled(chatId, false, user.LogLevel)
	if err != nil {
		t.reportError(chatId, "/stop", err)
		return nil
	}
	t.plainResponse(chatId, "Notifications DISABLED")
	t.loadUsers()
	return nil
}

// parseLevel accepts the four level names used by the /level command.
func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}

func (t *TgBot) level(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveUser.Id
	user := t.linkedUser(chatId)
	if user == nil {
		return nil
	}

	args := strings.Fields(ctx.EffectiveMessage.Text)
	if len(args) < 2 {
		currentLevel := slog.Level(user.LogLevel).String()
		t.plainResponse(chatId, fmt.Sprintf("Your current log level: %s\nAvailable levels: debug, info, warn, error", Sanitize(currentLevel)))
		return nil
	}

	level, ok := parseLevel(args[1])
	if !ok {
		t.plainResponse(chatId, fmt.Sprintf("Invalid level: %s\nAvailable levels: debug, info, warn, error", Sanitize(args[1])))
		return nil
	}

	err := t.db.SetTelegramEnabled(chatId, true, int(level))
	if err != nil {
		t.reportError(chatId, "/level", err)
		return nil
	}
	t.plainResponse(chatId, fmt.Sprintf("Log level set to: %s", Sanitize(level.String())))
	t.loadUsers()
	return nil
}

func (t *TgBot) topics(_ *tgbotapi.Bot, ctx *ext.Context) error {
	chatId := ctx.EffectiveUser.Id
	user := t.linkedUser(chatId)
	if user == nil {
		return nil
	}

	var sb strings.Builder
	sb.WriteString("*Available topics:*\n")
	for _, topic := range entity.AllTopics() {
		marker := "  "
		if user.HasTopic(topic) {
			marker = "\\+ "
		}
		sb.WriteString(fmt.Sprintf("%s`%s`\n", marker, topic))
	}
	if len(user.TelegramTopics) == 0 {
		sb.WriteString("\nYou are subscribed to *all* topics\\.")
	}
	sb.WriteString("\nUse `/subscribe <topic>` or `/unsubscribe <topic>`")
	t.plainResponse(chatId, sb.String())
	return nil
}

// addTopic returns the topic list after subscribing to topic; "all" clears the filter.
func addTopic(current []string, topic string) []string {
	if topic == "all" {
		return nil
	}
	out := make([]string, 0, len(current)+1)
	for _, ct := range current {
		if ct != "none" && ct != topic {
			out = append(out, ct)
		}
	}
	return append(out, topic)
}

// removeTopic returns the topic list after unsubscribing; an empty result is stored as "none".
func removeTopic(current []string, topic string) []string {
	if topic == "all" {
		return []string{"none"}
	}
	if len(current) == 0 {
		current = entity.AllTopics()
	}
	out := make([]string, 0, len(current))
	for _, ct := range current {
		if ct != topic {
			out = append(out, ct)
		}
	}
	if len(out) == 0 {
		return []string{"none"}
	}
	return out
}

func (t *TgBot) changeTopics(ctx *ext.Context, command string, change func([]string, string) []string) error {
	chatId := ctx.EffectiveUser.Id
	user := t.linkedUser(chatId)
	if user == nil {
		return nil
	}

	available := Sanitize(strings.Join(entity.AllTopics(), ", "))
	args := strings.Fields(ctx.EffectiveMessage.Text)
	if len(args) < 2 {
		t.plainResponse(chatId, fmt.Sprintf("Usage: `/%s <topic|all>`\nAvailable topics: %s", command, available))
		return nil
	}
	topic := strings.ToLower(args[1])
	if topic != "all" && !entity.IsValidTopic(topic) {
		t.plainResponse(chatId, "Invalid topic: `"+Sanitize(topic)+"`\nAvailable: "+available)
		return nil
	}

	err := t.db.SetTelegramTopics(chatId, change(user.TelegramTopics, topic))
	if err != nil {
		t.reportError(chatId, "/"+command, err)
		return nil
	}
	t.plainResponse(chatId, fmt.Sprintf("Topics updated: `%s %s`", command, Sanitize(topic)))
	t.loadUsers()
	return nil
}

func (t *TgBot) subscribe(_ *tgbotapi.Bot, ctx *ext.Context) error {
	return t.changeTopics(ctx, "subscribe", addTopic)
}

func (t *TgBot) unsubscribe(_ *tgbotapi.Bot, ctx *ext.Context) error {
	return t.changeTopics(ctx, "unsubscribe", removeTopic)
}

func (t *TgBot) help(_ *tgbotapi.Bot, ctx *ext.Context) error {
	var sb strings.Builder
	sb.WriteString("*Available Commands*\n\n")
	sb.WriteString("`/start` \\- Enable notifications\n")
	sb.WriteString("`/stop` \\- Disable notifications\n")
	sb.WriteString("`/level <debug|info|warn|error>` \\- Set log level\n")
	sb.WriteString("`/topics` \\- View topic subscriptions\n")
	sb.WriteString("`/subscribe <topic|all>` \\- Subscribe to topic\n")
	sb.WriteString("`/unsubscribe <topic|all>` \\- Unsubscribe from topic\n")
	t.plainResponse(ctx.EffectiveUser.Id, sb.String())
	return nil
}
