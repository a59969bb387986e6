package bot

import (
	"log/slog"

	"easywork/entity"
)

// recipients filters users by enabled flag, personal level and topic subscription.
func recipients(users []*entity.User, level slog.Level, topic string) []int64 {
	var ids []int64
	for _, user := range users {
		if !user.TelegramEnabled || user.TelegramId == 0 {
			continue
		}
		if int(level) < user.LogLevel {
			continue
		}
		if !user.HasTopic(topic) {
			continue
		}
		ids = append(ids, user.TelegramId)
	}
	return ids
}

// SendMessageWithTopic sends a MarkdownV2 message to every user subscribed to topic at level.
func (t *TgBot) SendMessageWithTopic(msg string, level slog.Level, topic string) {
	for _, id := range recipients(t.snapshot(), level, topic) {
		t.plainResponse(id, msg)
	}
}
