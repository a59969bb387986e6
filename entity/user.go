package entity

import (
	"net/http"
	"time"

	"easywork/lib/validate"
)

// User is an API user (token based auth) bound to one organization,
// optionally subscribed to Telegram notifications.
type User struct {
	Username         string    `json:"username" bson:"username" validate:"required"`
	Name             string    `json:"name" bson:"name" validate:"omitempty"`
	Email            string    `json:"email" bson:"email" validate:"omitempty,email"`
	Token            string    `json:"token" bson:"token" validate:"required,min=1"`
	OrganizationId   string    `json:"organization_id" bson:"organization_id" validate:"required"`
	TelegramId       int64     `json:"telegram_id" bson:"telegram_id" validate:"omitempty"`
	TelegramUsername string    `json:"telegram_username" bson:"telegram_username"`
	TelegramEnabled  bool      `json:"telegram_enabled" bson:"telegram_enabled" validate:"omitempty"`
	TelegramTopics   []string  `json:"telegram_topics" bson:"telegram_topics"`
	LogLevel         int       `json:"log_level" bson:"log_level" validate:"omitempty"`
	RegisteredAt     time.Time `json:"registered_at" bson:"registered_at"`
}

func (u *User) Bind(_ *http.Request) error {
	return validate.Struct(u)
}

// HasTopic checks if the user is subscribed to a given notification topic.
// Empty TelegramTopics means subscribed to all; "none" unsubscribes from everything.
func (u *User) HasTopic(topic string) bool {
	if len(u.TelegramTopics) == 0 {
		return true
	}
	for _, t := range u.TelegramTopics {
		if t == "none" {
			return false
		}
		if t == topic {
			return true
		}
	}
	return false
}
