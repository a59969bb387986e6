// Package bot delivers log notifications to Telegram users.
//
// Users are linked by the telegram_id stored on their user record. A linked user enables
// delivery with /start, picks a minimum level with /level and narrows topics with
// /subscribe and /unsubscribe. The users map is cached and reloaded after every change.
package bot

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"easywork/entity"
	"easywork/lib/sl"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
)

// Database defines the storage operations the bot depends on.
type Database interface {
	GetTelegramUsers() ([]*entity.User, error)
	GetUserByTelegramId(id int64) (*entity.User, error)
	SetTelegramEnabled(id int64, isActive bool, logLevel int) error
	SetTelegramTopics(id int64, topics []string) error
}

type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	db          Database
	mu          sync.RWMutex
	users       map[int64]*entity.User
	minLogLevel slog.Level
	updater     *ext.Updater
}

func NewTgBot(apiKey string, db Database, log *slog.Logger, minLevel slog.Level) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		db:          db,
		minLogLevel: minLevel,
		users:       make(map[int64]*entity.User),
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

// Start polls for updates and blocks until Stop is called.
func (t *TgBot) Start() error {
	t.loadUsers()

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Error("handling update:", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	t.updater = ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("start", t.start))
	dispatcher.AddHandler(handlers.NewCommand("stop", t.stop))
	dispatcher.AddHandler(handlers.NewCommand("level", t.level))
	dispatcher.AddHandler(handlers.NewCommand("topics", t.topics))
	dispatcher.AddHandler(handlers.NewCommand("subscribe", t.subscribe))
	dispatcher.AddHandler(handlers.NewCommand("unsubscribe", t.unsubscribe))
	dispatcher.AddHandler(handlers.NewCommand("help", t.help))

	err := t.updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	t.updater.Idle()
	return nil
}

func (t *TgBot) Stop() {
	if t.updater != nil {
		t.log.Info("stopping telegram bot")
		t.updater.Stop()
	}
}

// loadUsers refreshes the cache of users with delivery enabled.
func (t *TgBot) loadUsers() {
	if t.db == nil {
		return
	}
	users, err := t.db.GetTelegramUsers()
	if err != nil {
		t.log.Error("loading users", sl.Err(err))
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.users = make(map[int64]*entity.User, len(users))
	for _, user := range users {
		t.users[user.TelegramId] = user
	}
	t.log.With(slog.Int("count", len(t.users))).Debug("loaded users")
}

func (t *TgBot) snapshot() []*entity.User {
	t.mu.RLock()
	defer t.mu.RUnlock()
	users := make([]*entity.User, 0, len(t.users))
	for _, user := range t.users {
		users = append(users, user)
	}
	return users
}
