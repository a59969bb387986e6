package main

import (
	"flag"
	"log/slog"

	"easywork/bot"
	"easywork/impl/auth"
	"easywork/impl/core"
	"easywork/internal/config"
	"easywork/internal/database"
	"easywork/internal/export"
	"easywork/internal/format"
	"easywork/internal/http-server/api"
	"easywork/internal/mailer"
	"easywork/lib/logger"
	"easywork/lib/sl"
)

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	log := logger.SetupLogger(conf.Env, *logPath)
	log.Info("starting easywork", slog.String("config", *configPath), slog.String("env", conf.Env))

	mongo := database.NewMongoClient(conf)
	if mongo == nil {
		log.Warn("mongo disabled: stored documents are not available")
	}

	if conf.Telegram.Enabled {
		var db bot.Database
		if mongo != nil {
			db = mongo
		}
		level := logger.ParseLevel(conf.Telegram.LogLevel)
		tgBot, err := bot.NewTgBot(conf.Telegram.ApiKey, db, log, level)
		if err != nil {
			log.Error("telegram bot", sl.Err(err))
		} else {
			go func() {
				if err := tgBot.Start(); err != nil {
					log.Error("telegram bot", sl.Err(err))
				}
			}()
			log = logger.WithTelegram(log, tgBot, level)
		}
	}

	formatter, err := format.New(conf.Document.Locale, conf.Document.Currency, conf.Document.CurrencySymbol)
	if err != nil {
		log.Error("document format", sl.Err(err))
		return
	}
	handler := core.New(export.New(formatter, conf.Document.QuoteTerms), conf.Document.DefaultVatRate, log)
	if mongo != nil {
		handler.SetDatabase(mongo)
		handler.SetAuthService(auth.New(mongo))
	}
	if conf.Mail.Enabled {
		handler.SetMailer(mailer.NewClient(mailer.Config{
			ApiKey:      conf.Mail.ApiKey,
			BaseUrl:     conf.Mail.BaseUrl,
			FromName:    conf.Mail.FromName,
			FromAddress: conf.Mail.FromAddress,
		}, log))
	}

	err = api.New(conf, log, handler)
	if err != nil {
		log.Error("server error", sl.Err(err))
	}
}
