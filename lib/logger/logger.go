package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

const logFileName = "easywork.log"

// sink describes where an environment logs and from which level.
type sink struct {
	toFile bool
	level  slog.Level
}

var sinks = map[string]sink{
	"local": {toFile: false, level: slog.LevelDebug},
	"dev":   {toFile: true, level: slog.LevelDebug},
	"prod":  {toFile: true, level: slog.LevelInfo},
}

// SetupLogger builds the base text logger for env. Any env other than local, dev or prod is fatal.
func SetupLogger(env, logDir string) *slog.Logger {
	conf, ok := sinks[env]
	if !ok {
		log.Fatal("invalid environment: ", env)
	}

	var out io.Writer = os.Stdout
	if conf.toFile {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			log.Fatal("error creating log directory: ", err)
		}
		logPath := filepath.Join(logDir, logFileName)
		logFile, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			log.Fatal("error opening log file: ", err)
		}
		log.Printf("env: %s; log file: %s", env, logPath)
		out = logFile
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: conf.level}))
}

// WithTelegram returns a logger that also forwards records at or above minLevel to the notifier.
func WithTelegram(logger *slog.Logger, notifier Notifier, minLevel slog.Level) *slog.Logger {
	if notifier == nil {
		return logger
	}
	return slog.New(NewTelegramHandler(logger.Handler(), notifier, minLevel))
}

// ParseLevel maps a config value to a slog level, defaulting to warn.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return level
}
