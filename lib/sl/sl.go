package sl

import (
	"log/slog"
)

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Secret keeps the first 5 characters of value, enough to tell tokens apart in logs.
func Secret(key, value string) slog.Attr {
	r := []rune(value)
	switch {
	case len(r) == 0:
		return slog.String(key, "?")
	case len(r) > 5:
		return slog.String(key, string(r[:5])+"***")
	}
	return slog.String(key, "***")
}

func Module(mod string) slog.Attr {
	return slog.String("mod", mod)
}

// Document groups the identity of a quote or invoice under a "doc" key.
func Document(kind string, number int64) slog.Attr {
	return slog.Group("doc", slog.String("kind", kind), slog.Int64("number", number))
}
