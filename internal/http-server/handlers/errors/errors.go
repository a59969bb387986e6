package errors

import (
	"log/slog"
	"net/http"

	"easywork/lib/api/response"
	"easywork/lib/sl"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func reply(log *slog.Logger, status int, message string) http.HandlerFunc {
	log = log.With(sl.Module("http.handlers.errors"))
	return func(w http.ResponseWriter, r *http.Request) {
		log.With(
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		).Debug(message)
		render.Status(r, status)
		render.JSON(w, r, response.Error(message))
	}
}

func NotFound(log *slog.Logger) http.HandlerFunc {
	return reply(log, http.StatusNotFound, "Requested resource not found")
}

func NotAllowed(log *slog.Logger) http.HandlerFunc {
	return reply(log, http.StatusMethodNotAllowed, "Method not allowed")
}
