package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"easywork/internal/config"
	"easywork/internal/http-server/handlers/document"
	"easywork/internal/http-server/handlers/errors"
	"easywork/internal/http-server/middleware/authenticate"
	"easywork/internal/http-server/middleware/timeout"
	"easywork/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	document.Core
}

// NewRouter builds the API routes; documents are addressed as /v1/quotes/{number} and /v1/invoices/{number}.
func NewRouter(log *slog.Logger, handler Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(timeout.Timeout(30 * time.Second))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/v1", func(rootApi chi.Router) {
		rootApi.Use(authenticate.New(log, handler))
		rootApi.Post("/totals", document.Preview(log, handler))
		rootApi.Post("/render", document.Render(log, handler))
		rootApi.Route("/{kind:quotes|invoices}/{number}", func(doc chi.Router) {
			doc.Get("/totals", document.Totals(log, handler))
			doc.Get("/pdf", document.Pdf(log, handler))
			doc.Get("/base64", document.Base64(log, handler))
			doc.Post("/send", document.Send(log, handler))
		})
	})
	return router
}

func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:      NewRouter(log, handler),
		ErrorLog:     httpLog,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIp, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
