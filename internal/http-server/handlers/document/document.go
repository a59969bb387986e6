package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"easywork/entity"
	"easywork/impl/core"
	"easywork/internal/calc"
	"easywork/internal/export"
	"easywork/lib/api/cont"
	"easywork/lib/api/response"
	"easywork/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Core interface {
	Preview(req *entity.LinesRequest) *calc.Result
	Render(ctx context.Context, req *entity.DocumentRequest) (*export.Artifact, error)
	Totals(ctx context.Context, user *entity.User, kind entity.DocumentKind, number int64) (*calc.Result, error)
	Stored(ctx context.Context, user *entity.User, kind entity.DocumentKind, number int64) (*export.Artifact, error)
	Send(ctx context.Context, user *entity.User, kind entity.DocumentKind, number int64, req *entity.SendRequest) (*entity.SendLog, error)
}

type LineTotals struct {
	Index int `json:"index"`
	entity.StoredTotals
}

// TotalsResponse carries figures rounded for display.
type TotalsResponse struct {
	Lines  []LineTotals        `json:"lines"`
	Totals entity.StoredTotals `json:"totals"`
}

type Base64Response struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}

func totalsResponse(res *calc.Result) *TotalsResponse {
	out := &TotalsResponse{
		Lines:  make([]LineTotals, 0, len(res.Lines)),
		Totals: res.Totals.Stored(),
	}
	for _, line := range res.Lines {
		out.Lines = append(out.Lines, LineTotals{Index: line.Index, StoredTotals: line.Figures.Stored()})
	}
	return out
}

func requestLog(log *slog.Logger, r *http.Request) *slog.Logger {
	return log.With(
		sl.Module("http.handlers.document"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// target reads the document kind and number from the route.
func target(r *http.Request) (entity.DocumentKind, int64, error) {
	kind, err := entity.ParseDocumentKind(strings.TrimSuffix(chi.URLParam(r, "kind"), "s"))
	if err != nil {
		return "", 0, err
	}
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil || number < 0 {
		return "", 0, fmt.Errorf("invalid document number")
	}
	return kind, number, nil
}

func failed(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, export.ErrRender):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrDelivery):
		status = http.StatusBadGateway
	}
	render.Status(r, status)
	render.JSON(w, r, response.Error(fmt.Sprintf("Request failed: %v", err)))
}

func badRequest(w http.ResponseWriter, r *http.Request, message string, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error(fmt.Sprintf("%s: %v", message, err)))
}

func pdf(w http.ResponseWriter, artifact *export.Artifact) error {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	_, err := artifact.WriteTo(w)
	return err
}

func Preview(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r)

		var req entity.LinesRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Warn("bind request", sl.Err(err))
			badRequest(w, r, "Invalid request", err)
			return
		}
		res := handler.Preview(&req)
		logger.With(slog.Int("lines", len(res.Lines))).Debug("totals preview")

		render.JSON(w, r, response.Ok(totalsResponse(res)))
	}
}

// Render returns the PDF of a document posted in full, or its base64 form
// when called with encoding=base64.
func Render(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r)

		var req entity.DocumentRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Warn("bind request", sl.Err(err))
			badRequest(w, r, "Invalid request", err)
			return
		}
		logger = logger.With(
			sl.Document(string(req.Kind), req.Meta.Number),
			slog.Int("lines", len(req.Lines)),
		)

		artifact, err := handler.Render(r.Context(), &req)
		if err != nil {
			logger.Warn("render", sl.Err(err))
			failed(w, r, err)
			return
		}

		if r.URL.Query().Get("encoding") == "base64" {
			render.JSON(w, r, response.Ok(&Base64Response{FileName: artifact.FileName, Content: artifact.Base64()}))
			return
		}
		if err = pdf(w, artifact); err != nil {
			logger.Error("write pdf", sl.Err(err))
		}
	}
}

func Totals(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r)
		user := cont.GetUser(r.Context())

		kind, number, err := target(r)
		if err != nil {
			badRequest(w, r, "Invalid document", err)
			return
		}
		logger = logger.With(sl.Document(string(kind), number))

		res, err := handler.Totals(r.Context(), user, kind, number)
		if err != nil {
			logger.Warn("totals", sl.Err(err))
			failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Ok(totalsResponse(res)))
	}
}

func Pdf(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r)
		user := cont.GetUser(r.Context())

		kind, number, err := target(r)
		if err != nil {
			badRequest(w, r, "Invalid document", err)
			return
		}
		logger = logger.With(sl.Document(string(kind), number))

		artifact, err := handler.Stored(r.Context(), user, kind, number)
		if err != nil {
			logger.Warn("stored document", sl.Err(err))
			failed(w, r, err)
			return
		}
		if err = pdf(w, artifact); err != nil {
			logger.Error("write pdf", sl.Err(err))
		}
	}
}

func Base64(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r)
		user := cont.GetUser(r.Context())

		kind, number, err := target(r)
		if err != nil {
			badRequest(w, r, "Invalid document", err)
			return
		}
		logger = logger.With(sl.Document(string(kind), number))

		artifact, err := handler.Stored(r.Context(), user, kind, number)
		if err != nil {
			logger.Warn("stored document", sl.Err(err))
			failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Ok(&Base64Response{FileName: artifact.FileName, Content: artifact.Base64()}))
	}
}

func Send(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLog(log, r)
		user := cont.GetUser(r.Context())

		kind, number, err := target(r)
		if err != nil {
			badRequest(w, r, "Invalid document", err)
			return
		}
		logger = logger.With(sl.Document(string(kind), number))

		var req entity.SendRequest
		if err = render.Bind(r, &req); err != nil {
			logger.Warn("bind request", sl.Err(err))
			badRequest(w, r, "Invalid request", err)
			return
		}

		sendLog, err := handler.Send(r.Context(), user, kind, number, &req)
		if err != nil {
			logger.Warn("send", sl.Err(err))
			failed(w, r, err)
			return
		}
		render.JSON(w, r, response.Ok(sendLog))
	}
}
