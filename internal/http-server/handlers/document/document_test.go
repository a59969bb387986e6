package document

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"easywork/entity"
	"easywork/impl/core"
	"easywork/internal/calc"
	"easywork/internal/export"
	"easywork/lib/api/cont"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCore struct {
	user   *entity.User
	kind   entity.DocumentKind
	number int64
	send   *entity.SendRequest
	err    error
}

var artifact = &export.Artifact{FileName: "Tilbud-42-Bad_og_Kjøkken.pdf", Data: []byte("%PDF-1.3 test")}

func (f *fakeCore) Preview(req *entity.LinesRequest) *calc.Result {
	return calc.Aggregate(entity.LineItems(req.Lines, req.DefaultVatRate))
}

func (f *fakeCore) Render(_ context.Context, _ *entity.DocumentRequest) (*export.Artifact, error) {
	return artifact, f.err
}

func (f *fakeCore) Totals(_ context.Context, user *entity.User, kind entity.DocumentKind, number int64) (*calc.Result, error) {
	f.user, f.kind, f.number = user, kind, number
	if f.err != nil {
		return nil, f.err
	}
	return calc.Aggregate([]entity.LineItem{{
		Description: "Maling",
		Quantity:    decimal.NewFromInt(3),
		UnitPrice:   decimal.RequireFromString("333.333"),
		VatRate:     decimal.NewFromInt(25),
	}}), nil
}

func (f *fakeCore) Stored(_ context.Context, user *entity.User, kind entity.DocumentKind, number int64) (*export.Artifact, error) {
	f.user, f.kind, f.number = user, kind, number
	if f.err != nil {
		return nil, f.err
	}
	return artifact, nil
}

func (f *fakeCore) Send(_ context.Context, user *entity.User, kind entity.DocumentKind, number int64, req *entity.SendRequest) (*entity.SendLog, error) {
	f.user, f.kind, f.number, f.send = user, kind, number, req
	if f.err != nil {
		return nil, f.err
	}
	return &entity.SendLog{Id: "log-1", Kind: kind, Number: number, To: req.To}, nil
}

func router(handler Core) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := cont.PutUser(r.Context(), &entity.User{Username: "ola", OrganizationId: "org-1"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	r.Post("/totals", Preview(log, handler))
	r.Post("/render", Render(log, handler))
	r.Route("/{kind:quotes|invoices}/{number}", func(d chi.Router) {
		d.Get("/totals", Totals(log, handler))
		d.Get("/pdf", Pdf(log, handler))
		d.Get("/base64", Base64(log, handler))
		d.Post("/send", Send(log, handler))
	})
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data          json.RawMessage `json:"data"`
	Success       bool            `json:"success"`
	StatusMessage string          `json:"status_message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestPreview(t *testing.T) {
	rec := do(t, router(&fakeCore{}), http.MethodPost, "/totals",
		`{"lines":[{"description":"Maling","quantity":"2,5","unit_price":100},{"description":"","unit_price":999}],"default_vat_rate":25}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.True(t, env.Success)
	var res TotalsResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.Lines, 1)
	assert.Equal(t, 250.0, res.Totals.Subtotal)
	assert.Equal(t, 62.5, res.Totals.VatAmount)
	assert.Equal(t, 312.5, res.Totals.Total)
}

func TestPreviewInvalidBody(t *testing.T) {
	rec := do(t, router(&fakeCore{}), http.MethodPost, "/totals", `{"lines":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decode(t, rec).Success)
}

func TestRender(t *testing.T) {
	h := router(&fakeCore{})
	body := `{"kind":"quote","meta":{"number":42,"title":"Bad og Kjøkken"},"issuer":{"name":"Maler Hansen AS"},"lines":[]}`

	rec := do(t, h, http.MethodPost, "/render", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Equal(t, artifact.Data, rec.Body.Bytes())

	rec = do(t, h, http.MethodPost, "/render?encoding=base64", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var b Base64Response
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &b))
	assert.Equal(t, artifact.FileName, b.FileName)
	assert.Equal(t, artifact.Base64(), b.Content)
}

func TestRenderValidation(t *testing.T) {
	h := router(&fakeCore{})

	rec := do(t, h, http.MethodPost, "/render", `{"kind":"order","issuer":{"name":"Firma"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/render", `{"kind":"quote","issuer":{"name":""}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderFailure(t *testing.T) {
	rec := do(t, router(&fakeCore{err: fmt.Errorf("%w: layout", export.ErrRender)}), http.MethodPost, "/render",
		`{"kind":"quote","issuer":{"name":"Firma"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestStoredTotals(t *testing.T) {
	fc := &fakeCore{}
	rec := do(t, router(fc), http.MethodGet, "/invoices/7/totals", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, entity.KindInvoice, fc.kind)
	assert.Equal(t, int64(7), fc.number)
	assert.Equal(t, "org-1", fc.user.OrganizationId)

	var res TotalsResponse
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &res))
	assert.Equal(t, 1000.0, res.Totals.Subtotal)
	assert.Equal(t, 250.0, res.Totals.VatAmount)
	assert.Equal(t, 1250.0, res.Totals.Total)
}

func TestStoredPdf(t *testing.T) {
	fc := &fakeCore{}
	rec := do(t, router(fc), http.MethodGet, "/quotes/42/pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, entity.KindQuote, fc.kind)
	assert.Equal(t, artifact.Data, rec.Body.Bytes())
	assert.Equal(t, fmt.Sprint(len(artifact.Data)), rec.Header().Get("Content-Length"))
}

func TestStoredBase64(t *testing.T) {
	rec := do(t, router(&fakeCore{}), http.MethodGet, "/quotes/42/base64", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var b Base64Response
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &b))
	assert.Equal(t, artifact.Base64(), b.Content)
}

func TestStoredErrors(t *testing.T) {
	rec := do(t, router(&fakeCore{}), http.MethodGet, "/quotes/abc/pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router(&fakeCore{err: fmt.Errorf("quote 1: %w", core.ErrNotFound)}), http.MethodGet, "/quotes/1/pdf", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router(&fakeCore{err: fmt.Errorf("database %w", core.ErrNotConnected)}), http.MethodGet, "/quotes/1/totals", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSend(t *testing.T) {
	fc := &fakeCore{}
	rec := do(t, router(fc), http.MethodPost, "/quotes/42/send", `{"to":"kari@example.no","send_copy":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, fc.send)
	assert.Equal(t, "kari@example.no", fc.send.To)
	assert.True(t, fc.send.SendCopy)

	rec = do(t, router(fc), http.MethodPost, "/quotes/42/send", `{"to":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router(&fakeCore{err: fmt.Errorf("%w: 422", core.ErrDelivery)}), http.MethodPost, "/quotes/42/send", `{"to":"kari@example.no"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
