package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"easywork/entity"
	"easywork/internal/calc"
	"easywork/internal/export"
	"easywork/lib/sl"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNotConnected = errors.New("not connected")
	ErrDelivery     = errors.New("mail not accepted")
)

type AuthService interface {
	UserByToken(token string) (*entity.User, error)
}

// Database is the record store; lookups return nil without error for missing records.
type Database interface {
	GetOrganization(ctx context.Context, orgId string) (*entity.Organization, error)
	GetCustomer(ctx context.Context, orgId, id string) (*entity.Customer, error)
	GetDocument(ctx context.Context, orgId string, kind entity.DocumentKind, number int64) (*entity.DocumentRecord, error)
	SaveTotals(ctx context.Context, orgId string, kind entity.DocumentKind, number int64, totals entity.StoredTotals) error
	MarkSent(ctx context.Context, orgId string, kind entity.DocumentKind, number int64, at time.Time) error
	SaveSendLog(ctx context.Context, log *entity.SendLog) error
}

type Mailer interface {
	Send(ctx context.Context, email *entity.Email) (string, error)
}

type Core struct {
	exporter   *export.Exporter
	defaultVat entity.Number
	db         Database
	mail       Mailer
	auth       AuthService
	log        *slog.Logger
}

func New(exporter *export.Exporter, defaultVat float64, log *slog.Logger) *Core {
	if exporter == nil {
		panic("exporter is nil")
	}
	return &Core{
		exporter:   exporter,
		defaultVat: entity.NewNumber(defaultVat),
		log:        log.With(sl.Module("core")),
	}
}

func (c *Core) SetDatabase(db Database) {
	c.db = db
}

func (c *Core) SetMailer(mail Mailer) {
	c.mail = mail
}

func (c *Core) SetAuthService(auth AuthService) {
	c.auth = auth
}

func (c *Core) AuthenticateByToken(token string) (*entity.User, error) {
	if c.auth == nil {
		return nil, fmt.Errorf("auth service %w", ErrNotConnected)
	}
	return c.auth.UserByToken(token)
}

func (c *Core) vat(requested entity.Number) entity.Number {
	if requested.Valid {
		return requested
	}
	return c.defaultVat
}

// Preview aggregates unsaved lines for on-screen display.
func (c *Core) Preview(req *entity.LinesRequest) *calc.Result {
	return calc.Aggregate(entity.LineItems(req.Lines, c.vat(req.DefaultVatRate)))
}

// Render exports a document passed in full by the caller.
func (c *Core) Render(_ context.Context, req *entity.DocumentRequest) (*export.Artifact, error) {
	doc := req.Document(c.defaultVat)
	artifact, err := c.exporter.Export(doc)
	if err != nil {
		c.log.With(
			sl.Document(string(doc.Kind), doc.Meta.Number),
			sl.Err(err),
		).Warn("render document")
		return nil, err
	}
	return artifact, nil
}

// load assembles a stored document with its organization and customer.
func (c *Core) load(ctx context.Context, user *entity.User, kind entity.DocumentKind, number int64) (*entity.Document, error) {
	if c.db == nil {
		return nil, fmt.Errorf("database %w", ErrNotConnected)
	}
	orgId := user.OrganizationId
	record, err := c.db.GetDocument(ctx, orgId, kind, number)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%s %d: %w", kind, number, ErrNotFound)
	}
	org, err := c.db.GetOrganization(ctx, orgId)
	if err != nil {
		return nil, fmt.Errorf("get organization: %w", err)
	}
	if org == nil {
		return nil, fmt.Errorf("organization %s: %w", orgId, ErrNotFound)
	}

	doc := &entity.Document{
		Kind:   kind,
		Meta:   record.Meta,
		Issuer: org.PartyInfo,
		Items:  entity.LineItems(record.Lines, c.defaultVat),
	}
	if doc.Meta.ContactName == "" {
		doc.Meta.ContactName = user.Name
	}
	if record.CustomerId != "" {
		customer, err := c.db.GetCustomer(ctx, orgId, record.CustomerId)
		if err != nil {
			return nil, fmt.Errorf("get customer: %w", err)
		}
		if customer != nil {
			doc.Counterparty = &customer.PartyInfo
		} else {
			c.log.With(
				slog.String("customer", record.CustomerId),
				slog.Int64("number", number),
			).Warn("customer not found")
		}
	}
	return doc, nil
}

// Totals aggregates a stored document and persists the rounded figures next to it.
func (c *Core) Totals(ctx context.Context, user *entity.User, kind entity.DocumentKind, number int64) (*calc.Result, error) {
	doc, err := c.load(ctx, user, kind, number)
	if err != nil {
		return nil, err
	}
	res := calc.Aggregate(doc.Items)
	err = c.db.SaveTotals(ctx, user.OrganizationId, kind, number, res.Totals.Stored())
	if err != nil {
		return nil, fmt.Errorf("save totals: %w", err)
	}
	c.log.With(
		sl.Document(string(kind), number),
		slog.String("total", res.Totals.Rounded().Total.StringFixed(2)),
	).Debug("totals saved")
	return res, nil
}

func (c *Core) Stored(ctx context.Context, user *entity.User, kind entity.DocumentKind, number int64) (*export.Artifact, error) {
	doc, err := c.load(ctx, user, kind, number)
	if err != nil {
		return nil, err
	}
	artifact, err := c.exporter.Export(doc)
	if err != nil {
		c.log.With(
			sl.Document(string(kind), number),
			slog.String("tg_topic", entity.TopicDocument),
			sl.Err(err),
		).Warn("render stored document")
		return nil, err
	}
	return artifact, nil
}

// Send renders a stored document and mails it as a PDF attachment. The document is marked
// sent and a send log entry is written once the mail provider has accepted the message.
func (c *Core) Send(ctx context.Context, user *entity.User, kind entity.DocumentKind, number int64, req *entity.SendRequest) (*entity.SendLog, error) {
	if c.mail == nil {
		return nil, fmt.Errorf("mailer %w", ErrNotConnected)
	}
	doc, err := c.load(ctx, user, kind, number)
	if err != nil {
		return nil, err
	}
	artifact, err := c.exporter.Export(doc)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	email, err := composeMail(c.exporter.Formatter(), doc, req)
	if err != nil {
		return nil, err
	}
	email.IdempotencyKey = id
	email.Attachment = &entity.Attachment{
		FileName: artifact.FileName,
		Content:  artifact.Base64(),
	}
	email.ReplyTo = user.Email
	if email.ReplyTo == "" {
		email.ReplyTo = doc.Issuer.Email
	}
	if req.SendCopy && user.Email != "" {
		email.Bcc = user.Email
	}

	log := c.log.With(
		sl.Document(string(kind), number),
		slog.String("to", req.To),
		slog.String("user", user.Username),
	)
	messageId, err := c.mail.Send(ctx, email)
	if err != nil {
		log.With(sl.Err(err), slog.String("tg_topic", entity.TopicMail)).Error("send document")
		return nil, fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	now := time.Now()
	sendLog := &entity.SendLog{
		Id:             id,
		OrganizationId: user.OrganizationId,
		Kind:           kind,
		Number:         number,
		To:             req.To,
		Bcc:            email.Bcc,
		FileName:       artifact.FileName,
		MessageId:      messageId,
		Username:       user.Username,
		Created:        now,
	}
	if err = c.db.MarkSent(ctx, user.OrganizationId, kind, number, now); err != nil {
		log.Warn("mark sent", sl.Err(err))
	}
	if err = c.db.SaveSendLog(ctx, sendLog); err != nil {
		log.Warn("save send log", sl.Err(err))
	}
	log.With(
		slog.String("message_id", messageId),
		slog.String("file", artifact.FileName),
		slog.String("tg_topic", entity.TopicMail),
	).Info("document sent")
	return sendLog, nil
}
