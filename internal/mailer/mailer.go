// Package mailer sends e-mail through a Resend compatible HTTP API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"easywork/entity"
	"easywork/lib/sl"
)

type Config struct {
	ApiKey      string
	BaseUrl     string
	FromName    string
	FromAddress string
}

type Client struct {
	hc          *http.Client
	baseURL     string
	apiKey      string
	fromName    string
	fromAddress string
	log         *slog.Logger
}

type attachment struct {
	FileName string `json:"filename"`
	Content  string `json:"content"`
}

type message struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Bcc         []string     `json:"bcc,omitempty"`
	ReplyTo     []string     `json:"reply_to,omitempty"`
	Subject     string       `json:"subject"`
	Html        string       `json:"html,omitempty"`
	Text        string       `json:"text,omitempty"`
	Attachments []attachment `json:"attachments,omitempty"`
}

type sendResponse struct {
	Id string `json:"id"`
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		hc:          &http.Client{Timeout: 30 * time.Second},
		baseURL:     strings.TrimRight(cfg.BaseUrl, "/"),
		apiKey:      cfg.ApiKey,
		fromName:    cfg.FromName,
		fromAddress: cfg.FromAddress,
		log:         logger.With(sl.Module("mailer")),
	}
}

func (c *Client) from(name string) string {
	if name == "" {
		name = c.fromName
	}
	if name == "" {
		return c.fromAddress
	}
	return fmt.Sprintf("%s <%s>", strings.NewReplacer("<", "", ">", "", "\"", "").Replace(name), c.fromAddress)
}

func list(address string) []string {
	if address == "" {
		return nil
	}
	return []string{address}
}

// Send delivers the e-mail and returns the provider message id.
func (c *Client) Send(ctx context.Context, email *entity.Email) (string, error) {
	if email == nil || email.To == "" {
		return "", errors.New("no recipient")
	}
	msg := message{
		From:    c.from(email.FromName),
		To:      list(email.To),
		Bcc:     list(email.Bcc),
		ReplyTo: list(email.ReplyTo),
		Subject: email.Subject,
		Html:    email.Html,
		Text:    email.Text,
	}
	if email.Attachment != nil {
		msg.Attachments = []attachment{{
			FileName: email.Attachment.FileName,
			Content:  email.Attachment.Content,
		}}
	}

	body, err := c.request(ctx, "emails", email.IdempotencyKey, msg)
	if err != nil {
		return "", err
	}
	var res sendResponse
	if err = json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return res.Id, nil
}

// request posts a JSON payload with bearer authorization.
func (c *Client) request(ctx context.Context, path, idempotencyKey string, payload interface{}) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, path)
	log := c.log.With(slog.String("endpoint", endpoint))

	status := "ERROR"
	t1 := time.Now()
	defer func() {
		log.Debug("mail API request completed",
			slog.String("duration", fmt.Sprintf("%.3fms", float64(time.Since(t1))/float64(time.Millisecond))),
			slog.String("status", status))
	}()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		log.Error("request failed", sl.Err(err))
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	status = resp.Status
	if resp.StatusCode >= 300 {
		log.Error("mail API returned error",
			slog.String("status", resp.Status),
			slog.String("body", string(body)))
		return nil, fmt.Errorf("mail %s: %s", resp.Status, body)
	}
	return body, nil
}
