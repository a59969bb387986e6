package core

import (
	"fmt"
	"html/template"
	"strings"

	"easywork/entity"
	"easywork/internal/format"
)

var mailTemplate = template.Must(template.New("mail").Parse(
	`<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
<div style="font-size: 15px; line-height: 1.6; color: #374151;">
{{range $i, $line := .Lines}}{{if $i}}<br>
{{end}}{{$line}}{{end}}
</div>
<hr style="border: none; border-top: 1px solid #e5e7eb; margin: 24px 0;" />
<p style="font-size: 12px; color: #9ca3af;">{{.Footer}}</p>
</div>`))

type mailView struct {
	Lines  []string
	Footer string
}

// defaultMessage is the body offered in the send dialog when the user leaves it empty.
func defaultMessage(f *format.Formatter, doc *entity.Document) string {
	labels := f.Labels()
	kind := labels.Kind(doc.Kind)
	org := strings.TrimSpace(doc.Issuer.Name)
	if org == "" {
		org = labels.Us
	}

	lines := []string{
		labels.MailGreeting,
		"",
		fmt.Sprintf(labels.MailAttached, kind.Noun, doc.Meta.Number, org),
		"",
	}
	if title := strings.TrimSpace(doc.Meta.Title); title != "" {
		lines = append(lines, kind.FilePrefix+": "+title)
	}
	if !doc.Meta.DueDate.IsZero() {
		lines = append(lines, kind.DueDate+" "+f.Date(doc.Meta.DueDate.Time))
	}
	if lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	lines = append(lines, labels.MailQuestions, "", labels.MailRegards, strings.TrimSpace(doc.Issuer.Name))
	if phone := strings.TrimSpace(doc.Issuer.Phone); phone != "" {
		lines = append(lines, labels.Phone+" "+phone)
	}
	if email := strings.TrimSpace(doc.Issuer.Email); email != "" {
		lines = append(lines, labels.Email+" "+email)
	}
	return strings.Join(lines, "\n")
}

// composeMail fills subject and bodies; attachment and routing are set by the caller.
func composeMail(f *format.Formatter, doc *entity.Document, req *entity.SendRequest) (*entity.Email, error) {
	labels := f.Labels()
	org := strings.TrimSpace(doc.Issuer.Name)
	if org == "" {
		org = labels.Us
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = fmt.Sprintf(labels.Kind(doc.Kind).Subject, org)
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		text = defaultMessage(f, doc)
	}

	var html strings.Builder
	err := mailTemplate.Execute(&html, mailView{
		Lines:  strings.Split(text, "\n"),
		Footer: fmt.Sprintf(labels.MailFooter, org),
	})
	if err != nil {
		return nil, fmt.Errorf("mail body: %w", err)
	}

	return &entity.Email{
		FromName: doc.Issuer.Name,
		To:       req.To,
		Subject:  subject,
		Text:     text,
		Html:     html.String(),
	}, nil
}
