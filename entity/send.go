package entity

import (
	"net/http"
	"time"

	"easywork/lib/validate"
)

// SendRequest is what the user confirms in the send dialog.
// Empty Subject and Message are replaced with the default texts.
type SendRequest struct {
	To       string `json:"to" validate:"required,email"`
	SendCopy bool   `json:"send_copy"`
	Subject  string `json:"subject" validate:"max=200"`
	Message  string `json:"message"`
}

func (s *SendRequest) Bind(_ *http.Request) error {
	return validate.Struct(s)
}

type Attachment struct {
	FileName string `json:"filename"`
	Content  string `json:"content"`
}

// Email is handed to the outbound mail collaborator.
type Email struct {
	FromName       string
	To             string
	Bcc            string
	ReplyTo        string
	Subject        string
	Text           string
	Html           string
	Attachment     *Attachment
	IdempotencyKey string
}

type SendLog struct {
	Id             string       `json:"id" bson:"id"`
	OrganizationId string       `json:"organization_id" bson:"organization_id"`
	Kind           DocumentKind `json:"kind" bson:"kind"`
	Number         int64        `json:"number" bson:"number"`
	To             string       `json:"to" bson:"to"`
	Bcc            string       `json:"bcc,omitempty" bson:"bcc,omitempty"`
	FileName       string       `json:"file_name" bson:"file_name"`
	MessageId      string       `json:"message_id" bson:"message_id"`
	Username       string       `json:"username" bson:"username"`
	Created        time.Time    `json:"created" bson:"created"`
}
