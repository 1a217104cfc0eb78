package mailer

import (
	"bytes"
	"errors"
	"io"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Attachment is a file carried by a message.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Message is a plain-text email with attachments.
type Message struct {
	From        string
	To          []string
	ReplyTo     string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Compose encodes msg as an RFC 5322 message.
func Compose(msg Message) ([]byte, error) {
	if msg.From == "" || len(msg.To) == 0 {
		return nil, errors.New("message needs a sender and at least one recipient")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", "<"+uuid.NewString()+"@application-backend>")
	m.SetDateHeader("Date", now())
	m.SetBody("text/plain", msg.Body)

	for _, att := range msg.Attachments {
		data := att.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		m.Attach(att.FileName, settings...)
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
