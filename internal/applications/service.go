// Package applications delivers submitted employment applications to HR.
package applications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"application-backend/internal/extract"
	"application-backend/internal/forms/build"
	"application-backend/internal/forms/model"
	"application-backend/internal/mailer"
	"application-backend/internal/shared/metrics"
	"application-backend/internal/shared/storage/object"
	"application-backend/internal/shared/telemetry"
	"application-backend/internal/shared/util"
)

const archivePrefix = "submissions"

// ErrDeliveryFailed wraps transport errors other than authentication.
var ErrDeliveryFailed = errors.New("application email could not be delivered")

// Transport sends composed messages.
type Transport interface {
	mailer.Sender
	Configured() bool
}

// DocumentBuilder renders the attachments of a submission.
type DocumentBuilder interface {
	Attachments(ctx context.Context, p model.Payload, resume *build.Resume) ([]build.Attachment, error)
}

// Submission is one decoded application.
type Submission struct {
	Payload model.Payload
	Resume  *build.Resume
}

// Receipt describes a delivered submission.
type Receipt struct {
	ID          string
	Attachments []string
}

// Service builds and mails application documents.
type Service struct {
	Builder   DocumentBuilder
	Transport Transport
	Archive   object.ObjectStore // nil disables archiving
	MailFrom  string
	MailTo    string

	now      func() time.Time
	newID    func() string
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(builder DocumentBuilder, transport Transport, archive object.ObjectStore, mailFrom, mailTo string) *Service {
	return &Service{
		Builder:   builder,
		Transport: transport,
		Archive:   archive,
		MailFrom:  mailFrom,
		MailTo:    mailTo,
		now:       time.Now,
		newID:     uuid.NewString,
		validate:  validator.New(),
	}
}

// Deliver renders every document for sub and mails them to the HR mailbox.
func (s *Service) Deliver(ctx context.Context, sub Submission) (Receipt, error) {
	if s.Transport == nil || !s.Transport.Configured() {
		metrics.IncApplicationSubmission(metrics.OutcomeNotConfigured)
		return Receipt{}, mailer.ErrTransportNotConfigured
	}
	if sub.Resume != nil && sub.Resume.FileName != "" {
		if _, err := extract.CheckName(sub.Resume.FileName); err != nil {
			return Receipt{}, err
		}
	}

	receipt := Receipt{ID: s.newID()}
	attachments, err := s.Builder.Attachments(ctx, sub.Payload, sub.Resume)
	if err != nil {
		return receipt, err
	}
	for _, att := range attachments {
		receipt.Attachments = append(receipt.Attachments, att.FileName)
	}

	s.archive(ctx, receipt.ID, attachments)

	if err := s.Transport.Send(ctx, s.message(sub.Payload, attachments)); err != nil {
		metrics.IncApplicationSubmission(metrics.OutcomeFailed)
		if errors.Is(err, mailer.ErrAuthenticationFailed) || errors.Is(err, mailer.ErrTransportNotConfigured) {
			return receipt, err
		}
		return receipt, fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	metrics.IncApplicationSubmission(metrics.OutcomeSent)

	telemetry.Info("application.delivered", map[string]any{
		"submission_id": receipt.ID,
		"attachments":   len(attachments),
		"position":      build.Position(sub.Payload),
	})
	return receipt, nil
}

func (s *Service) message(p model.Payload, attachments []build.Attachment) mailer.Message {
	name := build.ApplicantName(p)
	position := build.Position(p)
	applicantEmail := p.Text("email")

	var replyTo string
	if applicantEmail != "" && s.validate.Var(applicantEmail, "email") == nil {
		replyTo = applicantEmail
	}
	if applicantEmail == "" {
		applicantEmail = "No email"
	}

	body := strings.Join([]string{
		"A new employment application was submitted from the web form.",
		"",
		"Name: " + name,
		"Position: " + position,
		"Applicant Email: " + applicantEmail,
		"",
		"Attached PDFs:",
		"1) Main Application",
		"2) EEO (Voluntary)",
		"3) Disability (Voluntary)",
		"4) Veteran (Voluntary)",
		"5) Alcohol/Drug Agreement",
		"6) Resume (PDF, if provided)",
	}, "\n")

	files := make([]mailer.Attachment, 0, len(attachments))
	for _, att := range attachments {
		files = append(files, mailer.Attachment{
			FileName:    att.FileName,
			ContentType: att.ContentType,
			Data:        att.Data,
		})
	}

	return mailer.Message{
		From:        s.MailFrom,
		To:          []string{s.MailTo},
		ReplyTo:     replyTo,
		Subject:     fmt.Sprintf("New Employment Application: %s — %s", name, position),
		Body:        body,
		Attachments: files,
	}
}

// archive stores attachments under submissions/<date>/<id>/. Failures are
// logged and never block delivery.
func (s *Service) archive(ctx context.Context, id string, attachments []build.Attachment) {
	if s.Archive == nil {
		return
	}
	day := s.now().UTC().Format("2006-01-02")
	for _, att := range attachments {
		name, err := util.SanitizeFileName(att.FileName)
		if err != nil {
			name = util.SafeToken(att.FileName, "attachment")
		}
		key := path.Join(archivePrefix, day, id, name)
		if _, err := s.Archive.Put(ctx, key, att.ContentType, bytes.NewReader(att.Data)); err != nil {
			telemetry.Warn("application.archive_failed", map[string]any{
				"submission_id": id,
				"key":           key,
				"error":         err,
			})
		}
	}
}
