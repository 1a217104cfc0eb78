// Package mailer delivers application emails over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"
)

var now = time.Now

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Config holds the SMTP transport settings.
type Config struct {
	Host        string
	Port        int
	User        string
	Pass        string
	UseTLS      bool
	DialTimeout time.Duration
}

// SMTPSender sends mail through a single SMTP relay.
type SMTPSender struct {
	cfg  Config
	dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewSMTP constructs an SMTPSender.
func NewSMTP(cfg Config) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	d := &net.Dialer{Timeout: cfg.DialTimeout}
	return &SMTPSender{cfg: cfg, dial: d.DialContext}
}

// Configured reports whether a relay host is set.
func (s *SMTPSender) Configured() bool {
	return strings.TrimSpace(s.cfg.Host) != ""
}

// Send composes msg and delivers it. With credentials configured, a server
// that rejects them or does not offer AUTH yields ErrAuthenticationFailed.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if !s.Configured() {
		return ErrTransportNotConfigured
	}
	raw, err := Compose(msg)
	if err != nil {
		return err
	}

	host := strings.TrimSpace(s.cfg.Host)
	addr := net.JoinHostPort(host, strconv.Itoa(s.cfg.Port))
	conn, err := s.dial(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	if deadline, ok := s.deadline(ctx); ok {
		_ = conn.SetDeadline(deadline)
	}

	tlsConfig := &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
	if s.cfg.Port == 465 {
		conn = tls.Client(conn, tlsConfig)
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if s.cfg.UseTLS && s.cfg.Port != 465 {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			return errors.New("smtp server does not support STARTTLS")
		}
		if err := c.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if s.cfg.User != "" {
		if ok, _ := c.Extension("AUTH"); !ok {
			return fmt.Errorf("%w: server does not offer AUTH", ErrAuthenticationFailed)
		}
		if err := c.Auth(smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, host)); err != nil {
			return authError(err)
		}
	}

	if err := c.Mail(msg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}
	return c.Quit()
}

func (s *SMTPSender) deadline(ctx context.Context) (time.Time, bool) {
	if d, ok := ctx.Deadline(); ok {
		return d, true
	}
	if s.cfg.DialTimeout > 0 {
		// four dial timeouts bound the whole conversation
		return now().Add(4 * s.cfg.DialTimeout), true
	}
	return time.Time{}, false
}

func authError(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) && (tpErr.Code == 535 || tpErr.Code == 534) {
		return fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	return fmt.Errorf("smtp auth: %w", err)
}
