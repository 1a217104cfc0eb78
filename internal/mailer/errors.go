package mailer

import "errors"

var (
	// ErrTransportNotConfigured means no SMTP host is set.
	ErrTransportNotConfigured = errors.New("SMTP_HOST is not configured on the server")
	// ErrAuthenticationFailed means the SMTP server rejected the credentials.
	ErrAuthenticationFailed = errors.New("smtp authentication failed")
)
