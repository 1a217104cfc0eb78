package health

import "strings"

// Status is the body of the health endpoint.
type Status struct {
	Status         string `json:"status"`
	AutofillReady  bool   `json:"autofill_ready"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
	MailTo         string `json:"mail_to"`
	SMTPReady      bool   `json:"smtp_ready"`
	ArchiveEnabled bool   `json:"archive_enabled"`
}

// Probes reports the readiness of optional collaborators.
type Probes struct {
	Provider       string
	Model          string
	MailTo         string
	ModelReady     func() bool
	SMTPReady      func() bool
	ArchiveEnabled bool
}

// Service encapsulates health-related checks.
type Service struct {
	probes Probes
}

// NewService constructs a new health service.
func NewService(probes Probes) *Service {
	return &Service{probes: probes}
}

// Status returns the current health payload. The process is always "ok";
// the flags say which optional features are usable.
func (s *Service) Status() Status {
	p := s.probes
	return Status{
		Status:         "ok",
		AutofillReady:  call(p.ModelReady),
		Provider:       strings.ToLower(p.Provider),
		Model:          p.Model,
		MailTo:         p.MailTo,
		SMTPReady:      call(p.SMTPReady),
		ArchiveEnabled: p.ArchiveEnabled,
	}
}

func call(f func() bool) bool {
	return f != nil && f()
}
