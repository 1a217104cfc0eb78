package llm

import (
	"context"
	"errors"
)

// Generator produces a text completion for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Completion, error)
}

// Completion is the provider-neutral result of a generation call. Text is
// empty when the provider returned no usable content, for example when the
// response was blocked or truncated; FinishReason then tells why.
type Completion struct {
	Text         string
	FinishReason string
	Model        string
}

var (
	// ErrNotConfigured is returned when no provider credential is available.
	ErrNotConfigured = errors.New("language model is not configured")
	// ErrPermissionDenied is returned when the provider rejects the credential.
	ErrPermissionDenied = errors.New("language model permission denied")
)

// Unconfigured is the Generator used when no API key is present.
type Unconfigured struct {
	Model string
}

// Generate always fails with ErrNotConfigured.
func (u Unconfigured) Generate(context.Context, string) (Completion, error) {
	return Completion{Model: u.Model}, ErrNotConfigured
}
