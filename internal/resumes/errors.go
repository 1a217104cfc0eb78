package resumes

import (
	"errors"
	"fmt"
)

// ModelErrorKind classifies model-path failures that trigger the fallback.
type ModelErrorKind string

const (
	KindNotConfigured    ModelErrorKind = "not_configured"
	KindEmptyResponse    ModelErrorKind = "empty_response"
	KindInvalidJSON      ModelErrorKind = "invalid_json"
	KindPermissionDenied ModelErrorKind = "permission_denied"
)

// ModelError is a recognized model-path failure. Snippet holds the start of
// the raw output for logs only.
type ModelError struct {
	Kind         ModelErrorKind
	FinishReason string
	Snippet      string
	Cause        error
}

func (e *ModelError) Error() string {
	msg := fmt.Sprintf("model %s", e.Kind)
	if e.FinishReason != "" {
		msg += fmt.Sprintf(" (finish_reason=%s)", e.FinishReason)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ModelError) Unwrap() error { return e.Cause }

// AsModelError reports whether err is a recognized model-path failure.
func AsModelError(err error) (*ModelError, bool) {
	var me *ModelError
	if errors.As(err, &me) {
		return me, true
	}
	return nil, false
}
