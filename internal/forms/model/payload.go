package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Placeholder is rendered wherever a value is missing or blank.
const Placeholder = "—"

// ErrInvalidPayload is returned when a submission is not a JSON object or its
// form section is not an object.
var ErrInvalidPayload = errors.New("invalid application payload")

// Payload is a submitted application as sent by the form. Field values are
// kept as decoded JSON and read by name.
type Payload struct {
	Form        map[string]any
	LegalText   map[string]any
	ClientMeta  map[string]any
	Signatures  map[string]any
	SubmittedAt any
}

// DecodePayload parses a submission body. A null body and an empty form value
// (null, "", false, 0 or []) decode as an empty form. Sections other than
// form that are missing or mistyped are treated as empty.
func DecodePayload(data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Payload{}, fmt.Errorf("%w: trailing data", ErrInvalidPayload)
	}
	if empty(raw) {
		raw = map[string]any{}
	}
	top, ok := raw.(map[string]any)
	if !ok {
		return Payload{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidPayload)
	}

	form := map[string]any{}
	switch f := top["form"].(type) {
	case map[string]any:
		form = f
	default:
		if !empty(f) {
			return Payload{}, fmt.Errorf("%w: form must be an object", ErrInvalidPayload)
		}
	}

	return Payload{
		Form:        form,
		LegalText:   asObject(top["legalText"]),
		ClientMeta:  asObject(top["clientMeta"]),
		Signatures:  asObject(top["signatures"]),
		SubmittedAt: top["submittedAt"],
	}, nil
}

// Field returns a form value.
func (p Payload) Field(key string) any {
	return p.Form[key]
}

// Text returns a form value as trimmed text, or "" when unset.
func (p Payload) Text(key string) string {
	return Text(p.Form[key])
}

// Legal returns a notice text exactly as supplied.
func (p Payload) Legal(key string) string {
	if s, ok := p.LegalText[key].(string); ok {
		return s
	}
	return ""
}

// Signature returns a signature entry as a string.
func (p Payload) Signature(key string) string {
	if s, ok := p.Signatures[key].(string); ok {
		return s
	}
	return ""
}

// List returns a form value when it is a JSON array.
func (p Payload) List(key string) []any {
	if l, ok := p.Form[key].([]any); ok {
		return l
	}
	return nil
}

// empty reports whether v is a null, blank, false, zero or empty JSON value.
func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func asObject(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Text renders a decoded JSON value as display text without the placeholder.
// Booleans read Yes/No.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := Text(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		keys := sortedKeys(t)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+Display(t[k]))
		}
		return strings.Join(parts, ", ")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Display is Text with the placeholder substituted for blank values.
func Display(v any) string {
	if s := Text(v); s != "" {
		return s
	}
	return Placeholder
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
