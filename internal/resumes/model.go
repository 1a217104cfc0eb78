package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"application-backend/internal/llm"
)

const (
	// MaxExcerptChars is the number of code points sent to the model.
	MaxExcerptChars = 20000
	snippetChars    = 400
)

// ModelMeta describes a successful model call.
type ModelMeta struct {
	Model        string
	Truncated    bool
	FinishReason string
	ExcerptChars int
}

// StructureViaModel asks the generator to map text onto the resume schema and
// returns the decoded JSON object. Recognized failures come back as
// *ModelError; anything else is returned as is.
func StructureViaModel(ctx context.Context, gen llm.Generator, text string) (map[string]any, ModelMeta, error) {
	if gen == nil {
		return nil, ModelMeta{}, &ModelError{Kind: KindNotConfigured, Cause: llm.ErrNotConfigured}
	}
	excerpt, truncated := truncateRunes(text, MaxExcerptChars)

	out, err := gen.Generate(ctx, llm.ResumeStructurePrompt(excerpt))
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			return nil, ModelMeta{}, &ModelError{Kind: KindNotConfigured, Cause: err}
		case errors.Is(err, llm.ErrPermissionDenied):
			return nil, ModelMeta{}, &ModelError{Kind: KindPermissionDenied, Cause: err}
		default:
			return nil, ModelMeta{}, err
		}
	}

	raw := strings.TrimSpace(out.Text)
	if raw == "" {
		return nil, ModelMeta{}, &ModelError{Kind: KindEmptyResponse, FinishReason: out.FinishReason}
	}
	raw = stripFence(raw)

	data, err := decodeObject(raw)
	if err != nil {
		return nil, ModelMeta{}, &ModelError{
			Kind:         KindInvalidJSON,
			FinishReason: out.FinishReason,
			Snippet:      prefixRunes(raw, snippetChars),
			Cause:        err,
		}
	}

	return data, ModelMeta{
		Model:        out.Model,
		Truncated:    truncated,
		FinishReason: out.FinishReason,
		ExcerptChars: utf8.RuneCountInString(excerpt),
	}, nil
}

// stripFence removes a surrounding Markdown code fence and an optional
// "json" language tag.
func stripFence(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.Trim(raw, "`\n ")
	if strings.HasPrefix(strings.ToLower(raw), "json") {
		raw = strings.TrimLeft(raw[4:], " \t\r\n")
	}
	return raw
}

var errNotObject = errors.New("model output is not a JSON object")

func decodeObject(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON value")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

func truncateRunes(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	return prefixRunes(s, limit), true
}

func prefixRunes(s string, limit int) string {
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
