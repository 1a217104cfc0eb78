package resumes

import (
	"context"
	"unicode/utf8"

	"application-backend/internal/extract"
	"application-backend/internal/llm"
	"application-backend/internal/shared/metrics"
	"application-backend/internal/shared/telemetry"
)

// Mode tags which strategy produced a record.
type Mode string

const (
	ModeSmart    Mode = "smart"
	ModeFallback Mode = "fallback"
)

// Provenance reported for records produced by the regex path.
const (
	FallbackModel        = "fallback-regex"
	FallbackFinishReason = "FALLBACK"
)

// Meta is the provenance block of a parse response.
type Meta struct {
	Filename       string `json:"filename"`
	CharactersUsed int    `json:"characters_used"`
	ExcerptChars   *int   `json:"excerpt_chars"`
	Truncated      bool   `json:"truncated"`
	Model          string `json:"model"`
	FinishReason   string `json:"finish_reason"`
	Mode           Mode   `json:"mode"`
}

// ParseResponse is the body returned by the parse endpoint.
type ParseResponse struct {
	Parsed Record `json:"parsed"`
	Meta   Meta   `json:"meta"`
}

// Outcome is a normalized record plus the provenance of the strategy that
// produced it.
type Outcome struct {
	Record       Record
	Mode         Mode
	Model        string
	Truncated    bool
	FinishReason string
	ExcerptChars *int
}

// Service structures resume text into Records.
type Service struct {
	Generator llm.Generator
}

// NewService constructs a Service. A nil generator always falls back.
func NewService(gen llm.Generator) *Service {
	return &Service{Generator: gen}
}

// Parse extracts text from an uploaded file and structures it.
func (s *Service) Parse(ctx context.Context, fileName string, data []byte) (ParseResponse, error) {
	text, err := extract.Text(ctx, fileName, data)
	if err != nil {
		return ParseResponse{}, err
	}
	out, err := s.Structure(ctx, text)
	if err != nil {
		return ParseResponse{}, err
	}
	return ParseResponse{
		Parsed: out.Record,
		Meta: Meta{
			Filename:       fileName,
			CharactersUsed: utf8.RuneCountInString(text),
			ExcerptChars:   out.ExcerptChars,
			Truncated:      out.Truncated,
			Model:          out.Model,
			FinishReason:   out.FinishReason,
			Mode:           out.Mode,
		},
	}, nil
}

// Structure tries the model path and, on a recognized model failure, the
// regex path. Unrecognized errors are returned to the caller.
func (s *Service) Structure(ctx context.Context, text string) (Outcome, error) {
	data, meta, err := StructureViaModel(ctx, s.Generator, text)
	if err == nil {
		excerpt := meta.ExcerptChars
		metrics.IncResumeParse(string(ModeSmart))
		telemetry.Debug("resume.structured", map[string]any{
			"model":         meta.Model,
			"finish_reason": meta.FinishReason,
			"excerpt_chars": excerpt,
			"truncated":     meta.Truncated,
		})
		return Outcome{
			Record:       Normalize(data),
			Mode:         ModeSmart,
			Model:        meta.Model,
			Truncated:    meta.Truncated,
			FinishReason: meta.FinishReason,
			ExcerptChars: &excerpt,
		}, nil
	}

	me, ok := AsModelError(err)
	if !ok {
		return Outcome{}, err
	}
	fields := map[string]any{
		"reason":        string(me.Kind),
		"finish_reason": me.FinishReason,
		"error":         err,
	}
	if me.Snippet != "" {
		fields["raw_snippet"] = me.Snippet
	}
	telemetry.Warn("resume.fallback", fields)
	metrics.IncModelFallback(string(me.Kind))
	metrics.IncResumeParse(string(ModeFallback))

	return Outcome{
		Record:       Normalize(StructureViaRegex(text)),
		Mode:         ModeFallback,
		Model:        FallbackModel,
		FinishReason: FallbackFinishReason,
	}, nil
}
