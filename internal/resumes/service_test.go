package resumes

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"application-backend/internal/extract"
	"application-backend/internal/llm"
)

const sampleResume = "Jane Doe\njane.doe@example.com\n(555) 123-4567\nAustin, TX 78701"

func TestParseSmartMode(t *testing.T) {
	gen := &fakeGenerator{out: llm.Completion{
		Text:         `{"contact":{"name":"Jane Doe","mobile":"555-999-0000"},"objective":"Geologist"}`,
		FinishReason: "STOP",
		Model:        "gemini-2.5-pro",
	}}
	svc := NewService(gen)

	resp, err := svc.Parse(context.Background(), "cv.txt", []byte(sampleResume))
	require.NoError(t, err)

	assert.Equal(t, ModeSmart, resp.Meta.Mode)
	assert.Equal(t, "cv.txt", resp.Meta.Filename)
	assert.Equal(t, len(sampleResume), resp.Meta.CharactersUsed)
	require.NotNil(t, resp.Meta.ExcerptChars)
	assert.Equal(t, len(sampleResume), *resp.Meta.ExcerptChars)
	assert.Equal(t, "gemini-2.5-pro", resp.Meta.Model)
	assert.Equal(t, "STOP", resp.Meta.FinishReason)
	assert.Equal(t, ptr("Geologist"), resp.Parsed.TargetRole)
	assert.Equal(t, ptr("555-999-0000"), resp.Parsed.Contact.Cell)
}

func TestParseFallsBackOnRecognizedFailure(t *testing.T) {
	for name, gen := range map[string]llm.Generator{
		"unconfigured": llm.Unconfigured{Model: "gemini-2.5-pro"},
		"empty":        &fakeGenerator{out: llm.Completion{FinishReason: "SAFETY"}},
		"invalid":      &fakeGenerator{out: llm.Completion{Text: "not json"}},
		"denied":       &fakeGenerator{err: llm.ErrPermissionDenied},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := NewService(gen).Parse(context.Background(), "cv.txt", []byte(sampleResume))
			require.NoError(t, err)

			assert.Equal(t, ModeFallback, resp.Meta.Mode)
			assert.Equal(t, FallbackModel, resp.Meta.Model)
			assert.Equal(t, FallbackFinishReason, resp.Meta.FinishReason)
			assert.Nil(t, resp.Meta.ExcerptChars)
			assert.False(t, resp.Meta.Truncated)
			assert.Equal(t, ptr("Jane Doe"), resp.Parsed.Contact.Name)
			assert.Equal(t, ptr("Austin, TX"), resp.Parsed.Contact.Location)
		})
	}
}

func TestParseUnexpectedModelErrorPropagates(t *testing.T) {
	boom := errors.New("dial tcp: i/o timeout")
	_, err := NewService(&fakeGenerator{err: boom}).Parse(context.Background(), "cv.txt", []byte(sampleResume))
	require.ErrorIs(t, err, boom)
}

func TestParseExtractionErrors(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.Parse(context.Background(), "setup.exe", []byte("MZ"))
	assert.True(t, extract.IsUnsupported(err))

	_, err = svc.Parse(context.Background(), "blank.txt", []byte("   "))
	assert.ErrorIs(t, err, extract.ErrNoTextExtracted)
}

func TestStructureShapeMatchesAcrossModes(t *testing.T) {
	smart, err := NewService(&fakeGenerator{out: llm.Completion{Text: `{}`}}).Structure(context.Background(), sampleResume)
	require.NoError(t, err)
	fallback, err := NewService(nil).Structure(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, Empty(), smart.Record)
	assert.Equal(t, Empty(), fallback.Record)
}
