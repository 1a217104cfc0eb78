package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"application-backend/internal/llm"
)

func fakeClient(resp *genai.GenerateContentResponse, err error) *Client {
	return &Client{
		model: "gemini-test",
		generate: func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
			return resp, err
		},
	}
}

func TestGenerateJoinsTextParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonStop,
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"contact":`),
				genai.Text(` {}}`),
			}},
		}},
	}

	out, err := fakeClient(resp, nil).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"contact": {}}`, out.Text)
	assert.Equal(t, "STOP", out.FinishReason)
	assert.Equal(t, "gemini-test", out.Model)
}

func TestGenerateNoCandidates(t *testing.T) {
	out, err := fakeClient(&genai.GenerateContentResponse{}, nil).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Empty(t, out.Text)
	assert.Equal(t, "NO_CANDIDATES", out.FinishReason)
}

func TestGenerateBlockedIsEmptyCompletion(t *testing.T) {
	blocked := &genai.BlockedError{
		Candidate: &genai.Candidate{FinishReason: genai.FinishReasonSafety},
	}
	out, err := fakeClient(nil, blocked).Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Empty(t, out.Text)
	assert.Equal(t, "SAFETY", out.FinishReason)
}

func TestGeneratePermissionDenied(t *testing.T) {
	denied := status.Error(codes.PermissionDenied, "API key lacks access")
	_, err := fakeClient(nil, denied).Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrPermissionDenied))
}

func TestGenerateOtherErrorsPropagate(t *testing.T) {
	_, err := fakeClient(nil, errors.New("boom")).Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.False(t, errors.Is(err, llm.ErrPermissionDenied))
	assert.Contains(t, err.Error(), "boom")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), " ", "gemini-2.5-pro")
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}
