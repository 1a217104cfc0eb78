package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"application-backend/internal/llm"
)

type generateFunc func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)

// Client implements llm.Generator on the Gemini API.
type Client struct {
	model    string
	generate generateFunc
	close    func() error
}

// NewClient constructs a Gemini client for the named model.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, llm.ErrNotConfigured
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	gm := client.GenerativeModel(model)
	return &Client{
		model: model,
		generate: func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
			return gm.GenerateContent(ctx, genai.Text(prompt))
		},
		close: client.Close,
	}, nil
}

// Generate sends prompt as a single text part. Blocked responses come back as
// an empty completion carrying the finish reason.
func (c *Client) Generate(ctx context.Context, prompt string) (llm.Completion, error) {
	out := llm.Completion{Model: c.model}
	resp, err := c.generate(ctx, prompt)
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			out.FinishReason = blockedReason(blocked)
			return out, nil
		}
		if status.Code(err) == codes.PermissionDenied {
			return out, fmt.Errorf("%w: %v", llm.ErrPermissionDenied, err)
		}
		return out, fmt.Errorf("gemini generate: %w", err)
	}
	text, reason := fromResponse(resp)
	out.Text = text
	out.FinishReason = reason
	return out, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.close == nil {
		return nil
	}
	return c.close()
}

// fromResponse concatenates the text parts of the first candidate.
func fromResponse(resp *genai.GenerateContentResponse) (string, string) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", "NO_CANDIDATES"
	}
	cand := resp.Candidates[0]
	reason := finishReason(cand.FinishReason)
	if cand.Content == nil {
		return "", reason
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String()), reason
}

func blockedReason(err *genai.BlockedError) string {
	if err.Candidate != nil {
		return finishReason(err.Candidate.FinishReason)
	}
	if err.PromptFeedback != nil {
		return "BLOCKED_" + strings.ToUpper(strings.TrimPrefix(err.PromptFeedback.BlockReason.String(), "BlockReason"))
	}
	return "BLOCKED"
}

func finishReason(r genai.FinishReason) string {
	name := strings.TrimPrefix(r.String(), "FinishReason")
	if name == "" {
		return "UNSPECIFIED"
	}
	return strings.ToUpper(name)
}

var _ llm.Generator = (*Client)(nil)
