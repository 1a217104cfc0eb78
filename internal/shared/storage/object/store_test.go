package object

import (
	"errors"
	"testing"
)

func TestCleanKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		want    string
		wantErr bool
	}{
		{name: "plain", key: "submissions/2026-01-01/id/file.pdf", want: "submissions/2026-01-01/id/file.pdf"},
		{name: "leading slash", key: "/a/b.pdf", want: "a/b.pdf"},
		{name: "backslashes", key: `a\b.pdf`, want: "a/b.pdf"},
		{name: "double slash", key: "a//b.pdf", want: "a/b.pdf"},
		{name: "traversal", key: "../etc/passwd", wantErr: true},
		{name: "inner traversal", key: "a/../../b", wantErr: true},
		{name: "empty", key: "  ", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CleanKey(tt.key)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKey) {
					t.Fatalf("CleanKey(%q) expected ErrInvalidKey, got %v", tt.key, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanKey(%q) unexpected error: %v", tt.key, err)
			}
			if got != tt.want {
				t.Fatalf("CleanKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
