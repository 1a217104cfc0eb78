package s3

import (
	"strings"
	"testing"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "2026-01-01/id/file.pdf", want: "2026-01-01/id/file.pdf"},
		{name: "simple prefix", prefix: "archive", key: "id/file.pdf", want: "archive/id/file.pdf"},
		{name: "prefix and key slashes", prefix: "/archive/", key: "/id/file.pdf", want: "archive/id/file.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestPutInputEncryption(t *testing.T) {
	t.Parallel()

	plain := &Store{bucket: "b"}
	in := plain.putInput("k", "", strings.NewReader(""))
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256, got %v", in.ServerSideEncryption)
	}
	if *in.ContentType != "application/octet-stream" {
		t.Fatalf("unexpected content type %q", *in.ContentType)
	}

	kms := &Store{bucket: "b", kmsKeyID: "key-1"}
	in = kms.putInput("k", "application/pdf", strings.NewReader(""))
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || *in.SSEKMSKeyId != "key-1" {
		t.Fatalf("expected KMS encryption with key-1")
	}
}
