package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read output: %v", err)
	}
	return buf.String()
}

func TestInfoWritesJSONLine(t *testing.T) {
	out := captureStdout(t, func() {
		Info("resume.parsed", map[string]any{"mode": "fallback", "chars": 42})
	})

	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &payload); err != nil {
		t.Fatalf("decode log json: %v (%q)", err, out)
	}
	if payload["msg"] != "resume.parsed" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if payload["mode"] != "fallback" {
		t.Fatalf("unexpected mode: %v", payload["mode"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts field")
	}
}

func TestErrorFieldsAreStringified(t *testing.T) {
	out := captureStdout(t, func() {
		Error("smtp.failed", map[string]any{"err": errors.New("connection refused")})
	})
	if !strings.Contains(out, `"err":"connection refused"`) {
		t.Fatalf("expected stringified error, got %q", out)
	}
	if !strings.Contains(out, `"level":"error"`) {
		t.Fatalf("expected error level, got %q", out)
	}
}
