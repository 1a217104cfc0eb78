package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"
)

// Supported extensions.
const (
	ExtPDF  = ".pdf"
	ExtDOC  = ".doc"
	ExtDOCX = ".docx"
	ExtTXT  = ".txt"
)

var allowed = map[string]struct{}{
	ExtPDF:  {},
	ExtDOC:  {},
	ExtDOCX: {},
	ExtTXT:  {},
}

// Extension returns the lowercased extension of name including the dot, or ""
// when name has none.
func Extension(name string) string {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[idx:])
}

// Allowed reports whether ext is one of the supported extensions.
func Allowed(ext string) bool {
	_, ok := allowed[strings.ToLower(ext)]
	return ok
}

// CheckName fails with UnsupportedTypeError when name's extension is not supported.
func CheckName(name string) (string, error) {
	ext := Extension(name)
	if !Allowed(ext) {
		return ext, &UnsupportedTypeError{Ext: ext}
	}
	return ext, nil
}

// Text extracts plain text from an uploaded file, dispatching on its extension.
// The extension is checked before any parsing. Whitespace-only results fail
// with ErrNoTextExtracted.
func Text(ctx context.Context, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext, err := CheckName(fileName)
	if err != nil {
		return "", err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", ErrNoTextExtracted
	}

	var text string
	switch ext {
	case ExtPDF:
		text, err = PDFText(data)
	case ExtDOC, ExtDOCX:
		text, err = DOCXText(data)
	default:
		text = DecodeText(data)
	}
	if err != nil {
		return "", &UnreadableError{Ext: ext, Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoTextExtracted
	}
	return text, nil
}

// DecodeText decodes UTF-8 input, falling back to Latin-1 when the bytes are
// not valid UTF-8.
func DecodeText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(decoded)
}

// Sniff returns the detected MIME type of data.
func Sniff(data []byte) string {
	return mimetype.Detect(data).String()
}

// LooksLikePDF reports whether data carries a PDF signature.
func LooksLikePDF(data []byte) bool {
	return mimetype.Detect(data).Is("application/pdf")
}

func recoverParse(err *error) {
	if rec := recover(); rec != nil {
		*err = fmt.Errorf("parser panic: %v", rec)
	}
}
