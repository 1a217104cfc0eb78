package build

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"application-backend/internal/extract"
	"application-backend/internal/forms/model"
)

var errNotPDF = errors.New("file content is not a PDF document")

// resumePDF passes PDF resumes through and converts the other allowed
// formats into a paginated document.
func (b *Builder) resumePDF(ctx context.Context, r Resume) ([]byte, error) {
	ext, err := extract.CheckName(r.FileName)
	if err != nil {
		return nil, err
	}
	if ext == extract.ExtPDF {
		if !extract.LooksLikePDF(r.Data) {
			return nil, &extract.UnreadableError{Ext: ext, Err: errNotPDF}
		}
		return r.Data, nil
	}

	text, err := extract.Text(ctx, r.FileName, r.Data)
	if err != nil && !errors.Is(err, extract.ErrNoTextExtracted) {
		return nil, err
	}
	data, err := b.renderer.Render(b.ResumeDocument(r.FileName, text))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", LabelResume, err)
	}
	return data, nil
}

// ResumeDocument reflows extracted resume text into paragraphs.
func (b *Builder) ResumeDocument(fileName, text string) model.Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var blocks []model.Block
	if name := strings.TrimSpace(fileName); name != "" {
		blocks = append(blocks, fine("Original file: "+name))
	}
	paragraphs := 0
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		blocks = append(blocks, model.Paragraph{Text: para, Style: model.StyleLegal})
		paragraphs++
	}
	if paragraphs == 0 {
		blocks = append(blocks, model.Paragraph{Text: model.Placeholder, Style: model.StyleBody})
	}
	return b.document(
		"Resume",
		"Resume (Converted to PDF)",
		"Original resume was not a PDF; converted for department review.",
		blocks,
	)
}
