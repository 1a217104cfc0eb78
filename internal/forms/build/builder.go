// Package build assembles the attachments sent with an employment
// application: the main application, the four compliance sub-forms and the
// applicant's resume.
package build

import (
	"context"
	"fmt"
	"strings"

	"application-backend/internal/forms/model"
	"application-backend/internal/shared/util"
)

// DefaultOrganization is printed at the top of every document.
const DefaultOrganization = "GEOLABS, INC."

const pdfContentType = "application/pdf"

// Attachment labels, in delivery order.
const (
	LabelMainApplication = "Main_Application"
	LabelEEO             = "EEO"
	LabelDisability      = "Disability"
	LabelVeteran         = "Veteran"
	LabelAlcoholDrug     = "Alcohol_Drug"
	LabelResume          = "Resume"
)

// Renderer turns a document description into PDF bytes.
type Renderer interface {
	Render(doc model.Document) ([]byte, error)
}

// Options customizes the templates.
type Options struct {
	Organization string
}

// Builder produces the application attachments.
type Builder struct {
	renderer Renderer
	org      string
}

// New constructs a Builder.
func New(r Renderer, opts Options) *Builder {
	org := strings.TrimSpace(opts.Organization)
	if org == "" {
		org = DefaultOrganization
	}
	return &Builder{renderer: r, org: org}
}

// Resume is an uploaded resume file.
type Resume struct {
	FileName string
	Data     []byte
}

// Attachment is one rendered file ready to be mailed.
type Attachment struct {
	Label       string
	FileName    string
	ContentType string
	Data        []byte
}

// Documents returns the five form documents for a payload in delivery order.
func (b *Builder) Documents(p model.Payload) []model.Document {
	return []model.Document{
		b.MainApplication(p),
		b.EEO(p),
		b.Disability(p),
		b.Veteran(p),
		b.AlcoholDrug(p),
	}
}

// Attachments renders every document for a payload. The resume is appended
// last when present.
func (b *Builder) Attachments(ctx context.Context, p model.Payload, resume *Resume) ([]Attachment, error) {
	labels := []string{LabelMainApplication, LabelEEO, LabelDisability, LabelVeteran, LabelAlcoholDrug}
	docs := b.Documents(p)

	out := make([]Attachment, 0, len(docs)+1)
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := b.renderer.Render(doc)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", labels[i], err)
		}
		out = append(out, Attachment{
			Label:       labels[i],
			FileName:    FileName(len(out)+1, labels[i], p),
			ContentType: pdfContentType,
			Data:        data,
		})
	}

	if resume != nil && len(resume.Data) > 0 {
		data, err := b.resumePDF(ctx, *resume)
		if err != nil {
			return nil, err
		}
		out = append(out, Attachment{
			Label:       LabelResume,
			FileName:    FileName(len(out)+1, LabelResume, p),
			ContentType: pdfContentType,
			Data:        data,
		})
	}
	return out, nil
}

// FileName builds "<n>_<label>_<applicant>_<position>.pdf".
func FileName(n int, label string, p model.Payload) string {
	name := util.SafeToken(ApplicantName(p), "Applicant")
	position := util.SafeToken(Position(p), "Position")
	return fmt.Sprintf("%d_%s_%s_%s.pdf", n, label, name, position)
}

// ApplicantName returns the applicant's name or "Applicant".
func ApplicantName(p model.Payload) string {
	if s := p.Text("name"); s != "" {
		return s
	}
	return "Applicant"
}

// Position returns the position applied for or "Unknown Position".
func Position(p model.Payload) string {
	if s := p.Text("position"); s != "" {
		return s
	}
	return "Unknown Position"
}

func (b *Builder) document(title, heading, subtitle string, blocks []model.Block) model.Document {
	return model.Document{
		Title:        title,
		Organization: b.org,
		Heading:      heading,
		Subtitle:     subtitle,
		Blocks:       blocks,
	}
}

func fields(p model.Payload, rows ...[2]string) model.Fields {
	out := make([]model.Field, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.NewField(r[0], p.Field(r[1])))
	}
	return model.Fields{Rows: out}
}

func fine(text string) model.Paragraph {
	return model.Paragraph{Text: text, Style: model.StyleFine}
}
