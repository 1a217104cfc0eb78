// Package render draws form documents as Letter-size PDFs.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"application-backend/internal/forms/model"
)

const (
	marginLeft   = 18.0
	marginTop    = 16.5
	marginRight  = 18.0
	marginBottom = 18.0

	labelColumn = 62.0
	cellPadding = 1.6
	minSection  = 22.0
)

// Renderer renders documents with the PDF core fonts. Text is translated to
// cp1252; characters outside that code page cannot be drawn.
type Renderer struct{}

// New constructs a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render draws doc and returns the PDF bytes.
func (Renderer) Render(doc model.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Organization, true)
	pdf.SetCreator("application-backend", false)
	pdf.AliasNbPages("")

	pageW, pageH := pdf.GetPageSize()
	p := &page{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		width:  pageW - marginLeft - marginRight,
		bottom: pageH - marginBottom,
	}
	pdf.SetFooterFunc(p.footer)

	pdf.AddPage()
	p.header(doc)
	p.blocks(doc.Blocks)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type page struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	width  float64
	bottom float64
	images int
}

func (p *page) use(s TextStyle) {
	p.pdf.SetFont(s.Family, s.Style, s.Size)
	p.pdf.SetTextColor(s.Color[0], s.Color[1], s.Color[2])
}

func (p *page) text(s TextStyle, text string) {
	p.use(s)
	p.pdf.SetX(marginLeft)
	p.pdf.MultiCell(p.width, s.LineHeight, p.tr(text), "", "L", false)
}

func (p *page) ensure(h float64, repeat func()) {
	if p.pdf.GetY()+h > p.bottom {
		p.pdf.AddPage()
		if repeat != nil {
			repeat()
		}
	}
}

func (p *page) header(doc model.Document) {
	if doc.Organization != "" {
		p.text(organizationStyle, doc.Organization)
	}
	if doc.Heading != "" {
		p.text(headingStyle, doc.Heading)
	}
	if doc.Subtitle != "" {
		p.pdf.Ln(1)
		p.text(subtitleStyle, doc.Subtitle)
	}
	y := p.pdf.GetY() + 2
	p.pdf.SetDrawColor(31, 41, 55)
	p.pdf.SetLineWidth(0.5)
	p.pdf.Line(marginLeft, y, marginLeft+p.width, y)
	p.pdf.SetLineWidth(0.2)
	p.pdf.SetY(y + 4)
}

func (p *page) footer() {
	p.pdf.SetY(-12)
	p.use(footerStyle)
	p.pdf.CellFormat(0, footerStyle.LineHeight, fmt.Sprintf("Page %d of {nb}", p.pdf.PageNo()), "", 0, "C", false, 0, "")
}

func (p *page) blocks(blocks []model.Block) {
	for _, b := range blocks {
		switch t := b.(type) {
		case model.Section:
			p.section(t)
		case model.Paragraph:
			p.text(paragraphStyle(t.Style), t.Text)
			p.pdf.Ln(1.5)
		case model.Fields:
			p.rows(t.Rows, nil)
			p.pdf.Ln(1)
		case model.Table:
			p.table(t)
		case model.Image:
			p.image(t)
		case model.Spacer:
			p.pdf.Ln(t.Height)
		case model.PageBreak:
			p.pdf.AddPage()
		}
	}
}

func (p *page) section(s model.Section) {
	p.ensure(minSection, nil)
	p.use(sectionStyle)
	p.pdf.SetFillColor(243, 244, 246)
	p.pdf.SetX(marginLeft)
	p.pdf.CellFormat(p.width, sectionStyle.LineHeight, p.tr(" "+s.Title), "", 1, "L", true, 0, "")
	p.pdf.Ln(1.5)
	p.blocks(s.Blocks)
	p.pdf.Ln(3)
}

func (p *page) table(t model.Table) {
	head := func() {
		p.use(labelStyle)
		p.pdf.SetFillColor(229, 231, 235)
		p.pdf.SetX(marginLeft)
		p.pdf.CellFormat(labelColumn, labelStyle.LineHeight+2, p.tr(" "+t.Header[0]), "1", 0, "L", true, 0, "")
		p.pdf.CellFormat(p.width-labelColumn, labelStyle.LineHeight+2, p.tr(" "+t.Header[1]), "1", 1, "L", true, 0, "")
	}
	p.ensure(3*(labelStyle.LineHeight+2), nil)
	head()
	p.rows(t.Rows, head)
	p.pdf.Ln(2)
}

// rows draws label/value pairs. Rows that fit on a page are kept together;
// taller rows continue on the next page, where repeat redraws a table head.
func (p *page) rows(rows []model.Field, repeat func()) {
	valueW := p.width - labelColumn
	for _, r := range rows {
		p.use(labelStyle)
		labels := p.pdf.SplitLines([]byte(p.tr(r.Label)), labelColumn-2*cellPadding)
		p.use(valueStyle)
		values := p.pdf.SplitLines([]byte(p.tr(r.Value)), valueW-2*cellPadding)

		n := max(len(labels), len(values), 1)
		lineH := valueStyle.LineHeight
		if h := float64(n)*lineH + 2*cellPadding; h <= p.bottom-marginTop {
			p.ensure(h, repeat)
		}

		y := p.pdf.GetY() + cellPadding
		for i := 0; i < n; i++ {
			if y+lineH > p.bottom {
				p.pdf.AddPage()
				if repeat != nil {
					repeat()
				}
				y = p.pdf.GetY() + cellPadding
			}
			if i < len(labels) {
				p.use(labelStyle)
				p.pdf.SetXY(marginLeft+cellPadding, y)
				p.pdf.CellFormat(labelColumn-2*cellPadding, lineH, string(labels[i]), "", 0, "L", false, 0, "")
			}
			if i < len(values) {
				p.use(valueStyle)
				p.pdf.SetXY(marginLeft+labelColumn+cellPadding, y)
				p.pdf.CellFormat(valueW-2*cellPadding, lineH, string(values[i]), "", 0, "L", false, 0, "")
			}
			y += lineH
		}
		y += cellPadding
		p.pdf.SetDrawColor(209, 213, 219)
		p.pdf.Line(marginLeft, y, marginLeft+p.width, y)
		p.pdf.SetXY(marginLeft, y)
	}
}

func (p *page) image(img model.Image) {
	p.images++
	name := fmt.Sprintf("image-%d", p.images)
	p.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: img.Type}, bytes.NewReader(img.Data))
	if p.pdf.Err() {
		// Undecodable image data becomes a text line.
		p.pdf.ClearError()
		p.text(paragraphStyle(model.StyleFine), strings.TrimSpace(img.Label+": "+model.Placeholder+" (Could not decode image)"))
		return
	}

	p.ensure(labelStyle.LineHeight+img.Height+4, nil)
	if img.Label != "" {
		p.text(labelStyle, img.Label)
	}
	y := p.pdf.GetY() + 1
	p.pdf.ImageOptions(name, marginLeft, y, img.Width, img.Height, false, fpdf.ImageOptions{ImageType: img.Type}, 0, "")
	p.pdf.SetY(y + img.Height + 2)
}
