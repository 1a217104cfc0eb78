package model

// Style selects the typography of a paragraph.
type Style int

const (
	StyleBody Style = iota
	StyleLegal
	StyleWarning
	StyleFine
	StyleLabel
)

// Document is a renderer-neutral description of one paginated attachment.
// Title is used for PDF metadata; Heading is drawn on the first page.
type Document struct {
	Title        string
	Organization string
	Heading      string
	Subtitle     string
	Blocks       []Block
}

// Block is one element of a document body.
type Block interface {
	block()
}

// Section is a titled group of blocks, drawn as a card.
type Section struct {
	Title  string
	Blocks []Block
}

// Paragraph is free text. Newlines inside Text are preserved.
type Paragraph struct {
	Text  string
	Style Style
}

// Fields is a two-column label/value list.
type Fields struct {
	Rows []Field
}

// Field is one label/value row. Value is already display text.
type Field struct {
	Label string
	Value string
}

// Table is a bordered grid with a header row repeated on each page.
type Table struct {
	Header [2]string
	Rows   []Field
}

// Image is an embedded raster, e.g. a drawn signature.
type Image struct {
	Label  string
	Type   string // PNG or JPG
	Data   []byte
	Width  float64
	Height float64
}

// Spacer adds vertical space in millimetres.
type Spacer struct {
	Height float64
}

// PageBreak starts a new page.
type PageBreak struct{}

func (Section) block()   {}
func (Paragraph) block() {}
func (Fields) block()    {}
func (Table) block()     {}
func (Image) block()     {}
func (Spacer) block()    {}
func (PageBreak) block() {}

// NewField builds a row from a raw payload value, substituting the
// placeholder and soft-wrapping long text.
func NewField(label string, v any) Field {
	return Field{Label: label, Value: SoftWrap(Display(v), WrapColumns)}
}

// Text flattens a document to plain text in reading order.
func (d Document) Text() string {
	var w textWriter
	w.line(d.Organization)
	w.line(d.Heading)
	w.line(d.Subtitle)
	w.blocks(d.Blocks)
	return w.String()
}
