package model

import "strings"

type textWriter struct {
	strings.Builder
}

func (w *textWriter) line(s string) {
	if s == "" {
		return
	}
	w.WriteString(s)
	w.WriteString("\n")
}

func (w *textWriter) blocks(blocks []Block) {
	for _, b := range blocks {
		switch t := b.(type) {
		case Section:
			w.line(t.Title)
			w.blocks(t.Blocks)
		case Paragraph:
			w.line(t.Text)
		case Fields:
			for _, r := range t.Rows {
				w.line(r.Label + ": " + r.Value)
			}
		case Table:
			w.line(t.Header[0] + ": " + t.Header[1])
			for _, r := range t.Rows {
				w.line(r.Label + ": " + r.Value)
			}
		case Image:
			w.line(t.Label)
		}
	}
}
