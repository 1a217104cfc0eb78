package extract

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DOCXText returns the document's non-blank paragraphs joined by newlines.
func DOCXText(data []byte) (text string, err error) {
	defer recoverParse(&err)

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	paragraphs, err := paragraphsFromXML(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}

// paragraphsFromXML walks WordprocessingML and collects the text of each
// w:p element, dropping paragraphs that are blank.
func paragraphsFromXML(raw string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var (
		out     []string
		current strings.Builder
		inText  bool
		depth   int
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				depth++
			case "t":
				inText = true
			case "tab":
				current.WriteString("\t")
			case "br", "cr":
				current.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				depth--
				if depth == 0 {
					if p := current.String(); strings.TrimSpace(p) != "" {
						out = append(out, p)
					}
					current.Reset()
				}
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	return out, nil
}
