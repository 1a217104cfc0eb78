package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFText returns the text of every page joined by blank lines.
func PDFText(data []byte) (text string, err error) {
	defer recoverParse(&err)

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n\n"), nil
}
