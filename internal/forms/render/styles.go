package render

import "application-backend/internal/forms/model"

// TextStyle is the font setup for one kind of text.
type TextStyle struct {
	Family     string
	Style      string
	Size       float64
	LineHeight float64
	Color      [3]int
}

const fontFamily = "Helvetica"

var (
	organizationStyle = TextStyle{Family: fontFamily, Style: "B", Size: 15, LineHeight: 7, Color: [3]int{17, 17, 17}}
	headingStyle      = TextStyle{Family: fontFamily, Style: "B", Size: 12.5, LineHeight: 6, Color: [3]int{31, 41, 55}}
	subtitleStyle     = TextStyle{Family: fontFamily, Style: "I", Size: 9, LineHeight: 4.5, Color: [3]int{75, 85, 99}}
	sectionStyle      = TextStyle{Family: fontFamily, Style: "B", Size: 11, LineHeight: 7, Color: [3]int{17, 24, 39}}
	labelStyle        = TextStyle{Family: fontFamily, Style: "B", Size: 9, LineHeight: 4.5, Color: [3]int{55, 65, 81}}
	valueStyle        = TextStyle{Family: fontFamily, Style: "", Size: 9, LineHeight: 4.5, Color: [3]int{17, 17, 17}}
	footerStyle       = TextStyle{Family: fontFamily, Style: "I", Size: 8, LineHeight: 4, Color: [3]int{107, 114, 128}}
)

// StyleMap holds the paragraph styles.
var StyleMap = map[model.Style]TextStyle{
	model.StyleBody:    {Family: fontFamily, Size: 10, LineHeight: 5, Color: [3]int{17, 17, 17}},
	model.StyleLegal:   {Family: fontFamily, Size: 9.5, LineHeight: 4.6, Color: [3]int{17, 17, 17}},
	model.StyleWarning: {Family: fontFamily, Style: "B", Size: 9.5, LineHeight: 4.6, Color: [3]int{153, 27, 27}},
	model.StyleFine:    {Family: fontFamily, Style: "I", Size: 8, LineHeight: 4, Color: [3]int{75, 85, 99}},
	model.StyleLabel:   {Family: fontFamily, Style: "B", Size: 9.5, LineHeight: 5.5, Color: [3]int{31, 41, 55}},
}

func paragraphStyle(s model.Style) TextStyle {
	if ts, ok := StyleMap[s]; ok {
		return ts
	}
	return StyleMap[model.StyleBody]
}
