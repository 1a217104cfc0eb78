package model

import (
	"strings"
	"unicode/utf8"
)

// WrapColumns is the soft-wrap budget for table values.
const WrapColumns = 80

// SoftWrap inserts line breaks so no line exceeds width runes. Breaks happen
// at spaces where possible; longer tokens are split hard. Existing newlines
// are kept.
func SoftWrap(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = wrapLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) string {
	if utf8.RuneCountInString(line) <= width {
		return line
	}
	var (
		out     []string
		current []rune
	)
	flush := func() {
		out = append(out, strings.TrimRight(string(current), " "))
		current = current[:0]
	}
	for _, word := range strings.Split(line, " ") {
		runes := []rune(word)
		for len(runes) > width {
			if len(current) > 0 {
				flush()
			}
			out = append(out, string(runes[:width]))
			runes = runes[width:]
		}
		need := len(runes)
		if len(current) > 0 {
			need++
		}
		if len(current)+need > width {
			flush()
		}
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, runes...)
	}
	if len(current) > 0 {
		flush()
	}
	return strings.Join(out, "\n")
}
