package resumes

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const usStates = `AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY`

var (
	emailRe     = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)
	phoneRe     = regexp.MustCompile(`(?i)(?:(?:\+?1[\s\-\.])?\(?\d{3}\)?[\s\-\.]?\d{3}[\s\-\.]?\d{4})(?:\s*(?:x|ext\.?)\s*\d+)?`)
	zipRe       = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	stateRe     = regexp.MustCompile(`\b(` + usStates + `)\b`)
	cityStateRe = regexp.MustCompile(`\b([A-Za-z][A-Za-z .'-]{1,30}),\s*(` + usStates + `)\b`)
	nameRe      = regexp.MustCompile(`^[A-Za-z .'-]{2,60}$`)
)

const maxNameLen = 60

// StructureViaRegex extracts contact details with fixed patterns. It never
// fails and never fills sections other than contact.
func StructureViaRegex(text string) map[string]any {
	contact := map[string]any{}

	if m := emailRe.FindString(text); m != "" {
		contact["email"] = m
	}

	phones := distinct(phoneRe.FindAllString(text, -1))
	if len(phones) > 0 {
		contact["phone"] = phones[0]
	}
	if len(phones) > 1 {
		contact["cell"] = phones[1]
	}

	if line := firstNonEmptyLine(text); line != "" {
		if !strings.Contains(line, "@") && utf8.RuneCountInString(line) <= maxNameLen && nameRe.MatchString(line) {
			contact["name"] = line
		}
	}

	var state string
	if m := cityStateRe.FindStringSubmatch(text); m != nil {
		city := strings.TrimSpace(m[1])
		state = strings.TrimSpace(m[2])
		contact["city"] = city
		contact["state"] = state
		contact["location"] = city + ", " + state
	}
	if m := zipRe.FindString(text); m != "" {
		contact["zip"] = m
	}
	if state == "" {
		if m := stateRe.FindStringSubmatch(text); m != nil {
			contact["state"] = m[1]
		}
	}

	return map[string]any{
		"contact":    contact,
		"employment": []any{},
		"references": []any{},
	}
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

func distinct(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
