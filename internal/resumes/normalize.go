package resumes

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize maps loosely shaped model or fallback output onto Record. It is
// total: missing or mistyped sections are treated as empty, known synonyms
// fill absent primary keys, and repeated sections are capped.
func Normalize(raw any) Record {
	data := object(raw)
	contact := object(data["contact"])
	education := object(data["education"])
	skills := object(data["skills"])

	rec := Record{
		Contact: Contact{
			Name:     leaf(contact, "name"),
			Email:    leaf(contact, "email"),
			Phone:    leaf(contact, "phone"),
			Cell:     leaf(contact, "cell", "mobile"),
			Address:  leaf(contact, "address"),
			City:     leaf(contact, "city"),
			State:    leaf(contact, "state"),
			Zip:      leaf(contact, "zip"),
			Location: leaf(contact, "location"),
		},
		TargetRole: leaf(data, "targetRole", "objective", "position"),
		Employment: make([]Employment, 0, MaxEmployment),
		Education: Education{
			Graduate:      leaf(education, "graduate"),
			GraduateYears: leaf(education, "graduateYears"),
			GraduateMajor: leaf(education, "graduateMajor"),
			Trade:         leaf(education, "trade"),
			TradeYears:    leaf(education, "tradeYears"),
			TradeMajor:    leaf(education, "tradeMajor"),
			High:          leaf(education, "high"),
			HighYears:     leaf(education, "highYears"),
			HighMajor:     leaf(education, "highMajor"),
		},
		Skills: Skills{
			TypingSpeed:    leaf(skills, "typingSpeed"),
			TenKey:         leaf(skills, "tenKey"),
			TenKeyMode:     leaf(skills, "tenKeyMode"),
			ComputerSkills: leaf(skills, "computerSkills"),
			DriverLicense:  leaf(skills, "driverLicense"),
		},
		References: make([]Reference, 0, MaxReferences),
	}

	for _, item := range capped(data["employment"], MaxEmployment) {
		job := object(item)
		rec.Employment = append(rec.Employment, Employment{
			Company:          leaf(job, "company"),
			Address:          leaf(job, "address"),
			Phone:            leaf(job, "phone"),
			Position:         leaf(job, "position"),
			DateFrom:         leaf(job, "dateFrom", "startDate"),
			DateTo:           leaf(job, "dateTo", "endDate"),
			Duties:           leaf(job, "duties", "summary"),
			ReasonForLeaving: leaf(job, "reasonForLeaving", "reason"),
			Supervisor:       leaf(job, "supervisor"),
		})
	}
	for _, item := range capped(data["references"], MaxReferences) {
		ref := object(item)
		rec.References = append(rec.References, Reference{
			Name:    leaf(ref, "name"),
			Company: leaf(ref, "company"),
			Phone:   leaf(ref, "phone"),
		})
	}
	return rec
}

func object(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func capped(v any, limit int) []any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	if len(list) > limit {
		return list[:limit]
	}
	return list
}

// leaf returns the first key whose value is a usable scalar.
func leaf(m map[string]any, keys ...string) *string {
	for _, key := range keys {
		if s, ok := scalar(m[key]); ok {
			return &s
		}
	}
	return nil
}

func scalar(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case json.Number:
		s = t.String()
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
