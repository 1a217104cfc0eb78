package build

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"application-backend/internal/forms/model"
)

func sectionTitles(blocks []model.Block) []string {
	var out []string
	for _, b := range blocks {
		if s, ok := b.(model.Section); ok {
			out = append(out, s.Title)
		}
	}
	return out
}

func findTable(blocks []model.Block) (model.Table, bool) {
	for _, b := range blocks {
		switch t := b.(type) {
		case model.Table:
			return t, true
		case model.Section:
			if tbl, ok := findTable(t.Blocks); ok {
				return tbl, true
			}
		}
	}
	return model.Table{}, false
}

func TestMainApplicationEmptyPayloadKeepsSections(t *testing.T) {
	p, err := model.DecodePayload([]byte(`{"form": {}}`))
	require.NoError(t, err)

	doc := New(nil, Options{}).MainApplication(p)
	titles := sectionTitles(doc.Blocks)
	for _, want := range []string{
		"Submission Summary",
		"Application Information",
		"General Information",
		"Employment Record",
		"Education",
		"Skills & Qualifications",
		"References",
		"Medical Information & Authorization",
		"Professional Affiliations",
		"Employment Certification & Disclosures",
		"Full Application Details",
	} {
		assert.Contains(t, titles, want)
	}
	assert.NotContains(t, titles, "Required Notice")

	text := doc.Text()
	assert.Contains(t, text, "Full Name: "+model.Placeholder)
	assert.Contains(t, text, "Do you know anyone presently working for Geolabs?")
}

func TestOrganizationShortNameHandlesMultibyteInitial(t *testing.T) {
	cases := map[string]string{
		"GEOLABS, INC.":     "Geolabs",
		"ÉCOLE GÉNIE, LTD.": "École génie",
		"ÅSA":               "Åsa",
		"":                  "Geolabs",
	}
	for org, want := range cases {
		got := New(nil, Options{Organization: org}).orgShort()
		assert.Equal(t, want, got, org)
		assert.True(t, utf8.ValidString(got), org)
	}
}

func TestMainApplicationEmploymentAndReferences(t *testing.T) {
	p, err := model.DecodePayload([]byte(`{"form": {
		"employment": [
			{"company": "A"}, "skip", {"company": "B"}, {"company": "C"}, {"company": "D"}
		],
		"references": [{"name": "Grace", "phone": "555"}],
		"knowEmployee": false
	}}`))
	require.NoError(t, err)

	doc := New(nil, Options{}).MainApplication(p)
	titles := sectionTitles(doc.Blocks)
	assert.Contains(t, titles, "Employment Record — Employer #3")
	assert.NotContains(t, titles, "Employment Record — Employer #4")

	text := doc.Text()
	assert.Contains(t, text, "Company Name / Address: C")
	assert.NotContains(t, text, "Company Name / Address: D")
	assert.Contains(t, text, "Reference #1")
	assert.Contains(t, text, "Name / Title: Grace")
	assert.Contains(t, text, "Do you know anyone presently working for Geolabs?: No")
}

func TestMainApplicationAppendix(t *testing.T) {
	p, err := model.DecodePayload([]byte(`{"form": {
		"zeta": "last",
		"alpha": {"inner": "x", "blank": ""},
		"tags": [1, 2, 3, 4, 5, 6, 7],
		"empty": [],
		"jobs": [{"b": "2", "a": "1"}]
	}}`))
	require.NoError(t, err)

	tbl, ok := findTable(New(nil, Options{}).MainApplication(p).Blocks)
	require.True(t, ok)

	var labels []string
	values := map[string]string{}
	for _, r := range tbl.Rows {
		labels = append(labels, r.Label)
		values[r.Label] = r.Value
	}
	assert.Equal(t, []string{"alpha.blank", "alpha.inner", "empty", "jobs", "tags", "zeta"}, labels)
	assert.Equal(t, model.Placeholder, values["alpha.blank"])
	assert.Equal(t, model.Placeholder, values["empty"])
	assert.Equal(t, "[0] a=1, b=2", values["jobs"])

	lines := strings.Split(values["tags"], "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "[0] 1", lines[0])
	assert.Equal(t, "... (+2 more)", lines[5])
}

func TestMainApplicationRequiredNotice(t *testing.T) {
	p, err := model.DecodePayload([]byte(`{"form": {}, "legalText": {"requiredNotice": "Notice A\n\nNotice B"}}`))
	require.NoError(t, err)

	doc := New(nil, Options{}).MainApplication(p)
	assert.Contains(t, sectionTitles(doc.Blocks), "Required Notice")
	assert.Contains(t, doc.Text(), "Notice B")
}
