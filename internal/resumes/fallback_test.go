package resumes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructureViaRegexContactBlock(t *testing.T) {
	text := "Jane Doe\njane.doe@example.com\n(555) 123-4567\nAustin, TX 78701"
	rec := Normalize(StructureViaRegex(text))

	assert.Equal(t, ptr("Jane Doe"), rec.Contact.Name)
	assert.Equal(t, ptr("jane.doe@example.com"), rec.Contact.Email)
	assert.Equal(t, ptr("(555) 123-4567"), rec.Contact.Phone)
	assert.Nil(t, rec.Contact.Cell)
	assert.Equal(t, ptr("Austin"), rec.Contact.City)
	assert.Equal(t, ptr("TX"), rec.Contact.State)
	assert.Equal(t, ptr("78701"), rec.Contact.Zip)
	assert.Equal(t, ptr("Austin, TX"), rec.Contact.Location)

	assert.Nil(t, rec.TargetRole)
	assert.Empty(t, rec.Employment)
	assert.Empty(t, rec.References)
	assert.Equal(t, Education{}, rec.Education)
	assert.Equal(t, Skills{}, rec.Skills)
}

func TestStructureViaRegexSecondDistinctPhoneIsCell(t *testing.T) {
	text := "John Smith\nPhone: 555-123-4567\nHome: 555-123-4567\nMobile: +1 555.987.6543 ext. 12"
	rec := Normalize(StructureViaRegex(text))
	assert.Equal(t, ptr("555-123-4567"), rec.Contact.Phone)
	require.NotNil(t, rec.Contact.Cell)
	assert.Equal(t, "+1 555.987.6543 ext. 12", *rec.Contact.Cell)
}

func TestStructureViaRegexNameRules(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{name: "plain", text: "\n\n  Mary-Jane O'Neil  \nrest", want: ptr("Mary-Jane O'Neil")},
		{name: "email on first line", text: "jane@example.com\nJane", want: nil},
		{name: "digits", text: "Jane Doe 2nd\n", want: nil},
		{name: "too short", text: "J\n", want: nil},
		{name: "too long", text: "Abcdefghij Abcdefghij Abcdefghij Abcdefghij Abcdefghij Abcdefghij\n", want: nil},
		{name: "empty", text: "   \n\t", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Normalize(StructureViaRegex(tt.text))
			assert.Equal(t, tt.want, rec.Contact.Name)
		})
	}
}

func TestStructureViaRegexStateWithoutCity(t *testing.T) {
	rec := Normalize(StructureViaRegex("Resume\nLicensed in HI since 2010\n96813"))
	assert.Equal(t, ptr("HI"), rec.Contact.State)
	assert.Nil(t, rec.Contact.City)
	assert.Nil(t, rec.Contact.Location)
	assert.Equal(t, ptr("96813"), rec.Contact.Zip)
}

func TestStructureViaRegexNothingFound(t *testing.T) {
	assert.Equal(t, Empty(), Normalize(StructureViaRegex("")))
	assert.Equal(t, Empty(), Normalize(StructureViaRegex("@@@ 12 34")))
}
