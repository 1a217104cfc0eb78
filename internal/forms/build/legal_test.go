package build

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"application-backend/internal/forms/model"
)

func paragraphs(blocks []model.Block) []model.Paragraph {
	var out []model.Paragraph
	for _, b := range blocks {
		switch t := b.(type) {
		case model.Paragraph:
			out = append(out, t)
		case model.Section:
			out = append(out, paragraphs(t.Blocks)...)
		}
	}
	return out
}

func images(blocks []model.Block) []model.Image {
	var out []model.Image
	for _, b := range blocks {
		switch t := b.(type) {
		case model.Image:
			out = append(out, t)
		case model.Section:
			out = append(out, images(t.Blocks)...)
		}
	}
	return out
}

func TestLegalNoticeIsVerbatim(t *testing.T) {
	notice := "Heading line\nwith  odd   spacing ‘quotes’\n\n(a) first;\n(b) second."
	p := model.Payload{
		Form:      map[string]any{"eeoName": "Ada"},
		LegalText: map[string]any{"eeoNotice": notice},
	}

	doc := New(nil, Options{}).EEO(p)
	var got []string
	for _, para := range paragraphs(doc.Blocks) {
		if para.Style == model.StyleLegal {
			got = append(got, para.Text)
		}
	}
	assert.Equal(t, notice, strings.Join(got, "\n\n"))
	assert.Contains(t, doc.Text(), "Name (optional): Ada")
	assert.Contains(t, doc.Text(), "Gender (voluntary): "+model.Placeholder)
	assert.Contains(t, doc.Text(), verbatimNotice)
}

func TestLegalNoticeMissing(t *testing.T) {
	p := model.Payload{Form: map[string]any{}}

	for name, doc := range map[string]model.Document{
		"disability": New(nil, Options{}).Disability(p),
		"veteran":    New(nil, Options{}).Veteran(p),
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, doc.Text(), missingNotice)
			assert.Contains(t, doc.Text(), typedSignatureNote)
		})
	}
}

func TestAlcoholDrugWarningStyle(t *testing.T) {
	p := model.Payload{
		Form: map[string]any{"drugAgreementAcknowledge": true},
		LegalText: map[string]any{
			"alcoholDrugProgram": "Program text.\n\nANY APPLICANT WHO IS UNWILLING TO AGREE SHOULD NOT APPLY.",
		},
	}

	doc := New(nil, Options{}).AlcoholDrug(p)
	var styles []model.Style
	for _, para := range paragraphs(doc.Blocks) {
		if strings.HasPrefix(para.Text, "Program") || strings.HasPrefix(para.Text, "ANY") {
			styles = append(styles, para.Style)
		}
	}
	assert.Equal(t, []model.Style{model.StyleLegal, model.StyleWarning}, styles)
	assert.Contains(t, doc.Text(), "Acknowledged: Yes")
}

func pngDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestAlcoholDrugDrawnSignature(t *testing.T) {
	p := model.Payload{
		Form:       map[string]any{},
		Signatures: map[string]any{"drugAgreementSignatureDataUrl": pngDataURL(t)},
	}
	imgs := images(New(nil, Options{}).AlcoholDrug(p).Blocks)
	require.Len(t, imgs, 1)
	assert.Equal(t, "PNG", imgs[0].Type)
	assert.NotEmpty(t, imgs[0].Data)
}

func TestAlcoholDrugUndecodableSignature(t *testing.T) {
	p := model.Payload{
		Form:       map[string]any{},
		Signatures: map[string]any{"drugAgreementSignatureDataUrl": "data:image/png;base64,@@@"},
	}
	doc := New(nil, Options{}).AlcoholDrug(p)
	assert.Empty(t, images(doc.Blocks))
	assert.Contains(t, doc.Text(), undecodableImage)
}

func TestAlcoholDrugWithoutSignature(t *testing.T) {
	doc := New(nil, Options{}).AlcoholDrug(model.Payload{Form: map[string]any{}})
	assert.Empty(t, images(doc.Blocks))
	assert.NotContains(t, doc.Text(), "Signature (drawn)")
}
