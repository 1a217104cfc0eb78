package build

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"application-backend/internal/forms/model"
)

const (
	exactTextTitle   = "Exact Text Shown to Applicant"
	verbatimNotice   = "This document reproduces the exact text presented to the applicant during the application process. Content has not been altered, summarized, or paraphrased."
	missingNotice    = model.Placeholder + " (Notice text was not provided by client payload.)"
	warningMarker    = "ANY APPLICANT WHO IS UNWILLING"
	undecodableImage = "Signature (drawn): " + model.Placeholder + " (Could not decode image)"

	signatureWidth  = 76.2
	signatureHeight = 25.4
)

var errBadDataURL = errors.New("not a base64 image data URL")

// EEO builds the EEO-1 self-identification survey.
func (b *Builder) EEO(p model.Payload) model.Document {
	return b.legalDocument(p, legalForm{
		title:     "EEO Voluntary Self-Identification",
		heading:   "EEO Voluntary Self-Identification Survey (Applicant Data)",
		subtitle:  "Confidential — Used for EEO-1 reporting only. Voluntary; will not affect employment opportunity.",
		noticeKey: "eeoNotice",
		responses: "Applicant Responses",
		rows: [][2]string{
			{"Name (optional)", "eeoName"},
			{"Date (optional)", "eeoDate"},
			{"Gender (voluntary)", "eeoGender"},
			{"Race / Ethnicity (voluntary)", "eeoEthnicity"},
		},
	})
}

// Disability builds the CC-305 disability self-identification form.
func (b *Builder) Disability(p model.Payload) model.Document {
	return b.legalDocument(p, legalForm{
		title:     "Disability Self-Identification (CC-305)",
		heading:   "Voluntary Self-Identification of Disability (CC-305)",
		subtitle:  "Confidential — Federal reporting only. Voluntary; will not affect employment opportunity.",
		noticeKey: "disabilityNotice",
		responses: "Applicant Responses",
		rows: [][2]string{
			{"Name (optional)", "disabilityName"},
			{"Date (optional)", "disabilityDate"},
			{"Employee ID (optional)", "disabilityEmployeeId"},
			{"Voluntary response", "disabilityStatus"},
			{"Signature (typed)", "disabilitySignature"},
			{"Signature date", "disabilitySignatureDate"},
		},
		typedSignature: true,
	})
}

// Veteran builds the VEVRAA protected veteran form.
func (b *Builder) Veteran(p model.Payload) model.Document {
	return b.legalDocument(p, legalForm{
		title:     "Protected Veteran Self-Identification (VEVRAA)",
		heading:   "Protected Veteran Self-Identification (VEVRAA)",
		subtitle:  "Confidential — Affirmative action reporting only. Voluntary; will not affect employment opportunity.",
		noticeKey: "veteranNotice",
		responses: "Applicant Responses",
		rows: [][2]string{
			{"Veteran status (voluntary)", "vetStatus"},
			{"Signature (typed)", "vetName"},
			{"Date", "vetDate"},
		},
		typedSignature: true,
	})
}

// AlcoholDrug builds the signed drug and alcohol testing agreement.
func (b *Builder) AlcoholDrug(p model.Payload) model.Document {
	return b.legalDocument(p, legalForm{
		title:     "Alcohol & Drug Testing Program Agreement",
		heading:   "Agreement to Comply with Alcohol & Drug Testing Program",
		subtitle:  "Signed applicant agreement. Required for consideration for employment.",
		noticeKey: "alcoholDrugProgram",
		responses: "Applicant Attestation",
		rows: [][2]string{
			{"Acknowledged", "drugAgreementAcknowledge"},
			{"Signature (typed)", "drugAgreementSignature"},
			{"Date", "drugAgreementDate"},
		},
		typedSignature: true,
		drawnSignature: "drugAgreementSignatureDataUrl",
	})
}

type legalForm struct {
	title, heading, subtitle string
	noticeKey                string
	responses                string
	rows                     [][2]string
	typedSignature           bool
	drawnSignature           string
}

func (b *Builder) legalDocument(p model.Payload, f legalForm) model.Document {
	notice := model.Section{Title: exactTextTitle, Blocks: noticeParagraphs(p.Legal(f.noticeKey), model.StyleLegal)}

	answers := []model.Block{fields(p, f.rows...)}
	if f.drawnSignature != "" {
		answers = append(answers, drawnSignature(p.Signature(f.drawnSignature))...)
	}
	if f.typedSignature {
		answers = append(answers, fine(typedSignatureNote))
	}

	return b.document(f.title, f.heading, f.subtitle, []model.Block{
		notice,
		model.Spacer{Height: 5},
		model.Section{Title: f.responses, Blocks: answers},
		model.Spacer{Height: 5},
		fine(verbatimNotice),
	})
}

// noticeParagraphs splits notice text on blank lines. Paragraph text is not
// altered; the warning paragraph of the drug program gets the warning style.
func noticeParagraphs(text string, style model.Style) []model.Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []model.Block
	for _, para := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		s := style
		if strings.Contains(para, warningMarker) {
			s = model.StyleWarning
		}
		out = append(out, model.Paragraph{Text: para, Style: s})
	}
	if len(out) == 0 {
		out = append(out, model.Paragraph{Text: missingNotice, Style: model.StyleFine})
	}
	return out
}

func drawnSignature(dataURL string) []model.Block {
	if !strings.HasPrefix(dataURL, "data:image") {
		return nil
	}
	typ, data, err := decodeDataURL(dataURL)
	if err != nil {
		return []model.Block{fine(undecodableImage)}
	}
	return []model.Block{model.Image{
		Label:  "Signature (drawn)",
		Type:   typ,
		Data:   data,
		Width:  signatureWidth,
		Height: signatureHeight,
	}}
}

// decodeDataURL accepts PNG and JPEG data URLs and verifies the image header.
func decodeDataURL(dataURL string) (string, []byte, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", nil, errBadDataURL
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", nil, err
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", nil, err
	}
	switch format {
	case "png":
		return "PNG", data, nil
	case "jpeg":
		return "JPG", data, nil
	default:
		return "", nil, errBadDataURL
	}
}
