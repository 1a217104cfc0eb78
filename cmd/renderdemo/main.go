package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"application-backend/internal/extract"
	"application-backend/internal/forms/build"
	"application-backend/internal/forms/model"
	"application-backend/internal/forms/render"
)

func main() {
	outDir := flag.String("out", "./out/application", "output directory for generated PDFs")
	payloadPath := flag.String("payload", "", "path to a submission payload JSON (defaults to a built-in sample)")
	resumePath := flag.String("resume", "", "optional resume file to attach")
	org := flag.String("org", build.DefaultOrganization, "organization name printed on every document")
	flag.Parse()

	raw := []byte(samplePayload)
	if *payloadPath != "" {
		data, err := os.ReadFile(*payloadPath)
		if err != nil {
			exitErr("read payload: %v", err)
		}
		raw = data
	}
	payload, err := model.DecodePayload(raw)
	if err != nil {
		exitErr("decode payload: %v", err)
	}

	var resume *build.Resume
	if *resumePath != "" {
		data, err := os.ReadFile(*resumePath)
		if err != nil {
			exitErr("read resume: %v", err)
		}
		resume = &build.Resume{FileName: filepath.Base(*resumePath), Data: data}
	}

	builder := build.New(render.New(), build.Options{Organization: *org})
	attachments, err := builder.Attachments(context.Background(), payload, resume)
	if err != nil {
		exitErr("render failed: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		exitErr("create output dir: %v", err)
	}
	for _, att := range attachments {
		if !extract.LooksLikePDF(att.Data) {
			exitErr("%s is not a PDF", att.FileName)
		}
		path := filepath.Join(*outDir, att.FileName)
		if err := os.WriteFile(path, att.Data, 0o644); err != nil {
			exitErr("write %s: %v", path, err)
		}
		fmt.Printf("OK: wrote %s (%d bytes)\n", path, len(att.Data))
	}

	if err := writeDocumentText(*outDir, builder, payload); err != nil {
		exitErr("write text dump: %v", err)
	}
}

// writeDocumentText dumps the plain-text form of each document next to the
// PDFs for quick diffing.
func writeDocumentText(dir string, builder *build.Builder, payload model.Payload) error {
	out := map[string]string{}
	for _, doc := range builder.Documents(payload) {
		out[doc.Title] = doc.Text()
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "documents.json"), data, 0o644)
}

func exitErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

const samplePayload = `{
  "form": {
    "date": "2026-03-04",
    "position": "Staff Geotechnical Engineer",
    "location": "Honolulu",
    "referredBy": "Company website",
    "name": "Jordan Lee",
    "email": "jordan.lee@example.com",
    "phone": "(808) 555-0102",
    "cell": "(808) 555-0199",
    "address": "123 Kapiolani Blvd",
    "city": "Honolulu",
    "state": "HI",
    "zip": "96814",
    "employment": [
      {
        "company": "Blue Harbor Engineering, Honolulu HI",
        "phone": "(808) 555-0150",
        "position": "Project Engineer",
        "dateFrom": "2021-04",
        "dateTo": "Present",
        "duties": "Subsurface exploration planning, laboratory test programs, foundation recommendations and report preparation for public and private clients.",
        "reasonForLeaving": "Seeking senior role",
        "supervisor": "Pat Kim, Principal"
      }
    ],
    "highestEducationLevel": "Master's degree",
    "educationSchoolName": "University of Hawaii at Manoa",
    "educationDegree": "M.S. Civil Engineering",
    "skillsYearsExperience": "8",
    "skillsSoftware": "gINT, Slide, LPile",
    "references": [
      {"name": "Pat Kim, Principal", "company": "Blue Harbor Engineering", "phone": "(808) 555-0150"}
    ],
    "certifyInitials": "JL",
    "medInitials": "JL",
    "ableToPerformJob": true,
    "fcrInitials": "JL",
    "knowEmployee": false,
    "applicationCertificationDate": "2026-03-04",
    "applicationCertificationSignature": "Jordan Lee",
    "eeoName": "Jordan Lee",
    "vetStatus": "I am not a protected veteran",
    "drugAgreementAcknowledge": true,
    "drugAgreementSignature": "Jordan Lee",
    "drugAgreementDate": "2026-03-04"
  },
  "legalText": {
    "eeoNotice": "EEO Voluntary Self-Identification Survey (Applicant Data)\n\nCompletion of this form is voluntary.",
    "disabilityNotice": "Voluntary Self-Identification of Disability (Form CC-305)\n\nCompleting this form is voluntary.",
    "veteranNotice": "Protected Veteran Self-Identification (VEVRAA)\n\nRefusal to provide this information will have no bearing on your application.",
    "alcoholDrugProgram": "Alcohol & Drug Testing Program\n\nANY APPLICANT WHO IS UNWILLING TO AGREE TO THESE CONDITIONS SHOULD NOT APPLY FOR EMPLOYMENT."
  },
  "clientMeta": {"timezone": "Pacific/Honolulu"},
  "signatures": {},
  "submittedAt": "2026-03-04T20:15:00Z"
}`
