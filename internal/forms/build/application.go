package build

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"application-backend/internal/forms/model"
	"application-backend/internal/resumes"
)

const (
	appendixPreviewItems = 5
	typedSignatureNote   = "Typed signature serves as electronic signature."
)

// MainApplication builds the core application document.
func (b *Builder) MainApplication(p model.Payload) model.Document {
	blocks := []model.Block{
		model.Section{Title: "Submission Summary", Blocks: []model.Block{
			model.Fields{Rows: []model.Field{
				model.NewField("Submitted At", p.SubmittedAt),
				model.NewField("Client Timezone", p.ClientMeta["timezone"]),
				model.NewField("Applicant Name", p.Field("name")),
				model.NewField("Position Applying For", p.Field("position")),
				model.NewField("Preferred Office Location", p.Field("location")),
			}},
		}},
		model.Section{Title: "Application Information", Blocks: []model.Block{
			fields(p,
				[2]string{"Date", "date"},
				[2]string{"Position Applying For", "position"},
				[2]string{"Preferred Office Location", "location"},
				[2]string{"Referred By", "referredBy"},
			),
		}},
		model.Section{Title: "General Information", Blocks: []model.Block{
			fields(p,
				[2]string{"Full Name", "name"},
				[2]string{"Email", "email"},
				[2]string{"Telephone No.", "phone"},
				[2]string{"Cellular No.", "cell"},
				[2]string{"Address", "address"},
				[2]string{"City", "city"},
				[2]string{"State", "state"},
				[2]string{"ZIP Code", "zip"},
			),
		}},
	}

	blocks = append(blocks, employmentSections(p)...)

	blocks = append(blocks,
		model.Section{Title: "Education", Blocks: []model.Block{
			fields(p,
				[2]string{"Highest Level Completed", "highestEducationLevel"},
				[2]string{"School Name", "educationSchoolName"},
				[2]string{"School Location", "educationSchoolLocation"},
				[2]string{"Degree / Program", "educationDegree"},
				[2]string{"Field of Study / Emphasis", "educationFieldOfStudy"},
				[2]string{"Graduation Year / Years Attended", "educationYears"},
				[2]string{"Additional Education", "educationAdditional"},
			),
		}},
		model.Section{Title: "Skills & Qualifications", Blocks: []model.Block{
			fields(p,
				[2]string{"Years of Relevant Experience", "skillsYearsExperience"},
				[2]string{"Primary Area(s) of Focus", "skillsPrimaryFocus"},
				[2]string{"Technical Skills & Field / Lab Tools", "skillsTechnical"},
				[2]string{"Software & Programs", "skillsSoftware"},
				[2]string{"Field / Laboratory Experience", "skillsFieldLab"},
				[2]string{"Communication & Team Skills", "skillsCommunication"},
				[2]string{"Certifications / Training", "skillsCertifications"},
			),
		}},
		referencesSection(p),
		model.Section{Title: "Medical Information & Authorization", Blocks: []model.Block{
			fields(p,
				[2]string{"Applicant’s Initials (acknowledgment)", "medInitials"},
				[2]string{"Able to perform essential functions (with/without accommodation)", "ableToPerformJob"},
			),
			fine("Note: Applicants should not provide medical diagnoses or detailed health history in this field."),
		}},
		model.Section{Title: "Professional Affiliations", Blocks: []model.Block{
			fields(p, [2]string{"Affiliations / Licenses / Memberships", "affiliations"}),
		}},
		model.Section{Title: "Employment Certification & Disclosures", Blocks: []model.Block{
			fields(p,
				[2]string{"FCRA Initials", "fcrInitials"},
				[2]string{"Do you know anyone presently working for " + b.orgShort() + "?", "knowEmployee"},
				[2]string{"If yes, who?", "knowEmployeeName"},
				[2]string{"Application Certification Date", "applicationCertificationDate"},
				[2]string{"Application Certification Signature (typed)", "applicationCertificationSignature"},
			),
			fine(typedSignatureNote),
		}},
		model.PageBreak{},
		model.Section{Title: "Full Application Details", Blocks: []model.Block{
			fine("Complete record of all submitted fields."),
			model.Table{Header: [2]string{"Field", "Value"}, Rows: flatten("", p.Form, nil)},
		}},
	)

	if notice := p.Legal("requiredNotice"); strings.TrimSpace(notice) != "" {
		blocks = append(blocks,
			model.PageBreak{},
			model.Section{Title: "Required Notice", Blocks: append(
				[]model.Block{fine("Exact text presented to the applicant:")},
				noticeParagraphs(notice, model.StyleLegal)...,
			)},
		)
	}

	blocks = append(blocks,
		model.Spacer{Height: 6},
		fine("Generated automatically from the online application system. Print-ready for HR review and compliance recordkeeping."),
	)

	return b.document(
		fmt.Sprintf("Main Application — %s — %s", ApplicantName(p), Position(p)),
		"Employment Application (Main Application)",
		"This PDF contains the core application fields (excludes separate EEO/Disability/Veteran/Alcohol-Drug forms).",
		blocks,
	)
}

// orgShort turns "GEOLABS, INC." into "Geolabs" for inline prose.
func (b *Builder) orgShort() string {
	name, _, _ := strings.Cut(b.org, ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return b.org
	}
	first, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first)) + strings.ToLower(name[size:])
}

func employmentSections(p model.Payload) []model.Block {
	jobs := objects(p.List("employment"), resumes.MaxEmployment)
	if len(jobs) == 0 {
		return []model.Block{model.Section{
			Title:  "Employment Record",
			Blocks: []model.Block{model.Fields{Rows: []model.Field{model.NewField("Employers", nil)}}},
		}}
	}
	out := make([]model.Block, 0, len(jobs))
	for i, job := range jobs {
		out = append(out, model.Section{
			Title: fmt.Sprintf("Employment Record — Employer #%d", i+1),
			Blocks: []model.Block{model.Fields{Rows: []model.Field{
				model.NewField("Company Name / Address", job["company"]),
				model.NewField("Phone", job["phone"]),
				model.NewField("Position", job["position"]),
				model.NewField("Date Employed (From)", job["dateFrom"]),
				model.NewField("Date Employed (To)", job["dateTo"]),
				model.NewField("Primary Duties / Responsibilities", job["duties"]),
				model.NewField("Reason for Leaving", job["reasonForLeaving"]),
				model.NewField("Supervisor / Title", job["supervisor"]),
			}}},
		})
	}
	return out
}

func referencesSection(p model.Payload) model.Section {
	var blocks []model.Block
	for i, ref := range objects(p.List("references"), resumes.MaxReferences) {
		blocks = append(blocks,
			model.Paragraph{Text: fmt.Sprintf("Reference #%d", i+1), Style: model.StyleLabel},
			model.Fields{Rows: []model.Field{
				model.NewField("Name / Title", ref["name"]),
				model.NewField("Company / Relationship", ref["company"]),
				model.NewField("Contact No.", ref["phone"]),
			}},
		)
	}
	if len(blocks) == 0 {
		blocks = append(blocks, model.Fields{Rows: []model.Field{model.NewField("References", nil)}})
	}
	blocks = append(blocks,
		model.Paragraph{Text: "Authorization to Contact References", Style: model.StyleLabel},
		fields(p, [2]string{"Applicant’s Initials", "certifyInitials"}),
	)
	return model.Section{Title: "References", Blocks: blocks}
}

// objects keeps the first limit entries of list that are JSON objects.
func objects(list []any, limit int) []map[string]any {
	var out []map[string]any
	for _, item := range list {
		if len(out) == limit {
			break
		}
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// flatten lists every leaf of m under a dotted key, sorted by key.
func flatten(prefix string, m map[string]any, rows []model.Field) []model.Field {
	for _, k := range sortedKeys(m) {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := m[k].(type) {
		case map[string]any:
			rows = flatten(key, v, rows)
		case []any:
			rows = append(rows, model.Field{Label: key, Value: listPreview(v)})
		default:
			rows = append(rows, model.NewField(key, v))
		}
	}
	return rows
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func listPreview(list []any) string {
	if len(list) == 0 {
		return model.Placeholder
	}
	lines := make([]string, 0, appendixPreviewItems+1)
	for i, item := range list {
		if i == appendixPreviewItems {
			lines = append(lines, fmt.Sprintf("... (+%d more)", len(list)-appendixPreviewItems))
			break
		}
		var line string
		if obj, ok := item.(map[string]any); ok {
			parts := make([]string, 0, len(obj))
			for _, k := range sortedKeys(obj) {
				parts = append(parts, k+"="+model.Text(obj[k]))
			}
			line = fmt.Sprintf("[%d] %s", i, strings.Join(parts, ", "))
		} else {
			line = fmt.Sprintf("[%d] %s", i, model.Text(item))
		}
		lines = append(lines, model.SoftWrap(line, model.WrapColumns))
	}
	return strings.Join(lines, "\n")
}
