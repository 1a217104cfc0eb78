package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/resume_structure.txt
var resumeStructurePrompt string

const excerptPlaceholder = "{{RESUME_TEXT}}"

// ResumeStructurePrompt returns the structuring prompt with the resume
// excerpt embedded verbatim.
func ResumeStructurePrompt(excerpt string) string {
	return strings.Replace(resumeStructurePrompt, excerptPlaceholder, excerpt, 1)
}
