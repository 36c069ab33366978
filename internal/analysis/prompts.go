package analysis

import _ "embed"

var (
	//go:embed prompts/skills_analysis.txt
	skillsPrompt string
	//go:embed prompts/experience_analysis.txt
	experiencePrompt string
	//go:embed prompts/projects_analysis.txt
	projectsPrompt string
	//go:embed prompts/education_analysis.txt
	educationPrompt string
	//go:embed prompts/integration_analysis.txt
	integrationPrompt string
)

// PromptTemplate returns the instruction text for a pass and whether the pass
// name was recognized.
func PromptTemplate(pass string) (string, bool) {
	switch pass {
	case PassSkills:
		return skillsPrompt, true
	case PassExperience:
		return experiencePrompt, true
	case PassProjects:
		return projectsPrompt, true
	case PassEducation:
		return educationPrompt, true
	case PassIntegration:
		return integrationPrompt, true
	default:
		return "", false
	}
}
