package analysis

import "regexp"

// Keyword families per section. A section is considered present when any
// pattern in its family matches.
var (
	skillsPatterns = compileAll(
		`technical\s+skills|programming|languages|technologies`,
		`skills|competenc|proficienc`,
		`python|javascript|java|aws|machine\s+learning`,
	)
	experiencePatterns = compileAll(
		`work\s+experience|employment|professional\s+experience`,
		`software\s+engineer|developer|lead|manager`,
		`responsibilities|developed|led|managed`,
	)
	projectsPatterns = compileAll(
		`projects|portfolio|key\s+projects`,
		`developed\s+a|built\s+a|created\s+a`,
		`github|portfolio`,
	)
	educationPatterns = compileAll(
		`education|academic|degree|university|college`,
		`bachelor|master|phd|\bbs\b|\bms\b|\bba\b|\bma\b`,
		`graduated|graduation`,
	)
	certificationPatterns = compileAll(
		`certification|certified|credential`,
		`aws\s+certified|microsoft\s+certified|cisco`,
	)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// DetectStructure scans the extracted resume text and reports which sections
// it appears to contain. It is deterministic and never errors.
func DetectStructure(text string) StructureFlags {
	return StructureFlags{
		HasSkills:         anyMatch(skillsPatterns, text),
		HasExperience:     anyMatch(experiencePatterns, text),
		HasProjects:       anyMatch(projectsPatterns, text),
		HasEducation:      anyMatch(educationPatterns, text),
		HasCertifications: anyMatch(certificationPatterns, text),
	}
}
