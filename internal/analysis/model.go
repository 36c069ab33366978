package analysis

// Pass names double as artifact file-name fragments, so changing one changes
// the on-disk layout.
const (
	PassSkills      = "skills_analysis"
	PassExperience  = "experience_analysis"
	PassProjects    = "projects_analysis"
	PassEducation   = "education_analysis"
	PassIntegration = "integration_analysis"
)

// StructureFlags records which resume sections were detected in the
// extracted text.
type StructureFlags struct {
	HasSkills         bool `json:"hasSkills"`
	HasExperience     bool `json:"hasExperience"`
	HasProjects       bool `json:"hasProjects"`
	HasEducation      bool `json:"hasEducation"`
	HasCertifications bool `json:"hasCertifications"`
}

// DetectedSections lists the names of the sections whose flag is set, in a
// fixed order.
func (f StructureFlags) DetectedSections() []string {
	sections := []string{}
	if f.HasSkills {
		sections = append(sections, "skills")
	}
	if f.HasExperience {
		sections = append(sections, "experience")
	}
	if f.HasProjects {
		sections = append(sections, "projects")
	}
	if f.HasEducation {
		sections = append(sections, "education")
	}
	if f.HasCertifications {
		sections = append(sections, "certifications")
	}
	return sections
}

// PassResult is the raw model output of one completed analysis pass.
type PassResult struct {
	Pass   string `json:"pass"`
	Output string `json:"output"`
}

// Result is the outcome of a full pipeline run.
type Result struct {
	SessionID    string         `json:"sessionId"`
	Structure    StructureFlags `json:"cvStructureDetected"`
	Passes       []string       `json:"analysisPassesCompleted"`
	Report       string         `json:"comprehensiveAnalysis"`
	Individual   []PassResult   `json:"individualAnalyses"`
	FilesCreated []string       `json:"filesCreated"`
}
