package types

// CandidateInput carries the writable Candidate properties. Nil optionals are
// left untouched on upsert (merge semantics: later non-null values override,
// nulls are ignored).
type CandidateInput struct {
	Name            string   `json:"name" binding:"required"`
	Location        *string  `json:"location"`
	Headline        *string  `json:"headline"`
	RemoteOK        *bool    `json:"remote_ok"`
	ExperienceYears *float64 `json:"experience_years" binding:"omitempty,min=0"`
	SalaryCurrency  *string  `json:"salary_currency" binding:"omitempty,len=3"`
	SalaryMin       *float64 `json:"salary_min" binding:"omitempty,min=0"`
	SalaryMax       *float64 `json:"salary_max" binding:"omitempty,min=0"`
}

// FeatureNode is a dictionary node projection: surrogate uid plus the natural
// key value (name or title depending on the label).
type FeatureNode struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// CandidateFull is the hydrated profile returned by the candidate service.
type CandidateFull struct {
	Candidate    map[string]any   `json:"candidate"`
	Skills       []map[string]any `json:"skills"`
	JobTitles    []map[string]any `json:"job_title"`
	Majors       []map[string]any `json:"major"`
	Universities []map[string]any `json:"university"`
	Projects     []map[string]any `json:"project"`
}

// ParsedResume is the already-parsed resume document handed to the ingestion
// service; parsing itself happens upstream.
type ParsedResume struct {
	Name             string          `json:"name"`
	JobTitles        []string        `json:"job_title"`
	ForeignLanguages []string        `json:"foreign_languages"`
	Majors           []string        `json:"majors"`
	GraduatedFrom    []string        `json:"graduated_from"`
	Skills           []ResumeSkill   `json:"skills"`
	Projects         []ResumeProject `json:"projects"`
}

type ResumeSkill struct {
	Skill   string `json:"skill"`
	Mastery string `json:"mastery"`
}

type ResumeProject struct {
	Title             string   `json:"title"`
	Role              string   `json:"role"`
	Description       string   `json:"description"`
	Objective         string   `json:"objective"`
	Contribution      string   `json:"contribution"`
	Impact            string   `json:"impact"`
	Duration          string   `json:"duration"`
	CollaborationType string   `json:"collaboration_type"`
	Scale             string   `json:"scale"`
	TechStack         []string `json:"tech_stack"`
	SkillsApplied     []string `json:"skills_applied"`
}

// ResumeSummary reports what the ingestion service linked and what it skipped.
type ResumeSummary struct {
	CandidateUID string        `json:"candidate_uid"`
	Linked       LinkedCounts  `json:"linked"`
	Skipped      []SkippedItem `json:"skipped"`
}

type LinkedCounts struct {
	JobTitles    int `json:"job_titles"`
	Languages    int `json:"languages"`
	Majors       int `json:"majors"`
	Universities int `json:"universities"`
	Skills       int `json:"skills"`
	Projects     int `json:"projects"`
}

type SkippedItem struct {
	Kind   string `json:"kind"`
	Item   any    `json:"item,omitempty"`
	Reason string `json:"reason"`
}
