package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/talentgraph-backend/internal/platform/apierr"
	"github.com/yungbote/talentgraph-backend/internal/platform/logger"
	"github.com/yungbote/talentgraph-backend/internal/repos"
	"github.com/yungbote/talentgraph-backend/internal/types"
)

// masteryWeights maps the free-text mastery phrases seen in parsed resumes to
// an edge weight. Unknown phrases fall back to the default weight of 1.0.
var masteryWeights = map[string]float64{
	"beginner":         0.3,
	"basic":            0.3,
	"basics":           0.3,
	"less than 1 year": 0.3,
	"6 months":         0.3,
	"intermediate":     0.6,
	"12 months":        0.6,
	"expert":           0.9,
}

var masteryLevels = map[string]string{
	"beginner":         "beginner",
	"basic":            "beginner",
	"basics":           "beginner",
	"less than 1 year": "beginner",
	"6 months":         "beginner",
	"intermediate":     "intermediate",
	"12 months":        "intermediate",
	"expert":           "expert",
}

type CandidateService interface {
	AddCandidateFromResume(ctx context.Context, resume types.ParsedResume) (*types.ResumeSummary, error)
	GetCandidateFull(ctx context.Context, uid string) (*types.CandidateFull, error)
}

type candidateService struct {
	candidates   repos.CandidateRepo
	skills       repos.FeatureRepo
	projects     repos.FeatureRepo
	languages    repos.FeatureRepo
	jobTitles    repos.FeatureRepo
	majors       repos.FeatureRepo
	universities repos.FeatureRepo
	log          *logger.Logger
}

type CandidateServiceDeps struct {
	Candidates   repos.CandidateRepo
	Skills       repos.FeatureRepo
	Projects     repos.FeatureRepo
	Languages    repos.FeatureRepo
	JobTitles    repos.FeatureRepo
	Majors       repos.FeatureRepo
	Universities repos.FeatureRepo
}

func NewCandidateService(deps CandidateServiceDeps, baseLog *logger.Logger) CandidateService {
	return &candidateService{
		candidates:   deps.Candidates,
		skills:       deps.Skills,
		projects:     deps.Projects,
		languages:    deps.Languages,
		jobTitles:    deps.JobTitles,
		majors:       deps.Majors,
		universities: deps.Universities,
		log:          baseLog.With("service", "CandidateService"),
	}
}

// AddCandidateFromResume creates the candidate node and attaches every
// feature the parsed resume mentions. Bad individual items (blank names,
// projects with no title) are skipped and reported in the summary instead of
// failing the whole import.
func (s *candidateService) AddCandidateFromResume(ctx context.Context, resume types.ParsedResume) (*types.ResumeSummary, error) {
	name := strings.TrimSpace(resume.Name)
	if name == "" {
		return nil, apierr.New(http.StatusBadRequest, "VALIDATION", fmt.Errorf("resume has no candidate name"))
	}

	candidateUID, err := s.candidates.Create(ctx, types.CandidateInput{Name: name})
	if err != nil {
		return nil, fmt.Errorf("create candidate: %w", err)
	}

	summary := &types.ResumeSummary{CandidateUID: candidateUID, Skipped: []types.SkippedItem{}}

	linked, err := s.linkSimple(ctx, s.jobTitles, candidateUID, resume.JobTitles, summary, "job_title")
	if err != nil {
		return nil, err
	}
	summary.Linked.JobTitles = linked

	linked, err = s.linkSimple(ctx, s.languages, candidateUID, resume.ForeignLanguages, summary, "language")
	if err != nil {
		return nil, err
	}
	summary.Linked.Languages = linked

	linked, err = s.linkSimple(ctx, s.majors, candidateUID, resume.Majors, summary, "major")
	if err != nil {
		return nil, err
	}
	summary.Linked.Majors = linked

	linked, err = s.linkSimple(ctx, s.universities, candidateUID, resume.GraduatedFrom, summary, "university")
	if err != nil {
		return nil, err
	}
	summary.Linked.Universities = linked

	skillRows := make([]repos.LinkRow, 0, len(resume.Skills))
	for _, sk := range resume.Skills {
		skillName := strings.TrimSpace(sk.Skill)
		if skillName == "" {
			summary.Skipped = append(summary.Skipped, types.SkippedItem{Kind: "skill", Reason: "empty name"})
			continue
		}
		props := map[string]any{}
		mastery := strings.ToLower(strings.TrimSpace(sk.Mastery))
		if level, ok := masteryLevels[mastery]; ok {
			props["level"] = level
		}
		if w, ok := masteryWeights[mastery]; ok {
			props["weight"] = w
		}
		skillRows = append(skillRows, repos.LinkRow{Key: skillName, RelProps: props})
	}
	if len(skillRows) > 0 {
		n, err := s.skills.LinkManyByName(ctx, candidateUID, skillRows)
		if err != nil {
			return nil, fmt.Errorf("link skills: %w", err)
		}
		summary.Linked.Skills = n
	}

	for _, p := range resume.Projects {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			summary.Skipped = append(summary.Skipped, types.SkippedItem{Kind: "project", Reason: "missing title"})
			continue
		}
		props := projectRelProps(p)
		if _, err := s.projects.LinkByName(ctx, candidateUID, title, props); err != nil {
			return nil, fmt.Errorf("link project %q: %w", title, err)
		}
		summary.Linked.Projects++
	}

	s.log.Info("resume imported",
		"candidate_uid", candidateUID,
		"skills", summary.Linked.Skills,
		"projects", summary.Linked.Projects,
		"skipped", len(summary.Skipped))
	return summary, nil
}

func (s *candidateService) linkSimple(ctx context.Context, repo repos.FeatureRepo, candidateUID string, names []string, summary *types.ResumeSummary, kind string) (int, error) {
	linked := 0
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			summary.Skipped = append(summary.Skipped, types.SkippedItem{Kind: kind, Reason: "empty name"})
			continue
		}
		if _, err := repo.LinkByName(ctx, candidateUID, name, nil); err != nil {
			return linked, fmt.Errorf("link %s %q: %w", kind, name, err)
		}
		linked++
	}
	return linked, nil
}

func projectRelProps(p types.ResumeProject) map[string]any {
	props := map[string]any{}
	setIf := func(key, val string) {
		if v := strings.TrimSpace(val); v != "" {
			props[key] = v
		}
	}
	setIf("role", p.Role)
	setIf("description", p.Description)
	setIf("objective", p.Objective)
	setIf("contribution", p.Contribution)
	setIf("impact", p.Impact)
	setIf("duration", p.Duration)
	setIf("collaboration_type", p.CollaborationType)
	setIf("scale", p.Scale)
	if len(p.TechStack) > 0 {
		props["tech_stack"] = p.TechStack
	}
	if len(p.SkillsApplied) > 0 {
		props["skills_applied"] = p.SkillsApplied
	}
	return props
}

// GetCandidateFull hydrates the candidate node plus its attached skills, job
// titles, majors, universities and projects.
func (s *candidateService) GetCandidateFull(ctx context.Context, uid string) (*types.CandidateFull, error) {
	nodes, err := s.candidates.GetByUIDs(ctx, []string{uid})
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if len(nodes) == 0 {
		return nil, repos.ErrNotFound
	}

	full := &types.CandidateFull{Candidate: nodes[0]}

	sections := []struct {
		repo repos.FeatureRepo
		dst  *[]map[string]any
	}{
		{s.skills, &full.Skills},
		{s.jobTitles, &full.JobTitles},
		{s.majors, &full.Majors},
		{s.universities, &full.Universities},
		{s.projects, &full.Projects},
	}
	for _, sec := range sections {
		rows, err := sec.repo.ListForCandidate(ctx, uid, 0, 0)
		if err != nil {
			return nil, err
		}
		*sec.dst = rows
	}
	return full, nil
}
