package repos

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yungbote/talentgraph-backend/internal/platform/logger"
	"github.com/yungbote/talentgraph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/talentgraph-backend/internal/types"
)

// MatchConfig carries every table the ranking engine needs: level ordinals,
// criterion weights and the default projection. The shipped defaults live in
// DefaultMatchConfig; nothing here is process-global state.
type MatchConfig struct {
	SkillLevels   map[string]int
	LangLevels    map[string]int
	Weights       map[string]float64
	IncludeFields []string
	DefaultTopK   int
	MaxTopK       int
}

func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		SkillLevels: map[string]int{
			"beginner":     1,
			"intermediate": 2,
			"advanced":     3,
			"expert":       4,
		},
		LangLevels: map[string]int{
			"a1": 1, "a2": 2, "b1": 3, "b2": 4, "c1": 5, "c2": 6, "native": 7,
		},
		// education and keywords are reserved criteria: they stay in the
		// table at 0.0 and are never scored until a formula is specified.
		Weights: map[string]float64{
			"skills":     0.6,
			"job_titles": 0.1,
			"languages":  0.05,
			"education":  0.0,
			"keywords":   0.0,
			"location":   0.05,
		},
		IncludeFields: []string{
			"uid", "name", "headline", "location", "remote_ok",
			"salary_currency", "salary_min", "salary_max", "experience_years",
			"skills", "job_titles", "languages",
		},
		DefaultTopK: 10,
		MaxTopK:     200,
	}
}

type MatchRepo interface {
	MatchCandidates(ctx context.Context, req types.MatchRequest) (*types.MatchResponse, error)
	QueryCandidates(ctx context.Context, req types.QueryRequest) (*types.QueryResponse, error)
}

type matchRepo struct {
	db  neo4jdb.Runner
	cfg MatchConfig
	log *logger.Logger
}

func NewMatchRepo(cfg MatchConfig, db neo4jdb.Runner, baseLog *logger.Logger) MatchRepo {
	return &matchRepo{db: db, cfg: cfg, log: baseLog.With("repo", "MatchRepo")}
}

// Shared must-have filter. Missing salary passes the budget check; a missing
// edge fails the skill/language item it was required for.
const matchFilterCypher = `
MATCH (c:Candidate)
WHERE ($remoteOk IS NULL OR c.remote_ok = $remoteOk)
  AND ($salaryMax IS NULL OR c.salary_max IS NULL OR c.salary_max <= $salaryMax)
  AND (size($mustTitles) = 0 OR EXISTS {
    MATCH (c)-[:HAS_TITLE]->(jt:JobTitle)
    WHERE toLower(jt.title) IN $mustTitles
  })
  AND (size($mustLocations) = 0 OR toLower(coalesce(c.location, '')) IN $mustLocations)
  AND (size($mustLangs) = 0 OR ALL(req IN $mustLangs WHERE EXISTS {
    MATCH (c)-[sp:SPEAKS]->(lg:Language)
    WHERE toLower(lg.name) = req.name
      AND coalesce(sp.level_num, 0) >= coalesce(req.min_level_num, 0)
  }))
  AND (size($mustSkills) = 0 OR ALL(ms IN $mustSkills WHERE EXISTS {
    MATCH (c)-[hs:HAS_SKILL]->(sk:Skill)
    WHERE toLower(sk.name) = ms.name
      AND coalesce(hs.level_num, 0) >= coalesce(ms.min_level_num, 0)
      AND coalesce(hs.years, 0) >= coalesce(ms.min_years, 0)
  }))
`

// Facet collection for survivors; scoring happens in Go on these rows.
const matchFacetsCypher = matchFilterCypher + `
OPTIONAL MATCH (c)-[hs:HAS_SKILL]->(sk:Skill)
WITH c, collect({name: toLower(sk.name), level_num: hs.level_num, years: hs.years}) AS skills
OPTIONAL MATCH (c)-[:HAS_TITLE]->(jt:JobTitle)
WITH c, skills, collect(toLower(jt.title)) AS titles
OPTIONAL MATCH (c)-[sp:SPEAKS]->(lg:Language)
WITH c, skills, titles, collect(toLower(lg.name)) AS langs
RETURN c{.*} AS candidate, skills, titles, langs
`

const queryCandidatesCypher = matchFilterCypher + `
RETURN c{.*} AS candidate
ORDER BY coalesce(c.experience_years, 0) DESC, coalesce(c.salary_max, 9e18) ASC, c.name ASC
SKIP $skip LIMIT $limit
`

func (m *matchRepo) MatchCandidates(ctx context.Context, req types.MatchRequest) (*types.MatchResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = m.cfg.DefaultTopK
	}
	if topK > m.cfg.MaxTopK {
		topK = m.cfg.MaxTopK
	}
	explain := true
	if req.Explain != nil {
		explain = *req.Explain
	}
	weights := m.mergeWeights(req.Weights)
	fields := dedupFields(req.IncludeFields)
	if len(fields) == 0 {
		fields = m.cfg.IncludeFields
	}
	nice := m.normalizeNiceToHave(req.NiceToHave)

	records, err := m.db.Read(ctx, matchFacetsCypher, m.mustHaveParams(req.MustHave))
	if err != nil {
		return nil, fmt.Errorf("match candidates: %w", err)
	}

	ranked := make([]rankedCandidate, 0, len(records))
	for _, rec := range records {
		f := candidateFacets{
			props:  recordMap(rec, "candidate"),
			skills: parseSkillFacets(recordList(rec, "skills")),
			titles: parseStringFacets(recordList(rec, "titles")),
			langs:  parseStringFacets(recordList(rec, "langs")),
		}
		scores := map[string]float64{
			"skills":     scoreSkills(f.skills, nice.skills),
			"job_titles": scoreTitles(f.titles, nice.titles),
			"languages":  scoreLanguages(f.langs, nice.langs),
			"location":   scoreLocation(f.props, nice.locationPref),
		}
		total := 0.0
		for k, s := range scores {
			total += weights[k] * s
		}
		ranked = append(ranked, rankedCandidate{facets: f, scores: scores, total: total})
	}

	sortRanked(ranked)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	items := make([]types.MatchItem, 0, len(ranked))
	for _, rc := range ranked {
		item := types.MatchItem{
			Candidate: projectCandidate(rc.facets.props, fields),
			Score:     round6(rc.total),
		}
		if explain {
			item.Reasons = buildReasons(rc.scores, weights)
		}
		items = append(items, item)
	}
	return &types.MatchResponse{TopK: topK, Items: items, NextCursor: nil}, nil
}

func (m *matchRepo) QueryCandidates(ctx context.Context, req types.QueryRequest) (*types.QueryResponse, error) {
	skip := req.Skip
	if skip < 0 {
		skip = 0
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > m.cfg.MaxTopK {
		limit = m.cfg.MaxTopK
	}

	params := m.mustHaveParams(req.MustHave)
	params["skip"] = skip
	params["limit"] = limit

	records, err := m.db.Read(ctx, queryCandidatesCypher, params)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	items := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		items = append(items, recordMap(rec, "candidate"))
	}
	return &types.QueryResponse{Items: items, Skip: skip, Limit: limit}, nil
}

// ---- request normalization ----

func (m *matchRepo) mustHaveParams(mh *types.MustHave) map[string]any {
	mustSkills := []map[string]any{}
	mustLangs := []map[string]any{}
	mustTitles := []string{}
	mustLocations := []string{}
	var remoteOK any
	var salaryMax any

	if mh != nil {
		for _, s := range mh.Skills {
			name := lc(s.Name)
			if name == "" {
				continue
			}
			entry := map[string]any{"name": name, "min_years": 0.0}
			if s.MinYears != nil {
				entry["min_years"] = *s.MinYears
			}
			entry["min_level_num"] = levelOrNil(m.cfg.SkillLevels, s.MinLevel)
			mustSkills = append(mustSkills, entry)
		}
		for _, l := range mh.Languages {
			name := lc(l.Name)
			if name == "" {
				continue
			}
			mustLangs = append(mustLangs, map[string]any{
				"name":          name,
				"min_level_num": levelOrNil(m.cfg.LangLevels, l.MinLevel),
			})
		}
		for _, t := range mh.JobTitlesAny {
			if v := lc(t); v != "" {
				mustTitles = append(mustTitles, v)
			}
		}
		for _, loc := range mh.LocationAny {
			if v := lc(loc); v != "" {
				mustLocations = append(mustLocations, v)
			}
		}
		if mh.RemoteOK != nil {
			remoteOK = *mh.RemoteOK
		}
		if mh.SalaryMax != nil {
			salaryMax = *mh.SalaryMax
		}
	}

	return map[string]any{
		"mustSkills":    mustSkills,
		"mustLangs":     mustLangs,
		"mustTitles":    mustTitles,
		"mustLocations": mustLocations,
		"remoteOk":      remoteOK,
		"salaryMax":     salaryMax,
	}
}

type niceNormalized struct {
	skills       []niceSkillNorm
	titles       []string
	langs        []string
	locationPref string
}

type niceSkillNorm struct {
	name           string
	weight         float64
	preferMinYears float64
}

func (m *matchRepo) normalizeNiceToHave(nh *types.NiceToHave) niceNormalized {
	out := niceNormalized{}
	if nh == nil {
		return out
	}
	for _, s := range nh.Skills {
		name := lc(s.Name)
		if name == "" {
			continue
		}
		weight := 1.0
		if s.Weight != nil {
			weight = *s.Weight
		}
		out.skills = append(out.skills, niceSkillNorm{
			name:           name,
			weight:         weight,
			preferMinYears: s.PreferMinYears,
		})
	}
	for _, t := range nh.JobTitles {
		if v := lc(t); v != "" {
			out.titles = append(out.titles, v)
		}
	}
	for _, l := range nh.Languages {
		if v := lc(l); v != "" {
			out.langs = append(out.langs, v)
		}
	}
	out.locationPref = lc(nh.LocationPreference)
	return out
}

func (m *matchRepo) mergeWeights(override map[string]float64) map[string]float64 {
	merged := make(map[string]float64, len(m.cfg.Weights))
	for k, v := range m.cfg.Weights {
		merged[k] = v
	}
	for k, v := range override {
		if _, known := merged[k]; known {
			merged[k] = v
		}
	}
	return merged
}

// ---- facets ----

type candidateFacets struct {
	props  map[string]any
	skills []skillFacet
	titles []string
	langs  []string
}

type skillFacet struct {
	name     string
	levelNum float64
	years    float64
}

type rankedCandidate struct {
	facets candidateFacets
	scores map[string]float64
	total  float64
}

func parseSkillFacets(raw []any) []skillFacet {
	out := make([]skillFacet, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if name == "" {
			continue
		}
		out = append(out, skillFacet{
			name:     name,
			levelNum: numOrZero(m["level_num"]),
			years:    numOrZero(m["years"]),
		})
	}
	return out
}

func parseStringFacets(raw []any) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ---- per-criterion scores, each in [0,1] ----

// scoreSkills averages over the preference items: presence times a blend of
// level (70%) and soft-capped years (30%). An absent skill contributes 0 to
// its item; an empty preference list scores 0.
func scoreSkills(skills []skillFacet, nice []niceSkillNorm) float64 {
	if len(nice) == 0 {
		return 0.0
	}
	acc := 0.0
	for _, ns := range nice {
		sf, found := findSkill(skills, ns.name)
		if !found {
			continue
		}
		cap := ns.preferMinYears + 5
		years := sf.years
		if years > cap {
			years = cap
		}
		acc += ns.weight * (0.7*(sf.levelNum/4.0) + 0.3*(years/5.0))
	}
	return acc / float64(len(nice))
}

func scoreTitles(titles, preferred []string) float64 {
	if len(preferred) == 0 {
		return 0.0
	}
	for _, t := range titles {
		for _, p := range preferred {
			if t == p {
				return 1.0
			}
		}
	}
	return 0.0
}

func scoreLanguages(langs, preferred []string) float64 {
	if len(preferred) == 0 {
		return 0.0
	}
	hits := 0
	for _, p := range preferred {
		for _, l := range langs {
			if l == p {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(preferred))
}

func scoreLocation(props map[string]any, pref string) float64 {
	if pref == "" {
		return 0.0
	}
	loc, _ := props["location"].(string)
	if lc(loc) == pref {
		return 1.0
	}
	return 0.0
}

func findSkill(skills []skillFacet, name string) (skillFacet, bool) {
	for _, sf := range skills {
		if sf.name == name {
			return sf, true
		}
	}
	return skillFacet{}, false
}

// ---- ranking, explanation, projection ----

// Ties break by descending experience, then ascending salary budget; a
// candidate with no salary set sorts after any priced one at equal score.
func sortRanked(ranked []rankedCandidate) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].total != ranked[j].total {
			return ranked[i].total > ranked[j].total
		}
		ei, ej := experienceOf(ranked[i].facets.props), experienceOf(ranked[j].facets.props)
		if ei != ej {
			return ei > ej
		}
		return salaryOf(ranked[i].facets.props) < salaryOf(ranked[j].facets.props)
	})
}

func buildReasons(scores, weights map[string]float64) []types.ReasonItem {
	type reasonRule struct {
		criterion string
		kind      string
		detail    string
	}
	rules := []reasonRule{
		{"skills", "skill", "Matched nice-to-have skills with level/years bonuses"},
		{"job_titles", "job_title", "At least one preferred job title matched"},
		{"languages", "language", "Proportion of requested languages satisfied"},
		{"location", "location", "Preferred city matched"},
	}
	reasons := []types.ReasonItem{}
	for _, rs := range rules {
		s := scores[rs.criterion]
		w := weights[rs.criterion]
		if w*s <= 0 {
			continue
		}
		reasons = append(reasons, types.ReasonItem{
			Kind:         rs.kind,
			Detail:       rs.detail,
			Weight:       w,
			Contribution: round6(w * s),
		})
	}
	return reasons
}

// projectCandidate keeps requested fields that exist on the node; the known
// derived relation names stay as null placeholders for a higher layer to
// hydrate.
func projectCandidate(props map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return props
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := props[f]; ok {
			out[f] = v
		}
	}
	for _, derived := range []string{"skills", "job_titles", "languages"} {
		if containsField(fields, derived) {
			if _, ok := out[derived]; !ok {
				out[derived] = nil
			}
		}
	}
	return out
}

func containsField(fields []string, f string) bool {
	for _, v := range fields {
		if v == f {
			return true
		}
	}
	return false
}

func dedupFields(fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// ---- small helpers ----

func lc(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func levelOrNil(table map[string]int, level string) any {
	v := lc(level)
	if v == "" {
		return nil
	}
	if n, ok := table[v]; ok {
		return n
	}
	return nil
}

func numOrZero(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	}
	return 0.0
}

func experienceOf(props map[string]any) float64 {
	return numOrZero(props["experience_years"])
}

func salaryOf(props map[string]any) float64 {
	if v, ok := props["salary_max"]; ok && v != nil {
		return numOrZero(v)
	}
	return math.MaxFloat64
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
