package repos

import (
	"context"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/talentgraph-backend/internal/types"
)

func newMatchRepo(db *fakeRunner) MatchRepo {
	return NewMatchRepo(DefaultMatchConfig(), db, testLogger())
}

func facetRecord(props map[string]any, skills []any, titles []any, langs []any) *neo4j.Record {
	return rec(
		[]string{"candidate", "skills", "titles", "langs"},
		[]any{props, skills, titles, langs},
	)
}

func skillFacetMap(name string, level, years float64) map[string]any {
	return map[string]any{"name": name, "level_num": level, "years": years}
}

func TestMatchCandidatesRanksBySkillScore(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{{
		facetRecord(
			map[string]any{"uid": "weak", "name": "B", "experience_years": 2.0},
			[]any{skillFacetMap("go", 2, 1)}, nil, nil,
		),
		facetRecord(
			map[string]any{"uid": "strong", "name": "A", "experience_years": 9.0},
			[]any{skillFacetMap("go", 4, 10)}, nil, nil,
		),
	}}}
	repo := newMatchRepo(db)

	resp, err := repo.MatchCandidates(context.Background(), types.MatchRequest{
		NiceToHave: &types.NiceToHave{
			Skills: []types.NiceSkill{{Name: "Go"}},
		},
		IncludeFields: []string{"uid"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "strong", resp.Items[0].Candidate["uid"])
	assert.Equal(t, "weak", resp.Items[1].Candidate["uid"])

	// Full marks: level 4/4 and years capped at prefer+5 over the 5y scale.
	assert.InDelta(t, 0.6*1.0, resp.Items[0].Score, 1e-9)
	// level 2/4 and 1 of 5 years: 0.6 * (0.7*0.5 + 0.3*0.2).
	assert.InDelta(t, 0.6*0.41, resp.Items[1].Score, 1e-9)
}

func TestMatchCandidatesEmptyNiceToHave(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{{
		facetRecord(map[string]any{"uid": "c-1", "name": "A"}, nil, nil, nil),
	}}}
	repo := newMatchRepo(db)
	resp, err := repo.MatchCandidates(context.Background(), types.MatchRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 0.0, resp.Items[0].Score, "no preferences means a flat zero score")
}

func TestMatchCandidatesTieBreaks(t *testing.T) {
	noSalary := map[string]any{"uid": "no-salary", "name": "N", "experience_years": 5.0}
	cheap := map[string]any{"uid": "cheap", "name": "C", "experience_years": 5.0, "salary_max": 50000.0}
	pricey := map[string]any{"uid": "pricey", "name": "P", "experience_years": 5.0, "salary_max": 90000.0}
	senior := map[string]any{"uid": "senior", "name": "S", "experience_years": 12.0}

	db := &fakeRunner{results: [][]*neo4j.Record{{
		facetRecord(noSalary, nil, nil, nil),
		facetRecord(pricey, nil, nil, nil),
		facetRecord(cheap, nil, nil, nil),
		facetRecord(senior, nil, nil, nil),
	}}}
	repo := newMatchRepo(db)
	resp, err := repo.MatchCandidates(context.Background(), types.MatchRequest{IncludeFields: []string{"uid"}})
	require.NoError(t, err)
	require.Len(t, resp.Items, 4)

	var got []string
	for _, it := range resp.Items {
		got = append(got, it.Candidate["uid"].(string))
	}
	// All scores tie at 0: more experience first, then lower budget; a missing
	// salary sorts after any stated one.
	assert.Equal(t, []string{"senior", "cheap", "pricey", "no-salary"}, got)
}

func TestMatchCandidatesLanguageAndTitleAndLocation(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{{
		facetRecord(
			map[string]any{"uid": "c-1", "name": "A", "location": "Berlin"},
			nil,
			[]any{"backend engineer"},
			[]any{"german", "english"},
		),
	}}}
	repo := newMatchRepo(db)
	resp, err := repo.MatchCandidates(context.Background(), types.MatchRequest{
		NiceToHave: &types.NiceToHave{
			JobTitles:          []string{"Backend Engineer"},
			Languages:          []string{"German", "French"},
			LocationPreference: "berlin",
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	// titles 0.1*1 + languages 0.05*(1/2) + location 0.05*1
	assert.InDelta(t, 0.1+0.025+0.05, resp.Items[0].Score, 1e-9)

	kinds := map[string]float64{}
	for _, r := range resp.Items[0].Reasons {
		kinds[r.Kind] = r.Contribution
	}
	assert.InDelta(t, 0.1, kinds["job_title"], 1e-9)
	assert.InDelta(t, 0.025, kinds["language"], 1e-9)
	assert.InDelta(t, 0.05, kinds["location"], 1e-9)
	_, hasSkill := kinds["skill"]
	assert.False(t, hasSkill, "zero-contribution criteria produce no reason")
}

func TestMatchCandidatesExplainOff(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{{
		facetRecord(map[string]any{"uid": "c-1", "name": "A", "location": "Berlin"}, nil, nil, nil),
	}}}
	repo := newMatchRepo(db)
	off := false
	resp, err := repo.MatchCandidates(context.Background(), types.MatchRequest{
		NiceToHave: &types.NiceToHave{LocationPreference: "berlin"},
		Explain:    &off,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Items[0].Reasons)
}

func TestMatchCandidatesWeightOverride(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{{
		facetRecord(map[string]any{"uid": "c-1", "name": "A", "location": "Berlin"}, nil, nil, nil),
	}}}
	repo := newMatchRepo(db)
	resp, err := repo.MatchCandidates(context.Background(), types.MatchRequest{
		NiceToHave: &types.NiceToHave{LocationPreference: "berlin"},
		Weights:    map[string]float64{"location": 0.5, "bogus": 9.0},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, resp.Items[0].Score, 1e-9, "override applies; unknown criteria are ignored")
}

func TestMatchCandidatesTopKTruncates(t *testing.T) {
	var rows []*neo4j.Record
	for _, uid := range []string{"a", "b", "c"} {
		rows = append(rows, facetRecord(map[string]any{"uid": uid, "name": uid}, nil, nil, nil))
	}
	db := &fakeRunner{results: [][]*neo4j.Record{rows}}
	repo := newMatchRepo(db)
	resp, err := repo.MatchCandidates(context.Background(), types.MatchRequest{TopK: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TopK)
	assert.Len(t, resp.Items, 2)
	assert.Nil(t, resp.NextCursor)
}

func TestMatchCandidatesProjection(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{{
		facetRecord(
			map[string]any{"uid": "c-1", "name": "A", "location": "Berlin", "salary_max": 80000.0},
			[]any{skillFacetMap("go", 4, 3)}, nil, nil,
		),
	}}}
	repo := newMatchRepo(db)
	resp, err := repo.MatchCandidates(context.Background(), types.MatchRequest{
		IncludeFields: []string{"uid", "uid", "headline", "skills"},
	})
	require.NoError(t, err)
	cand := resp.Items[0].Candidate
	assert.Equal(t, "c-1", cand["uid"])
	_, hasName := cand["name"]
	assert.False(t, hasName, "unselected fields stay out")
	_, hasHeadline := cand["headline"]
	assert.False(t, hasHeadline, "fields absent on the node are omitted")
	val, hasSkills := cand["skills"]
	assert.True(t, hasSkills, "derived relation fields appear as placeholders")
	assert.Nil(t, val)
	assert.Len(t, cand, 2, "duplicate requested fields collapse")
}

func TestMatchCandidatesMustHaveParams(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{{}}}
	repo := newMatchRepo(db)
	remote := true
	budget := 120000.0
	minYears := 3.0
	_, err := repo.MatchCandidates(context.Background(), types.MatchRequest{
		MustHave: &types.MustHave{
			Skills:       []types.MustHaveSkill{{Name: " Go ", MinLevel: "Advanced", MinYears: &minYears}, {Name: "  "}},
			Languages:    []types.MustHaveLanguage{{Name: "German", MinLevel: "B2"}},
			JobTitlesAny: []string{"Backend Engineer"},
			LocationAny:  []string{"Berlin", ""},
			RemoteOK:     &remote,
			SalaryMax:    &budget,
		},
	})
	require.NoError(t, err)
	require.Len(t, db.calls, 1)
	params := db.calls[0].params

	skills, _ := params["mustSkills"].([]map[string]any)
	require.Len(t, skills, 1, "blank names are dropped")
	assert.Equal(t, "go", skills[0]["name"])
	assert.Equal(t, 3, skills[0]["min_level_num"], "advanced maps to ordinal 3")
	assert.Equal(t, 3.0, skills[0]["min_years"])

	langs, _ := params["mustLangs"].([]map[string]any)
	require.Len(t, langs, 1)
	assert.Equal(t, 4, langs[0]["min_level_num"], "B2 maps to ordinal 4")

	assert.Equal(t, []string{"backend engineer"}, params["mustTitles"])
	assert.Equal(t, []string{"berlin"}, params["mustLocations"])
	assert.Equal(t, true, params["remoteOk"])
	assert.Equal(t, 120000.0, params["salaryMax"])

	assert.Contains(t, db.calls[0].cypher, "c.salary_max IS NULL OR c.salary_max <= $salaryMax",
		"candidates without a salary pass the budget filter")
}

func TestMatchCandidatesUnknownLevelIsNil(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{{}}}
	repo := newMatchRepo(db)
	_, err := repo.MatchCandidates(context.Background(), types.MatchRequest{
		MustHave: &types.MustHave{
			Skills: []types.MustHaveSkill{{Name: "Go", MinLevel: "wizard"}},
		},
	})
	require.NoError(t, err)
	skills, _ := db.calls[0].params["mustSkills"].([]map[string]any)
	assert.Nil(t, skills[0]["min_level_num"], "unmapped levels fall back to no threshold")
}

func TestQueryCandidates(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{{
		rec([]string{"candidate"}, []any{map[string]any{"uid": "c-1", "name": "A"}}),
	}}}
	repo := newMatchRepo(db)
	resp, err := repo.QueryCandidates(context.Background(), types.QueryRequest{Skip: -2, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Skip)
	assert.Equal(t, 50, resp.Limit)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "c-1", resp.Items[0]["uid"])

	call := db.calls[0]
	assert.Equal(t, "read", call.kind)
	assert.True(t, strings.Contains(call.cypher, "ORDER BY coalesce(c.experience_years, 0) DESC"), call.cypher)
	assert.Equal(t, 0, call.params["skip"])
	assert.Equal(t, 50, call.params["limit"])
}
