package repos

import (
	"context"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/talentgraph-backend/internal/graph"
	"github.com/yungbote/talentgraph-backend/internal/types"
)

func newCandidateRepo(db *fakeRunner) CandidateRepo {
	return NewCandidateRepo(graph.DefaultSchema(), db, testLogger())
}

func boolPtr(b bool) *bool        { return &b }
func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCandidateCreateMintsUID(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{
		{rec([]string{"uid"}, []any{"ignored"})},
	}}
	repo := newCandidateRepo(db)
	_, err := repo.Create(context.Background(), types.CandidateInput{Name: "Ada Lovelace"})
	require.NoError(t, err)
	require.Len(t, db.calls, 1)
	assert.NotEmpty(t, db.calls[0].params["uid"], "create must bind a fresh uid")
	assert.Contains(t, db.calls[0].cypher, "MERGE (n:Candidate {uid: $uid})")
}

func TestCandidateUpsertRequiresName(t *testing.T) {
	repo := newCandidateRepo(&fakeRunner{})
	_, err := repo.UpsertByUID(context.Background(), "c-1", types.CandidateInput{Name: "   "})
	require.ErrorIs(t, err, ErrEmptyKey)
	_, err = repo.UpsertByUID(context.Background(), "  ", types.CandidateInput{Name: "Ada"})
	require.ErrorIs(t, err, ErrEmptyID)
}

func TestCandidateUpsertDropsNilOptionals(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{
		{rec([]string{"uid"}, []any{"c-1"})},
	}}
	repo := newCandidateRepo(db)
	in := types.CandidateInput{Name: "Ada"}
	in.Location = strPtr("Berlin")
	in.RemoteOK = boolPtr(true)
	in.SalaryMax = floatPtr(90000)
	// Headline, ExperienceYears, SalaryCurrency, SalaryMin stay nil.
	uid, err := repo.UpsertByUID(context.Background(), "c-1", in)
	require.NoError(t, err)
	assert.Equal(t, "c-1", uid)

	params := db.calls[0].params
	assert.Equal(t, "Berlin", params["location"])
	assert.Equal(t, true, params["remote_ok"])
	assert.Equal(t, 90000.0, params["salary_max"])
	for _, absent := range []string{"headline", "experience_years", "salary_currency", "salary_min"} {
		_, ok := params[absent]
		assert.False(t, ok, "nil optional %q must not be bound at all", absent)
	}
}

func TestCandidateGetByUIDsShortCircuit(t *testing.T) {
	db := &fakeRunner{}
	repo := newCandidateRepo(db)
	out, err := repo.GetByUIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, db.calls)
}

func TestCandidateDelete(t *testing.T) {
	db := &fakeRunner{results: [][]*neo4j.Record{
		{rec([]string{"deleted"}, []any{int64(1)})},
	}}
	repo := newCandidateRepo(db)
	n, err := repo.Delete(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, db.calls[0].cypher, "DETACH DELETE c")

	_, err = repo.Delete(context.Background(), " ")
	require.ErrorIs(t, err, ErrEmptyID)
}
