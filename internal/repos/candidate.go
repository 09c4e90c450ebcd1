package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/talentgraph-backend/internal/graph"
	"github.com/yungbote/talentgraph-backend/internal/platform/logger"
	"github.com/yungbote/talentgraph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/talentgraph-backend/internal/types"
)

// CandidateRepo handles the central entity. Candidates have no natural key:
// Create always mints a fresh uid (names are not unique), UpsertByUID is the
// idempotent update path.
type CandidateRepo interface {
	Create(ctx context.Context, in types.CandidateInput) (string, error)
	UpsertByUID(ctx context.Context, uid string, in types.CandidateInput) (string, error)
	GetByUIDs(ctx context.Context, uids []string) ([]map[string]any, error)
	List(ctx context.Context, skip, limit int) ([]map[string]any, error)
	Delete(ctx context.Context, uid string) (int, error)
}

type candidateRepo struct {
	schema *graph.Schema
	db     neo4jdb.Runner
	log    *logger.Logger
}

func NewCandidateRepo(schema *graph.Schema, db neo4jdb.Runner, baseLog *logger.Logger) CandidateRepo {
	return &candidateRepo{
		schema: schema,
		db:     db,
		log:    baseLog.With("repo", "CandidateRepo"),
	}
}

func (r *candidateRepo) Create(ctx context.Context, in types.CandidateInput) (string, error) {
	return r.upsert(ctx, uuid.NewString(), in)
}

func (r *candidateRepo) UpsertByUID(ctx context.Context, uid string, in types.CandidateInput) (string, error) {
	if uid = strings.TrimSpace(uid); uid == "" {
		return "", ErrEmptyID
	}
	return r.upsert(ctx, uid, in)
}

func (r *candidateRepo) upsert(ctx context.Context, uid string, in types.CandidateInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", ErrEmptyKey
	}

	// Nil optionals are dropped so repeat upserts never null out existing
	// values: later non-null wins, null is ignored.
	props := map[string]any{"uid": uid, "name": name}
	if in.Location != nil {
		props["location"] = strings.TrimSpace(*in.Location)
	}
	if in.Headline != nil {
		props["headline"] = strings.TrimSpace(*in.Headline)
	}
	if in.RemoteOK != nil {
		props["remote_ok"] = *in.RemoteOK
	}
	if in.ExperienceYears != nil {
		props["experience_years"] = *in.ExperienceYears
	}
	if in.SalaryCurrency != nil {
		props["salary_currency"] = strings.TrimSpace(*in.SalaryCurrency)
	}
	if in.SalaryMin != nil {
		props["salary_min"] = *in.SalaryMin
	}
	if in.SalaryMax != nil {
		props["salary_max"] = *in.SalaryMax
	}

	cypher, params, err := graph.BuildMergeNode(r.schema, graph.LabelCandidate, props, []string{"uid"})
	if err != nil {
		return "", err
	}
	records, err := r.db.Write(ctx, cypher, params)
	if err != nil {
		return "", fmt.Errorf("upsert candidate: %w", err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("upsert candidate: no row returned")
	}
	return recordString(records[0], "uid"), nil
}

func (r *candidateRepo) GetByUIDs(ctx context.Context, uids []string) ([]map[string]any, error) {
	if len(uids) == 0 {
		return []map[string]any{}, nil
	}
	cypher := `
MATCH (c:Candidate)
WHERE c.uid IN $uids
RETURN c{.*} AS candidate
ORDER BY c.name
`
	records, err := r.db.Read(ctx, cypher, map[string]any{"uids": uids})
	if err != nil {
		return nil, fmt.Errorf("get candidates by uids: %w", err)
	}
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, recordMap(rec, "candidate"))
	}
	return out, nil
}

func (r *candidateRepo) List(ctx context.Context, skip, limit int) ([]map[string]any, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 50
	}
	cypher := `
MATCH (c:Candidate)
RETURN c{.*} AS candidate
ORDER BY c.name
SKIP $skip LIMIT $limit
`
	records, err := r.db.Read(ctx, cypher, map[string]any{"skip": skip, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, recordMap(rec, "candidate"))
	}
	return out, nil
}

func (r *candidateRepo) Delete(ctx context.Context, uid string) (int, error) {
	if strings.TrimSpace(uid) == "" {
		return 0, ErrEmptyID
	}
	cypher := `
MATCH (c:Candidate {uid: $uid})
WITH c
DETACH DELETE c
RETURN count(c) AS deleted
`
	records, err := r.db.Write(ctx, cypher, map[string]any{"uid": uid})
	if err != nil {
		return 0, fmt.Errorf("delete candidate: %w", err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	return recordInt(records[0], "deleted"), nil
}
