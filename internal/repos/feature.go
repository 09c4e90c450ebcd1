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

// FeatureConfig parameterizes the generic dictionary repository. Label and
// Rel come from the closed catalog; KeyField is the schema-declared natural
// key. Six instances cover every feature type; only these values differ.
type FeatureConfig struct {
	Label    graph.NodeLabel
	KeyField string
	Rel      graph.RelType
}

var (
	SkillFeature      = FeatureConfig{Label: graph.LabelSkill, KeyField: "name", Rel: graph.RelHasSkill}
	ProjectFeature    = FeatureConfig{Label: graph.LabelProject, KeyField: "name", Rel: graph.RelWorkedOn}
	LanguageFeature   = FeatureConfig{Label: graph.LabelLanguage, KeyField: "name", Rel: graph.RelSpeaks}
	JobTitleFeature   = FeatureConfig{Label: graph.LabelJobTitle, KeyField: "title", Rel: graph.RelHasTitle}
	MajorFeature      = FeatureConfig{Label: graph.LabelMajor, KeyField: "name", Rel: graph.RelMajoredIn}
	UniversityFeature = FeatureConfig{Label: graph.LabelUniversity, KeyField: "name", Rel: graph.RelGraduatedFrom}
)

// LinkRow is one (natural key, relationship props) pair for bulk linking.
type LinkRow struct {
	Key      string
	RelProps map[string]any
}

type FeatureRepo interface {
	Upsert(ctx context.Context, key, uid string) (string, error)
	GetByUIDs(ctx context.Context, uids []string) ([]types.FeatureNode, error)
	GetByName(ctx context.Context, key string) (*types.FeatureNode, error)
	GetList(ctx context.Context, skip, limit int) ([]types.FeatureNode, error)
	Delete(ctx context.Context, uid string) (int, error)
	LinkByUIDs(ctx context.Context, candidateUID, featureUID string, relProps map[string]any) (string, error)
	LinkByName(ctx context.Context, candidateUID, key string, relProps map[string]any) (string, error)
	LinkManyByName(ctx context.Context, candidateUID string, rows []LinkRow) (int, error)
	UnlinkByUIDs(ctx context.Context, candidateUID, featureUID string) (int, error)
	UnlinkAllForCandidate(ctx context.Context, candidateUID string) (int, error)
	ListForCandidate(ctx context.Context, candidateUID string, skip, limit int) ([]map[string]any, error)
}

type featureRepo struct {
	cfg    FeatureConfig
	schema *graph.Schema
	db     neo4jdb.Runner
	log    *logger.Logger
}

func NewFeatureRepo(cfg FeatureConfig, schema *graph.Schema, db neo4jdb.Runner, baseLog *logger.Logger) FeatureRepo {
	return &featureRepo{
		cfg:    cfg,
		schema: schema,
		db:     db,
		log:    baseLog.With("repo", "FeatureRepo", "label", string(cfg.Label)),
	}
}

func NewSkillRepo(schema *graph.Schema, db neo4jdb.Runner, log *logger.Logger) FeatureRepo {
	return NewFeatureRepo(SkillFeature, schema, db, log)
}
func NewProjectRepo(schema *graph.Schema, db neo4jdb.Runner, log *logger.Logger) FeatureRepo {
	return NewFeatureRepo(ProjectFeature, schema, db, log)
}
func NewLanguageRepo(schema *graph.Schema, db neo4jdb.Runner, log *logger.Logger) FeatureRepo {
	return NewFeatureRepo(LanguageFeature, schema, db, log)
}
func NewJobTitleRepo(schema *graph.Schema, db neo4jdb.Runner, log *logger.Logger) FeatureRepo {
	return NewFeatureRepo(JobTitleFeature, schema, db, log)
}
func NewMajorRepo(schema *graph.Schema, db neo4jdb.Runner, log *logger.Logger) FeatureRepo {
	return NewFeatureRepo(MajorFeature, schema, db, log)
}
func NewUniversityRepo(schema *graph.Schema, db neo4jdb.Runner, log *logger.Logger) FeatureRepo {
	return NewFeatureRepo(UniversityFeature, schema, db, log)
}

func (r *featureRepo) Upsert(ctx context.Context, key, uid string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}

	props := map[string]any{r.cfg.KeyField: key}
	mergeKeys := []string{r.cfg.KeyField}
	if uid = strings.TrimSpace(uid); uid != "" {
		props["uid"] = uid
		mergeKeys = []string{"uid"}
	}

	cypher, params, err := graph.BuildMergeNode(r.schema, r.cfg.Label, props, mergeKeys)
	if err != nil {
		return "", err
	}
	records, err := r.db.Write(ctx, cypher, params)
	if err != nil {
		return "", fmt.Errorf("upsert %s: %w", r.cfg.Label, err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("upsert %s: no row returned", r.cfg.Label)
	}
	return recordString(records[0], "uid"), nil
}

func (r *featureRepo) GetByUIDs(ctx context.Context, uids []string) ([]types.FeatureNode, error) {
	if len(uids) == 0 {
		return []types.FeatureNode{}, nil
	}
	cypher := fmt.Sprintf(`
MATCH (n:%s)
WHERE n.uid IN $uids
RETURN n.uid AS uid, n.%s AS name
ORDER BY n.%s
`, r.cfg.Label, r.cfg.KeyField, r.cfg.KeyField)
	records, err := r.db.Read(ctx, cypher, map[string]any{"uids": uids})
	if err != nil {
		return nil, fmt.Errorf("get %s by uids: %w", r.cfg.Label, err)
	}
	out := make([]types.FeatureNode, 0, len(records))
	for _, rec := range records {
		out = append(out, types.FeatureNode{UID: recordString(rec, "uid"), Name: recordString(rec, "name")})
	}
	return out, nil
}

func (r *featureRepo) GetByName(ctx context.Context, key string) (*types.FeatureNode, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	cypher := fmt.Sprintf(`
MATCH (n:%s {%s: $key})
RETURN n.uid AS uid, n.%s AS name
LIMIT 1
`, r.cfg.Label, r.cfg.KeyField, r.cfg.KeyField)
	records, err := r.db.Read(ctx, cypher, map[string]any{"key": key})
	if err != nil {
		return nil, fmt.Errorf("get %s by %s: %w", r.cfg.Label, r.cfg.KeyField, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &types.FeatureNode{UID: recordString(records[0], "uid"), Name: recordString(records[0], "name")}, nil
}

func (r *featureRepo) GetList(ctx context.Context, skip, limit int) ([]types.FeatureNode, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 50
	}
	cypher := fmt.Sprintf(`
MATCH (n:%s)
RETURN n.uid AS uid, n.%s AS name
ORDER BY n.%s
SKIP $skip LIMIT $limit
`, r.cfg.Label, r.cfg.KeyField, r.cfg.KeyField)
	records, err := r.db.Read(ctx, cypher, map[string]any{"skip": skip, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.cfg.Label, err)
	}
	out := make([]types.FeatureNode, 0, len(records))
	for _, rec := range records {
		out = append(out, types.FeatureNode{UID: recordString(rec, "uid"), Name: recordString(rec, "name")})
	}
	return out, nil
}

func (r *featureRepo) Delete(ctx context.Context, uid string) (int, error) {
	if strings.TrimSpace(uid) == "" {
		return 0, ErrEmptyID
	}
	cypher := fmt.Sprintf(`
MATCH (n:%s {uid: $uid})
WITH n
DETACH DELETE n
RETURN count(n) AS deleted
`, r.cfg.Label)
	records, err := r.db.Write(ctx, cypher, map[string]any{"uid": uid})
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", r.cfg.Label, err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	return recordInt(records[0], "deleted"), nil
}

func (r *featureRepo) LinkByUIDs(ctx context.Context, candidateUID, featureUID string, relProps map[string]any) (string, error) {
	if strings.TrimSpace(candidateUID) == "" || strings.TrimSpace(featureUID) == "" {
		return "", ErrEmptyID
	}
	normalized, err := graph.ApplyEdgeWeight(r.schema, r.cfg.Rel, relProps)
	if err != nil {
		return "", err
	}
	cypher, params, err := graph.BuildLink(r.schema, graph.LabelCandidate, r.cfg.Rel, r.cfg.Label, candidateUID, featureUID, normalized)
	if err != nil {
		return "", err
	}
	records, err := r.db.Write(ctx, cypher, params)
	if err != nil {
		return "", fmt.Errorf("link %s: %w", r.cfg.Rel, err)
	}
	if len(records) == 0 {
		return "", fmt.Errorf("link %s: no row returned; missing candidate or %s node", r.cfg.Rel, r.cfg.Label)
	}
	return recordString(records[0], "eid"), nil
}

func (r *featureRepo) LinkByName(ctx context.Context, candidateUID, key string, relProps map[string]any) (string, error) {
	featureUID, err := r.Upsert(ctx, key, "")
	if err != nil {
		return "", err
	}
	return r.LinkByUIDs(ctx, candidateUID, featureUID, relProps)
}

// LinkManyByName UNWIND-batches many upsert+link pairs into one statement.
// Every row is schema-validated before the statement is built; one bad row
// rejects the whole batch (no partial write).
func (r *featureRepo) LinkManyByName(ctx context.Context, candidateUID string, rows []LinkRow) (int, error) {
	if strings.TrimSpace(candidateUID) == "" {
		return 0, ErrEmptyID
	}
	batch := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		key := strings.TrimSpace(row.Key)
		if key == "" {
			continue
		}
		normalized, err := graph.ApplyEdgeWeight(r.schema, r.cfg.Rel, row.RelProps)
		if err != nil {
			return 0, err
		}
		if err := r.schema.ValidateRelationship(r.cfg.Rel, graph.LabelCandidate, r.cfg.Label, normalized); err != nil {
			return 0, err
		}
		props := make(map[string]any, len(normalized))
		for k, v := range normalized {
			if v == nil || k == "eid" {
				continue
			}
			props[k] = v
		}
		batch = append(batch, map[string]any{
			"key":      key,
			"node_uid": uuid.NewString(),
			"eid":      uuid.NewString(),
			"props":    props,
		})
	}
	if len(batch) == 0 {
		return 0, nil
	}

	cypher := fmt.Sprintf(`
UNWIND $rows AS row
MATCH (c:Candidate {uid: $candidate_uid})
MERGE (n:%s {%s: row.key})
ON CREATE SET n.uid = row.node_uid, n.created_at = datetime()
ON MATCH SET n.updated_at = datetime()
MERGE (c)-[r:%s]->(n)
ON CREATE SET r.eid = row.eid, r.created_at = datetime(), r.weight = 1.0, r.cost = 1.0
SET r += row.props, r.updated_at = datetime()
RETURN count(*) AS linked
`, r.cfg.Label, r.cfg.KeyField, r.cfg.Rel)
	records, err := r.db.Write(ctx, cypher, map[string]any{"candidate_uid": candidateUID, "rows": batch})
	if err != nil {
		return 0, fmt.Errorf("bulk link %s: %w", r.cfg.Rel, err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	return recordInt(records[0], "linked"), nil
}

func (r *featureRepo) UnlinkByUIDs(ctx context.Context, candidateUID, featureUID string) (int, error) {
	if strings.TrimSpace(candidateUID) == "" || strings.TrimSpace(featureUID) == "" {
		return 0, ErrEmptyID
	}
	cypher := fmt.Sprintf(`
MATCH (c:Candidate {uid: $candidate_uid})-[r:%s]->(n:%s {uid: $feature_uid})
WITH r
DELETE r
RETURN count(*) AS deleted
`, r.cfg.Rel, r.cfg.Label)
	records, err := r.db.Write(ctx, cypher, map[string]any{
		"candidate_uid": candidateUID,
		"feature_uid":   featureUID,
	})
	if err != nil {
		return 0, fmt.Errorf("unlink %s: %w", r.cfg.Rel, err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	return recordInt(records[0], "deleted"), nil
}

func (r *featureRepo) UnlinkAllForCandidate(ctx context.Context, candidateUID string) (int, error) {
	if strings.TrimSpace(candidateUID) == "" {
		return 0, ErrEmptyID
	}
	cypher := fmt.Sprintf(`
MATCH (c:Candidate {uid: $candidate_uid})-[r:%s]->(:%s)
WITH r
DELETE r
RETURN count(*) AS deleted
`, r.cfg.Rel, r.cfg.Label)
	records, err := r.db.Write(ctx, cypher, map[string]any{"candidate_uid": candidateUID})
	if err != nil {
		return 0, fmt.Errorf("unlink all %s: %w", r.cfg.Rel, err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	return recordInt(records[0], "deleted"), nil
}

// ListForCandidate returns the feature node plus every relationship property
// under a rel_-prefixed key, so edge properties never collide with node ones.
func (r *featureRepo) ListForCandidate(ctx context.Context, candidateUID string, skip, limit int) ([]map[string]any, error) {
	if strings.TrimSpace(candidateUID) == "" {
		return nil, ErrEmptyID
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	cypher := fmt.Sprintf(`
MATCH (c:Candidate {uid: $candidate_uid})-[r:%s]->(n:%s)
RETURN n.uid AS uid, n.%s AS name, r.eid AS rel_eid, properties(r) AS rel_props
ORDER BY n.%s
SKIP $skip LIMIT $limit
`, r.cfg.Rel, r.cfg.Label, r.cfg.KeyField, r.cfg.KeyField)
	records, err := r.db.Read(ctx, cypher, map[string]any{
		"candidate_uid": candidateUID,
		"skip":          skip,
		"limit":         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s for candidate: %w", r.cfg.Label, err)
	}

	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		item := map[string]any{
			"uid":          recordString(rec, "uid"),
			r.cfg.KeyField: recordString(rec, "name"),
			"rel_eid":      recordString(rec, "rel_eid"),
		}
		for k, v := range recordMap(rec, "rel_props") {
			item["rel_"+k] = v
		}
		out = append(out, item)
	}
	return out, nil
}
