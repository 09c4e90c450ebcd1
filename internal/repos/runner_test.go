package repos

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/talentgraph-backend/internal/platform/logger"
)

// fakeRunner records every statement and replays canned result sets, so the
// repositories can be exercised without a live store.
type fakeRunner struct {
	calls   []runnerCall
	results [][]*neo4j.Record
	err     error
}

type runnerCall struct {
	kind   string
	cypher string
	params map[string]any
}

func (f *fakeRunner) Read(_ context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return f.run("read", cypher, params)
}

func (f *fakeRunner) Write(_ context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return f.run("write", cypher, params)
}

func (f *fakeRunner) run(kind, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	f.calls = append(f.calls, runnerCall{kind: kind, cypher: cypher, params: params})
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) == 0 {
		return nil, nil
	}
	next := f.results[0]
	f.results = f.results[1:]
	return next, nil
}

func rec(keys []string, values []any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

func testLogger() *logger.Logger {
	log, err := logger.New("development")
	if err != nil {
		panic(err)
	}
	return log
}
