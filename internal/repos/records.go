package repos

import "github.com/neo4j/neo4j-go-driver/v5/neo4j"

func recordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordInt(rec *neo4j.Record, key string) int {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case float64:
		return int(t)
	}
	return 0
}

func recordMap(rec *neo4j.Record, key string) map[string]any {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

func recordList(rec *neo4j.Record, key string) []any {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	l, _ := v.([]any)
	return l
}
