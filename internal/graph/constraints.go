package graph

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ConstraintDDL derives the uniqueness DDL from the registry: one constraint
// per declared unique key. Dictionary natural keys and Candidate.uid are
// globally unique; repositories rely on the store enforcing this under
// concurrent MERGE writes.
func ConstraintDDL(s *Schema) []string {
	labels := make([]NodeLabel, 0, len(s.nodes))
	for label := range s.nodes {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	var ddl []string
	for _, label := range labels {
		ns := s.nodes[label]
		for _, key := range ns.UniqueKeys {
			ddl = append(ddl, fmt.Sprintf(
				"CREATE CONSTRAINT %s_%s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
				snakeCase(string(label)), key, label, key,
			))
		}
	}
	return ddl
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
