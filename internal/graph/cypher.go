package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// BuildMergeNode constructs a parameterized MERGE for one node. Props are
// validated against the registry before any text is assembled; every value is
// bound, label tokens come from the closed catalog only.
//
// mergeKeys selects the natural-key match condition. When the label declares
// a uid, a fresh one is bound so the store assigns it on create; an existing
// node's uid is never overwritten.
func BuildMergeNode(s *Schema, label NodeLabel, props map[string]any, mergeKeys []string) (string, map[string]any, error) {
	ns, err := s.Node(label)
	if err != nil {
		return "", nil, err
	}
	if err := s.ValidateNode(label, props); err != nil {
		return "", nil, err
	}
	if len(mergeKeys) == 0 {
		return "", nil, schemaErrf(InvalidMergeKey, "mergeKeys must not be empty for %s", label)
	}
	for _, k := range mergeKeys {
		if _, ok := props[k]; !ok {
			return "", nil, schemaErrf(InvalidMergeKey, "merge key %q missing in props for %s", k, label)
		}
	}

	merge := make([]string, 0, len(mergeKeys))
	isMergeKey := make(map[string]bool, len(mergeKeys))
	for _, k := range mergeKeys {
		merge = append(merge, fmt.Sprintf("%s: $%s", k, k))
		isMergeKey[k] = true
	}

	setKeys := make([]string, 0, len(props))
	for k := range props {
		if !isMergeKey[k] && k != "uid" {
			setKeys = append(setKeys, k)
		}
	}
	sort.Strings(setKeys)

	setPairs := make([]string, 0, len(setKeys))
	for _, k := range setKeys {
		setPairs = append(setPairs, fmt.Sprintf("n.%s = $%s", k, k))
	}

	_, hasUID := ns.Props["uid"]
	_, hasCreated := ns.Props["created_at"]
	_, hasUpdated := ns.Props["updated_at"]

	onCreate := append([]string{}, setPairs...)
	if hasUID && !isMergeKey["uid"] {
		onCreate = append(onCreate, "n.uid = $uid")
	}
	if hasCreated {
		onCreate = append(onCreate, "n.created_at = datetime()")
	}
	onMatch := append([]string{}, setPairs...)
	if hasUpdated {
		onMatch = append(onMatch, "n.updated_at = datetime()")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MERGE (n:%s {%s})\n", label, strings.Join(merge, ", "))
	if len(onCreate) > 0 {
		fmt.Fprintf(&b, "ON CREATE SET %s\n", strings.Join(onCreate, ", "))
	}
	if len(onMatch) > 0 {
		fmt.Fprintf(&b, "ON MATCH SET %s\n", strings.Join(onMatch, ", "))
	}
	if hasUID {
		b.WriteString("RETURN n.uid AS uid")
	} else {
		b.WriteString("RETURN n")
	}

	params := make(map[string]any, len(props)+1)
	for k, v := range props {
		params[k] = v
	}
	if hasUID {
		if v, ok := params["uid"]; !ok || v == nil || v == "" {
			params["uid"] = uuid.NewString()
		}
	}
	return b.String(), params, nil
}

// BuildLink constructs a parameterized MERGE for one directed relationship
// between two nodes addressed by uid. At most one relationship exists per
// ordered pair per type: repeated links update properties additively
// (r += $rel_props), they never duplicate the edge. eid is assigned once on
// creation and never changes.
func BuildLink(s *Schema, start NodeLabel, rel RelType, end NodeLabel, startUID, endUID string, relProps map[string]any) (string, map[string]any, error) {
	rs, err := s.Relationship(rel)
	if err != nil {
		return "", nil, err
	}
	if err := s.ValidateRelationship(rel, start, end, relProps); err != nil {
		return "", nil, err
	}

	clean := make(map[string]any, len(relProps))
	for k, v := range relProps {
		if v == nil {
			continue
		}
		clean[k] = v
	}
	eid := uuid.NewString()
	if v, ok := clean["eid"].(string); ok && v != "" {
		eid = v
	}
	delete(clean, "eid")

	// New edges start at the neutral weight so the weight/cost pair is always
	// present; ApplyEdgeWeight recomputes both when a weight arrives.
	var b strings.Builder
	fmt.Fprintf(&b, "MATCH (a:%s {uid: $start_uid})\n", rs.Start)
	fmt.Fprintf(&b, "MATCH (b:%s {uid: $end_uid})\n", rs.End)
	fmt.Fprintf(&b, "MERGE (a)-[r:%s]->(b)\n", rel)
	b.WriteString("ON CREATE SET r.eid = $rel_eid, r.created_at = datetime(), r.weight = 1.0, r.cost = 1.0\n")
	b.WriteString("SET r += $rel_props, r.updated_at = datetime()\n")
	b.WriteString("RETURN r.eid AS eid")

	params := map[string]any{
		"start_uid": startUID,
		"end_uid":   endUID,
		"rel_eid":   eid,
		"rel_props": clean,
	}
	return b.String(), params, nil
}
