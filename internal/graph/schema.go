package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// SchemaErrorKind classifies why a write was rejected.
type SchemaErrorKind string

const (
	UnknownProperty  SchemaErrorKind = "unknown_property"
	MissingRequired  SchemaErrorKind = "missing_required"
	TypeMismatch     SchemaErrorKind = "type_mismatch"
	EndpointMismatch SchemaErrorKind = "endpoint_mismatch"
	UnknownLabel     SchemaErrorKind = "unknown_label"
	UnknownRel       SchemaErrorKind = "unknown_relationship"
	InvalidMergeKey  SchemaErrorKind = "invalid_merge_key"
)

type SchemaError struct {
	Kind SchemaErrorKind
	Msg  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s: %s", e.Kind, e.Msg)
}

func schemaErrf(kind SchemaErrorKind, format string, args ...any) *SchemaError {
	return &SchemaError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsSchemaError reports whether err is a schema rejection of the given kind.
func IsSchemaError(err error, kind SchemaErrorKind) bool {
	var se *SchemaError
	return errors.As(err, &se) && se.Kind == kind
}

// PropKind is the runtime shape a property value may take. A PropSpec may
// allow several kinds (e.g. level accepts an ordinal or its textual form).
type PropKind int

const (
	KindString PropKind = iota
	KindBool
	KindInt
	KindFloat
	KindStringList
)

type PropSpec struct {
	Name     string
	Kinds    []PropKind
	Required bool
}

func prop(name string, kinds ...PropKind) PropSpec {
	return PropSpec{Name: name, Kinds: kinds}
}

func required(name string, kinds ...PropKind) PropSpec {
	return PropSpec{Name: name, Kinds: kinds, Required: true}
}

type NodeSchema struct {
	Label      NodeLabel
	Props      map[string]PropSpec
	UniqueKeys []string
}

type RelSchema struct {
	Type  RelType
	Start NodeLabel
	End   NodeLabel
	Props map[string]PropSpec
	// Weighted relationships carry the weight/cost pair and accept external
	// weight updates; unweighted ones pin both to 1.0.
	Weighted bool
}

// Schema is the immutable registry of allowed node and relationship shapes.
// It is built once at startup and is safe for unsynchronized concurrent reads.
type Schema struct {
	nodes map[NodeLabel]NodeSchema
	rels  map[RelType]RelSchema
}

func (s *Schema) Node(label NodeLabel) (NodeSchema, error) {
	ns, ok := s.nodes[label]
	if !ok {
		return NodeSchema{}, schemaErrf(UnknownLabel, "node label %s not registered", label)
	}
	return ns, nil
}

func (s *Schema) Relationship(rel RelType) (RelSchema, error) {
	rs, ok := s.rels[rel]
	if !ok {
		return RelSchema{}, schemaErrf(UnknownRel, "relationship type %s not registered", rel)
	}
	return rs, nil
}

// ValidateNode checks props against the declared shape for label. Validation
// is pure: no partial effects, same verdict for same inputs.
func (s *Schema) ValidateNode(label NodeLabel, props map[string]any) error {
	ns, err := s.Node(label)
	if err != nil {
		return err
	}
	return validateProps(string(label), ns.Props, props)
}

// ValidateRelationship checks the endpoint pair and props for rel.
func (s *Schema) ValidateRelationship(rel RelType, start, end NodeLabel, props map[string]any) error {
	rs, err := s.Relationship(rel)
	if err != nil {
		return err
	}
	if start != rs.Start || end != rs.End {
		return schemaErrf(EndpointMismatch,
			"%s requires (%s)-[]->(%s), got (%s)-[]->(%s)", rel, rs.Start, rs.End, start, end)
	}
	return validateProps(string(rel), rs.Props, props)
}

func validateProps(owner string, specs map[string]PropSpec, props map[string]any) error {
	var unknown []string
	for k := range props {
		if _, ok := specs[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return schemaErrf(UnknownProperty, "unknown properties for %s: %s", owner, strings.Join(unknown, ", "))
	}

	var missing []string
	for name, spec := range specs {
		if spec.Required {
			if v, ok := props[name]; !ok || v == nil {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return schemaErrf(MissingRequired, "missing required properties for %s: %s", owner, strings.Join(missing, ", "))
	}

	for k, v := range props {
		if v == nil {
			continue
		}
		spec := specs[k]
		if !kindAllowed(v, spec.Kinds) {
			return schemaErrf(TypeMismatch, "property %s.%s does not accept %T", owner, k, v)
		}
	}
	return nil
}

func kindAllowed(v any, kinds []PropKind) bool {
	for _, k := range kinds {
		if matchesKind(v, k) {
			return true
		}
	}
	return false
}

func matchesKind(v any, kind PropKind) bool {
	switch kind {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindInt:
		switch v.(type) {
		case int, int32, int64:
			return true
		}
	case KindFloat:
		switch v.(type) {
		case float32, float64:
			return true
		}
	case KindStringList:
		switch list := v.(type) {
		case []string:
			return true
		case []any:
			for _, item := range list {
				if _, ok := item.(string); !ok {
					return false
				}
			}
			return true
		}
	}
	return false
}
