package graph

import (
	"strings"
	"testing"
)

func TestValidateNodeUnknownProperty(t *testing.T) {
	s := DefaultSchema()
	err := s.ValidateNode(LabelCandidate, map[string]any{
		"name":    "Ada",
		"zzz":     1,
		"favcolo": "blue",
	})
	if !IsSchemaError(err, UnknownProperty) {
		t.Fatalf("expected unknown_property error, got %v", err)
	}
	// Offending keys are listed sorted so the message is stable.
	if msg := err.Error(); !strings.Contains(msg, "favcolo, zzz") {
		t.Fatalf("expected sorted offenders in message, got %q", msg)
	}
}

func TestValidateNodeMissingRequired(t *testing.T) {
	s := DefaultSchema()
	err := s.ValidateNode(LabelCandidate, map[string]any{"location": "Berlin"})
	if !IsSchemaError(err, MissingRequired) {
		t.Fatalf("expected missing_required error, got %v", err)
	}
	// An explicit nil counts as absent for a required property.
	err = s.ValidateNode(LabelCandidate, map[string]any{"name": nil})
	if !IsSchemaError(err, MissingRequired) {
		t.Fatalf("expected missing_required for nil name, got %v", err)
	}
}

func TestValidateNodeTypeMismatch(t *testing.T) {
	s := DefaultSchema()
	err := s.ValidateNode(LabelCandidate, map[string]any{"name": "Ada", "remote_ok": "yes"})
	if !IsSchemaError(err, TypeMismatch) {
		t.Fatalf("expected type_mismatch error, got %v", err)
	}
}

func TestValidateNodeAcceptsIntWidths(t *testing.T) {
	s := DefaultSchema()
	for _, v := range []any{int(3), int32(3), int64(3)} {
		err := s.ValidateRelationship(RelHasSkill, LabelCandidate, LabelSkill, map[string]any{"level_num": v})
		if err != nil {
			t.Fatalf("level_num should accept %T: %v", v, err)
		}
	}
}

func TestValidateNodeNilOptionalSkipsTypeCheck(t *testing.T) {
	s := DefaultSchema()
	if err := s.ValidateNode(LabelCandidate, map[string]any{"name": "Ada", "location": nil}); err != nil {
		t.Fatalf("nil optional should pass, got %v", err)
	}
}

func TestValidateRelationshipEndpoints(t *testing.T) {
	s := DefaultSchema()
	err := s.ValidateRelationship(RelHasSkill, LabelCandidate, LabelLanguage, nil)
	if !IsSchemaError(err, EndpointMismatch) {
		t.Fatalf("expected endpoint_mismatch, got %v", err)
	}
	if err := s.ValidateRelationship(RelHasSkill, LabelCandidate, LabelSkill, nil); err != nil {
		t.Fatalf("valid endpoints should pass, got %v", err)
	}
}

func TestUnknownLabelAndRel(t *testing.T) {
	s := DefaultSchema()
	if _, err := s.Node(NodeLabel("Ghost")); !IsSchemaError(err, UnknownLabel) {
		t.Fatalf("expected unknown_label, got %v", err)
	}
	if _, err := s.Relationship(RelType("HAUNTS")); !IsSchemaError(err, UnknownRel) {
		t.Fatalf("expected unknown_relationship, got %v", err)
	}
}

func TestParseCatalogTokens(t *testing.T) {
	if _, err := ParseNodeLabel("Candidate"); err != nil {
		t.Fatalf("Candidate should parse: %v", err)
	}
	if _, err := ParseNodeLabel("DROP ALL"); err == nil {
		t.Fatal("expected error for non-catalog label")
	}
	if _, err := ParseRelType("HAS_SKILL"); err != nil {
		t.Fatalf("HAS_SKILL should parse: %v", err)
	}
	if _, err := ParseRelType("MATCH (n) DETACH DELETE n"); err == nil {
		t.Fatal("expected error for non-catalog relationship type")
	}
}

func TestStringListKinds(t *testing.T) {
	s := DefaultSchema()
	cases := []struct {
		val any
		ok  bool
	}{
		{[]string{"go", "cypher"}, true},
		{[]any{"go", "cypher"}, true},
		{[]any{"go", 42}, false},
		{"go", false},
	}
	for _, tc := range cases {
		err := s.ValidateRelationship(RelWorkedOn, LabelCandidate, LabelProject, map[string]any{"tech_stack": tc.val})
		if tc.ok && err != nil {
			t.Fatalf("tech_stack %#v should pass: %v", tc.val, err)
		}
		if !tc.ok && !IsSchemaError(err, TypeMismatch) {
			t.Fatalf("tech_stack %#v should fail with type_mismatch, got %v", tc.val, err)
		}
	}
}
