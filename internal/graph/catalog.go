package graph

import "fmt"

// NodeLabel and RelType are closed enumerations. They are the only tokens
// ever interpolated into query text; caller-supplied strings must go through
// ParseNodeLabel / ParseRelType first.
type NodeLabel string

const (
	LabelCandidate  NodeLabel = "Candidate"
	LabelSkill      NodeLabel = "Skill"
	LabelProject    NodeLabel = "Project"
	LabelLanguage   NodeLabel = "Language"
	LabelJobTitle   NodeLabel = "JobTitle"
	LabelMajor      NodeLabel = "Major"
	LabelUniversity NodeLabel = "University"
)

type RelType string

const (
	RelHasSkill      RelType = "HAS_SKILL"
	RelWorkedOn      RelType = "WORKED_ON"
	RelSpeaks        RelType = "SPEAKS"
	RelHasTitle      RelType = "HAS_TITLE"
	RelMajoredIn     RelType = "MAJORED_IN"
	RelGraduatedFrom RelType = "GRADUATED_FROM"
)

var nodeLabels = map[NodeLabel]struct{}{
	LabelCandidate:  {},
	LabelSkill:      {},
	LabelProject:    {},
	LabelLanguage:   {},
	LabelJobTitle:   {},
	LabelMajor:      {},
	LabelUniversity: {},
}

var relTypes = map[RelType]struct{}{
	RelHasSkill:      {},
	RelWorkedOn:      {},
	RelSpeaks:        {},
	RelHasTitle:      {},
	RelMajoredIn:     {},
	RelGraduatedFrom: {},
}

func ParseNodeLabel(s string) (NodeLabel, error) {
	l := NodeLabel(s)
	if _, ok := nodeLabels[l]; !ok {
		return "", fmt.Errorf("graph: unknown node label %q", s)
	}
	return l, nil
}

func ParseRelType(s string) (RelType, error) {
	r := RelType(s)
	if _, ok := relTypes[r]; !ok {
		return "", fmt.Errorf("graph: unknown relationship type %q", s)
	}
	return r, nil
}
