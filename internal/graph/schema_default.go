package graph

// DefaultSchema registers every node and relationship shape the service
// persists. Timestamps arrive back from the store as strings.
func DefaultSchema() *Schema {
	s := &Schema{
		nodes: map[NodeLabel]NodeSchema{},
		rels:  map[RelType]RelSchema{},
	}

	audit := func() map[string]PropSpec {
		return map[string]PropSpec{
			"uid":        prop("uid", KindString),
			"created_at": prop("created_at", KindString),
			"updated_at": prop("updated_at", KindString),
		}
	}

	candidateProps := audit()
	candidateProps["name"] = required("name", KindString)
	candidateProps["location"] = prop("location", KindString)
	candidateProps["headline"] = prop("headline", KindString)
	candidateProps["remote_ok"] = prop("remote_ok", KindBool)
	candidateProps["experience_years"] = prop("experience_years", KindInt, KindFloat)
	candidateProps["salary_currency"] = prop("salary_currency", KindString)
	candidateProps["salary_min"] = prop("salary_min", KindInt, KindFloat)
	candidateProps["salary_max"] = prop("salary_max", KindInt, KindFloat)
	s.nodes[LabelCandidate] = NodeSchema{
		Label:      LabelCandidate,
		Props:      candidateProps,
		UniqueKeys: []string{"uid"},
	}

	dictNode := func(label NodeLabel, keyField string) {
		props := audit()
		props[keyField] = required(keyField, KindString)
		s.nodes[label] = NodeSchema{
			Label:      label,
			Props:      props,
			UniqueKeys: []string{keyField},
		}
	}
	dictNode(LabelSkill, "name")
	dictNode(LabelProject, "name")
	dictNode(LabelLanguage, "name")
	dictNode(LabelJobTitle, "title")
	dictNode(LabelMajor, "name")
	dictNode(LabelUniversity, "name")

	relCommon := func() map[string]PropSpec {
		return map[string]PropSpec{
			"eid":        prop("eid", KindString),
			"created_at": prop("created_at", KindString),
			"updated_at": prop("updated_at", KindString),
			"weight":     prop("weight", KindInt, KindFloat),
			"cost":       prop("cost", KindFloat),
		}
	}

	hasSkill := relCommon()
	hasSkill["level"] = prop("level", KindInt, KindString)
	hasSkill["level_num"] = prop("level_num", KindInt)
	hasSkill["years"] = prop("years", KindInt, KindFloat)
	s.rels[RelHasSkill] = RelSchema{
		Type: RelHasSkill, Start: LabelCandidate, End: LabelSkill,
		Props: hasSkill, Weighted: true,
	}

	workedOn := relCommon()
	workedOn["since"] = prop("since", KindInt, KindString)
	workedOn["until"] = prop("until", KindInt, KindString)
	workedOn["role"] = prop("role", KindString)
	workedOn["description"] = prop("description", KindString)
	workedOn["objective"] = prop("objective", KindString)
	workedOn["contribution"] = prop("contribution", KindString)
	workedOn["impact"] = prop("impact", KindString)
	workedOn["duration"] = prop("duration", KindString)
	workedOn["collaboration_type"] = prop("collaboration_type", KindString)
	workedOn["scale"] = prop("scale", KindString)
	workedOn["tech_stack"] = prop("tech_stack", KindStringList)
	workedOn["skills_applied"] = prop("skills_applied", KindStringList)
	s.rels[RelWorkedOn] = RelSchema{
		Type: RelWorkedOn, Start: LabelCandidate, End: LabelProject,
		Props: workedOn, Weighted: true,
	}

	speaks := relCommon()
	speaks["level"] = prop("level", KindInt, KindString)
	speaks["level_num"] = prop("level_num", KindInt)
	s.rels[RelSpeaks] = RelSchema{
		Type: RelSpeaks, Start: LabelCandidate, End: LabelLanguage,
		Props: speaks, Weighted: true,
	}

	hasTitle := relCommon()
	hasTitle["since"] = prop("since", KindInt, KindString)
	hasTitle["until"] = prop("until", KindInt, KindString)
	s.rels[RelHasTitle] = RelSchema{
		Type: RelHasTitle, Start: LabelCandidate, End: LabelJobTitle,
		Props: hasTitle, Weighted: false,
	}

	majoredIn := relCommon()
	majoredIn["degree"] = prop("degree", KindString)
	majoredIn["gpa"] = prop("gpa", KindInt, KindFloat)
	s.rels[RelMajoredIn] = RelSchema{
		Type: RelMajoredIn, Start: LabelCandidate, End: LabelMajor,
		Props: majoredIn, Weighted: true,
	}

	graduatedFrom := relCommon()
	graduatedFrom["year"] = prop("year", KindInt)
	s.rels[RelGraduatedFrom] = RelSchema{
		Type: RelGraduatedFrom, Start: LabelCandidate, End: LabelUniversity,
		Props: graduatedFrom, Weighted: true,
	}

	return s
}
