package graph

import (
	"regexp"
	"strings"
)

// DegreeUnknown is the canonical tier for blank or unrecognized degrees.
const DegreeUnknown = "unknown"

var degreeScores = map[string]float64{
	"high_school":            2.0,
	"diploma":                3.0,
	"associate":              4.0,
	"bachelor":               6.0,
	"bachelor_honours":       6.5,
	"master":                 8.0,
	"mphil":                  8.5,
	"professional_master":    8.5,
	"professional_doctorate": 9.5,
	"phd":                    10.0,
	DegreeUnknown:            0.0,
}

type degreeAlias struct {
	pattern *regexp.Regexp
	canon   string
}

// Alias rules are ordered; the first match wins. A string naming both a
// bachelor variant and honours therefore resolves to bachelor.
var degreeAliases = []degreeAlias{
	{regexp.MustCompile(`(high\s*school|secondary|hs diploma)`), "high_school"},
	{regexp.MustCompile(`(certificate|cert|pgcert|postgraduate\s+certificate|pgdip|postgraduate\s+diploma)`), "diploma"},
	{regexp.MustCompile(`\b(associate|aa|as|aas|abdus|abus|afa|ae)\b`), "associate"},
	{regexp.MustCompile(`\b(bachelors?|ba|bs|bsc|beng|barch|bed|llb|bn|bsn|bcs|bfa|bsw)\b|b\.s\.|b\.a\.`), "bachelor"},
	{regexp.MustCompile(`(honours|honors|\bhons\b)`), "bachelor_honours"},
	{regexp.MustCompile(`\b(masters?|ma|ms|msc|meng|med|msw|mca|mn|msn)\b|m\.s\.|m\.a\.`), "master"},
	{regexp.MustCompile(`\b(mphil)\b`), "mphil"},
	{regexp.MustCompile(`\b(mba|mpp|mpa|mph|llm|march)\b`), "professional_master"},
	{regexp.MustCompile(`\b(phd|dphil|scd|dsc)\b`), "phd"},
	{regexp.MustCompile(`\b(md|jd|do|dds|dmd|pharmd|dvm|engd|dba|edd|drph)\b`), "professional_doctorate"},
}

// NormalizeDegree canonicalizes free-text degree names into one of the fixed
// tiers. Blank input and unmatched text both map to "unknown".
func NormalizeDegree(deg string) string {
	norm := strings.ToLower(strings.TrimSpace(deg))
	if norm == "" {
		return DegreeUnknown
	}
	norm = strings.ReplaceAll(norm, "'", "")
	norm = strings.ReplaceAll(norm, "-", " ")
	for _, alias := range degreeAliases {
		if alias.pattern.MatchString(norm) {
			return alias.canon
		}
	}
	return DegreeUnknown
}

// DegreeToScore maps a free-text degree to its tier score.
func DegreeToScore(deg string) float64 {
	return degreeScores[NormalizeDegree(deg)]
}
