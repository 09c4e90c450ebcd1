package types

// MatchRequest is the search specification: hard filters (must_have) and
// weighted soft preferences (nice_to_have).
type MatchRequest struct {
	TopK          int                `json:"top_k" binding:"omitempty,min=1,max=200"`
	MustHave      *MustHave          `json:"must_have"`
	NiceToHave    *NiceToHave        `json:"nice_to_have"`
	Weights       map[string]float64 `json:"weights"`
	Explain       *bool              `json:"explain"`
	IncludeFields []string           `json:"include_fields"`
	Cursor        string             `json:"cursor"`
}

// MustHave constraints are conjunctive: every listed skill and language must
// be satisfied; job_titles_any and location_any accept any single match.
type MustHave struct {
	Skills       []MustHaveSkill    `json:"skills"`
	Languages    []MustHaveLanguage `json:"languages"`
	JobTitlesAny []string           `json:"job_titles_any"`
	LocationAny  []string           `json:"location_any"`
	RemoteOK     *bool              `json:"remote_ok"`
	SalaryMax    *float64           `json:"salary_max"`
}

type MustHaveSkill struct {
	Name     string   `json:"name"`
	MinLevel string   `json:"min_level"`
	MinYears *float64 `json:"min_years" binding:"omitempty,min=0"`
}

type MustHaveLanguage struct {
	Name     string `json:"name"`
	MinLevel string `json:"min_level"`
}

type NiceToHave struct {
	Skills             []NiceSkill `json:"skills"`
	JobTitles          []string    `json:"job_titles"`
	Languages          []string    `json:"languages"`
	Education          []string    `json:"education"`
	Keywords           []string    `json:"keywords"`
	LocationPreference string      `json:"location_preference"`
}

type NiceSkill struct {
	Name           string   `json:"name"`
	Weight         *float64 `json:"weight"`
	PreferMinYears float64  `json:"prefer_min_years"`
	PreferLevel    string   `json:"prefer_level"`
}

type ReasonItem struct {
	Kind         string  `json:"kind"`
	Detail       string  `json:"detail"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

type MatchItem struct {
	Candidate map[string]any `json:"candidate"`
	Score     float64        `json:"score"`
	Reasons   []ReasonItem   `json:"reasons,omitempty"`
}

type MatchResponse struct {
	TopK       int         `json:"top_k"`
	Items      []MatchItem `json:"items"`
	NextCursor *string     `json:"next_cursor"`
}

// QueryRequest is the pure-filter entry point: must-have semantics without
// scoring, paginated.
type QueryRequest struct {
	MustHave *MustHave `json:"must_have"`
	Skip     int       `json:"skip" binding:"omitempty,min=0"`
	Limit    int       `json:"limit" binding:"omitempty,min=1,max=200"`
}

type QueryResponse struct {
	Items []map[string]any `json:"items"`
	Skip  int              `json:"skip"`
	Limit int              `json:"limit"`
}
