package model

// RecommendationRequest represents a recommendation request from the HTTP boundary
type RecommendationRequest struct {
	Query string `json:"query" form:"q"`
}

// RecommendationResponse is the externally visible result object. It is the
// only thing written to stdout by the CLI.
type RecommendationResponse struct {
	Success         bool     `json:"success"`
	Query           string   `json:"query"`
	Category        string   `json:"category,omitempty"`
	Count           int      `json:"count"`
	Recommendations []string `json:"recommendations"`
	Alternatives    []string `json:"alternatives,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// LevelOutcome describes what happened to one cascade level
type LevelOutcome string

const (
	LevelApplied LevelOutcome = "applied"
	LevelUnbound LevelOutcome = "unbound" // no param for this level
	LevelRelaxed LevelOutcome = "relaxed" // would have emptied the set
	LevelEmptied LevelOutcome = "emptied" // primary level emptied the set
)

// LevelTrace records one step of the cascade
type LevelTrace struct {
	Level      int          `json:"level"`
	Constraint string       `json:"constraint"`
	Outcome    LevelOutcome `json:"outcome"`
	Before     int          `json:"before"`
	After      int          `json:"after"`
}

// Recommendation is the internal result of one evaluation
type Recommendation struct {
	Intent       *Intent      `json:"intent"`
	RankedItems  []Item       `json:"-"`
	Alternatives []string     `json:"alternatives"`
	Exhausted    bool         `json:"exhausted"`
	Trace        []LevelTrace `json:"trace"`
	Took         int64        `json:"took_ms"`
}

// Names returns the display names of the ranked items in order
func (r *Recommendation) Names() []string {
	names := make([]string, 0, len(r.RankedItems))
	for _, item := range r.RankedItems {
		names = append(names, item.DisplayName())
	}
	return names
}
