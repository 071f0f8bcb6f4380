package service

import (
	"travelrec/internal/model"
)

// cascadeState is the accumulator threaded through the level loop
type cascadeState struct {
	candidates []model.Item
	level      int
	exhausted  bool
	trace      []model.LevelTrace
}

// CascadeResult is the outcome of running one filter spec
type CascadeResult struct {
	Candidates []model.Item
	// Exhausted is set when the primary level alone eliminated every item
	Exhausted bool
	Trace     []model.LevelTrace
}

// Cascade applies filter specs to a category subset
type Cascade struct {
	synonyms map[string][]string
}

// NewCascade creates a cascade. synonyms widens vehicle type matching.
func NewCascade(synonyms map[string][]string) *Cascade {
	return &Cascade{synonyms: synonyms}
}

// Run evaluates spec over items in priority order. Each level refines the
// previous candidates. A level with no bound parameter is skipped. A
// secondary level that would leave nothing is relaxed and the candidates
// are kept as they were. The primary level is never relaxed.
func (c *Cascade) Run(items []model.Item, spec FilterSpec, params *model.ParamSet) CascadeResult {
	state := cascadeState{candidates: items}
	if len(items) == 0 {
		state.exhausted = true
	}

	for i, constraint := range spec.Levels {
		if state.exhausted {
			break
		}
		state.level = i + 1
		state = c.step(state, constraint, params)
	}

	return CascadeResult{
		Candidates: state.candidates,
		Exhausted:  state.exhausted,
		Trace:      state.trace,
	}
}

func (c *Cascade) step(state cascadeState, constraint Constraint, params *model.ParamSet) cascadeState {
	trace := model.LevelTrace{
		Level:      state.level,
		Constraint: constraint.String(),
		Before:     len(state.candidates),
	}

	pred, bound := constraint.Bind(params, c.synonyms)
	if !bound {
		trace.Outcome = model.LevelUnbound
		trace.After = trace.Before
		state.trace = append(state.trace, trace)
		return state
	}

	kept := make([]model.Item, 0, len(state.candidates))
	for _, item := range state.candidates {
		if pred(item) {
			kept = append(kept, item)
		}
	}

	switch {
	case len(kept) > 0:
		trace.Outcome = model.LevelApplied
		state.candidates = kept
	case state.level == 1:
		trace.Outcome = model.LevelEmptied
		state.candidates = kept
		state.exhausted = true
	default:
		trace.Outcome = model.LevelRelaxed
	}

	trace.After = len(state.candidates)
	state.trace = append(state.trace, trace)
	return state
}
