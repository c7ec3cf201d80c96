package replay

// #region imports
import (
	"fmt"
	"time"

	"github.com/primecodex/emota-engine/internal/config"
	"github.com/primecodex/emota-engine/internal/unity"
)

// #endregion imports

// #region result-types

// StepResult captures the outcome of replaying one fixture step.
type StepResult struct {
	Index           int
	Content         string
	Policy          string
	DominantPattern string
	ExpectedPolicy  string
	ExpectedPattern string
	PolicyMatch     bool // true when no expectation or expectation met
	PatternMatch    bool
	Snapshot        unity.Snapshot
}

// Summary aggregates a replay run.
type Summary struct {
	TotalSteps     int
	PolicyChecks   int
	PolicyMatches  int
	PatternChecks  int
	PatternMatches int
	Passed         bool
}

// #endregion result-types

// #region replay

// Replay runs a fixture through a fresh orchestrator under the given
// config. The orchestrator clock is pinned so repeated runs of the same
// fixture produce identical snapshots.
func Replay(cfg config.Config, f *Fixture) ([]StepResult, Summary, error) {
	epoch := time.Unix(0, 0)
	orch, err := unity.New(cfg, unity.WithClock(func() time.Time { return epoch }))
	if err != nil {
		return nil, Summary{}, fmt.Errorf("build orchestrator: %w", err)
	}

	results := make([]StepResult, 0, len(f.Steps))
	for i, step := range f.Steps {
		snap := orch.ProcessExperience(step.Content, step.Inputs)

		r := StepResult{
			Index:           i,
			Content:         step.Content,
			Policy:          snap.Motivation.Policy,
			DominantPattern: snap.Resonance.DominantPattern,
			ExpectedPolicy:  step.ExpectedPolicy,
			ExpectedPattern: step.ExpectedPattern,
			PolicyMatch:     step.ExpectedPolicy == "" || step.ExpectedPolicy == snap.Motivation.Policy,
			PatternMatch:    step.ExpectedPattern == "" || step.ExpectedPattern == snap.Resonance.DominantPattern,
			Snapshot:        snap,
		}
		results = append(results, r)
	}
	return results, Summarize(results), nil
}

// Summarize computes aggregate stats from step results.
func Summarize(results []StepResult) Summary {
	s := Summary{TotalSteps: len(results), Passed: true}
	for _, r := range results {
		if r.ExpectedPolicy != "" {
			s.PolicyChecks++
			if r.PolicyMatch {
				s.PolicyMatches++
			} else {
				s.Passed = false
			}
		}
		if r.ExpectedPattern != "" {
			s.PatternChecks++
			if r.PatternMatch {
				s.PatternMatches++
			} else {
				s.Passed = false
			}
		}
	}
	return s
}

// #endregion replay
