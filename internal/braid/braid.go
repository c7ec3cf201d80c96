package braid

// #region imports
import (
	"math"

	"github.com/primecodex/emota-engine/internal/config"
)

// #endregion imports

// #region step

// Step is a pure function computing the next motivational state from the
// previous state and one input vector. It never fails for a validated
// config: inputs are clamped into [0, 1] and every arithmetic path is
// total over that domain.
func Step(prev State, in Inputs, cfg config.Braid) Result {
	in, clamped := normalizeInputs(in)

	desire := clamp01(cfg.DecayDesire*prev.Desire + (1-cfg.DecayDesire)*in.GoalValue + cfg.NoveltyGain*in.Novelty)
	fear := clamp01(cfg.DecayFear*prev.Fear + (1-cfg.DecayFear)*in.ThreatLevel + cfg.UncertaintyGain*in.Uncertainty)

	next := State{
		Desire:  desire,
		Fear:    fear,
		Valence: desire - fear,
		Tension: tension(desire, fear, cfg.ConflictWeight),
	}
	next.DesireLatched = latch(desire, prev.DesireLatched, cfg.DesireSetHigh, cfg.DesireReleaseLow)
	next.FearLatched = latch(fear, prev.FearLatched, cfg.FearSetHigh, cfg.FearReleaseLow)
	next.BraidCode = braidCode(next.DesireLatched, next.FearLatched)
	next.Policy = derivePolicy(next.DesireLatched, next.FearLatched, next.Tension, cfg.TensionInvestigate)

	return Result{State: next, Clamped: clamped}
}

// #endregion step

// #region tension

// tension peaks at ConflictWeight when desire and fear are equal and both
// high, and falls toward zero when either is low or they diverge.
func tension(desire, fear, conflictWeight float64) float64 {
	balance := 1 - math.Abs(desire-fear)
	arousal := math.Min(1, 2*math.Min(desire, fear))
	return clamp01(conflictWeight * balance * arousal)
}

// #endregion tension

// #region latch

// latch implements the two-threshold hysteresis bit: ON at or above
// setHigh, OFF at or below releaseLow, held in between.
func latch(value float64, prev bool, setHigh, releaseLow float64) bool {
	if prev {
		return value > releaseLow
	}
	return value >= setHigh
}

// braidCode encodes the latch pair as a 2-bit integer in [0, 3].
func braidCode(desireLatched, fearLatched bool) int {
	code := 0
	if desireLatched {
		code |= 1
	}
	if fearLatched {
		code |= 2
	}
	return code
}

// #endregion latch

// #region policy

// policyKey makes the decision table total over the four latch states.
type policyKey struct {
	desire bool
	fear   bool
}

var policyTable = map[policyKey]Policy{
	{desire: false, fear: false}: PolicyFreeze,
	{desire: true, fear: false}:  PolicyApproach,
	{desire: false, fear: true}:  PolicyAvoid,
	{desire: true, fear: true}:   PolicyInvestigate,
}

// derivePolicy reads the latch decision table. Sustained high tension is
// the boundary case and resolves to the conservative investigate default.
func derivePolicy(desireLatched, fearLatched bool, tension, investigateAt float64) Policy {
	if tension >= investigateAt {
		return PolicyInvestigate
	}
	return policyTable[policyKey{desire: desireLatched, fear: fearLatched}]
}

// #endregion policy

// #region normalize

// normalizeInputs clamps each input into [0, 1], recording what changed.
func normalizeInputs(in Inputs) (Inputs, []ClampEvent) {
	var events []ClampEvent
	fields := []struct {
		name  string
		value *float64
	}{
		{"goal_value", &in.GoalValue},
		{"threat_level", &in.ThreatLevel},
		{"novelty", &in.Novelty},
		{"uncertainty", &in.Uncertainty},
	}
	for _, f := range fields {
		c := clamp01(*f.value)
		if c != *f.value {
			events = append(events, ClampEvent{Field: f.name, Raw: *f.value, Clamped: c})
			*f.value = c
		}
	}
	return in, events
}

// clamp01 saturates into [0, 1]. NaN maps to 0 so a malformed input
// scalar is normalized (and recorded as a clamp event) instead of
// propagating through the state.
func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion normalize
