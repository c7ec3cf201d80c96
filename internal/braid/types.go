package braid

// #region policy

// Policy is the action tendency derived from the latch pair and tension.
type Policy string

const (
	PolicyApproach    Policy = "approach"
	PolicyAvoid       Policy = "avoid"
	PolicyInvestigate Policy = "investigate"
	PolicyFreeze      Policy = "freeze"
)

// #endregion policy

// #region inputs

// Inputs is the four-scalar environmental vector for one step.
// Expected range is [0, 1]; out-of-range values are clamped, not rejected.
type Inputs struct {
	GoalValue   float64 `json:"goal_value"`
	ThreatLevel float64 `json:"threat_level"`
	Novelty     float64 `json:"novelty"`
	Uncertainty float64 `json:"uncertainty"`
}

// #endregion inputs

// #region state

// State is the coupled desire/fear vector with its hysteresis latches.
// Valence and tension are always recomputed from desire and fear; the
// struct is treated as immutable once returned from Step.
type State struct {
	Desire  float64 `json:"desire"`  // [0, 1]
	Fear    float64 `json:"fear"`    // [0, 1]
	Valence float64 `json:"valence"` // [-1, 1], desire - fear
	Tension float64 `json:"tension"` // [0, 1]

	DesireLatched bool `json:"desire_latched"`
	FearLatched   bool `json:"fear_latched"`

	Policy    Policy `json:"policy"`
	BraidCode int    `json:"braid_code"` // 2*fear_latched + desire_latched, 0-3
}

// InitialState returns the pre-experience rest state.
func InitialState() State {
	return State{Policy: PolicyFreeze}
}

// #endregion state

// #region clamp-event

// ClampEvent records one input that arrived outside [0, 1] and was
// normalized. This is observability data, not an error.
type ClampEvent struct {
	Field   string
	Raw     float64
	Clamped float64
}

// #endregion clamp-event

// #region result

// Result bundles the new state with any clamp events from this step.
type Result struct {
	State   State
	Clamped []ClampEvent
}

// #endregion result
