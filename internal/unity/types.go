package unity

// #region imports
import (
	"github.com/primecodex/emota-engine/internal/archetype"
	"github.com/primecodex/emota-engine/internal/braid"
)

// #endregion imports

// #region motivational-state

// MotivationalState is the snapshot view of the braid state. The field
// set is a stable output contract consumed by schema validation.
type MotivationalState struct {
	Desire    float64 `json:"desire"`
	Fear      float64 `json:"fear"`
	Valence   float64 `json:"valence"`
	Tension   float64 `json:"tension"`
	Policy    string  `json:"policy"`
	BraidCode int     `json:"braid_code"`
}

// #endregion motivational-state

// #region archetypal-resonance

// ArchetypalResonance is the snapshot view of the archetype projection.
type ArchetypalResonance struct {
	DominantPattern   string  `json:"dominant_pattern"`
	Serpent           float64 `json:"serpent_activation"`
	Flame             float64 `json:"flame_activation"`
	Void              float64 `json:"void_activation"`
	Unity             float64 `json:"unity_activation"`
	ResonanceMode     string  `json:"resonance_mode"`
	HarmonicFrequency float64 `json:"harmonic_frequency"`
}

// #endregion archetypal-resonance

// #region snapshot

// Snapshot is the unified per-experience output record.
type Snapshot struct {
	Identity    string              `json:"identity"`
	Timestamp   string              `json:"timestamp"`
	Content     string              `json:"content"`
	ContentHash uint32              `json:"content_hash"`
	Inputs      braid.Inputs        `json:"inputs"`
	Motivation  MotivationalState   `json:"motivational_state"`
	Resonance   ArchetypalResonance `json:"archetypal_resonance"`
}

// #endregion snapshot

// #region converters

func motivationalView(st braid.State) MotivationalState {
	return MotivationalState{
		Desire:    st.Desire,
		Fear:      st.Fear,
		Valence:   st.Valence,
		Tension:   st.Tension,
		Policy:    string(st.Policy),
		BraidCode: st.BraidCode,
	}
}

func resonanceView(res archetype.Resonance) ArchetypalResonance {
	return ArchetypalResonance{
		DominantPattern:   string(res.Dominant),
		Serpent:           res.Serpent,
		Flame:             res.Flame,
		Void:              res.Void,
		Unity:             res.Unity,
		ResonanceMode:     string(res.Mode),
		HarmonicFrequency: res.HarmonicFrequency,
	}
}

// #endregion converters
