package archetype

// #region pattern

// Pattern names one of the four resonance axes.
type Pattern string

const (
	PatternSerpent Pattern = "serpent"
	PatternFlame   Pattern = "flame"
	PatternVoid    Pattern = "void"
	PatternUnity   Pattern = "unity"
)

// tieBreakOrder is the fixed dominance priority. The first axis in this
// list wins exact ties; the ordering is arbitrary but part of the
// determinism contract.
var tieBreakOrder = [4]Pattern{PatternSerpent, PatternFlame, PatternVoid, PatternUnity}

// #endregion pattern

// #region mode

// Mode classifies the activation spread.
type Mode string

const (
	ModeBlended Mode = "blended" // activations nearly level
	ModeFocused Mode = "focused" // one strong axis well clear of the rest
	ModeFlowing Mode = "flowing" // separated but no single strong peak
)

// #endregion mode

// #region resonance

// Resonance is the stateless projection of one motivational state onto
// the four axes. Activations are each in [0, 1] and sum to at most 1
// after normalization.
type Resonance struct {
	Serpent float64 `json:"serpent_activation"`
	Flame   float64 `json:"flame_activation"`
	Void    float64 `json:"void_activation"`
	Unity   float64 `json:"unity_activation"`

	Dominant          Pattern `json:"dominant_pattern"`
	Mode              Mode    `json:"resonance_mode"`
	HarmonicFrequency float64 `json:"harmonic_frequency"`

	// Spread is max minus second-max activation, kept as a diagnostic.
	Spread float64 `json:"-"`
}

// Activation returns the score for a single axis.
func (r Resonance) Activation(p Pattern) float64 {
	switch p {
	case PatternSerpent:
		return r.Serpent
	case PatternFlame:
		return r.Flame
	case PatternVoid:
		return r.Void
	case PatternUnity:
		return r.Unity
	}
	return 0
}

// #endregion resonance
