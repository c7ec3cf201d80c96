package archetype

// #region imports
import (
	"github.com/primecodex/emota-engine/internal/braid"
	"github.com/primecodex/emota-engine/internal/config"
)

// #endregion imports

// #region project

// Project maps a motivational state onto the four archetypal axes. It is
// a pure function: no state is carried between calls.
func Project(st braid.State, cfg config.Archetype) Resonance {
	raw := map[Pattern]float64{
		PatternSerpent: activate(st, cfg.Serpent),
		PatternFlame:   activate(st, cfg.Flame),
		PatternVoid:    activate(st, cfg.Void),
		PatternUnity:   activate(st, cfg.Unity),
	}

	// Partial activation is valid; rescale only when the raw sum exceeds 1.
	sum := raw[PatternSerpent] + raw[PatternFlame] + raw[PatternVoid] + raw[PatternUnity]
	if sum > 1 {
		for p, v := range raw {
			raw[p] = v / sum
		}
	}

	dominant, spread := rank(raw)
	res := Resonance{
		Serpent:  raw[PatternSerpent],
		Flame:    raw[PatternFlame],
		Void:     raw[PatternVoid],
		Unity:    raw[PatternUnity],
		Dominant: dominant,
		Spread:   spread,
	}
	res.Mode = mode(raw[dominant], spread, cfg)
	res.HarmonicFrequency = st.Tension * (1 - spread)
	return res
}

// #endregion project

// #region activate

// activate applies one matrix row: bias plus weighted state, saturated
// into [0, 1].
func activate(st braid.State, row config.AxisRow) float64 {
	v := row.Bias +
		row.Desire*st.Desire +
		row.Fear*st.Fear +
		row.Valence*st.Valence +
		row.Tension*st.Tension
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion activate

// #region rank

// rank finds the dominant axis and the spread (max minus second max).
// Iteration follows tieBreakOrder, and only a strictly greater activation
// displaces the current leader, so ties resolve to the earlier axis.
func rank(raw map[Pattern]float64) (Pattern, float64) {
	dominant := tieBreakOrder[0]
	max := raw[dominant]
	second := 0.0

	for _, p := range tieBreakOrder[1:] {
		v := raw[p]
		switch {
		case v > max:
			second = max
			max = v
			dominant = p
		case v > second:
			second = v
		}
	}
	return dominant, max - second
}

// #endregion rank

// #region mode

// mode classifies the spread against the configured thresholds.
func mode(top, spread float64, cfg config.Archetype) Mode {
	switch {
	case spread < cfg.BlendedSpread:
		return ModeBlended
	case top >= cfg.FocusThreshold:
		return ModeFocused
	default:
		return ModeFlowing
	}
}

// #endregion mode
