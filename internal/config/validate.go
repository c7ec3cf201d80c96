package config

import (
	"fmt"
	"math"
)

// #region config-error

// ConfigError reports a missing or out-of-range parameter. Construction
// fails on the first violation; values are never silently clamped.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// #endregion config-error

// #region validate

// Validate checks every parameter against its documented range.
func (c Config) Validate() error {
	if c.Identity == "" {
		return &ConfigError{Key: "identity", Reason: "must not be empty"}
	}

	b := c.Braid
	checks := []struct {
		key    string
		value  float64
		lo, hi float64
		loOpen bool // true when the lower bound is exclusive
		hiOpen bool // true when the upper bound is exclusive
	}{
		{"braid.decay_desire", b.DecayDesire, 0, 1, false, true},
		{"braid.decay_fear", b.DecayFear, 0, 1, false, true},
		{"braid.novelty_gain", b.NoveltyGain, 0, 1, false, false},
		{"braid.uncertainty_gain", b.UncertaintyGain, 0, 1, false, false},
		{"braid.conflict_weight", b.ConflictWeight, 0, 1, true, false},
		{"braid.desire_set_high", b.DesireSetHigh, 0, 1, true, true},
		{"braid.desire_release_low", b.DesireReleaseLow, 0, 1, true, true},
		{"braid.fear_set_high", b.FearSetHigh, 0, 1, true, true},
		{"braid.fear_release_low", b.FearReleaseLow, 0, 1, true, true},
		{"braid.tension_investigate", b.TensionInvestigate, 0, 1, true, false},
		{"archetype.blended_spread", c.Archetype.BlendedSpread, 0, 1, true, true},
		{"archetype.focus_threshold", c.Archetype.FocusThreshold, 0, 1, true, true},
	}
	for _, ck := range checks {
		if err := checkRange(ck.key, ck.value, ck.lo, ck.hi, ck.loOpen, ck.hiOpen); err != nil {
			return err
		}
	}

	if b.DesireReleaseLow >= b.DesireSetHigh {
		return &ConfigError{Key: "braid.desire_release_low", Reason: "must be below desire_set_high"}
	}
	if b.FearReleaseLow >= b.FearSetHigh {
		return &ConfigError{Key: "braid.fear_release_low", Reason: "must be below fear_set_high"}
	}

	rows := []struct {
		key string
		row AxisRow
	}{
		{"archetype.serpent", c.Archetype.Serpent},
		{"archetype.flame", c.Archetype.Flame},
		{"archetype.void", c.Archetype.Void},
		{"archetype.unity", c.Archetype.Unity},
	}
	for _, r := range rows {
		if err := checkAxisRow(r.key, r.row); err != nil {
			return err
		}
	}

	if c.Memory.Capacity < 0 {
		return &ConfigError{Key: "memory.capacity", Reason: "must be >= 0"}
	}
	return nil
}

// #endregion validate

// #region helpers

func checkRange(key string, v, lo, hi float64, loOpen, hiOpen bool) error {
	// NaN compares false against every bound, so finiteness is checked
	// explicitly before the range.
	if !isFinite(v) {
		return &ConfigError{Key: key, Reason: fmt.Sprintf("%g is not a finite number", v)}
	}
	loBad := v < lo || (loOpen && v == lo)
	hiBad := v > hi || (hiOpen && v == hi)
	if loBad || hiBad {
		return &ConfigError{
			Key:    key,
			Reason: fmt.Sprintf("%g outside %s%g, %g%s", v, bracket(loOpen, "("), lo, hi, bracket(hiOpen, ")")),
		}
	}
	return nil
}

func checkAxisRow(key string, row AxisRow) error {
	if !isFinite(row.Bias) || row.Bias < 0 || row.Bias > 1 {
		return &ConfigError{Key: key + ".bias", Reason: fmt.Sprintf("%g outside [0, 1]", row.Bias)}
	}
	weights := []struct {
		name string
		v    float64
	}{
		{"desire", row.Desire},
		{"fear", row.Fear},
		{"valence", row.Valence},
		{"tension", row.Tension},
	}
	for _, w := range weights {
		if !isFinite(w.v) || w.v < -1 || w.v > 1 {
			return &ConfigError{Key: key + "." + w.name, Reason: fmt.Sprintf("%g outside [-1, 1]", w.v)}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func bracket(open bool, b string) string {
	if open {
		return b
	}
	if b == "(" {
		return "["
	}
	return "]"
}

// #endregion helpers
