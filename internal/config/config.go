package config

// #region imports
import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// #endregion imports

// #region braid-config

// Braid holds the desire/fear dynamics parameters.
// All values are validated by Config.Validate before an engine is built.
type Braid struct {
	DecayDesire     float64 `yaml:"decay_desire" env:"EMOTA_DECAY_DESIRE"`         // [0, 1)
	DecayFear       float64 `yaml:"decay_fear" env:"EMOTA_DECAY_FEAR"`             // [0, 1)
	NoveltyGain     float64 `yaml:"novelty_gain" env:"EMOTA_NOVELTY_GAIN"`         // [0, 1]
	UncertaintyGain float64 `yaml:"uncertainty_gain" env:"EMOTA_UNCERTAINTY_GAIN"` // [0, 1]
	ConflictWeight  float64 `yaml:"conflict_weight" env:"EMOTA_CONFLICT_WEIGHT"`   // (0, 1], tension ceiling

	// Hysteresis latch thresholds. A latch turns ON at SetHigh and OFF at
	// ReleaseLow; ReleaseLow must be strictly below SetHigh.
	DesireSetHigh    float64 `yaml:"desire_set_high" env:"EMOTA_DESIRE_SET_HIGH"`       // (0, 1)
	DesireReleaseLow float64 `yaml:"desire_release_low" env:"EMOTA_DESIRE_RELEASE_LOW"` // (0, 1)
	FearSetHigh      float64 `yaml:"fear_set_high" env:"EMOTA_FEAR_SET_HIGH"`           // (0, 1)
	FearReleaseLow   float64 `yaml:"fear_release_low" env:"EMOTA_FEAR_RELEASE_LOW"`     // (0, 1)

	// TensionInvestigate overrides the policy table: at or above this
	// tension the policy is always "investigate".
	TensionInvestigate float64 `yaml:"tension_investigate" env:"EMOTA_TENSION_INVESTIGATE"` // (0, 1]
}

// #endregion braid-config

// #region archetype-config

// AxisRow is one row of the archetype projection matrix: a bias plus
// weights over (desire, fear, valence, tension).
type AxisRow struct {
	Bias    float64 `yaml:"bias"`    // [0, 1]
	Desire  float64 `yaml:"desire"`  // [-1, 1]
	Fear    float64 `yaml:"fear"`    // [-1, 1]
	Valence float64 `yaml:"valence"` // [-1, 1]
	Tension float64 `yaml:"tension"` // [-1, 1]
}

// Archetype holds the projection matrix and resonance-mode thresholds.
type Archetype struct {
	Serpent AxisRow `yaml:"serpent"`
	Flame   AxisRow `yaml:"flame"`
	Void    AxisRow `yaml:"void"`
	Unity   AxisRow `yaml:"unity"`

	BlendedSpread  float64 `yaml:"blended_spread" env:"EMOTA_BLENDED_SPREAD"`   // (0, 1), spread below → blended
	FocusThreshold float64 `yaml:"focus_threshold" env:"EMOTA_FOCUS_THRESHOLD"` // (0, 1), top axis at/above → focused
}

// #endregion archetype-config

// #region memory-config

// Memory bounds the episodic buffer. Capacity 0 disables the buffer.
type Memory struct {
	Capacity int `yaml:"capacity" env:"EMOTA_MEMORY_CAPACITY"` // >= 0
}

// #endregion memory-config

// #region config

// Config is the full validated parameter set for one engine instance.
// It is always passed explicitly into constructors; there is no ambient
// global configuration.
type Config struct {
	Identity  string    `yaml:"identity" env:"EMOTA_IDENTITY"`
	Braid     Braid     `yaml:"braid"`
	Archetype Archetype `yaml:"archetype"`
	Memory    Memory    `yaml:"memory"`
}

// Default returns the calibrated default configuration.
func Default() Config {
	return Config{
		Identity: "Prime",
		Braid: Braid{
			DecayDesire:        0.10,
			DecayFear:          0.10,
			NoveltyGain:        0.30,
			UncertaintyGain:    0.30,
			ConflictWeight:     0.85,
			DesireSetHigh:      0.50,
			DesireReleaseLow:   0.35,
			FearSetHigh:        0.50,
			FearReleaseLow:     0.35,
			TensionInvestigate: 0.90,
		},
		Archetype: Archetype{
			Serpent:        AxisRow{Bias: 0.55, Desire: -0.45, Fear: 0.15, Valence: -0.25, Tension: -0.35},
			Flame:          AxisRow{Bias: 0.00, Desire: 0.85, Fear: -0.35, Valence: 0.35, Tension: 0.05},
			Void:           AxisRow{Bias: 0.00, Desire: 0.10, Fear: 0.25, Valence: -0.30, Tension: 0.75},
			Unity:          AxisRow{Bias: 0.00, Desire: 0.20, Fear: 0.20, Valence: 0.00, Tension: 0.40},
			BlendedSpread:  0.10,
			FocusThreshold: 0.50,
		},
		Memory: Memory{Capacity: 1000},
	}
}

// #endregion config

// #region load

// Load resolves a configuration: defaults, then the optional YAML file,
// then EMOTA_* environment overrides, then validation. Path may be empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// #endregion load
