package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/primecodex/emota-engine/internal/braid"
)

// #endregion imports

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a
// recorded experience sequence with optional per-step expectations.
type Fixture struct {
	Description string        `json:"description"`
	Steps       []FixtureStep `json:"steps"`
}

// FixtureStep is one recorded experience. Expected fields are optional;
// empty strings mean "no assertion for this step".
type FixtureStep struct {
	Content         string       `json:"content"`
	Inputs          braid.Inputs `json:"inputs"`
	ExpectedPolicy  string       `json:"expected_policy,omitempty"`
	ExpectedPattern string       `json:"expected_pattern,omitempty"`
}

// #endregion fixture-types

// #region loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("fixture %s: no steps", path)
	}
	return &f, nil
}

// #endregion loader
