package archetype

import (
	"math"
	"testing"

	"github.com/primecodex/emota-engine/internal/braid"
	"github.com/primecodex/emota-engine/internal/config"
)

func defaultArchetype() config.Archetype {
	return config.Default().Archetype
}

// reachableState builds a consistent braid state from desire and fear,
// mirroring the braid engine's derivations.
func reachableState(desire, fear float64) braid.State {
	cfg := config.Default().Braid
	balance := 1 - math.Abs(desire-fear)
	arousal := math.Min(1, 2*math.Min(desire, fear))
	return braid.State{
		Desire:  desire,
		Fear:    fear,
		Valence: desire - fear,
		Tension: cfg.ConflictWeight * balance * arousal,
	}
}

func TestActivationsNormalized(t *testing.T) {
	cfg := defaultArchetype()
	for di := 0; di <= 10; di++ {
		for fi := 0; fi <= 10; fi++ {
			st := reachableState(float64(di)/10, float64(fi)/10)
			res := Project(st, cfg)

			acts := []float64{res.Serpent, res.Flame, res.Void, res.Unity}
			sum := 0.0
			for _, a := range acts {
				if a < 0 || a > 1 {
					t.Fatalf("state (%.1f, %.1f): activation %.6f out of [0, 1]", st.Desire, st.Fear, a)
				}
				sum += a
			}
			if sum > 1+1e-9 {
				t.Fatalf("state (%.1f, %.1f): activation sum %.6f exceeds 1", st.Desire, st.Fear, sum)
			}
		}
	}
}

func TestPartialActivationNotRescaled(t *testing.T) {
	// Near-rest state: activations are weak and must be left unscaled.
	res := Project(reachableState(0.1, 0.05), defaultArchetype())
	sum := res.Serpent + res.Flame + res.Void + res.Unity
	if sum >= 1 {
		t.Fatalf("expected partial activation, got sum %.6f", sum)
	}
	if res.Serpent == 0 {
		t.Fatal("expected nonzero serpent activation at rest")
	}
}

func TestDominantPatternHighDesire(t *testing.T) {
	res := Project(reachableState(0.8, 0.05), defaultArchetype())
	if res.Dominant != PatternFlame {
		t.Fatalf("expected flame for high desire, got %s", res.Dominant)
	}
}

func TestDominantPatternConflict(t *testing.T) {
	res := Project(reachableState(0.6, 0.6), defaultArchetype())
	if res.Dominant != PatternVoid {
		t.Fatalf("expected void for high conflict, got %s", res.Dominant)
	}
}

func TestDominantPatternRest(t *testing.T) {
	res := Project(braid.State{}, defaultArchetype())
	if res.Dominant != PatternSerpent {
		t.Fatalf("expected serpent at rest, got %s", res.Dominant)
	}
}

func biasOnly(serpent, flame, void, unity float64) config.Archetype {
	cfg := defaultArchetype()
	cfg.Serpent = config.AxisRow{Bias: serpent}
	cfg.Flame = config.AxisRow{Bias: flame}
	cfg.Void = config.AxisRow{Bias: void}
	cfg.Unity = config.AxisRow{Bias: unity}
	return cfg
}

func TestTieBreakAllEqual(t *testing.T) {
	// Equal bias rows with zero weights give four identical activations;
	// serpent holds the highest tie-break priority.
	res := Project(braid.State{}, biasOnly(0.5, 0.5, 0.5, 0.5))
	if res.Dominant != PatternSerpent {
		t.Fatalf("expected serpent on four-way tie, got %s", res.Dominant)
	}
	if res.Spread != 0 {
		t.Fatalf("expected zero spread on tie, got %.6f", res.Spread)
	}
}

func TestTieBreakFlameOverVoid(t *testing.T) {
	res := Project(braid.State{}, biasOnly(0, 0.6, 0.6, 0))
	if res.Dominant != PatternFlame {
		t.Fatalf("expected flame to win tie with void, got %s", res.Dominant)
	}
}

func TestResonanceModes(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Archetype
		want Mode
	}{
		{"blended on level activations", biasOnly(0.2, 0.2, 0.2, 0.2), ModeBlended},
		{"focused on one strong axis", biasOnly(0.8, 0, 0, 0), ModeFocused},
		{"flowing on separated weak axes", biasOnly(0.4, 0.2, 0, 0), ModeFlowing},
	}
	for _, c := range cases {
		res := Project(braid.State{}, c.cfg)
		if res.Mode != c.want {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, res.Mode)
		}
	}
}

func TestHarmonicFrequency(t *testing.T) {
	st := reachableState(0.6, 0.6)
	res := Project(st, defaultArchetype())

	want := st.Tension * (1 - res.Spread)
	if math.Abs(res.HarmonicFrequency-want) > 1e-12 {
		t.Fatalf("expected harmonic frequency %.6f, got %.6f", want, res.HarmonicFrequency)
	}
}

func TestProjectIsStateless(t *testing.T) {
	st := reachableState(0.7, 0.2)
	a := Project(st, defaultArchetype())
	// An unrelated projection in between must not influence the second call.
	Project(reachableState(0.1, 0.9), defaultArchetype())
	b := Project(st, defaultArchetype())

	if a != b {
		t.Fatalf("projection is not stateless: %+v vs %+v", a, b)
	}
}

func TestActivationAccessor(t *testing.T) {
	res := Resonance{Serpent: 0.1, Flame: 0.2, Void: 0.3, Unity: 0.4}
	for _, c := range []struct {
		p    Pattern
		want float64
	}{
		{PatternSerpent, 0.1}, {PatternFlame, 0.2}, {PatternVoid, 0.3}, {PatternUnity, 0.4},
	} {
		if got := res.Activation(c.p); got != c.want {
			t.Errorf("%s: expected %.1f, got %.1f", c.p, c.want, got)
		}
	}
}
