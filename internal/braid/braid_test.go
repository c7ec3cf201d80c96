package braid

import (
	"math"
	"testing"

	"github.com/primecodex/emota-engine/internal/config"
)

func defaultBraid() config.Braid {
	return config.Default().Braid
}

func step(t *testing.T, prev State, in Inputs) State {
	t.Helper()
	return Step(prev, in, defaultBraid()).State
}

func TestApproachScenario(t *testing.T) {
	st := step(t, InitialState(), Inputs{GoalValue: 0.7, ThreatLevel: 0.1})

	if st.Policy != PolicyApproach {
		t.Fatalf("expected approach, got %s", st.Policy)
	}
	if st.FearLatched {
		t.Fatal("fear latch should be off")
	}
	if !st.DesireLatched {
		t.Fatal("desire latch should be on")
	}
	if st.BraidCode != 1 {
		t.Fatalf("expected braid code 1, got %d", st.BraidCode)
	}
}

func TestFreezeScenario(t *testing.T) {
	st := step(t, InitialState(), Inputs{GoalValue: 0.2, ThreatLevel: 0.2})

	if st.Policy != PolicyFreeze {
		t.Fatalf("expected freeze, got %s", st.Policy)
	}
	if st.BraidCode != 0 {
		t.Fatalf("expected braid code 0, got %d", st.BraidCode)
	}
}

func TestConflictScenario(t *testing.T) {
	cfg := defaultBraid()
	st := step(t, InitialState(), Inputs{GoalValue: 0.6, ThreatLevel: 0.6})

	if st.Policy != PolicyInvestigate {
		t.Fatalf("expected investigate, got %s", st.Policy)
	}
	// Equal desire and fear drive tension to its ceiling, the conflict weight.
	if math.Abs(st.Tension-cfg.ConflictWeight) > 1e-9 {
		t.Fatalf("expected tension %.4f, got %.4f", cfg.ConflictWeight, st.Tension)
	}
	if st.BraidCode != 3 {
		t.Fatalf("expected braid code 3, got %d", st.BraidCode)
	}
}

func TestAvoidScenario(t *testing.T) {
	st := step(t, InitialState(), Inputs{GoalValue: 0.1, ThreatLevel: 0.8})

	if st.Policy != PolicyAvoid {
		t.Fatalf("expected avoid, got %s", st.Policy)
	}
	if st.BraidCode != 2 {
		t.Fatalf("expected braid code 2, got %d", st.BraidCode)
	}
}

func TestValenceInvariant(t *testing.T) {
	inputs := []Inputs{
		{GoalValue: 0.9},
		{ThreatLevel: 0.9},
		{GoalValue: 0.5, ThreatLevel: 0.5, Novelty: 0.5, Uncertainty: 0.5},
		{GoalValue: 1, ThreatLevel: 1, Novelty: 1, Uncertainty: 1},
	}
	st := InitialState()
	for i, in := range inputs {
		st = step(t, st, in)
		if math.Abs(st.Valence-(st.Desire-st.Fear)) > 1e-12 {
			t.Fatalf("step %d: valence %.6f != desire-fear %.6f", i, st.Valence, st.Desire-st.Fear)
		}
	}
}

func TestHysteresisNoFlapping(t *testing.T) {
	cfg := defaultBraid()
	st := InitialState()

	// Drive the desire latch on.
	st = step(t, st, Inputs{GoalValue: 0.8})
	if !st.DesireLatched {
		t.Fatal("latch should engage at high goal value")
	}

	// Oscillate the goal around SetHigh. The latch must not toggle while
	// desire stays above ReleaseLow.
	toggles := 0
	prev := st.DesireLatched
	for i := 0; i < 20; i++ {
		goal := cfg.DesireSetHigh - 0.05
		if i%2 == 0 {
			goal = cfg.DesireSetHigh + 0.05
		}
		st = step(t, st, Inputs{GoalValue: goal})
		if st.DesireLatched != prev {
			toggles++
			prev = st.DesireLatched
		}
	}
	if toggles != 0 {
		t.Fatalf("latch toggled %d times while oscillating around set_high", toggles)
	}

	// Dropping the goal releases the latch below ReleaseLow.
	for i := 0; i < 10 && st.DesireLatched; i++ {
		st = step(t, st, Inputs{GoalValue: 0})
	}
	if st.DesireLatched {
		t.Fatal("latch should release once desire decays below release_low")
	}
}

func TestLatchEngagesOnlyAtSetHigh(t *testing.T) {
	cfg := defaultBraid()

	st := step(t, InitialState(), Inputs{GoalValue: cfg.DesireSetHigh - 0.01})
	if st.DesireLatched {
		t.Fatalf("latch engaged with desire %.4f below set_high %.4f", st.Desire, cfg.DesireSetHigh)
	}

	st = step(t, st, Inputs{GoalValue: 0.7})
	if !st.DesireLatched {
		t.Fatalf("latch should engage once desire %.4f reaches set_high", st.Desire)
	}
}

func TestClampingIdempotence(t *testing.T) {
	wild := Step(InitialState(), Inputs{GoalValue: 1.7, ThreatLevel: -0.3, Novelty: 2.5, Uncertainty: -1}, defaultBraid())
	tame := Step(InitialState(), Inputs{GoalValue: 1, ThreatLevel: 0, Novelty: 1, Uncertainty: 0}, defaultBraid())

	if wild.State != tame.State {
		t.Fatalf("clamped state %+v differs from in-range state %+v", wild.State, tame.State)
	}
	if len(wild.Clamped) != 4 {
		t.Fatalf("expected 4 clamp events, got %d", len(wild.Clamped))
	}
	if len(tame.Clamped) != 0 {
		t.Fatalf("in-range inputs produced %d clamp events", len(tame.Clamped))
	}
	if wild.Clamped[0].Field != "goal_value" || wild.Clamped[0].Raw != 1.7 || wild.Clamped[0].Clamped != 1 {
		t.Fatalf("unexpected first clamp event: %+v", wild.Clamped[0])
	}
}

func TestNaNInputNormalizedToZero(t *testing.T) {
	poisoned := Step(InitialState(), Inputs{GoalValue: math.NaN(), ThreatLevel: 0.3}, defaultBraid())
	clean := Step(InitialState(), Inputs{GoalValue: 0, ThreatLevel: 0.3}, defaultBraid())

	if poisoned.State != clean.State {
		t.Fatalf("NaN goal state %+v differs from zero-goal state %+v", poisoned.State, clean.State)
	}
	if math.IsNaN(poisoned.State.Desire) || math.IsNaN(poisoned.State.Valence) {
		t.Fatal("NaN leaked into the state")
	}
	if len(poisoned.Clamped) != 1 {
		t.Fatalf("expected 1 clamp event, got %d", len(poisoned.Clamped))
	}
	ev := poisoned.Clamped[0]
	if ev.Field != "goal_value" || !math.IsNaN(ev.Raw) || ev.Clamped != 0 {
		t.Fatalf("unexpected clamp event: %+v", ev)
	}
}

func TestStateStaysInDomain(t *testing.T) {
	st := InitialState()
	for i := 0; i < 50; i++ {
		in := Inputs{
			GoalValue:   float64(i%11) / 10,
			ThreatLevel: float64((i*3)%11) / 10,
			Novelty:     float64((i*7)%11) / 10,
			Uncertainty: float64((i*5)%11) / 10,
		}
		st = step(t, st, in)
		if st.Desire < 0 || st.Desire > 1 {
			t.Fatalf("step %d: desire %.4f out of range", i, st.Desire)
		}
		if st.Fear < 0 || st.Fear > 1 {
			t.Fatalf("step %d: fear %.4f out of range", i, st.Fear)
		}
		if st.Tension < 0 || st.Tension > 1 {
			t.Fatalf("step %d: tension %.4f out of range", i, st.Tension)
		}
		if st.Valence < -1 || st.Valence > 1 {
			t.Fatalf("step %d: valence %.4f out of range", i, st.Valence)
		}
		if st.BraidCode < 0 || st.BraidCode > 3 {
			t.Fatalf("step %d: braid code %d out of range", i, st.BraidCode)
		}
	}
}

func TestPolicyTableIsTotal(t *testing.T) {
	cases := []struct {
		desire bool
		fear   bool
		want   Policy
	}{
		{false, false, PolicyFreeze},
		{true, false, PolicyApproach},
		{false, true, PolicyAvoid},
		{true, true, PolicyInvestigate},
	}
	for _, c := range cases {
		got := derivePolicy(c.desire, c.fear, 0, 0.9)
		if got != c.want {
			t.Errorf("latches (%v, %v): expected %s, got %s", c.desire, c.fear, c.want, got)
		}
	}
}

func TestTensionOverrideResolvesToInvestigate(t *testing.T) {
	if got := derivePolicy(false, false, 0.95, 0.9); got != PolicyInvestigate {
		t.Fatalf("high tension should resolve to investigate, got %s", got)
	}
}

func TestStepIsPure(t *testing.T) {
	prev := State{Desire: 0.4, Fear: 0.3, Valence: 0.1, Tension: 0.2, Policy: PolicyFreeze}
	before := prev
	in := Inputs{GoalValue: 0.6}

	a := Step(prev, in, defaultBraid())
	b := Step(prev, in, defaultBraid())

	if prev != before {
		t.Fatal("Step mutated its input state")
	}
	if a.State != b.State {
		t.Fatalf("identical calls produced different states: %+v vs %+v", a.State, b.State)
	}
}
