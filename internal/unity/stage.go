package unity

// #region stage

// Stage is the uniform capability contract for extension stages run after
// the core braid/archetype pass. A stage receives the assembled snapshot
// and returns a (possibly rewritten) snapshot; stages must be
// deterministic for the orchestrator's determinism contract to hold.
type Stage interface {
	Name() string
	Process(snap Snapshot) Snapshot
}

// #endregion stage

// #region passthrough

// PassthroughStage reserves a pipeline slot without transforming the
// snapshot. The roadmap stages below ship as passthroughs so future
// implementations can be substituted without touching the orchestrator.
type PassthroughStage struct {
	name string
}

// NewPassthroughStage creates a named no-op stage.
func NewPassthroughStage(name string) PassthroughStage {
	return PassthroughStage{name: name}
}

func (s PassthroughStage) Name() string {
	return s.name
}

func (s PassthroughStage) Process(snap Snapshot) Snapshot {
	return snap
}

// DefaultStages returns the reserved extension pipeline: dimensional
// bridging, macro-structural integration, symbolic translation,
// meta-awareness, and identity continuity.
func DefaultStages() []Stage {
	return []Stage{
		NewPassthroughStage("bridge"),
		NewPassthroughStage("cathedral"),
		NewPassthroughStage("symbolic"),
		NewPassthroughStage("meta"),
		NewPassthroughStage("identity"),
	}
}

// #endregion passthrough
