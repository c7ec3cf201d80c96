package unity

// #region imports
import (
	"hash/fnv"
	"time"

	"go.uber.org/zap"

	"github.com/primecodex/emota-engine/internal/archetype"
	"github.com/primecodex/emota-engine/internal/braid"
	"github.com/primecodex/emota-engine/internal/config"
	"github.com/primecodex/emota-engine/internal/memory"
)

// #endregion imports

// #region orchestrator

// Orchestrator composes the braid and archetype engines into one
// experience pipeline. It owns the carried motivational state and the
// optional episodic buffer; everything else is recomputed per call.
//
// An Orchestrator requires exclusive access during a call. Independent
// instances share nothing and may run in parallel.
type Orchestrator struct {
	cfg    config.Config
	state  braid.State
	buffer *memory.Buffer // nil when memory.capacity is 0
	stages []Stage
	log    *zap.Logger
	now    func() time.Time
}

// #endregion orchestrator

// #region options

// Option customizes an Orchestrator at construction.
type Option func(*Orchestrator)

// WithLogger installs a structured logger. Default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithStages replaces the default extension pipeline.
func WithStages(stages ...Stage) Option {
	return func(o *Orchestrator) { o.stages = stages }
}

// WithClock overrides the timestamp source. Used by tests and the replay
// harness to keep snapshots reproducible.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// #endregion options

// #region constructor

// New builds an orchestrator from a validated config. Construction is the
// only place a runtime error can originate: an invalid config fails fast
// with a *config.ConfigError.
func New(cfg config.Config, opts ...Option) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &Orchestrator{
		cfg:    cfg,
		state:  braid.InitialState(),
		stages: DefaultStages(),
		log:    zap.NewNop(),
		now:    time.Now,
	}
	if cfg.Memory.Capacity > 0 {
		o.buffer = memory.NewBuffer(cfg.Memory.Capacity)
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// #endregion constructor

// #region process

// ProcessExperience advances the owned state by one experience and
// returns the unified snapshot. It cannot fail: inputs are clamped and
// every downstream computation is total.
func (o *Orchestrator) ProcessExperience(content string, in braid.Inputs) Snapshot {
	return o.process(content, in, o.cfg)
}

// ProcessExperienceWith runs one call under an overriding config. The
// override applies to this call only; the constructor config is restored
// for subsequent calls. The owned state still advances.
func (o *Orchestrator) ProcessExperienceWith(content string, in braid.Inputs, cfg config.Config) (Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return Snapshot{}, err
	}
	return o.process(content, in, cfg), nil
}

func (o *Orchestrator) process(content string, in braid.Inputs, cfg config.Config) Snapshot {
	ts := o.now().UTC()

	result := braid.Step(o.state, in, cfg.Braid)
	for _, ev := range result.Clamped {
		o.log.Warn("input clamped",
			zap.String("field", ev.Field),
			zap.Float64("raw", ev.Raw),
			zap.Float64("clamped", ev.Clamped),
		)
	}
	o.state = result.State

	echoed := clampedInputs(in, result.Clamped)
	res := archetype.Project(o.state, cfg.Archetype)

	snap := Snapshot{
		Identity:    cfg.Identity,
		Timestamp:   ts.Format(time.RFC3339Nano),
		Content:     content,
		ContentHash: contentHash(content),
		Inputs:      echoed,
		Motivation:  motivationalView(o.state),
		Resonance:   resonanceView(res),
	}

	for _, st := range o.stages {
		snap = st.Process(snap)
	}

	if o.buffer != nil {
		o.buffer.Append(memory.Episode{
			Timestamp: ts,
			Content:   content,
			Inputs:    echoed,
			State:     o.state,
			Resonance: res,
		})
	}

	o.log.Debug("experience processed",
		zap.String("policy", string(o.state.Policy)),
		zap.Int("braid_code", o.state.BraidCode),
		zap.String("dominant_pattern", string(res.Dominant)),
	)
	return snap
}

// #endregion process

// #region accessors

// State returns a copy of the carried motivational state.
func (o *Orchestrator) State() braid.State {
	return o.state
}

// MemoryEnabled reports whether an episodic buffer is attached.
func (o *Orchestrator) MemoryEnabled() bool {
	return o.buffer != nil
}

// Episodes returns the buffer's serializable view, or nil when memory is
// disabled. The persistence collaborator consumes this.
func (o *Orchestrator) Episodes() []memory.Episode {
	if o.buffer == nil {
		return nil
	}
	return o.buffer.Snapshot()
}

// RecentEpisodes returns up to n of the newest episodes.
func (o *Orchestrator) RecentEpisodes(n int) []memory.Episode {
	if o.buffer == nil {
		return nil
	}
	return o.buffer.Recent(n)
}

// #endregion accessors

// #region helpers

// clampedInputs applies the recorded clamp events so the snapshot echoes
// the values the engine actually consumed.
func clampedInputs(in braid.Inputs, events []braid.ClampEvent) braid.Inputs {
	for _, ev := range events {
		switch ev.Field {
		case "goal_value":
			in.GoalValue = ev.Clamped
		case "threat_level":
			in.ThreatLevel = ev.Clamped
		case "novelty":
			in.Novelty = ev.Clamped
		case "uncertainty":
			in.Uncertainty = ev.Clamped
		}
	}
	return in
}

// contentHash is a stable 32-bit digest of the experience text.
func contentHash(content string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(content))
	return h.Sum32()
}

// #endregion helpers
