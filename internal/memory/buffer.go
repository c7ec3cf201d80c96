package memory

// #region imports
import (
	"time"

	"github.com/primecodex/emota-engine/internal/archetype"
	"github.com/primecodex/emota-engine/internal/braid"
)

// #endregion imports

// #region episode

// Episode is one recorded experience-and-outcome tuple. Episodes are
// never mutated after insertion.
type Episode struct {
	ID        string              `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Content   string              `json:"content"`
	Inputs    braid.Inputs        `json:"inputs"`
	State     braid.State         `json:"state"`
	Resonance archetype.Resonance `json:"resonance"`
}

// #endregion episode

// #region buffer

// Buffer is a bounded, insertion-ordered episodic log. At capacity the
// oldest episode is evicted (strict FIFO); eviction is silent and normal.
// A Buffer is not safe for concurrent use.
type Buffer struct {
	capacity int
	episodes []Episode
}

// NewBuffer creates a buffer holding at most capacity episodes.
// Capacity must be positive; the config layer guarantees this.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{capacity: capacity}
}

// Append inserts an episode, evicting the oldest when full.
func (b *Buffer) Append(e Episode) {
	b.episodes = append(b.episodes, e)
	if len(b.episodes) > b.capacity {
		// Shift rather than reslice so evicted entries can be collected.
		copy(b.episodes, b.episodes[1:])
		b.episodes = b.episodes[:b.capacity]
	}
}

// Snapshot returns the full ordered content as a copy. This is the
// serializable view handed to persistence collaborators.
func (b *Buffer) Snapshot() []Episode {
	out := make([]Episode, len(b.episodes))
	copy(out, b.episodes)
	return out
}

// Recent returns up to n of the newest episodes in insertion order.
func (b *Buffer) Recent(n int) []Episode {
	if n <= 0 {
		return nil
	}
	if n > len(b.episodes) {
		n = len(b.episodes)
	}
	out := make([]Episode, n)
	copy(out, b.episodes[len(b.episodes)-n:])
	return out
}

// Len reports the number of stored episodes.
func (b *Buffer) Len() int {
	return len(b.episodes)
}

// Capacity reports the configured bound.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// #endregion buffer
