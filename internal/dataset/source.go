package dataset

import (
	"math/rand"
	"time"
)

// Source supplies the pseudo-random integers behind every generated field.
// All randomness funnels through Intn, so two sources yielding the same
// integer sequence produce field-identical datasets regardless of how the
// sequence was obtained. Tests substitute a scripted source.
type Source interface {
	Intn(n int) int
}

// NewSeededSource returns a deterministic source: the same seed always
// replays the same sequence.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSource returns a source seeded from the wall clock, for callers
// that want a different dataset on every run.
func NewTimeSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
